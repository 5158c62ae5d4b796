package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "python.json", `{"name": "Python", "sections": {"loops": {"description": "for", "examples": []}}}`)
	writeFile(t, dir, "go.yaml", "name: Go\nsections:\n  basics:\n    description: hi\n    examples: []\n")
	writeFile(t, dir, "README.md", "not a definition")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	cat, err := LoadDir(dir)
	require.NoError(t, err)

	// ReadDir order: go.yaml before python.json
	assert.Equal(t, []string{"Go", "Python"}, cat.Names())

	sec, ok := cat.Section("Python", "loops")
	require.True(t, ok)
	assert.Equal(t, "for", sec.Description)
}

func TestLoadDir_DuplicateNameLastWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"name": "Go", "sections": {"old": {"description": "a"}}}`)
	writeFile(t, dir, "b.json", `{"name": "Java", "sections": {}}`)
	writeFile(t, dir, "c.json", `{"name": "Go", "sections": {"new": {"description": "c"}}}`)

	cat, err := LoadDir(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len(), "one entry per distinct name")
	assert.Equal(t, []string{"Go", "Java"}, cat.Names())

	def, _ := cat.Get("Go")
	assert.Equal(t, []string{"new"}, def.Sections.Keys())
}

func TestLoadDir_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr []string
	}{
		{
			name:    "MalformedJSON",
			files:   map[string]string{"bad.json": `{"name": "X", `},
			wantErr: []string{"bad.json"},
		},
		{
			name:    "MissingName",
			files:   map[string]string{"noname.json": `{"sections": {}}`},
			wantErr: []string{"noname.json", "missing or empty name"},
		},
		{
			name:    "MissingSections",
			files:   map[string]string{"nosec.yml": "name: Rust\n"},
			wantErr: []string{"nosec.yml", "missing sections"},
		},
		{
			name: "AllBadFilesReported",
			files: map[string]string{
				"one.json": `[]`,
				"two.json": `{"name": ""}`,
				"ok.json":  `{"name": "Ok", "sections": {}}`,
			},
			wantErr: []string{"one.json", "two.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}
			cat, err := LoadDir(dir)
			require.Error(t, err)
			assert.Nil(t, cat)
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadDir_EmptyDirectory(t *testing.T) {
	cat, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Len())
}

func TestLoadFile_Sentinels(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blank.json", `{"name": "  ", "sections": {}}`)
	writeFile(t, dir, "nosec.json", `{"name": "C"}`)

	_, err := LoadFile(filepath.Join(dir, "blank.json"))
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = LoadFile(filepath.Join(dir, "nosec.json"))
	assert.ErrorIs(t, err, ErrMissingSections)

	_, err = LoadFile(filepath.Join(dir, "notes.txt"))
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("python.json"))
	assert.True(t, Supported("GO.YAML"))
	assert.True(t, Supported("java.yml"))
	assert.False(t, Supported("notes.txt"))
	assert.False(t, Supported("json"))
}
