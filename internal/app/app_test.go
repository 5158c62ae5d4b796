package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syntaxsheet/pkg/config"
	"syntaxsheet/pkg/render"
)

func testConfig(t *testing.T, files map[string]string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	cfg := config.DefaultConfig()
	cfg.Data.Dir = dir
	return cfg
}

func TestNew(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"go.yaml": "name: Go\nsections:\n  loops:\n    description: for only\n    examples:\n      - title: Range\n        code: \"for i := range 3 {}\"\n",
	})

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"Go"}, a.Catalog.Names())

	hits, err := a.Store.Search(context.Background(), "range", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Range", hits[0].Title)

	ts := httptest.NewServer(a.NewServer("", func() {}).Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/languages/Go/sections/loops")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"description":"for only"`)
}

func TestNew_Highlight(t *testing.T) {
	cfg := testConfig(t, map[string]string{
		"go.json": `{"name": "Go", "sections": {"basics": {"description": "", "examples": [{"title": "Func", "code": "func main() {}"}]}}}`,
	})
	cfg.Render.Highlight = true

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	sec, ok := a.Catalog.Section("Go", "basics")
	require.True(t, ok)
	doc := a.Renderer.Render("Go", "basics", sec)
	assert.NotEmpty(t, doc.Blocks[1].Highlighted)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *config.Config
	}{
		{
			name: "MissingDir",
			setup: func(t *testing.T) *config.Config {
				cfg := config.DefaultConfig()
				cfg.Data.Dir = filepath.Join(t.TempDir(), "missing")
				return cfg
			},
		},
		{
			name: "BadFile",
			setup: func(t *testing.T) *config.Config {
				return testConfig(t, map[string]string{"bad.json": `{"name": "X"}`})
			},
		},
		{
			name: "UnknownStyle",
			setup: func(t *testing.T) *config.Config {
				cfg := testConfig(t, nil)
				cfg.Render.Highlight = true
				cfg.Render.Style = "no-such-style"
				return cfg
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.setup(t))
			assert.Error(t, err)
		})
	}
}

func TestThemeFromConfig(t *testing.T) {
	got := ThemeFromConfig(config.DefaultConfig().Render.Theme)
	assert.Equal(t, render.DefaultTheme(), got)
}
