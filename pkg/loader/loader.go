// Package loader reads language definition files into a model.Catalog.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"syntaxsheet/pkg/model"
)

// ErrMissingName is returned for a definition without a usable name.
var ErrMissingName = errors.New("missing or empty name")

// ErrMissingSections is returned for a definition without a sections mapping.
var ErrMissingSections = errors.New("missing sections")

type decodeFunc func(data []byte, v any) error

// decoders maps recognised file suffixes to their decoder.
var decoders = map[string]decodeFunc{
	".json": json.Unmarshal,
	".yaml": yaml.Unmarshal,
	".yml":  yaml.Unmarshal,
}

// definitionFile mirrors the on-disk document so that a missing
// sections key can be told apart from an empty one.
type definitionFile struct {
	Name     string          `json:"name" yaml:"name"`
	Sections *model.Sections `json:"sections" yaml:"sections"`
}

// Supported reports whether a file name has a recognised suffix.
func Supported(name string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(name))]
	return ok
}

// LoadDir parses every definition file in dir, in filename order.
// Files with other suffixes and sub-directories are skipped. Any unreadable
// or malformed file fails the whole load; all such files are reported.
func LoadDir(dir string) (*model.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read language directory: %w", err)
	}

	cat := model.NewCatalog()
	var result *multierror.Error

	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())

		def, err := LoadFile(path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		if cat.Add(def) {
			slog.Warn("Loader: duplicate language name, later file wins", "name", def.Name, "file", e.Name())
		}
		slog.Debug("Loader: language loaded", "name", def.Name, "sections", def.Sections.Len(), "file", e.Name())
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("failed to load language definitions: %w", err)
	}

	slog.Info("Loader: catalog ready", "dir", dir, "languages", cat.Len())
	return cat, nil
}

// LoadFile parses a single definition file.
func LoadFile(path string) (*model.LanguageDefinition, error) {
	decode, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported file type", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var doc definitionFile
	if err := decode(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: failed to parse: %w", path, err)
	}

	if strings.TrimSpace(doc.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingName)
	}
	if doc.Sections == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrMissingSections)
	}

	return &model.LanguageDefinition{
		Name:     doc.Name,
		Sections: *doc.Sections,
	}, nil
}
