package api

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// spaFileSystem serves the embedded UI, answering unknown paths with index.html.
// Paths under /api/ are never rewritten.
type spaFileSystem struct {
	root http.FileSystem
}

// Open opens the named file, falling back to index.html.
func (s *spaFileSystem) Open(name string) (http.File, error) {
	f, err := s.root.Open(name)
	if errors.Is(err, fs.ErrNotExist) && !strings.HasPrefix(path.Clean(name), "/api/") {
		return s.root.Open("/index.html")
	}
	return f, err
}
