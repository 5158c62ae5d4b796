package store

import (
	"context"

	"syntaxsheet/pkg/model"
)

// Hit is one search result: an example within a section.
type Hit struct {
	Language string `json:"language"`
	Section  string `json:"section"`
	Example  int    `json:"example"`
	Title    string `json:"title"`
}

// SearchStore indexes a catalog and answers keyword queries.
type SearchStore interface {
	IndexCatalog(ctx context.Context, cat *model.Catalog) error
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
	Close() error
}
