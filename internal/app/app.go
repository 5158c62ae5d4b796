// Package app wires the catalog, renderer, search index and HTTP server
// shared by the desktop and the browser entry points.
package app

import (
	"context"
	"fmt"
	"net/http"

	"syntaxsheet/internal/api"
	"syntaxsheet/pkg/apisession"
	"syntaxsheet/pkg/cache"
	"syntaxsheet/pkg/config"
	"syntaxsheet/pkg/controller"
	"syntaxsheet/pkg/db"
	"syntaxsheet/pkg/highlight"
	"syntaxsheet/pkg/loader"
	"syntaxsheet/pkg/model"
	"syntaxsheet/pkg/probe"
	"syntaxsheet/pkg/render"
	"syntaxsheet/pkg/store"
)

// sectionCacheSize bounds the rendered section cache.
const sectionCacheSize = 256

// App holds the components built at startup.
type App struct {
	Config   *config.Config
	Catalog  *model.Catalog
	Renderer *render.Renderer
	Store    *store.SQLiteStore
	Theme    render.Theme

	clipboard controller.Clipboard
	resume    *apisession.Store
}

// New loads the language definitions and builds every component.
// A data load failure is returned as is; callers treat it as fatal.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	cat, err := loader.LoadDir(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}

	var hl render.Highlighter
	if cfg.Render.Highlight {
		h, err := highlight.New(cfg.Render.Style, cfg.Render.TabWidth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize highlighter: %w", err)
		}
		hl = h
	}

	dbConn, err := db.Init(cfg.Search.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize search db: %w", err)
	}
	st := store.NewSQLiteStore(dbConn)
	if err := st.IndexCatalog(ctx, cat); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to index catalog: %w", err)
	}

	a := &App{
		Config:    cfg,
		Catalog:   cat,
		Renderer:  render.NewRenderer(hl),
		Store:     st,
		Theme:     ThemeFromConfig(cfg.Render.Theme),
		clipboard: controller.SystemClipboard{},
		resume:    apisession.New(cfg.Server.SessionTTL.Std()),
	}

	if err := probe.AnalyzeResults(probe.Run(ctx, []probe.Probe{
		probe.Catalog(cat),
		probe.SearchIndex(st),
	})); err != nil {
		st.Close()
		return nil, fmt.Errorf("startup checks failed: %w", err)
	}
	return a, nil
}

// Close releases the search index.
func (a *App) Close() error {
	return a.Store.Close()
}

// NewServer builds the HTTP server on addr with request logging.
func (a *App) NewServer(addr string, shutdown func()) *http.Server {
	srv := api.NewServer(addr, a.Config.Server,
		api.NewLanguageHandler(a.Catalog, a.Renderer, cache.NewMemoryCache(sectionCacheSize)),
		api.NewSearchHandler(a.Store, a.Config.Search.Limit),
		api.NewSocketHandler(a.Catalog, a.Renderer, a.clipboard, a.resume),
		a.Theme,
		shutdown,
	)
	srv.Handler = api.LoggingMiddleware(srv.Handler)
	return srv
}

// ThemeFromConfig converts the configured theme.
func ThemeFromConfig(tc config.ThemeConfig) render.Theme {
	return render.Theme{
		Font:        tc.Font,
		FontSize:    tc.FontSize,
		Background:  tc.Background,
		Foreground:  tc.Foreground,
		Title:       render.TagStyle{Color: tc.Title.Color, Bold: tc.Title.Bold},
		Explanation: render.TagStyle{Color: tc.Explanation.Color, Bold: tc.Explanation.Bold},
		Code:        render.TagStyle{Color: tc.Code.Color, Bold: tc.Code.Bold},
	}
}
