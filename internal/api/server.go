package api

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"syntaxsheet/internal/ui"
	"syntaxsheet/pkg/config"
	"syntaxsheet/pkg/render"
	"syntaxsheet/pkg/version"
)

// NewServer creates and configures the HTTP server.
// It accepts the handlers for all API endpoints and a shutdown func for graceful shutdown.
func NewServer(addr string, sc config.ServerConfig, langH *LanguageHandler, searchH *SearchHandler, socketH *SocketHandler, theme render.Theme, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// 1. Health Endpoint
	mux.HandleFunc("GET /health", handleHealth)

	// 2. Version Endpoint
	mux.HandleFunc("GET /api/version", handleVersion)

	// 2b. Logs Endpoint
	mux.HandleFunc("GET /api/log/latest", handleLatestLog)

	// 2c. Catalog Endpoints
	mux.HandleFunc("GET /api/languages", langH.HandleList)
	mux.HandleFunc("GET /api/languages/{name}", langH.HandleLanguage)
	mux.HandleFunc("GET /api/languages/{name}/sections/{key}", langH.HandleSection)

	// 2d. Search Endpoint
	if searchH != nil {
		mux.Handle("GET /api/search", searchH)
	}

	// 2e. Theme Endpoint
	css := theme.CSS()
	mux.HandleFunc("GET /api/theme.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		if _, err := w.Write([]byte(css)); err != nil {
			slog.Error("Failed to write theme response", "error", err)
		}
	})

	// 2f. UI Session Endpoint
	mux.Handle("GET /ws", socketH)

	// 3. Shutdown Endpoint
	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Call shutdown in a goroutine to allow response to flush
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	// 4. Static Frontend Serving (SPA)
	distFS, err := fs.Sub(ui.DistFS, "dist")
	if err != nil {
		panic(fmt.Sprintf("Failed to subtree dist from embedded assets: %v", err))
	}

	spaFS := &spaFileSystem{root: http.FS(distFS)}
	mux.Handle("/", http.FileServer(spaFS))

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  sc.ReadTimeout.Std(),
		WriteTimeout: sc.WriteTimeout.Std(),
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}
