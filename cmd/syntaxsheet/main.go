package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	webview "github.com/webview/webview_go"

	"syntaxsheet/internal/app"
	"syntaxsheet/pkg/config"
	"syntaxsheet/pkg/logging"
	"syntaxsheet/pkg/version"
)

const configPath = "configs/syntaxsheet.yaml"

func main() {
	// Webview requires main thread
	runtime.LockOSThread()

	// Ensure we run from the executable directory to find languages/ and .env
	exe, _ := os.Executable()
	if err := os.Chdir(filepath.Dir(exe)); err != nil {
		panic(err)
	}

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("SyntaxSheet started", "version", version.Version)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	w := webview.New(cfg.Window.Debug)
	defer w.Destroy()

	// Block the context menu unless the developer tools are on
	if !cfg.Window.Debug {
		w.Init(`
			window.addEventListener('contextmenu', function(e) {
				e.preventDefault();
			}, true);
		`)
	}

	w.SetTitle(cfg.Window.Title)
	w.SetSize(cfg.Window.Width, cfg.Window.Height, webview.HintNone)

	_ = w.Bind("appReady", func() {
		slog.Debug("UI ready")
	})

	// Start local server to serve UI (avoids "Public connection" errors)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := a.NewServer(ln.Addr().String(), w.Terminate)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("UI server failed", "error", err)
			w.Dispatch(func() {
				w.Eval("document.getElementById('status').textContent = " + escapeJS("Server failed: "+err.Error()))
			})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("Serving UI", "addr", ln.Addr().String())
	w.Navigate("http://" + ln.Addr().String())
	w.Run()

	slog.Info("Window closed")
	return nil
}

func escapeJS(s string) string {
	b, _ := json.Marshal(s)
	// json.Marshal returns "string", surrounding quotes included.
	return string(b)
}
