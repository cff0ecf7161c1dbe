// Package main is the entry point for the blog server.
// It loads configuration, selects the record store, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airblog/internal/airtable"
	"airblog/internal/config"
	"airblog/internal/handlers"
	"airblog/internal/render"
	"airblog/internal/router"
	"airblog/internal/store"
)

func main() {
	// Text logs until the environment is known.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if !cfg.IsDev() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})))
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
	)

	backend, err := newBackend(cfg)
	if err != nil {
		slog.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	posts := store.NewPostStore(backend)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	r := router.New(
		handlers.NewAPI(posts, cfg.AdminPassword),
		handlers.NewPublic(renderer, posts),
		router.Options{
			Secret:    cfg.AdminPassword,
			StaticDir: cfg.StaticDir,
			AdminDir:  cfg.AdminDir,

			RequestTimeout: airtable.DefaultTimeout,
		},
	)

	// Requests are cut off at airtable.DefaultTimeout by the router. The
	// write deadline leaves room to send the error after that.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: airtable.DefaultTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newBackend returns the record store selected by STORE_BACKEND.
func newBackend(cfg *config.Config) (store.Backend, error) {
	if cfg.StoreBackend == config.BackendMemory {
		slog.Warn("using in-memory store, posts are lost on restart")
		return store.NewMemoryBackend(), nil
	}

	client, err := airtable.New(airtable.Config{
		APIKey:  cfg.AirtableAPIKey,
		BaseID:  cfg.AirtableBaseID,
		Table:   cfg.AirtableTable,
		BaseURL: cfg.AirtableBaseURL,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("airtable store configured", "base", cfg.AirtableBaseID, "table", cfg.AirtableTable)
	return store.NewAirtableBackend(client), nil
}
