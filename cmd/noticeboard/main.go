// Package main is the entry point for the noticeboard server.
// It loads configuration, connects to the upstream content service and
// Valkey, sets up routing, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"noticeboard/internal/cache"
	"noticeboard/internal/config"
	"noticeboard/internal/handlers"
	"noticeboard/internal/lifecycle"
	"noticeboard/internal/remote"
	"noticeboard/internal/router"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"content_api", cfg.ContentAPIURL,
	)

	// Connect to Valkey. The cache is optional: without it the public
	// endpoints rebuild their responses per request.
	var contentCache *cache.ContentCache
	valkeyClient, err := cache.Connect(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, running without content cache", "error", err)
	} else {
		defer valkeyClient.Close()
		contentCache = cache.NewContentCache(valkeyClient, cache.DefaultTTL)
		slog.Info("valkey connected", "host", cfg.ValkeyHost, "port", cfg.ValkeyPort)
	}

	// Client for the upstream content service. All persistence goes
	// through it; this server never writes state of its own.
	client := remote.NewClient(cfg.ContentAPIURL, cfg.ContentAPIToken)

	popupStore := lifecycle.NewPopupStore(remote.NewPopupService(client), cacheOrNil(contentCache))
	circularStore := lifecycle.NewCircularStore(remote.NewCircularService(client), cacheOrNil(contentCache))

	// Warm the stores from upstream. A failure here is not fatal: the
	// stores start empty and the first successful write or refresh fills
	// them in.
	refreshCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := popupStore.Refresh(refreshCtx); err != nil {
		slog.Warn("initial popup refresh failed", "error", err)
	}
	if err := circularStore.Refresh(refreshCtx); err != nil {
		slog.Warn("initial circular refresh failed", "error", err)
	}
	cancel()

	// Create handler groups with their dependencies.
	adminHandlers := handlers.NewAdmin(popupStore, circularStore)
	publicHandlers := handlers.NewPublic(popupStore, circularStore, contentCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(adminHandlers, publicHandlers)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
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

// cacheOrNil avoids handing the stores a typed nil that would dodge their
// nil checks.
func cacheOrNil(cc *cache.ContentCache) lifecycle.Invalidator {
	if cc == nil {
		return nil
	}
	return cc
}
