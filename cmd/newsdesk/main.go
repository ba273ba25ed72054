// Package main is the entry point for the newsdesk API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"newsdesk/internal/cache"
	"newsdesk/internal/config"
	"newsdesk/internal/content"
	"newsdesk/internal/database"
	"newsdesk/internal/handlers"
	"newsdesk/internal/imageurl"
	"newsdesk/internal/middleware"
	"newsdesk/internal/router"
	"newsdesk/internal/store"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(newLogger(cfg))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"category_cache", cfg.CategoryCache,
	)

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	slugs, closeCache, err := newSlugCache(cfg)
	if err != nil {
		slog.Error("failed to initialize category cache", "error", err)
		os.Exit(1)
	}
	defer closeCache()

	categoryStore := store.NewCategoryStore(db)
	resolver := content.NewCategoryResolver(categoryStore, slugs)
	images := imageurl.NewNormalizer(cfg.StorageURL, cfg.StorageBucket)

	repo := content.NewRepository(store.NewArticleStore(db), resolver, images)
	categories := content.NewCategories(categoryStore, resolver)

	viewLimiter := middleware.NewRateLimiter(cfg.ViewRateLimit, time.Minute)
	defer viewLimiter.Stop()

	r := router.New(router.Deps{
		Articles:    handlers.NewArticles(repo),
		Categories:  handlers.NewCategories(categories),
		Health:      handlers.Health(db),
		JWTSecret:   cfg.JWTSecret,
		ViewLimiter: viewLimiter,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// newLogger outputs text in development and JSON everywhere else.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsDev() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// newSlugCache builds the category slug cache selected by CATEGORY_CACHE.
// The returned func releases its resources.
func newSlugCache(cfg *config.Config) (content.SlugCache, func(), error) {
	if cfg.CategoryCache != config.CacheValkey {
		return cache.NewMemorySlugCache(cfg.CategoryCacheSize, cfg.CategoryCacheTTL), func() {}, nil
	}

	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		return nil, nil, err
	}
	slugs := cache.NewValkeySlugCache(client, cfg.CategoryCacheTTL)
	// Entries left by a previous deployment may predate category edits made
	// directly in the database.
	slugs.Purge(context.Background())
	return slugs, func() { client.Close() }, nil
}
