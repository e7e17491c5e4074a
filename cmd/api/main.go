package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/mandalnilabja/mpgconverter/internal/app"
	"github.com/mandalnilabja/mpgconverter/internal/config"
	"github.com/mandalnilabja/mpgconverter/internal/storage"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/handler/admin"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware/auth"
	"github.com/mandalnilabja/mpgconverter/internal/transport/http/middleware/ratelimit"
	"github.com/mandalnilabja/mpgconverter/internal/usage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("mpgconverter exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	opts := handler.Options{
		DefaultUnit: cfg.DefaultUnit,
		Prefix:      cfg.Prefix(),
		EnableWebUI: cfg.EnableWebUI,
	}
	routerOpts := &app.RouterOptions{
		Logger: logger,
		Prefix: cfg.Prefix(),
	}

	// 2. Storage, only needed for usage logging and the admin API
	if cfg.EnableUsageLog {
		store, cleanup, err := openStorage(cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		statsCache, err := admin.NewStatsCache()
		if err != nil {
			return err
		}
		defer statsCache.Close()

		tokenCache, err := auth.NewTokenCache()
		if err != nil {
			return err
		}
		defer tokenCache.Close()

		opts.Storage = store
		opts.Recorder = usage.NewRecorder(store, logger)
		opts.StatsCache = statsCache
		opts.TokenCache = tokenCache
		routerOpts.Storage = store
		routerOpts.TokenCache = tokenCache
	}

	if cfg.RateLimit > 0 {
		routerOpts.Limiter = ratelimit.New(cfg.RateLimit)
	}

	// 3. Handlers and router
	repo, err := handler.NewRepo(opts)
	if err != nil {
		return err
	}
	router := app.NewRouter(repo, routerOpts)

	// 4. Serve until interrupted
	srv := app.NewServer(cfg, router, logger)
	printStartupBanner(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStorage opens the SQLite database and makes sure an admin password exists.
func openStorage(cfg *config.Config, logger *slog.Logger) (storage.Storage, func(), error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, nil, err
	}
	if err := config.EnsureConfigFile(); err != nil {
		logger.Warn("could not write default config file", "path", config.ConfigPath(), "error", err)
	}

	store, err := storage.NewSQLiteStorage(config.DBPath())
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}

	err = ensureAdminPassword(store, cfg.AdminPassword, os.Stdin, os.Stdout, isTerminal(os.Stdin), storage.DefaultArgon2Params())
	switch {
	case errors.Is(err, errNoAdminPassword):
		logger.Warn("admin API is locked until ADMIN_PASSWORD is set")
	case err != nil:
		cleanup()
		return nil, nil, err
	}

	return store, cleanup, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
