// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/timelesstours/tourcms/internal/cache"
	"github.com/timelesstours/tourcms/internal/config"
	"github.com/timelesstours/tourcms/internal/handler"
	"github.com/timelesstours/tourcms/internal/i18n"
	"github.com/timelesstours/tourcms/internal/logging"
	"github.com/timelesstours/tourcms/internal/scheduler"
	"github.com/timelesstours/tourcms/internal/service"
	"github.com/timelesstours/tourcms/internal/store"
	"github.com/timelesstours/tourcms/internal/version"
)

// options are the command line flags.
type options struct {
	seedFile    string
	migrateOnly bool
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	var opts options
	flag.StringVar(&opts.seedFile, "seed", "", "Seed the content store from a YAML file before serving")
	flag.BoolVar(&opts.migrateOnly, "migrate-only", false, "Run migrations (and -seed, if given) and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "tourcms - localized content API for Timeless Tours\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TOURCMS_DB_DRIVER            sqlite|sqlite3|mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TOURCMS_DB_PATH              SQLite database path (default: ./data/tourcms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TOURCMS_DB_DSN               MySQL DSN\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TOURCMS_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TOURCMS_ENV                  development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TOURCMS_REDIS_URL            Redis URL for a shared response cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TOURCMS_CACHE_WARM_SCHEDULE  Cron spec for cache warm-up, \"off\" to disable (default: @every 15m)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TOURCMS_CORS_ORIGINS         Comma-separated origins allowed to call the API\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(version.Current())
		os.Exit(0)
	}

	if err := run(opts); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, logging.Options{
		Level:       cfg.SlogLevel(),
		Development: cfg.IsDevelopment(),
	})
	slog.SetDefault(logger)
	slog.Info("starting tourcms", "version", version.Current().Version, "env", cfg.Env)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	db, dialect, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	seedFile := opts.seedFile
	if seedFile == "" && cfg.DoSeed {
		seedFile = cfg.SeedFile
	}
	if opts.seedFile != "" || cfg.DoSeed {
		if err := seed(context.Background(), db, dialect, seedFile); err != nil {
			return err
		}
	}

	if opts.migrateOnly {
		slog.Info("migrations complete, exiting")
		return nil
	}

	var contentCache *cache.ContentCache
	if cfg.CacheEnabled {
		backend, info, err := cache.NewCache(cache.Config{
			RedisURL:         cfg.RedisURL,
			Prefix:           cfg.CachePrefix,
			DefaultTTL:       cfg.CacheTTLDuration(),
			MaxSize:          cfg.CacheMaxSize,
			CleanupInterval:  time.Minute,
			FallbackToMemory: true,
		})
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}
		contentCache = cache.NewContentCache(backend, cfg.CacheTTLDuration())
		defer func() {
			if err := contentCache.Close(); err != nil {
				slog.Error("error closing cache", "error", err)
			}
		}()
		slog.Info("response cache ready", "backend", info.Backend, "fallback", info.Fallback, "ttl", cfg.CacheTTLDuration())
	}

	svc := service.NewContentService(db, contentCache)

	if cfg.WarmUpEnabled() {
		sched := scheduler.New(svc, scheduler.Options{
			Schedule: cfg.CacheWarmSchedule,
			Workers:  cfg.CacheWarmWorkers,
		}, logger)
		if err := sched.Start(); err != nil {
			return fmt.Errorf("starting scheduler: %w", err)
		}
		defer sched.Stop()

		go func() {
			if err := sched.RunNow(context.Background()); err != nil {
				slog.Warn("initial cache warm-up failed", "error", err)
			}
		}()
	}

	health := handler.NewHealthHandler(db, contentCache, version.Current(), cfg.IsDevelopment())

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           newRouter(cfg, svc, health),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// SIGHUP drops cached responses, e.g. after the database was edited
	// by hand. SIGINT and SIGTERM stop the server.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

wait:
	for {
		select {
		case err := <-serverErr:
			return fmt.Errorf("server error: %w", err)
		case sig := <-signals:
			if sig != syscall.SIGHUP {
				break wait
			}
			if err := svc.Invalidate(context.Background()); err != nil {
				slog.Error("cache invalidation failed", "error", err)
			}
		}
	}

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// openStore connects to the configured database and applies migrations.
func openStore(cfg *config.Config) (*sql.DB, store.Dialect, error) {
	dialect, err := store.DialectFor(cfg.DBDriver)
	if err != nil {
		return nil, "", err
	}

	if dialect == store.DialectSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, "", fmt.Errorf("creating data directory: %w", err)
		}
		slog.Info("initializing database", "driver", cfg.DBDriver, "path", cfg.DBPath)
	} else {
		slog.Info("initializing database", "driver", cfg.DBDriver)
	}

	db, err := store.Open(cfg.DBDriver, cfg.DSN(), store.DefaultDBConfig())
	if err != nil {
		return nil, "", fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")
	return db, dialect, nil
}

// seed loads path, or the embedded default content when path is empty, into
// the store.
func seed(ctx context.Context, db *sql.DB, dialect store.Dialect, path string) error {
	var (
		data *store.SeedData
		err  error
	)
	if path == "" {
		data, err = store.DefaultSeed()
	} else {
		data, err = store.LoadSeedFile(path)
	}
	if err != nil {
		return fmt.Errorf("loading seed data: %w", err)
	}

	res, err := store.Seed(ctx, db, dialect, data)
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database seeded",
		"source", seedSource(path),
		"languages", res.Languages,
		"texts", res.Texts,
		"translations", res.Translations,
		"tours", res.Tours,
		"team_members", res.TeamMembers,
		"faqs", res.Faqs,
	)
	return nil
}

func seedSource(path string) string {
	if path == "" {
		return "embedded default"
	}
	return path
}
