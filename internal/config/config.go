// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// Supported database drivers.
const (
	DriverSQLite    = "sqlite"
	DriverSQLiteCGO = "sqlite3"
	DriverMySQL     = "mysql"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver   string `env:"TOURCMS_DB_DRIVER" envDefault:"sqlite"`
	DBPath     string `env:"TOURCMS_DB_PATH" envDefault:"./data/tourcms.db"`
	DBDSN      string `env:"TOURCMS_DB_DSN"` // MySQL DSN, e.g. user:pass@tcp(localhost:3306)/tourcms
	ServerHost string `env:"TOURCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"TOURCMS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"TOURCMS_ENV" envDefault:"development"`
	LogLevel   string `env:"TOURCMS_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	CacheEnabled bool   `env:"TOURCMS_CACHE_ENABLED" envDefault:"true"`
	RedisURL     string `env:"TOURCMS_REDIS_URL"`                          // Optional Redis URL for a shared cache
	CachePrefix  string `env:"TOURCMS_CACHE_PREFIX" envDefault:"tourcms:"` // Redis key prefix
	CacheTTL     int    `env:"TOURCMS_CACHE_TTL" envDefault:"600"`         // seconds
	CacheMaxSize int    `env:"TOURCMS_CACHE_MAX_SIZE" envDefault:"10000"`  // memory cache entries

	// Cache warm-up; "off" disables it.
	CacheWarmSchedule string `env:"TOURCMS_CACHE_WARM_SCHEDULE" envDefault:"@every 15m"`
	CacheWarmWorkers  int    `env:"TOURCMS_CACHE_WARM_WORKERS" envDefault:"4"`

	// HTTP
	RateLimitRPS   float64       `env:"TOURCMS_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int           `env:"TOURCMS_RATE_LIMIT_BURST" envDefault:"40"`
	RequestTimeout time.Duration `env:"TOURCMS_REQUEST_TIMEOUT" envDefault:"15s"`
	CORSOrigins    []string      `env:"TOURCMS_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	ContentMaxAge  int           `env:"TOURCMS_CONTENT_MAX_AGE" envDefault:"60"` // Cache-Control max-age, seconds

	// Seeding configuration
	DoSeed   bool   `env:"TOURCMS_DO_SEED" envDefault:"false"` // seed on startup
	SeedFile string `env:"TOURCMS_SEED_FILE"`                  // empty uses the embedded default content
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverMySQL {
		return c.DBDSN
	}
	return c.DBPath
}

// WarmUpEnabled reports whether the cache warm-up job should run.
func (c Config) WarmUpEnabled() bool {
	return c.CacheEnabled && c.CacheWarmSchedule != "" && c.CacheWarmSchedule != "off"
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	if level, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelInfo
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverSQLite, DriverSQLiteCGO:
		if c.DBPath == "" {
			errs = append(errs, errors.New("TOURCMS_DB_PATH is required for SQLite"))
		}
	case DriverMySQL:
		if c.DBDSN == "" {
			errs = append(errs, errors.New("TOURCMS_DB_DSN is required for MySQL"))
		}
	default:
		errs = append(errs, fmt.Errorf("TOURCMS_DB_DRIVER %q is not one of sqlite, sqlite3, mysql", c.DBDriver))
	}

	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Errorf("TOURCMS_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel))
	}

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("TOURCMS_SERVER_PORT %d is out of range", c.ServerPort))
	}

	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("TOURCMS_CACHE_TTL must not be negative"))
	}

	if c.WarmUpEnabled() {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(c.CacheWarmSchedule); err != nil {
			errs = append(errs, fmt.Errorf("TOURCMS_CACHE_WARM_SCHEDULE: %w", err))
		}
	}

	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		errs = append(errs, errors.New("rate limit values must not be negative"))
	}

	if slices.Contains(c.CORSOrigins, "*") && len(c.CORSOrigins) > 1 {
		errs = append(errs, errors.New(`TOURCMS_CORS_ORIGINS: "*" cannot be combined with other origins`))
	}

	return errors.Join(errs...)
}

// Load parses the process environment and validates the result.
func Load() (*Config, error) {
	return Parse(env.ToMap(os.Environ()))
}

// Parse builds a Config from an environment map.
func Parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
