// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Slug cache backends.
const (
	CacheMemory = "memory"
	CacheValkey = "valkey"
)

// MissingError reports a required environment variable that is unset.
type MissingError struct {
	Key  string
	Hint string
}

func (e *MissingError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s must be set (%s)", e.Key, e.Hint)
	}
	return e.Key + " must be set"
}

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string

	// PostgreSQL connection. DatabaseURL wins over the individual fields.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	// Public object storage for image references
	StorageURL    string
	StorageBucket string

	// HS256 secret shared with the auth provider
	JWTSecret string

	// Category slug cache
	CategoryCache     string // "memory" or "valkey"
	CategoryCacheSize int
	CategoryCacheTTL  time.Duration

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// Views counter requests allowed per client IP per minute
	ViewRateLimit int
}

// Load reads configuration from environment variables, applying defaults
// where appropriate. Required values that are missing produce a
// *MissingError; malformed numbers and durations produce descriptive errors.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:      envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:      envOrDefault("POSTGRES_USER", "newsdesk"),
		DBPassword:  os.Getenv("POSTGRES_PASSWORD"),
		DBName:      envOrDefault("POSTGRES_DB", "newsdesk"),
		DBSSLMode:   envOrDefault("POSTGRES_SSLMODE", "disable"),

		StorageURL:    strings.TrimRight(os.Getenv("STORAGE_URL"), "/"),
		StorageBucket: envOrDefault("STORAGE_BUCKET", "images"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		CategoryCache: strings.ToLower(envOrDefault("CATEGORY_CACHE", CacheMemory)),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	defaultLevel := "info"
	if cfg.IsDev() {
		defaultLevel = "debug"
	}
	cfg.LogLevel = strings.ToLower(envOrDefault("LOG_LEVEL", defaultLevel))

	if cfg.StorageURL == "" {
		return nil, &MissingError{Key: "STORAGE_URL", Hint: "public storage base URL"}
	}
	if u, err := url.Parse(cfg.StorageURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("STORAGE_URL %q is not an absolute URL", cfg.StorageURL)
	}
	if cfg.DatabaseURL == "" && cfg.DBPassword == "" {
		return nil, &MissingError{Key: "POSTGRES_PASSWORD", Hint: "or DATABASE_URL"}
	}
	if cfg.JWTSecret == "" {
		return nil, &MissingError{Key: "JWT_SECRET", Hint: "HS256 secret of the auth provider"}
	}

	switch cfg.CategoryCache {
	case CacheMemory, CacheValkey:
	default:
		return nil, fmt.Errorf("CATEGORY_CACHE must be %q or %q, got %q", CacheMemory, CacheValkey, cfg.CategoryCache)
	}

	var err error
	if cfg.CategoryCacheSize, err = envInt("CATEGORY_CACHE_SIZE", 512); err != nil {
		return nil, err
	}
	if cfg.CategoryCacheTTL, err = envDuration("CATEGORY_CACHE_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ValkeyDB, err = envInt("VALKEY_DB", 0); err != nil {
		return nil, err
	}
	if cfg.ViewRateLimit, err = envInt("VIEW_RATE_LIMIT", 30); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envInt reads a non-negative integer environment variable.
func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

// envDuration reads a Go duration ("90s", "15m") environment variable.
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a duration like 15m, got %q", key, v)
	}
	return d, nil
}
