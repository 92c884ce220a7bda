// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Store backends selectable through STORE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

const defaultDBPassword = "changeme"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST" env-default:"0.0.0.0"`
	Port string `env:"APP_PORT" env-default:"8080"`
	Env  string `env:"APP_ENV" env-default:"development"` // "development", "production", "testing"

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// StoreBackend picks where content lives: "postgres" or "memory".
	StoreBackend string `env:"STORE_BACKEND" env-default:"postgres"`

	DB        DBConfig
	Valkey    ValkeyConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// DBConfig holds the PostgreSQL connection settings. URL, when set, wins
// over the individual fields.
type DBConfig struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     uint16 `env:"POSTGRES_PORT" env-default:"5432"`
	User     string `env:"POSTGRES_USER" env-default:"b3cms"`
	Password string `env:"POSTGRES_PASSWORD" env-default:"changeme"`
	Name     string `env:"POSTGRES_DB" env-default:"b3cms"`
	SSLMode  string `env:"POSTGRES_SSLMODE" env-default:"disable"`
}

// ValkeyConfig holds the Valkey (Redis-compatible cache) connection settings.
type ValkeyConfig struct {
	Host     string `env:"VALKEY_HOST" env-default:"localhost"`
	Port     string `env:"VALKEY_PORT" env-default:"6379"`
	Password string `env:"VALKEY_PASSWORD"`
	DB       int    `env:"VALKEY_DB" env-default:"0"`
}

// CacheConfig controls the published listing cache.
type CacheConfig struct {
	Enabled bool          `env:"CACHE_ENABLED" env-default:"false"`
	TTL     time.Duration `env:"CACHE_TTL" env-default:"1m"`
}

// RateLimitConfig throttles the view and share counters per client IP.
// Zero requests disables the limiter.
type RateLimitConfig struct {
	Requests   int           `env:"RATE_LIMIT_REQUESTS" env-default:"60"`
	Window     time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`
	// TrustProxy keys clients on X-Forwarded-For / X-Real-IP. Enable only
	// behind a reverse proxy that sets them.
	TrustProxy bool          `env:"RATE_LIMIT_TRUST_PROXY" env-default:"false"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or inconsistent.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.StoreBackend {
	case BackendPostgres, BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, c.StoreBackend)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return errors.New("CACHE_TTL must be positive when the cache is enabled")
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be positive")
	}
	if c.Env == "production" && c.StoreBackend == BackendPostgres &&
		c.DB.URL == "" && c.DB.Password == defaultDBPassword {
		return errors.New("POSTGRES_PASSWORD must be set in production")
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     net.JoinHostPort(c.DB.Host, strconv.Itoa(int(c.DB.Port))),
		Path:     c.DB.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.DB.SSLMode),
	}
	return u.String()
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}
