package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port                string   `env:"PORT" envDefault:"5000"`
	DatabaseURL         string   `env:"DATABASE_URL" envDefault:"sqlite://a.db"`
	CORSOrigins         []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	LogFormat           string   `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel            string   `env:"LOG_LEVEL" envDefault:"info"`
	BcryptCost          int      `env:"BCRYPT_COST"`
	SessionCookieName   string   `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`
	SessionCookieSecure bool     `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.CORSOrigins = cleanList(cfg.CORSOrigins)
	cfg.SessionCookieName = strings.TrimSpace(cfg.SessionCookieName)

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionCookieName == "" {
		return Config{}, fmt.Errorf("SESSION_COOKIE_NAME is required")
	}
	if _, _, err := cfg.Store(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Backend names a user store implementation.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Store picks the backend from the DATABASE_URL scheme and returns the
// location to hand to it: the URL itself for PostgreSQL, a path or file: DSN
// for SQLite.
func (c Config) Store() (Backend, string, error) {
	url := c.DatabaseURL
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return BackendPostgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("DATABASE_URL %q has no sqlite path", url)
		}
		return BackendSQLite, path, nil
	case strings.HasPrefix(url, "file:"):
		return BackendSQLite, url, nil
	}
	return "", "", fmt.Errorf("DATABASE_URL: unsupported scheme in %q", redactURL(url))
}

func redactURL(url string) string {
	scheme, _, found := strings.Cut(url, "://")
	if !found {
		return "<unknown>"
	}
	return scheme + "://..."
}

func cleanList(in []string) []string {
	var out []string
	for _, part := range in {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
