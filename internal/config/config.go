// Package config loads the storefront configuration from environment
// variables and resolves the remote API base origin.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`

	// Remote store API
	APIBaseURL        string `env:"API_BASE_URL" envDefault:""`
	APITimeoutSeconds int    `env:"API_TIMEOUT_SECONDS" envDefault:"30"`
	BreakerEnabled    bool   `env:"API_CIRCUIT_BREAKER" envDefault:"true"`

	// Redis session snapshots; empty addr disables persistence.
	RedisAddr string `env:"REDIS_ADDR" envDefault:""`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Session TTL in hours (default: 7 days)
	SessionTTLHours int `env:"SESSION_TTL_HOURS" envDefault:"168"`

	// Fixed session identifier; empty means a fresh one per process.
	SessionID string `env:"CART_SESSION_ID" envDefault:""`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.APITimeoutSeconds < 1 {
		return fmt.Errorf("invalid API timeout: %d", c.APITimeoutSeconds)
	}
	if c.SessionTTLHours < 1 {
		return fmt.Errorf("invalid session TTL: %d", c.SessionTTLHours)
	}
	return nil
}

// ResolveAPIBaseURL picks the base origin for the remote store API. An
// explicit API_BASE_URL always wins, with any trailing slash dropped.
// Without one, development talks to the local backend directly and every
// other environment uses the relative /api prefix behind a reverse proxy.
func (c *Config) ResolveAPIBaseURL() string {
	if c.APIBaseURL != "" {
		return strings.TrimRight(c.APIBaseURL, "/")
	}
	if c.Environment == "development" {
		return "http://127.0.0.1:8000/api"
	}
	return "/api"
}

// APITimeout returns the remote API request timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// SessionTTL returns the cart snapshot TTL as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// SnapshotsEnabled reports whether cart snapshots are persisted to Redis.
func (c *Config) SnapshotsEnabled() bool {
	return c.RedisAddr != ""
}
