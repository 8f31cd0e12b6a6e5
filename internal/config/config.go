// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"interview-room.db"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	// Secure cookies stay on unless explicitly disabled for local development.
	CookieSecure bool `envconfig:"COOKIE_SECURE" default:"true"`
	BcryptCost   int  `envconfig:"BCRYPT_COST" default:"12"`

	StreamAPIKey    string        `envconfig:"STREAM_API_KEY"`
	StreamAPISecret string        `envconfig:"STREAM_API_SECRET"`
	StreamTokenTTL  time.Duration `envconfig:"STREAM_TOKEN_TTL" default:"1h"`

	RedisAddr string `envconfig:"REDIS_ADDR"`

	TokenRatePerMinute int    `envconfig:"TOKEN_RATE_PER_MINUTE" default:"30"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values envconfig cannot express.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.StreamTokenTTL <= 0 {
		return fmt.Errorf("STREAM_TOKEN_TTL must be positive, got %s", c.StreamTokenTTL)
	}
	if c.TokenRatePerMinute <= 0 {
		return fmt.Errorf("TOKEN_RATE_PER_MINUTE must be positive, got %d", c.TokenRatePerMinute)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LOG_LEVEL.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}

// StreamConfigured reports whether video tokens can be issued.
func (c *Config) StreamConfigured() bool {
	return c.StreamAPIKey != "" && c.StreamAPISecret != ""
}
