// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds the settings for the HTTP service.
type ServerConfig struct {
	Port               int
	DatabaseURL        string
	GeminiAPIKey       string // empty disables CV enhancement
	JobsBaseURL        string // empty uses the public job board
	AllowedOrigin      string
	RateLimitPerMinute int
}

// NewServerConfig reads server settings from the environment. PORT defaults
// to 8080 and RATE_LIMIT_PER_MINUTE to 60; DATABASE_URL is required.
func NewServerConfig() (*ServerConfig, error) {
	port, err := envInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	rate, err := envInt("RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Port:               port,
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		JobsBaseURL:        os.Getenv("JOBS_BASE_URL"),
		AllowedOrigin:      envOr("CORS_ALLOWED_ORIGIN", "*"),
		RateLimitPerMinute: rate,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ServerConfig) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be at least 1, got: %d", c.RateLimitPerMinute)
	}
	return nil
}

// Addr returns the listen address in ":port" form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// envOr returns the value of an environment variable or a default when it
// is unset or empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt reads an integer environment variable, returning def when unset.
func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
