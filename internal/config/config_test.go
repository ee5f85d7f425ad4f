package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careervoice")
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")

	cfg, err := NewServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, "*", cfg.AllowedOrigin)
}

func TestNewServerConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewServerConfig_CustomValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careervoice")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := NewServerConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
}

func TestNewServerConfig_InvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careervoice")

	for _, port := range []string{"0", "-1", "70000", "abc"} {
		t.Setenv("PORT", port)
		_, err := NewServerConfig()
		assert.Error(t, err, "port %q", port)
	}
}

func TestNewServerConfig_InvalidRateLimit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/careervoice")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")

	_, err := NewServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_PER_MINUTE")
}
