package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 10, cfg.API.PageSize)
	assert.Equal(t, 30*time.Second, cfg.API.StatsInterval)
	assert.NotEmpty(t, cfg.Session.FilePath)
	assert.Equal(t, ":8080", cfg.MockAPI.Port)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://10.0.0.5:9090/api")
	t.Setenv("API_PAGE_SIZE", "25")
	t.Setenv("DASHBOARD_STATS_INTERVAL", "10s")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.5:9090/api", cfg.API.BaseURL)
	assert.Equal(t, 25, cfg.API.PageSize)
	assert.Equal(t, 10*time.Second, cfg.API.StatsInterval)
	assert.False(t, cfg.MockAPI.RateLimit.Enabled)
}

func TestStringRedactsSecrets(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	summary := cfg.String()
	assert.Contains(t, summary, "[REDACTED]")
	assert.NotContains(t, summary, cfg.MockAPI.JWTSecret)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API: APIConfig{
				BaseURL:        "http://localhost:8080/api",
				RequestTimeout: 15 * time.Second,
				PageSize:       10,
				StatsInterval:  30 * time.Second,
			},
			Session: SessionConfig{FilePath: "/tmp/session.json"},
			App:     AppConfig{Environment: "development"},
		}
	}

	t.Run("accepts a complete configuration", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("rejects a non http base URL", func(t *testing.T) {
		cfg := valid()
		cfg.API.BaseURL = "ftp://example.com"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects a zero page size", func(t *testing.T) {
		cfg := valid()
		cfg.API.PageSize = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects a sub second stats interval", func(t *testing.T) {
		cfg := valid()
		cfg.API.StatsInterval = 200 * time.Millisecond
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects the development JWT secret in production", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "production"
		cfg.MockAPI.JWTSecret = "local-development-secret"
		assert.Error(t, cfg.Validate())
	})
}
