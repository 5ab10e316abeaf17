package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration for the console and the
// mock API server.
type Config struct {
	// API configuration (console side)
	API APIConfig

	// Session configuration
	Session SessionConfig

	// Export configuration
	Export ExportConfig

	// Logging configuration
	Logging LoggingConfig

	// Mock API server configuration
	MockAPI MockAPIConfig

	// Application metadata
	App AppConfig
}

// APIConfig holds remote API client configuration.
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	PageSize       int
	StatsInterval  time.Duration // dashboard poll interval
}

// SessionConfig holds session persistence configuration.
type SessionConfig struct {
	FilePath string
}

// ExportConfig holds spreadsheet export configuration.
type ExportConfig struct {
	Directory string
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	File   string // log destination; stdout is reserved for the TUI
}

// MockAPIConfig holds configuration for the local development server.
type MockAPIConfig struct {
	Port            string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	RateLimit       RateLimitConfig
}

// RateLimitConfig holds rate limiting configuration for the mock API.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	AuthRPS           float64 // Stricter limit for auth endpoints
	AuthBurst         int
}

// AppConfig holds application metadata.
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnvOrDefault("API_BASE_URL", "http://localhost:8080/api"),
			RequestTimeout: getDurationOrDefault("API_REQUEST_TIMEOUT", 15*time.Second),
			PageSize:       getIntOrDefault("API_PAGE_SIZE", 10),
			StatsInterval:  getDurationOrDefault("DASHBOARD_STATS_INTERVAL", 30*time.Second),
		},
		Session: SessionConfig{
			FilePath: getEnvOrDefault("SESSION_FILE", defaultSessionPath()),
		},
		Export: ExportConfig{
			Directory: getEnvOrDefault("EXPORT_DIR", "."),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
		MockAPI: MockAPIConfig{
			Port:            getEnvOrDefault("MOCKAPI_PORT", ":8080"),
			JWTSecret:       getEnvOrDefault("MOCKAPI_JWT_SECRET", "local-development-secret"),
			TokenTTL:        getDurationOrDefault("MOCKAPI_TOKEN_TTL", 1*time.Hour),
			ShutdownTimeout: getDurationOrDefault("MOCKAPI_SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimit: RateLimitConfig{
				Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
				RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 50),
				BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 100),
				AuthRPS:           getFloatOrDefault("RATE_LIMIT_AUTH_RPS", 2),
				AuthBurst:         getIntOrDefault("RATE_LIMIT_AUTH_BURST", 5),
			},
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "merchant-support-console"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []string

	if c.API.BaseURL == "" {
		errs = append(errs, "API_BASE_URL is required")
	} else if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, "API_BASE_URL must be an http(s) URL")
	}
	if c.API.PageSize < 1 {
		errs = append(errs, "API_PAGE_SIZE must be at least 1")
	}
	if c.API.StatsInterval < time.Second {
		errs = append(errs, "DASHBOARD_STATS_INTERVAL must be at least 1s")
	}
	if c.Session.FilePath == "" {
		errs = append(errs, "SESSION_FILE could not be determined")
	}
	if c.App.Environment == "production" && c.MockAPI.JWTSecret == "local-development-secret" {
		errs = append(errs, "MOCKAPI_JWT_SECRET must be set in production")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// String returns a loggable summary with the JWT secret redacted.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{API: %s, PageSize: %d, StatsInterval: %s, Session: %s, Export: %s, MockAPI: %s, JWTSecret: [REDACTED], Env: %s}",
		c.API.BaseURL, c.API.PageSize, c.API.StatsInterval,
		c.Session.FilePath, c.Export.Directory, c.MockAPI.Port, c.App.Environment,
	)
}

// defaultSessionPath places the session file under the user config
// directory, standing in for the browser console's localStorage.
func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".merchant-support-session.json")
	}
	return filepath.Join(dir, "merchant-support-console", "session.json")
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
