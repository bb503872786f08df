package config

import (
	"os"
	"strconv"
	"time"

	"qiming/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Auth     AuthConfig
	Server   ServerConfig
}

// DatabaseConfig selects the storage backend. URL takes precedence: a
// non-empty URL means postgres, otherwise Path selects a sqlite file
// (":memory:" for ephemeral runs).
type DatabaseConfig struct {
	URL  string
	Path string
}

// Driver reports which sqlx driver the configuration resolves to.
func (d DatabaseConfig) Driver() string {
	if d.URL != "" {
		return "postgres"
	}
	return "sqlite"
}

// DSN returns the data source string for the resolved driver.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return d.Path
}

// AIConfig holds the LLM backend settings
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:  os.Getenv("DATABASE_URL"),
			Path: getEnvOrDefault("DATABASE_PATH", "qiming.db"),
		},
		AI: AIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnvOrDefault("AI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloatOrDefault("AI_TEMPERATURE", 0.9),
			MaxTokens:   getEnvIntOrDefault("AI_MAX_TOKENS", 2000),
			Timeout:     getEnvDurationOrDefault("AI_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			Secret:   os.Getenv("AUTH_SECRET"),
			TokenTTL: getEnvDurationOrDefault("AUTH_TOKEN_TTL", 30*24*time.Hour),
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Path == "" {
		return errors.ConfigInvalid("DATABASE_URL or DATABASE_PATH is required")
	}
	if config.Auth.Secret == "" {
		return errors.ConfigInvalid("AUTH_SECRET is required")
	}
	// The API key may be absent: AI generation then degrades at request
	// time rather than blocking startup.
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
