package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port string
	Env  string

	// Database configuration
	DatabaseURL string

	// Redis configuration
	RedisURL      string
	RedisPassword string

	// ProgressChannel is the Redis pub/sub channel for batch progress events
	ProgressChannel string

	// Gemini API configuration
	GeminiAPIKey string

	// ModelDefault is the model used for first-pass classification
	ModelDefault string
	// ModelRetry is the stronger model used when reprocessing failed transactions
	ModelRetry string

	// PendingLimit caps how many transactions are fetched per account per run
	PendingLimit int
	// BatchSize caps how many transactions go into a single LLM request
	BatchSize int
	// ConfidenceFloor is the minimum classification confidence required to post
	ConfidenceFloor float64

	// PollInterval is how often serve mode checks for pending work
	PollInterval time.Duration
	// MinPendingForAuto is the pending-transaction count that triggers a scheduled run
	MinPendingForAuto int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		ProgressChannel:   getEnv("PROGRESS_CHANNEL", "transaction_processing_update"),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		ModelDefault:      getEnv("MODEL_DEFAULT", "gemini-2.0-flash"),
		ModelRetry:        getEnv("MODEL_RETRY", "gemini-2.5-pro"),
		PendingLimit:      getEnvAsInt("PENDING_LIMIT", 500),
		BatchSize:         getEnvAsInt("BATCH_SIZE", 10),
		ConfidenceFloor:   getEnvAsFloat("CONFIDENCE_FLOOR", 0.5),
		PollInterval:      getEnvAsDuration("POLL_INTERVAL", 5*time.Minute),
		MinPendingForAuto: getEnvAsInt("MIN_PENDING_FOR_AUTO", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		return fmt.Errorf("CONFIDENCE_FLOOR must be between 0 and 1")
	}

	if c.PendingLimit <= 0 {
		return fmt.Errorf("PENDING_LIMIT must be positive")
	}

	if c.BatchSize <= 0 || c.BatchSize > 500 {
		return fmt.Errorf("BATCH_SIZE must be between 1 and 500")
	}

	// The Gemini key is required in production but optional in development,
	// where the rule classifier can still run on its own.
	if c.GeminiAPIKey == "" && c.IsProduction() {
		return fmt.Errorf("GEMINI_API_KEY is required in production")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat gets an environment variable as a float with a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
