package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/autobooks")
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		validEnv(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "gemini-2.0-flash", cfg.ModelDefault)
		assert.Equal(t, "gemini-2.5-pro", cfg.ModelRetry)
		assert.Equal(t, 500, cfg.PendingLimit)
		assert.Equal(t, 10, cfg.BatchSize)
		assert.InDelta(t, 0.5, cfg.ConfidenceFloor, 1e-9)
		assert.Equal(t, 5*time.Minute, cfg.PollInterval)
		assert.Equal(t, 100, cfg.MinPendingForAuto)
	})

	t.Run("overrides", func(t *testing.T) {
		validEnv(t)
		t.Setenv("BATCH_SIZE", "25")
		t.Setenv("CONFIDENCE_FLOOR", "0.75")
		t.Setenv("POLL_INTERVAL", "30s")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 25, cfg.BatchSize)
		assert.InDelta(t, 0.75, cfg.ConfidenceFloor, 1e-9)
		assert.Equal(t, 30*time.Second, cfg.PollInterval)
	})

	t.Run("requires database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("rejects out-of-range confidence floor", func(t *testing.T) {
		validEnv(t)
		t.Setenv("CONFIDENCE_FLOOR", "1.2")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "CONFIDENCE_FLOOR")
	})

	t.Run("gemini key optional in development", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/autobooks")
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("ENV", "development")

		_, err := Load()

		require.NoError(t, err)
	})

	t.Run("gemini key required in production", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/autobooks")
		t.Setenv("GEMINI_API_KEY", "")
		t.Setenv("ENV", "production")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})
}
