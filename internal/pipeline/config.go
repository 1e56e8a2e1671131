package pipeline

import (
	"time"

	"github.com/midwestsb/autobooks/internal/bank"
	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
)

// Config controls one classification pipeline instance.
type Config struct {
	// PendingLimit caps how many transactions one pass pulls per bank
	// account.
	PendingLimit int
	// BatchSize is how many unresolved transactions go to the model per
	// call.
	BatchSize int
	// ConfidenceFloor blocks posting of any entry line below it.
	ConfidenceFloor float64
	// UpstreamStatus restricts classification to settled transactions.
	UpstreamStatus string
	// PollInterval is the scheduled-mode scan cadence.
	PollInterval time.Duration
	// MinPendingForAuto is the pending-transaction threshold that triggers
	// an automatic pass in scheduled mode.
	MinPendingForAuto int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		PendingLimit:      500,
		BatchSize:         10,
		ConfidenceFloor:   0.5,
		UpstreamStatus:    bank.UpstreamStatusSent,
		PollInterval:      5 * time.Minute,
		MinPendingForAuto: 100,
	}
}

// Validate rejects configurations that would stall or spam the pipeline.
func (c Config) Validate() error {
	if c.PendingLimit <= 0 {
		return apperrors.Configuration("pending limit must be positive")
	}
	if c.BatchSize <= 0 || c.BatchSize > 500 {
		return apperrors.Configuration("batch size must be between 1 and 500")
	}
	if c.ConfidenceFloor < 0 || c.ConfidenceFloor > 1 {
		return apperrors.Configuration("confidence floor must be between 0 and 1")
	}
	if c.PollInterval <= 0 {
		return apperrors.Configuration("poll interval must be positive")
	}
	if c.MinPendingForAuto < 0 {
		return apperrors.Configuration("auto-run threshold cannot be negative")
	}
	return nil
}
