package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/midwestsb/autobooks/internal/classify"
	"github.com/midwestsb/autobooks/internal/ledger"
	"github.com/midwestsb/autobooks/internal/llm"
)

// AIClassifier resolves the missing side of partial entries. Transactions
// omitted from the result slice stay unresolved.
type AIClassifier interface {
	ClassifyExpenses(ctx context.Context, reqs []llm.Request) ([]classify.AIResult, error)
	ClassifyRevenues(ctx context.Context, reqs []llm.Request) ([]classify.AIResult, error)
}

// LedgerPoster commits balanced journal entries.
type LedgerPoster interface {
	PostEntry(ctx context.Context, entry *ledger.JournalEntry) (uuid.UUID, error)
}

// VendorHints remembers which account a counterparty classified to in the
// past, to bias future model calls.
type VendorHints interface {
	// Hint returns the remembered account for a counterparty, or "" if none.
	Hint(ctx context.Context, counterparty string) (string, error)
	// Confirm records a successful counterparty-to-account classification.
	Confirm(ctx context.Context, counterparty, account string) error
}

// Progress is one pipeline progress event.
type Progress struct {
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
	Complete  bool    `json:"complete"`
}

// ProgressSink delivers progress events to observers. Delivery is best
// effort; a failed publish never fails the pass.
type ProgressSink interface {
	Publish(ctx context.Context, p Progress) error
}
