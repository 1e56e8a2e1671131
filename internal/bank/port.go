package bank

import "context"

// Filter selects transactions for a pipeline pass.
type Filter struct {
	Status          Status
	AccountNickname string
	UpstreamStatus  string
}

// Repository defines the transaction store operations the pipeline needs.
type Repository interface {
	// List returns up to limit transactions matching the filter,
	// oldest first.
	List(ctx context.Context, f Filter, limit int) ([]*Transaction, error)

	// Get returns the transaction with the given external name.
	Get(ctx context.Context, name string) (*Transaction, error)

	// CountByStatus returns how many transactions are in the given status.
	CountByStatus(ctx context.Context, status Status) (int, error)

	// UpdateStatus transitions a transaction and records the error
	// description (empty on success).
	UpdateStatus(ctx context.Context, name string, status Status, errDescription string) error

	// SaveRecommendation stores the AI audit trail on a transaction before
	// posting is attempted.
	SaveRecommendation(ctx context.Context, name string, aiResult string, entries []RecommendedEntry) error
}
