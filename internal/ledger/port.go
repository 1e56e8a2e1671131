package ledger

import "context"

// Repository defines the interface for ledger persistence operations
type Repository interface {
	// GetAccount returns the chart node with the given name, or
	// ErrAccountNotFound.
	GetAccount(ctx context.Context, name string) (*Account, error)

	// ListLeafAccounts returns all non-group accounts whose root type is in
	// roots; an empty roots slice means all leaf accounts.
	ListLeafAccounts(ctx context.Context, roots []RootType) ([]*Account, error)

	// InsertEntry atomically persists an entry and all of its lines.
	InsertEntry(ctx context.Context, entry *JournalEntry) error
}
