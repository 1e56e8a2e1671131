package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorMapRepository remembers counterparty-to-account classifications in
// PostgreSQL. The map feeds hints into later model calls.
type VendorMapRepository struct {
	pool *pgxpool.Pool
}

// NewVendorMapRepository creates a new PostgreSQL vendor map repository
func NewVendorMapRepository(pool *pgxpool.Pool) *VendorMapRepository {
	return &VendorMapRepository{pool: pool}
}

// Hint returns the remembered account for a counterparty, or "" if none.
func (r *VendorMapRepository) Hint(ctx context.Context, counterparty string) (string, error) {
	var account string
	err := r.pool.QueryRow(ctx,
		`SELECT account FROM vendor_accounts WHERE counterparty = $1`,
		counterparty,
	).Scan(&account)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up vendor account: %w", err)
	}
	return account, nil
}

// Confirm upserts the mapping. A counterparty that classifies differently
// over time converges on its latest confirmed account.
func (r *VendorMapRepository) Confirm(ctx context.Context, counterparty, account string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO vendor_accounts (counterparty, account, confirmations, updated_at)
		 VALUES ($1, $2, 1, $3)
		 ON CONFLICT (counterparty) DO UPDATE
		 SET account = EXCLUDED.account,
		     confirmations = vendor_accounts.confirmations + 1,
		     updated_at = EXCLUDED.updated_at`,
		counterparty, account, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to confirm vendor account: %w", err)
	}
	return nil
}
