package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/midwestsb/autobooks/internal/ledger"
)

// LedgerRepository implements the ledger store against PostgreSQL.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// GetAccount retrieves a chart-of-accounts node by name.
func (r *LedgerRepository) GetAccount(ctx context.Context, name string) (*ledger.Account, error) {
	query := `
		SELECT name, root_type, parent_account, is_group
		FROM accounts
		WHERE name = $1
	`

	var account ledger.Account
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&account.Name,
		&account.RootType,
		&account.ParentAccount,
		&account.IsGroup,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// ListLeafAccounts returns the postable accounts under the given roots.
func (r *LedgerRepository) ListLeafAccounts(ctx context.Context, roots []ledger.RootType) ([]*ledger.Account, error) {
	query := `
		SELECT name, root_type, parent_account, is_group
		FROM accounts
		WHERE is_group = FALSE
		ORDER BY root_type, name
	`
	args := []any{}

	// No roots means the whole postable chart.
	if len(roots) > 0 {
		query = `
			SELECT name, root_type, parent_account, is_group
			FROM accounts
			WHERE is_group = FALSE AND root_type = ANY($1)
			ORDER BY root_type, name
		`
		rootNames := make([]string, 0, len(roots))
		for _, root := range roots {
			rootNames = append(rootNames, string(root))
		}
		args = append(args, rootNames)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*ledger.Account
	for rows.Next() {
		var account ledger.Account
		if err := rows.Scan(
			&account.Name,
			&account.RootType,
			&account.ParentAccount,
			&account.IsGroup,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read account rows: %w", err)
	}
	return accounts, nil
}

// InsertEntry persists a journal entry and its lines in one transaction.
// Either the whole entry lands or none of it does.
func (r *LedgerRepository) InsertEntry(ctx context.Context, entry *ledger.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO journal_entries (id, posting_date, reference_name, reference_date, memo, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID,
		entry.PostingDate,
		entry.ReferenceName,
		entry.ReferenceDate,
		entry.Memo,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	for i, line := range entry.Lines {
		_, err = tx.Exec(ctx,
			`INSERT INTO journal_lines (entry_id, line_no, account, debit_cents, credit_cents)
			 VALUES ($1, $2, $3, $4, $5)`,
			entry.ID,
			i,
			line.Account,
			int64(line.Debit),
			int64(line.Credit),
		)
		if err != nil {
			return fmt.Errorf("failed to insert journal line %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit journal entry: %w", err)
	}
	return nil
}
