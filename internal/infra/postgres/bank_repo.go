package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/midwestsb/autobooks/internal/bank"
)

// BankRepository implements the transaction store against PostgreSQL.
type BankRepository struct {
	pool *pgxpool.Pool
}

// NewBankRepository creates a new PostgreSQL bank transaction repository
func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return &BankRepository{pool: pool}
}

const txColumns = `name, amount_cents, created_at, counterparty, kind,
	account_nickname, upstream_status, status, error_description, ai_result, recommended`

// List returns up to limit transactions matching the filter, oldest first.
// Zero-valued filter fields are not applied.
func (r *BankRepository) List(ctx context.Context, f bank.Filter, limit int) ([]*bank.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM bank_transactions WHERE 1=1`, txColumns)
	args := []any{}
	idx := 1

	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, string(f.Status))
		idx++
	}
	if f.AccountNickname != "" {
		query += fmt.Sprintf(" AND account_nickname = $%d", idx)
		args = append(args, f.AccountNickname)
		idx++
	}
	if f.UpstreamStatus != "" {
		query += fmt.Sprintf(" AND upstream_status = $%d", idx)
		args = append(args, f.UpstreamStatus)
		idx++
	}
	query += fmt.Sprintf(" ORDER BY created_at ASC LIMIT $%d", idx)
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*bank.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transaction rows: %w", err)
	}
	return txs, nil
}

// Get returns the transaction with the given external name.
func (r *BankRepository) Get(ctx context.Context, name string) (*bank.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM bank_transactions WHERE name = $1`, txColumns)

	row := r.pool.QueryRow(ctx, query, name)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bank.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// CountByStatus returns how many transactions are in the given status.
func (r *BankRepository) CountByStatus(ctx context.Context, status bank.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bank_transactions WHERE status = $1 AND upstream_status = $2`,
		string(status), bank.UpstreamStatusSent,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// UpdateStatus transitions a transaction and records the error description.
func (r *BankRepository) UpdateStatus(ctx context.Context, name string, status bank.Status, errDescription string) error {
	if !status.IsValid() {
		return bank.ErrInvalidStatus
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE bank_transactions
		 SET status = $1, error_description = $2, updated_at = $3
		 WHERE name = $4`,
		string(status), errDescription, time.Now(), name,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bank.ErrTransactionNotFound
	}
	return nil
}

// SaveRecommendation stores the AI audit trail on a transaction.
func (r *BankRepository) SaveRecommendation(ctx context.Context, name string, aiResult string, entries []bank.RecommendedEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal recommended entries: %w", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE bank_transactions
		 SET ai_result = $1, recommended = $2, updated_at = $3
		 WHERE name = $4`,
		aiResult, payload, time.Now(), name,
	)
	if err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return bank.ErrTransactionNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*bank.Transaction, error) {
	var tx bank.Transaction
	var recommendedJSON []byte

	err := row.Scan(
		&tx.Name,
		&tx.Amount,
		&tx.CreatedAt,
		&tx.Counterparty,
		&tx.Kind,
		&tx.AccountNickname,
		&tx.UpstreamStatus,
		&tx.Status,
		&tx.ErrorDescription,
		&tx.AIResult,
		&recommendedJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	if len(recommendedJSON) > 0 {
		if err := json.Unmarshal(recommendedJSON, &tx.Recommended); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recommended entries: %w", err)
		}
	}
	return &tx, nil
}
