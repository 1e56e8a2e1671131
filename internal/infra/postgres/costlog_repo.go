package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/midwestsb/autobooks/internal/llm"
)

// CostLogRepository appends model usage records to PostgreSQL.
type CostLogRepository struct {
	pool *pgxpool.Pool
}

// NewCostLogRepository creates a new PostgreSQL cost log repository
func NewCostLogRepository(pool *pgxpool.Pool) *CostLogRepository {
	return &CostLogRepository{pool: pool}
}

// Append writes one usage record. Records are append-only.
func (r *CostLogRepository) Append(ctx context.Context, rec llm.Record) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO ai_cost_log (date, model, tokens_in, tokens_out, cost, input, output, duration_ms, actor)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.Date,
		rec.Model,
		rec.TokensIn,
		rec.TokensOut,
		rec.Cost,
		rec.Input,
		rec.Output,
		rec.Duration.Milliseconds(),
		rec.Actor,
	)
	if err != nil {
		return fmt.Errorf("failed to append cost record: %w", err)
	}
	return nil
}
