// Package pipeline orchestrates the classification pass: pull settled bank
// transactions, resolve what the rules can, send the rest to the model in
// batches, and post balanced journal entries for everything that clears the
// confidence floor.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/midwestsb/autobooks/internal/bank"
	"github.com/midwestsb/autobooks/internal/classify"
	"github.com/midwestsb/autobooks/internal/llm"
	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
	"github.com/midwestsb/autobooks/pkg/logger"
)

// Summary reports what one pass did.
type Summary struct {
	// Scanned is how many transactions reached the posting stage.
	Scanned int
	Posted  int
	Failed  int
	// Skipped transactions never reached posting, usually because a model
	// call failed. They keep their status and are picked up next pass.
	Skipped int
}

func (s *Summary) add(o Summary) {
	s.Scanned += o.Scanned
	s.Posted += o.Posted
	s.Failed += o.Failed
	s.Skipped += o.Skipped
}

// Service runs classification passes. Passes are serialized: a second Run
// while one is in flight is rejected rather than queued.
type Service struct {
	cfg      Config
	repo     bank.Repository
	rules    *classify.RuleClassifier
	ai       AIClassifier
	ledger   LedgerPoster
	hints    VendorHints
	progress ProgressSink
	log      *logger.Logger

	mu sync.Mutex
}

// NewService wires a pipeline service. hints and progress may be nil.
func NewService(
	cfg Config,
	repo bank.Repository,
	ai AIClassifier,
	poster LedgerPoster,
	hints VendorHints,
	progress ProgressSink,
	log *logger.Logger,
) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		cfg:      cfg,
		repo:     repo,
		rules:    classify.NewRuleClassifier(),
		ai:       ai,
		ledger:   poster,
		hints:    hints,
		progress: progress,
		log:      log.WithField("service", "pipeline"),
	}, nil
}

// Run executes one pass over Pending transactions.
func (s *Service) Run(ctx context.Context) (Summary, error) {
	return s.pass(ctx, bank.StatusPending)
}

// Retry executes one pass over Error transactions. Failures in this pass
// move transactions to RetryError, which the pipeline never picks up again.
func (s *Service) Retry(ctx context.Context) (Summary, error) {
	return s.pass(ctx, bank.StatusError)
}

func (s *Service) pass(ctx context.Context, status bank.Status) (Summary, error) {
	if !s.mu.TryLock() {
		return Summary{}, apperrors.Validation("a classification pass is already running")
	}
	defer s.mu.Unlock()

	retry := status == bank.StatusError
	start := time.Now()

	accounts := classify.InternalAccounts()
	batches := make([][]*bank.Transaction, len(accounts))
	total := 0
	for i, acc := range accounts {
		txs, err := s.repo.List(ctx, bank.Filter{
			Status:          status,
			AccountNickname: acc.Nickname,
			UpstreamStatus:  s.cfg.UpstreamStatus,
		}, s.cfg.PendingLimit)
		if err != nil {
			return Summary{}, apperrors.Database("failed to list transactions", err)
		}
		batches[i] = txs
		total += len(txs)
	}

	s.log.WithField("status", status).WithField("total", total).Info("classification pass started")
	s.publish(ctx, 0, total, false)

	var sum Summary
	processed := 0
	for i, acc := range accounts {
		if len(batches[i]) == 0 {
			continue
		}
		result := s.rules.ClassifyBatch(acc, batches[i])

		sum.add(s.postResolved(ctx, result.Resolved))
		processed += len(result.Resolved)
		s.publish(ctx, processed, total, false)

		sum.add(s.classifyAndPost(ctx, result.UnclassifiedExpenses, sideExpense, retry, &processed, total))
		sum.add(s.classifyAndPost(ctx, result.UnclassifiedRevenues, sideRevenue, retry, &processed, total))
	}

	s.publish(ctx, total, total, true)
	s.log.WithField("status", status).
		WithField("posted", sum.Posted).
		WithField("failed", sum.Failed).
		WithField("skipped", sum.Skipped).
		WithDuration(time.Since(start)).
		Info("classification pass finished")
	return sum, nil
}

// classifyAndPost sends partials to the model in batches and posts the
// merged results. A failed model call skips its batch; the transactions
// keep their current status for the next pass.
func (s *Service) classifyAndPost(
	ctx context.Context,
	partials []classify.Classified,
	side entrySide,
	retry bool,
	processed *int,
	total int,
) Summary {
	var sum Summary
	for start := 0; start < len(partials); start += s.cfg.BatchSize {
		end := start + s.cfg.BatchSize
		if end > len(partials) {
			end = len(partials)
		}
		chunk := partials[start:end]

		reqs := s.buildRequests(ctx, chunk, retry)
		results, err := s.classifyChunk(ctx, reqs, side)
		if err != nil {
			s.log.WithError(err).WithField("batch_size", len(chunk)).
				Warn("model call failed, batch deferred to next pass")
			sum.Skipped += len(chunk)
			*processed += len(chunk)
			s.publish(ctx, *processed, total, false)
			continue
		}

		var merged []classify.Classified
		if side == sideExpense {
			merged = classify.MergeExpenses(chunk, results)
		} else {
			merged = classify.MergeRevenues(chunk, results)
		}

		sum.add(s.postMerged(ctx, merged, side))
		*processed += len(chunk)
		s.publish(ctx, *processed, total, false)
	}
	return sum
}

func (s *Service) classifyChunk(ctx context.Context, reqs []llm.Request, side entrySide) ([]classify.AIResult, error) {
	if side == sideExpense {
		return s.ai.ClassifyExpenses(ctx, reqs)
	}
	return s.ai.ClassifyRevenues(ctx, reqs)
}

func (s *Service) buildRequests(ctx context.Context, chunk []classify.Classified, retry bool) []llm.Request {
	reqs := make([]llm.Request, 0, len(chunk))
	for i := range chunk {
		req := llm.Request{Classified: &chunk[i], Retry: retry}
		tx := chunk[i].Transaction
		if s.hints != nil && tx.Kind == bank.KindExternal && tx.Counterparty != "" {
			hint, err := s.hints.Hint(ctx, tx.Counterparty)
			if err != nil {
				s.log.WithError(err).WithField("counterparty", tx.Counterparty).
					Debug("vendor hint lookup failed")
			} else {
				req.VendorHint = hint
			}
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// RunScheduled blocks, scanning on the configured interval and running a
// pass whenever enough transactions are pending. It returns when ctx is
// cancelled.
func (s *Service) RunScheduled(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	s.log.WithField("interval", s.cfg.PollInterval).
		WithField("threshold", s.cfg.MinPendingForAuto).
		Info("scheduled classification started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduled classification stopped")
			return nil
		case <-ticker.C:
			pending, err := s.repo.CountByStatus(ctx, bank.StatusPending)
			if err != nil {
				s.log.WithError(err).Error("failed to count pending transactions")
				continue
			}
			if pending < s.cfg.MinPendingForAuto {
				continue
			}
			if _, err := s.Run(ctx); err != nil {
				s.log.WithError(err).Error("scheduled pass failed")
			}
		}
	}
}

// publish is best effort.
func (s *Service) publish(ctx context.Context, processed, total int, complete bool) {
	if s.progress == nil {
		return
	}
	p := Progress{Processed: processed, Total: total, Complete: complete}
	if total > 0 {
		p.Percent = float64(processed) / float64(total) * 100
	} else if complete {
		p.Percent = 100
	}
	if err := s.progress.Publish(ctx, p); err != nil {
		s.log.WithError(err).Debug("progress publish failed")
	}
}
