package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/midwestsb/autobooks/internal/bank"
	"github.com/midwestsb/autobooks/internal/classify"
	"github.com/midwestsb/autobooks/internal/ledger"
	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
)

// entrySide tells the poster which side of a merged entry the model chose,
// so vendor confirmations record the right account.
type entrySide int

const (
	sideExpense entrySide = iota
	sideRevenue
)

// postResolved commits rule-derived entries. These carry confidence 1.0 and
// need no audit trail.
func (s *Service) postResolved(ctx context.Context, batch []classify.Classified) Summary {
	var sum Summary
	for _, c := range batch {
		sum.Scanned++
		if err := s.postOne(ctx, c); err != nil {
			s.fail(ctx, c.Transaction, err)
			sum.Failed++
			continue
		}
		s.succeed(ctx, c.Transaction)
		sum.Posted++
	}
	return sum
}

// postMerged commits AI-merged entries. The audit trail is saved before the
// posting attempt so a failed post still records what the model proposed.
func (s *Service) postMerged(ctx context.Context, batch []classify.Classified, side entrySide) Summary {
	var sum Summary
	for _, c := range batch {
		sum.Scanned++
		tx := c.Transaction

		if err := s.saveAudit(ctx, c); err != nil {
			s.log.WithError(err).WithField("transaction", tx.Name).
				Warn("failed to save classification audit trail")
		}

		if err := s.postOne(ctx, c); err != nil {
			s.fail(ctx, tx, err)
			sum.Failed++
			continue
		}
		s.succeed(ctx, tx)
		s.confirmHint(ctx, c, side)
		sum.Posted++
	}
	return sum
}

// postOne expands each draft line into a balanced two-line journal entry
// and commits them in order. Lines below the confidence floor block the
// whole transaction before anything is posted.
func (s *Service) postOne(ctx context.Context, c classify.Classified) error {
	tx := c.Transaction
	if len(c.Lines) == 0 {
		return apperrors.Validation(fmt.Sprintf("transaction %q produced no entry lines", tx.Name))
	}
	for _, line := range c.Lines {
		if line.Confidence < s.cfg.ConfidenceFloor {
			return apperrors.LowConfidence(line.Confidence, s.cfg.ConfidenceFloor)
		}
	}

	now := time.Now()
	for _, line := range c.Lines {
		entry := &ledger.JournalEntry{
			PostingDate:   now,
			ReferenceName: tx.Name,
			ReferenceDate: tx.CreatedAt,
			Memo:          line.Memo,
			Lines: []ledger.Line{
				{Account: line.DebitAccount, Debit: line.Amount},
				{Account: line.CreditAccount, Credit: line.Amount},
			},
		}
		if _, err := s.ledger.PostEntry(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) succeed(ctx context.Context, tx *bank.Transaction) {
	if err := s.repo.UpdateStatus(ctx, tx.Name, bank.StatusProcessed, ""); err != nil {
		s.log.WithError(err).WithField("transaction", tx.Name).
			Error("failed to mark transaction processed")
		return
	}
	tx.Status = bank.StatusProcessed
}

// fail moves the transaction one step down the failure ladder and records
// the error for the retry prompt.
func (s *Service) fail(ctx context.Context, tx *bank.Transaction, cause error) {
	next := tx.Status.NextOnFailure()
	s.log.WithError(cause).
		WithField("transaction", tx.Name).
		WithField("status", next).
		Warn("transaction failed to post")

	if err := s.repo.UpdateStatus(ctx, tx.Name, next, cause.Error()); err != nil {
		s.log.WithError(err).WithField("transaction", tx.Name).
			Error("failed to record posting failure")
		return
	}
	tx.Status = next
	tx.ErrorDescription = cause.Error()
}

// saveAudit persists the model's proposal on the transaction regardless of
// whether posting succeeds.
func (s *Service) saveAudit(ctx context.Context, c classify.Classified) error {
	entries := make([]bank.RecommendedEntry, 0, len(c.Lines))
	for _, line := range c.Lines {
		entries = append(entries, bank.RecommendedEntry{
			DebitAccount:  line.DebitAccount,
			CreditAccount: line.CreditAccount,
			Amount:        line.Amount,
			Memo:          line.Memo,
			Confidence:    line.Confidence,
		})
	}
	summary := summarizeLines(c.Lines)
	c.Transaction.AIResult = summary
	c.Transaction.Recommended = entries
	return s.repo.SaveRecommendation(ctx, c.Transaction.Name, summary, entries)
}

// summarizeLines renders a human-readable one-liner of the proposal, stored
// on the transaction and echoed back to the model on retry.
func summarizeLines(lines []classify.DraftLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		p := fmt.Sprintf("debit %s / credit %s %s (%.2f)",
			l.DebitAccount, l.CreditAccount, l.Amount.String(), l.Confidence)
		if l.Memo != "" {
			p += ": " + l.Memo
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, "; ")
}

// confirmHint records the model's account choice for this counterparty so
// later passes can bias toward it. External transactions only; internal
// transfers never reach the model.
func (s *Service) confirmHint(ctx context.Context, c classify.Classified, side entrySide) {
	if s.hints == nil {
		return
	}
	tx := c.Transaction
	if tx.Kind != bank.KindExternal || tx.Counterparty == "" || len(c.Lines) == 0 {
		return
	}
	account := c.Lines[0].DebitAccount
	if side == sideRevenue {
		account = c.Lines[0].CreditAccount
	}
	if err := s.hints.Confirm(ctx, tx.Counterparty, account); err != nil {
		s.log.WithError(err).WithField("counterparty", tx.Counterparty).
			Warn("failed to confirm vendor hint")
	}
}
