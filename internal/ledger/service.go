package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
	"github.com/midwestsb/autobooks/pkg/logger"
)

// Service posts balanced journal entries against the general ledger.
//
// Posting steps:
// 1. Validate the entry structurally (balance, positive amounts)
// 2. Resolve every referenced account against the chart of accounts
// 3. Commit the entry atomically via the repository
type Service struct {
	repo   Repository
	logger *logger.Logger
}

// NewService creates a new ledger service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log.WithField("service", "ledger"),
	}
}

// PostEntry validates and commits one journal entry, returning its ID.
// The ledger rejects the whole entry on any validation failure; there is no
// partial posting of lines.
func (s *Service) PostEntry(ctx context.Context, entry *JournalEntry) (uuid.UUID, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if entry.PostingDate.IsZero() {
		entry.PostingDate = time.Now()
	}

	if err := entry.Validate(); err != nil {
		return uuid.Nil, apperrors.Wrap(err, apperrors.ErrCodeUnbalanced,
			fmt.Sprintf("journal entry for %q rejected", entry.ReferenceName))
	}

	for _, line := range entry.Lines {
		account, err := s.repo.GetAccount(ctx, line.Account)
		if err != nil {
			return uuid.Nil, apperrors.Wrap(err, apperrors.ErrCodeLedgerPosting,
				fmt.Sprintf("account %q does not exist in the chart of accounts", line.Account))
		}
		if account.IsGroup {
			return uuid.Nil, apperrors.Wrap(ErrGroupAccount, apperrors.ErrCodeLedgerPosting,
				fmt.Sprintf("account %q is a group node", line.Account))
		}
	}

	if err := s.repo.InsertEntry(ctx, entry); err != nil {
		return uuid.Nil, apperrors.Wrap(err, apperrors.ErrCodeLedgerPosting,
			fmt.Sprintf("failed to persist journal entry for %q", entry.ReferenceName))
	}

	s.logger.Debug("journal entry posted",
		"entry_id", entry.ID,
		"reference", entry.ReferenceName,
		"amount", entry.Total().String())

	return entry.ID, nil
}

// ChartExcerpt returns the leaf accounts for the given roots, used to build
// the LLM prompt's chart-of-accounts excerpt.
func (s *Service) ChartExcerpt(ctx context.Context, roots []RootType) ([]*Account, error) {
	accounts, err := s.repo.ListLeafAccounts(ctx, roots)
	if err != nil {
		return nil, apperrors.Database("failed to list chart of accounts", err)
	}
	return accounts, nil
}
