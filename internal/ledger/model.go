// Package ledger holds the general ledger domain: the chart of accounts and
// balanced double-entry journal entries. The chart is read-only from the
// pipeline's perspective; journal entries are append-only.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/midwestsb/autobooks/pkg/money"
)

// RootType is the root classification of a chart-of-accounts node.
type RootType string

const (
	RootAsset     RootType = "Asset"
	RootLiability RootType = "Liability"
	RootIncome    RootType = "Income"
	RootExpense   RootType = "Expense"
	RootEquity    RootType = "Equity"
)

// IsValid reports whether the root type is one of the five known roots.
func (r RootType) IsValid() bool {
	switch r {
	case RootAsset, RootLiability, RootIncome, RootExpense, RootEquity:
		return true
	}
	return false
}

// Account is a chart-of-accounts node. Journal lines may only reference
// leaf accounts (IsGroup == false).
type Account struct {
	Name          string
	RootType      RootType
	ParentAccount string
	IsGroup       bool
}

// Line is one side of a journal entry. Exactly one of Debit or Credit is
// non-zero, and both are non-negative.
type Line struct {
	Account string
	Debit   money.Cents
	Credit  money.Cents
}

// JournalEntry is a balanced double-entry posting.
type JournalEntry struct {
	ID          uuid.UUID
	PostingDate time.Time
	// ReferenceName links the entry back to the source bank transaction.
	ReferenceName string
	// ReferenceDate is the original transaction date.
	ReferenceDate time.Time
	Memo          string
	Lines         []Line
	CreatedAt     time.Time
}

// Validate checks structural entry invariants: at least two lines, all
// amounts non-negative, no zero-value lines, and total debits equal total
// credits.
func (e *JournalEntry) Validate() error {
	if len(e.Lines) < 2 {
		return ErrTooFewLines
	}

	var debits, credits money.Cents
	for _, l := range e.Lines {
		if l.Account == "" {
			return ErrMissingAccount
		}
		if l.Debit < 0 || l.Credit < 0 {
			return ErrNegativeAmount
		}
		if l.Debit != 0 && l.Credit != 0 {
			return ErrTwoSidedLine
		}
		if l.Debit == 0 && l.Credit == 0 {
			return ErrZeroAmount
		}
		debits += l.Debit
		credits += l.Credit
	}

	if debits != credits {
		return ErrNotBalanced
	}
	return nil
}

// Total returns the entry's total debit amount (equal to total credit for a
// valid entry).
func (e *JournalEntry) Total() money.Cents {
	var debits money.Cents
	for _, l := range e.Lines {
		debits += l.Debit
	}
	return debits
}
