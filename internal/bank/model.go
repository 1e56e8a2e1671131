// Package bank defines the bank transaction domain: raw transaction records
// pulled from the banking feed, their classification lifecycle, and the
// repository port the pipeline uses to read and update them.
package bank

import (
	"time"

	"github.com/midwestsb/autobooks/pkg/money"
)

// Status is the classification lifecycle state of a transaction.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessed  Status = "Processed"
	StatusError      Status = "Error"
	StatusRetryError Status = "RetryError"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusError, StatusRetryError:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the normal pipeline flow.
// RetryError transactions stay terminal until re-driven manually.
func (s Status) IsTerminal() bool {
	return s == StatusProcessed || s == StatusRetryError
}

// NextOnFailure returns the status a transaction moves to when posting fails.
// A first failure yields Error; failing again during a retry yields RetryError.
func (s Status) NextOnFailure() Status {
	if s == StatusError {
		return StatusRetryError
	}
	return StatusError
}

// TransferKind distinguishes movements between the company's own accounts
// from external flows.
type TransferKind string

const (
	KindInternalTransfer TransferKind = "internalTransfer"
	KindExternal         TransferKind = "external"
)

// UpstreamStatusSent marks transactions the banking provider has settled
// and released to the feed. Only these are eligible for classification.
const UpstreamStatusSent = "sent"

// Transaction is one raw bank transaction record.
// Records are append-only: the pipeline mutates status and audit fields
// but never deletes a row.
type Transaction struct {
	// Name is the unique external identifier from the banking feed.
	Name string
	// Amount is signed: positive means money entering the owning account.
	Amount    money.Cents
	CreatedAt time.Time
	// Counterparty is the nickname of the other side, e.g. "MSB_OPERATING"
	// for internal transfers or a vendor name for external flows.
	Counterparty string
	Kind         TransferKind
	// AccountNickname names the company bank account that owns this record.
	AccountNickname string
	UpstreamStatus  string
	Status          Status
	// ErrorDescription holds the last posting failure, fed back into the
	// retry prompt.
	ErrorDescription string
	// AIResult is a human-readable summary of the last AI classification.
	AIResult string
	// Recommended holds the last AI-recommended entry lines for audit.
	Recommended []RecommendedEntry
}

// RecommendedEntry is one audit line of an AI classification attempt,
// retained on the transaction for traceability and retry context.
type RecommendedEntry struct {
	DebitAccount  string      `json:"debit_account"`
	CreditAccount string      `json:"credit_account"`
	Amount        money.Cents `json:"amount"`
	Memo          string      `json:"memo"`
	Confidence    float64     `json:"confidence"`
}

// IsInflow reports whether money entered the owning account.
func (t *Transaction) IsInflow() bool {
	return t.Amount.IsPositive()
}
