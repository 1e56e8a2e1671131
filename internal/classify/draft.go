package classify

import (
	"github.com/midwestsb/autobooks/internal/bank"
	"github.com/midwestsb/autobooks/pkg/money"
)

// DraftLine is one proposed journal movement: debit one account, credit
// another, for a positive amount. A draft line expands into a two-line
// balanced journal entry at posting time.
type DraftLine struct {
	DebitAccount  string
	CreditAccount string
	Amount        money.Cents
	Memo          string
	Confidence    float64
}

// Classified pairs a transaction with its proposed entry lines. Drafts are
// transient: they live for one pipeline pass and are discarded after
// posting (or retained on the transaction as the AI audit trail).
type Classified struct {
	Transaction *bank.Transaction
	Lines       []DraftLine
}

// Result partitions a batch of classified transactions into the three
// pipeline buckets.
type Result struct {
	// Resolved entries are complete and ready to post, confidence 1.0.
	Resolved []Classified
	// UnclassifiedExpenses are outflow partials whose debit side needs AI
	// resolution.
	UnclassifiedExpenses []Classified
	// UnclassifiedRevenues are inflow partials whose credit side needs AI
	// resolution.
	UnclassifiedRevenues []Classified
}

// AIEntry is one account choice returned by the AI classifier for the
// missing side of a partial entry.
type AIEntry struct {
	Account    string
	Memo       string
	Confidence float64
}

// AIResult is the AI classification for one transaction, keyed by the
// transaction's unique name.
type AIResult struct {
	Name    string
	Entries []AIEntry
}
