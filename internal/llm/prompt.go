package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/midwestsb/autobooks/internal/classify"
	"github.com/midwestsb/autobooks/internal/ledger"
)

// Request is one transaction submitted for AI classification, together with
// whatever context the pipeline has accumulated for it.
type Request struct {
	Classified *classify.Classified
	// VendorHint is the historically confirmed account for this counterparty,
	// empty when no prior mapping exists.
	VendorHint string
	// Retry marks a transaction that already failed posting once. Retries
	// carry the previous attempt and its ledger error so the model can
	// correct itself instead of repeating the mistake.
	Retry bool
}

// promptTransaction is the JSON shape a transaction takes inside the user
// prompt. Amounts are decimal dollar strings.
type promptTransaction struct {
	Name                   string `json:"name"`
	Date                   string `json:"date"`
	Amount                 string `json:"amount"`
	Counterparty           string `json:"counterparty"`
	BankAccount            string `json:"bank_account"`
	VendorHint             string `json:"vendor_hint,omitempty"`
	PreviousClassification string `json:"previous_classification,omitempty"`
	LedgerError            string `json:"ledger_error,omitempty"`
}

const expenseSystemPrompt = `You are an accountant for a debt collection agency.
You classify bank account outflows into expense accounts from the company's
chart of accounts. For every transaction, choose the single expense account
that best matches the counterparty and amount, write a short memo explaining
the choice, and report your confidence between 0 and 1. Use only account
names that appear in the chart below. If a vendor_hint is present it names
the account used for this counterparty in the past; prefer it unless the
transaction clearly differs.`

const revenueSystemPrompt = `You are an accountant for a debt collection agency.
You classify bank account inflows into income accounts from the company's
chart of accounts. For every transaction, choose the single income account
that best matches the counterparty and amount, write a short memo explaining
the choice, and report your confidence between 0 and 1. Use only account
names that appear in the chart below. If a vendor_hint is present it names
the account used for this counterparty in the past; prefer it unless the
transaction clearly differs.`

const retryAddendum = `

Some transactions include a previous_classification and a ledger_error from
an earlier attempt that failed to post. Treat the error as authoritative:
pick a different account or correct the problem it describes, and do not
repeat the failed classification.`

// formatAccounts renders the chart excerpt one account per line, in the
// shape the model is prompted to quote from.
func formatAccounts(accounts []*ledger.Account) string {
	var b strings.Builder
	for _, a := range accounts {
		fmt.Fprintf(&b, "name: %s, account_type: %s, parent_account: %s\n",
			a.Name, a.RootType, a.ParentAccount)
	}
	return b.String()
}

func systemPrompt(side side, retry bool) string {
	p := expenseSystemPrompt
	if side == sideRevenue {
		p = revenueSystemPrompt
	}
	if retry {
		p += retryAddendum
	}
	return p
}

// userPrompt renders the chart excerpt and the transaction batch.
func userPrompt(accounts []*ledger.Account, reqs []Request) (string, error) {
	txs := make([]promptTransaction, 0, len(reqs))
	for _, r := range reqs {
		tx := r.Classified.Transaction
		pt := promptTransaction{
			Name:         tx.Name,
			Date:         tx.CreatedAt.Format(time.DateOnly),
			Amount:       tx.Amount.String(),
			Counterparty: tx.Counterparty,
			BankAccount:  tx.AccountNickname,
			VendorHint:   r.VendorHint,
		}
		if r.Retry {
			pt.PreviousClassification = tx.AIResult
			pt.LedgerError = tx.ErrorDescription
		}
		txs = append(txs, pt)
	}

	payload, err := json.MarshalIndent(txs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transactions: %w", err)
	}

	var b strings.Builder
	b.WriteString("Chart of accounts:\n")
	b.WriteString(formatAccounts(accounts))
	b.WriteString("\nTransactions:\n")
	b.Write(payload)
	return b.String(), nil
}
