package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midwestsb/autobooks/internal/bank"
	"github.com/midwestsb/autobooks/internal/classify"
	"github.com/midwestsb/autobooks/internal/ledger"
	"github.com/midwestsb/autobooks/pkg/money"
)

func TestFormatAccounts(t *testing.T) {
	got := formatAccounts([]*ledger.Account{
		{Name: "Office Supplies", RootType: ledger.RootExpense, ParentAccount: "Operating Expenses"},
		{Name: "Interest Income", RootType: ledger.RootIncome, ParentAccount: "Income"},
	})

	assert.Equal(t,
		"name: Office Supplies, account_type: Expense, parent_account: Operating Expenses\n"+
			"name: Interest Income, account_type: Income, parent_account: Income\n",
		got)
}

func TestUserPrompt(t *testing.T) {
	tx := &bank.Transaction{
		Name:             "tx-042",
		Amount:           money.FromDollars(-150, 75),
		CreatedAt:        time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		Counterparty:     "DELTA AIRLINES",
		AccountNickname:  "MSB_OPERATING",
		AIResult:         "Travel (0.60)",
		ErrorDescription: "account Travel not found",
	}
	reqs := []Request{{
		Classified: &classify.Classified{Transaction: tx},
		VendorHint: "Travel Expenses",
	}}
	accounts := []*ledger.Account{
		{Name: "Travel Expenses", RootType: ledger.RootExpense, ParentAccount: "Operating Expenses"},
	}

	t.Run("first pass omits retry context", func(t *testing.T) {
		got, err := userPrompt(accounts, reqs)

		require.NoError(t, err)
		assert.Contains(t, got, `"name": "tx-042"`)
		assert.Contains(t, got, `"date": "2025-06-01"`)
		assert.Contains(t, got, `"amount": "-150.75"`)
		assert.Contains(t, got, `"vendor_hint": "Travel Expenses"`)
		assert.NotContains(t, got, "previous_classification")
		assert.NotContains(t, got, "ledger_error")
	})

	t.Run("retry pass carries previous attempt and error", func(t *testing.T) {
		retryReqs := []Request{{Classified: reqs[0].Classified, Retry: true}}
		got, err := userPrompt(accounts, retryReqs)

		require.NoError(t, err)
		assert.Contains(t, got, `"previous_classification": "Travel (0.60)"`)
		assert.Contains(t, got, `"ledger_error": "account Travel not found"`)
	})
}
