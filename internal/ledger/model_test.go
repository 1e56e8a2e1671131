package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/midwestsb/autobooks/pkg/money"
)

func TestJournalEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		lines   []Line
		wantErr error
	}{
		{
			name: "balanced two-line entry",
			lines: []Line{
				{Account: "MSB Trust", Debit: money.FromDollars(500, 0)},
				{Account: "MSB Operating", Credit: money.FromDollars(500, 0)},
			},
		},
		{
			name: "balanced multi-line entry",
			lines: []Line{
				{Account: "MSB Operating", Debit: money.FromDollars(100, 0)},
				{Account: "Client Funds Payable", Debit: money.FromDollars(50, 0)},
				{Account: "Revenue - Collection Fee", Credit: money.FromDollars(150, 0)},
			},
		},
		{
			name: "single line rejected",
			lines: []Line{
				{Account: "MSB Trust", Debit: money.FromDollars(500, 0)},
			},
			wantErr: ErrTooFewLines,
		},
		{
			name:    "empty entry rejected",
			wantErr: ErrTooFewLines,
		},
		{
			name: "missing account",
			lines: []Line{
				{Account: "", Debit: money.FromDollars(10, 0)},
				{Account: "MSB Operating", Credit: money.FromDollars(10, 0)},
			},
			wantErr: ErrMissingAccount,
		},
		{
			name: "negative amount",
			lines: []Line{
				{Account: "MSB Trust", Debit: money.FromDollars(-10, 0)},
				{Account: "MSB Operating", Credit: money.FromDollars(-10, 0)},
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "line with both sides",
			lines: []Line{
				{Account: "MSB Trust", Debit: money.FromDollars(10, 0), Credit: money.FromDollars(10, 0)},
				{Account: "MSB Operating", Credit: money.FromDollars(10, 0)},
			},
			wantErr: ErrTwoSidedLine,
		},
		{
			name: "zero-value line",
			lines: []Line{
				{Account: "MSB Trust"},
				{Account: "MSB Operating", Credit: money.FromDollars(10, 0)},
			},
			wantErr: ErrZeroAmount,
		},
		{
			name: "unbalanced entry",
			lines: []Line{
				{Account: "MSB Trust", Debit: money.FromDollars(500, 0)},
				{Account: "MSB Operating", Credit: money.FromDollars(499, 99)},
			},
			wantErr: ErrNotBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &JournalEntry{Lines: tt.lines}
			err := entry.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalEntryTotal(t *testing.T) {
	entry := &JournalEntry{Lines: []Line{
		{Account: "MSB Operating", Debit: money.FromDollars(100, 0)},
		{Account: "Client Funds Payable", Debit: money.FromDollars(50, 25)},
		{Account: "Revenue - Collection Fee", Credit: money.FromDollars(150, 25)},
	}}

	assert.Equal(t, money.FromDollars(150, 25), entry.Total())
}
