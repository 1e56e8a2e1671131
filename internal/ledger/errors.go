package ledger

import "errors"

// Entry errors
var (
	ErrTooFewLines    = errors.New("journal entry needs at least two lines")
	ErrMissingAccount = errors.New("journal line is missing an account")
	ErrNegativeAmount = errors.New("journal line amount cannot be negative")
	ErrTwoSidedLine   = errors.New("journal line cannot carry both a debit and a credit")
	ErrZeroAmount     = errors.New("journal line amount must be positive")
	ErrNotBalanced    = errors.New("journal entry debits and credits do not balance")
)

// Account errors
var (
	ErrAccountNotFound = errors.New("account not found in chart of accounts")
	ErrGroupAccount    = errors.New("journal lines cannot reference a group account")
)
