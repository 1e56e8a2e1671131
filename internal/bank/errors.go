package bank

import "errors"

var (
	ErrTransactionNotFound = errors.New("bank transaction not found")
	ErrInvalidStatus       = errors.New("invalid transaction status")
)
