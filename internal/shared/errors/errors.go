package errors

import (
	"errors"
	"fmt"
)

// AppError represents an application error with additional context
type AppError struct {
	Code    string // Error code for callers and logs
	Message string // Human-readable message
	Err     error  // Underlying error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeConfiguration = "CONFIGURATION_ERROR"
	ErrCodeLowConfidence = "LOW_CONFIDENCE"
	ErrCodeProvider      = "PROVIDER_ERROR"
	ErrCodeLedgerPosting = "LEDGER_POSTING_ERROR"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeDatabase      = "DATABASE_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeUnbalanced    = "LEDGER_UNBALANCED"
)

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Configuration creates a fatal configuration error, e.g. a missing API credential.
func Configuration(message string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: message,
	}
}

// LowConfidence creates an error for a classification below the confidence floor.
func LowConfidence(confidence, floor float64) *AppError {
	return &AppError{
		Code:    ErrCodeLowConfidence,
		Message: fmt.Sprintf("classification confidence %.2f is below the %.2f floor", confidence, floor),
	}
}

// Provider creates a phase-level error for a failed LLM call.
func Provider(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeProvider,
		Message: message,
		Err:     err,
	}
}

// LedgerPosting creates a per-transaction error for a rejected journal entry.
func LedgerPosting(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeLedgerPosting,
		Message: message,
		Err:     err,
	}
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
	}
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Database creates a database error
func Database(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeDatabase,
		Message: message,
		Err:     err,
	}
}

// Internal creates an internal error
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Unbalanced creates an error for a journal entry whose debits and credits differ.
func Unbalanced(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnbalanced,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given AppError code.
func HasCode(err error, code string) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}
