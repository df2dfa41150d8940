// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Engine errors.
	ErrRuleLoad       = errors.New("rule load failed")       // fatal at startup
	ErrCounterPersist = errors.New("counter persist failed") // recoverable, logged, ignored

	// Provider errors.
	ErrProviderConnection = errors.New("provider connection failed")
	ErrProviderRateLimit  = errors.New("provider rate limit exceeded")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// AccountResolutionError indicates the owner of a transaction's account
// could not be determined. Fatal for that single transaction only; a batch
// continues past it.
type AccountResolutionError struct {
	Err       error
	AccountID string
}

func (e *AccountResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot resolve owner of account %q: %v", e.AccountID, e.Err)
	}
	return fmt.Sprintf("cannot resolve owner of account %q", e.AccountID)
}

func (e *AccountResolutionError) Unwrap() error {
	return e.Err
}

// NewAccountResolutionError wraps err for the given account.
func NewAccountResolutionError(accountID string, err error) error {
	return &AccountResolutionError{AccountID: accountID, Err: err}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry. Only
// provider I/O qualifies; the engine itself never retries.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrProviderRateLimit) ||
		errors.Is(err, ErrProviderConnection) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
