package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quillback/spendsort/internal/model"
	"github.com/quillback/spendsort/internal/rules"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if err := validateString(txn.ID, "transaction.ID"); err != nil {
		return err
	}
	if err := validateString(txn.AccountID, "transaction.AccountID"); err != nil {
		return err
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("transaction %s has no date", txn.ID)
	}
	return nil
}

// validatePatternRule validates a rule before persisting it.
func validatePatternRule(rule *model.PatternRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	if rule.Owner == model.OwnerUser && strings.TrimSpace(rule.UserID) == "" {
		return fmt.Errorf("user rule requires a user ID")
	}
	if rule.Owner == model.OwnerSystem && rule.UserID != "" {
		return fmt.Errorf("system rule cannot have a user ID")
	}
	return rules.Validate(*rule)
}

// validateAssignments validates a batch of assignments before saving.
func validateAssignments(assignments []model.CategoryAssignment) error {
	if assignments == nil {
		return fmt.Errorf("%w: assignments", ErrNilParameter)
	}
	for i, a := range assignments {
		if a.TransactionID == "" {
			return fmt.Errorf("assignment at index %d has no transaction ID", i)
		}
		if a.MatchedBy == "" {
			return fmt.Errorf("assignment at index %d has no provenance", i)
		}
	}
	return nil
}
