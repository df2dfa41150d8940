package engine

import (
	"context"

	"github.com/quillback/spendsort/internal/model"
)

// RuleSource defines the contract for rule persistence. The engine loads
// rule snapshots through it and reports match counts back, batched.
type RuleSource interface {
	ActiveSystemRules(ctx context.Context) ([]model.PatternRule, error)
	ActiveUserRules(ctx context.Context, userID string) ([]model.PatternRule, error)
	// AddMatchCounts applies accumulated per-rule match counts. Best
	// effort: a failure is logged and never fails a categorization run.
	AddMatchCounts(ctx context.Context, counts map[int64]int64) error
}

// AccountResolver maps an account to its owning user.
type AccountResolver interface {
	// AccountOwner returns the user ID owning the account, or an error
	// wrapping common.ErrNotFound when the account is unknown.
	AccountOwner(ctx context.Context, accountID string) (string, error)
}

// AssignmentSink receives finished category assignments, once per batch.
type AssignmentSink interface {
	SaveAssignments(ctx context.Context, assignments []model.CategoryAssignment) error
}
