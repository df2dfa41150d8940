// Package model defines the core data structures for the spendsort engine.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleOwner distinguishes system-seeded rules from user-authored ones.
type RuleOwner string

// Rule owner constants.
const (
	OwnerSystem RuleOwner = "system"
	OwnerUser   RuleOwner = "user"
)

// Rule priority levels. The level a rule declares selects the predicate
// combination the matcher applies (see rules.Matcher). Lower levels are
// evaluated first.
const (
	PriorityExact          = 1 // merchant + description + extended description + amount range
	PriorityMerchantAmount = 2 // merchant + amount range
	PriorityMerchantMin    = 3 // merchant + amount >= min
	PriorityMerchantMax    = 4 // merchant + amount <= max
	PriorityDescription    = 5 // description + merchant
	PriorityMerchantOnly   = 6 // merchant alone
)

// PatternRule is a user- or system-authored predicate mapping transactions
// to a target category. Rules are deactivated, never deleted, so that past
// assignments stay auditable.
type PatternRule struct {
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	AmountMin           *decimal.Decimal `json:"amount_min,omitempty"`
	AmountMax           *decimal.Decimal `json:"amount_max,omitempty"`
	Owner               RuleOwner        `json:"owner"`
	UserID              string           `json:"user_id,omitempty"` // empty for system rules
	MerchantPattern     string           `json:"merchant_pattern"`
	DescriptionPattern  string           `json:"description_pattern,omitempty"`
	ExtendedPattern     string           `json:"extended_pattern,omitempty"`
	TargetCategory      Category         `json:"target_category"`
	ID                  int64            `json:"id"`
	Priority            int              `json:"priority"`
	MatchCount          int64            `json:"match_count"`
	MerchantContains    bool             `json:"merchant_contains"`    // substring instead of exact match
	DescriptionContains bool             `json:"description_contains"` // substring instead of exact match
	IsActive            bool             `json:"is_active"`
}

// IsUserRule reports whether the rule was authored by a user.
func (r PatternRule) IsUserRule() bool {
	return r.Owner == OwnerUser
}
