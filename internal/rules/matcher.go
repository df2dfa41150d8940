// Package rules evaluates transactions against ordered pattern rules.
package rules

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quillback/spendsort/internal/model"
)

// Rule is an alias to the model.PatternRule type for convenience.
type Rule = model.PatternRule

// Matcher evaluates transactions against pattern rules.
type Matcher interface {
	// Match returns the first rule (in priority order) that matches the
	// transaction, or ok=false when none does.
	Match(ctx context.Context, txn model.Transaction) (Rule, bool)
}

// MatcherImpl implements Matcher over a fixed rule snapshot.
type MatcherImpl struct {
	rules []Rule
}

// NewMatcher creates a matcher over the given rules. Inactive rules are
// dropped; the rest are ordered by (priority ascending, id ascending) so
// that evaluation order, including the tie-break between rules of the
// same priority, is deterministic.
func NewMatcher(rules []Rule) *MatcherImpl {
	active := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsActive {
			active = append(active, rule)
		}
	}
	sortRules(active)
	return &MatcherImpl{rules: active}
}

// Rules returns the matcher's ordered active rule snapshot.
func (m *MatcherImpl) Rules() []Rule {
	return m.rules
}

// Match evaluates the transaction against each rule in order and returns
// the first match. First match wins: lower priority levels carry more
// predicates and therefore more user intent.
func (m *MatcherImpl) Match(_ context.Context, txn model.Transaction) (Rule, bool) {
	for _, rule := range m.rules {
		if matchesRule(txn, rule) {
			return rule, true
		}
	}
	return Rule{}, false
}

// matchesRule applies the predicate combination selected by the rule's
// declared priority level. Unknown levels never match.
func matchesRule(txn model.Transaction, rule Rule) bool {
	switch rule.Priority {
	case model.PriorityExact:
		return matchesMerchant(txn, rule) &&
			matchesDescription(txn, rule) &&
			matchesExtended(txn, rule) &&
			amountInRange(txn, rule)
	case model.PriorityMerchantAmount:
		return matchesMerchant(txn, rule) && amountInRange(txn, rule)
	case model.PriorityMerchantMin:
		return matchesMerchant(txn, rule) && amountAtLeast(txn, rule.AmountMin)
	case model.PriorityMerchantMax:
		return matchesMerchant(txn, rule) && amountAtMost(txn, rule.AmountMax)
	case model.PriorityDescription:
		return matchesDescription(txn, rule) && matchesMerchant(txn, rule)
	case model.PriorityMerchantOnly:
		return matchesMerchant(txn, rule)
	}
	return false
}

// matchesMerchant checks the transaction merchant against the rule
// pattern. Equality is case-insensitive; contains rules do a
// case-insensitive substring check.
func matchesMerchant(txn model.Transaction, rule Rule) bool {
	if rule.MerchantPattern == "" {
		return false
	}
	merchant, ok := txn.MerchantName()
	if !ok {
		return false
	}
	return matchText(merchant, rule.MerchantPattern, rule.MerchantContains)
}

func matchesDescription(txn model.Transaction, rule Rule) bool {
	if rule.DescriptionPattern == "" {
		return false
	}
	desc, ok := txn.DescriptionText()
	if !ok {
		return false
	}
	return matchText(desc, rule.DescriptionPattern, rule.DescriptionContains)
}

func matchesExtended(txn model.Transaction, rule Rule) bool {
	if rule.ExtendedPattern == "" {
		return false
	}
	ext, ok := txn.ExtendedText()
	if !ok {
		return false
	}
	return matchText(ext, rule.ExtendedPattern, rule.DescriptionContains)
}

func matchText(value, pattern string, contains bool) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if contains {
		return strings.Contains(value, pattern)
	}
	return value == pattern
}

// amountInRange checks min <= |amount| <= max. Nil bounds are
// unconstrained. Comparing decimals by value subsumes trailing-zero
// normalization: 14.990 equals 14.99.
func amountInRange(txn model.Transaction, rule Rule) bool {
	return amountAtLeast(txn, rule.AmountMin) && amountAtMost(txn, rule.AmountMax)
}

func amountAtLeast(txn model.Transaction, min *decimal.Decimal) bool {
	if min == nil {
		return true
	}
	return txn.AbsAmount().Cmp(min.Abs()) >= 0
}

func amountAtMost(txn model.Transaction, max *decimal.Decimal) bool {
	if max == nil {
		return true
	}
	return txn.AbsAmount().Cmp(max.Abs()) <= 0
}
