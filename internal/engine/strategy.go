package engine

import (
	"context"

	"github.com/quillback/spendsort/internal/model"
	"github.com/quillback/spendsort/internal/rules"
	"github.com/quillback/spendsort/internal/taxonomy"
)

// Candidate is one strategy's proposed category for a transaction.
type Candidate struct {
	RuleID    *int64
	Category  model.Category
	MatchedBy model.Provenance
	Tier      model.Tier
}

// Strategy is one categorization path. The assigner holds an ordered list
// of strategies; each either proposes a candidate or passes.
type Strategy interface {
	Name() string
	Evaluate(ctx context.Context, txn model.Transaction, t model.Tier) (Candidate, bool)
}

// ruleStrategy proposes the target category of the first matching pattern
// rule. Provenance follows rule ownership, so the same strategy type
// serves both the user-rule and system-rule paths.
type ruleStrategy struct {
	matcher *rules.MatcherImpl
	name    string
}

func newRuleStrategy(name string, ruleSet []rules.Rule) *ruleStrategy {
	return &ruleStrategy{
		name:    name,
		matcher: rules.NewMatcher(ruleSet),
	}
}

func (s *ruleStrategy) Name() string { return s.name }

func (s *ruleStrategy) Evaluate(ctx context.Context, txn model.Transaction, t model.Tier) (Candidate, bool) {
	rule, ok := s.matcher.Match(ctx, txn)
	if !ok {
		return Candidate{}, false
	}

	matchedBy := model.MatchedBySystem
	if rule.IsUserRule() {
		matchedBy = model.MatchedByUserRule
	}

	id := rule.ID
	return Candidate{
		Category:  rule.TargetCategory,
		MatchedBy: matchedBy,
		RuleID:    &id,
		Tier:      t,
	}, true
}

// taxonomyStrategy proposes a category from the provider taxonomy table,
// trying successively looser keys. Invoked only when no rule matched.
type taxonomyStrategy struct {
	table *taxonomy.Table
}

func (s *taxonomyStrategy) Name() string { return "taxonomy" }

func (s *taxonomyStrategy) Evaluate(_ context.Context, txn model.Transaction, t model.Tier) (Candidate, bool) {
	cat, ok := s.table.Resolve(txn)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Category:  cat,
		MatchedBy: model.MatchedByTaxonomy,
		Tier:      t,
	}, true
}
