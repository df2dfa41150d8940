package engine

import "github.com/quillback/spendsort/internal/model"

// provenanceRank orders candidate sources by authority. User intent is
// authoritative regardless of tier; taxonomy fallback only applies when
// no rule spoke.
func provenanceRank(p model.Provenance) int {
	switch p {
	case model.MatchedByUserRule:
		return 0
	case model.MatchedBySystem:
		return 1
	case model.MatchedByTaxonomy:
		return 2
	default:
		return 3
	}
}

// pickWinner resolves a conflict between candidates produced for the same
// transaction: user rule > system rule > taxonomy fallback; within the
// same source, the lowest (highest-confidence) tier wins; remaining ties
// fall back to rule ID ascending. Deterministic for any input order.
func pickWinner(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if beats(c, best) {
			best = c
		}
	}
	return best, true
}

func beats(a, b Candidate) bool {
	ra, rb := provenanceRank(a.MatchedBy), provenanceRank(b.MatchedBy)
	if ra != rb {
		return ra < rb
	}
	if a.Tier != b.Tier {
		return a.Tier < b.Tier
	}
	switch {
	case a.RuleID == nil:
		return false
	case b.RuleID == nil:
		return true
	default:
		return *a.RuleID < *b.RuleID
	}
}
