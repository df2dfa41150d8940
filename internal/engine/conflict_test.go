package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillback/spendsort/internal/model"
)

func candidate(p model.Provenance, tier model.Tier, ruleID int64, cat model.Category) Candidate {
	c := Candidate{MatchedBy: p, Tier: tier, Category: cat}
	if ruleID > 0 {
		c.RuleID = &ruleID
	}
	return c
}

func TestPickWinner(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		want       model.Category
		wantOK     bool
	}{
		{
			name:   "no candidates",
			wantOK: false,
		},
		{
			name: "single candidate",
			candidates: []Candidate{
				candidate(model.MatchedByTaxonomy, model.TierPrimaryOnly, 0, model.CategoryTravel),
			},
			want:   model.CategoryTravel,
			wantOK: true,
		},
		{
			name: "user rule beats system rule",
			candidates: []Candidate{
				candidate(model.MatchedBySystem, model.TierAllFields, 1, model.CategorySubscription),
				candidate(model.MatchedByUserRule, model.TierAllFields, 9, model.CategoryEntertainment),
			},
			want:   model.CategoryEntertainment,
			wantOK: true,
		},
		{
			name: "system rule beats taxonomy",
			candidates: []Candidate{
				candidate(model.MatchedByTaxonomy, model.TierAllFields, 0, model.CategoryRestaurants),
				candidate(model.MatchedBySystem, model.TierAllFields, 3, model.CategorySubscription),
			},
			want:   model.CategorySubscription,
			wantOK: true,
		},
		{
			name: "same provenance lower tier wins",
			candidates: []Candidate{
				candidate(model.MatchedBySystem, model.TierPrimaryOnly, 1, model.CategoryTravel),
				candidate(model.MatchedBySystem, model.TierAllFields, 2, model.CategorySubscription),
			},
			want:   model.CategorySubscription,
			wantOK: true,
		},
		{
			name: "full tie falls back to lowest rule id",
			candidates: []Candidate{
				candidate(model.MatchedBySystem, model.TierAllFields, 8, model.CategoryTravel),
				candidate(model.MatchedBySystem, model.TierAllFields, 3, model.CategorySubscription),
			},
			want:   model.CategorySubscription,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickWinner(tt.candidates)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.Category)
			}
		})
	}
}

func TestPickWinnerOrderIndependent(t *testing.T) {
	a := candidate(model.MatchedByUserRule, model.TierPrimaryMerchant, 12, model.CategoryEntertainment)
	b := candidate(model.MatchedBySystem, model.TierAllFields, 1, model.CategorySubscription)
	c := candidate(model.MatchedByTaxonomy, model.TierAllFields, 0, model.CategoryRestaurants)

	forward, ok := pickWinner([]Candidate{a, b, c})
	require.True(t, ok)
	backward, ok := pickWinner([]Candidate{c, b, a})
	require.True(t, ok)

	assert.Equal(t, forward.Category, backward.Category)
	assert.Equal(t, model.CategoryEntertainment, forward.Category)
}

func TestMatchCounters(t *testing.T) {
	var c matchCounters
	c.increment(1)
	c.increment(1)
	c.increment(7)

	counts := c.snapshot()
	assert.Equal(t, int64(2), counts[1])
	assert.Equal(t, int64(1), counts[7])

	// Snapshot drains: a second call sees nothing new.
	assert.Empty(t, c.snapshot())

	c.increment(1)
	assert.Equal(t, int64(1), c.snapshot()[1])
}
