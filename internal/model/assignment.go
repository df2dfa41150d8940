package model

import "time"

// Provenance records which mechanism produced a category assignment.
type Provenance string

// Provenance constants.
const (
	MatchedBySystem        Provenance = "SYSTEM"
	MatchedByUserRule      Provenance = "USER_RULE"
	MatchedByTaxonomy      Provenance = "TAXONOMY_FALLBACK"
	MatchedByUncategorized Provenance = "UNCATEGORIZED"
)

// Tier is the confidence ranking of which transaction fields are
// available, computed by the tier package. Tier 0 means no usable signal
// and short-circuits the pipeline.
type Tier int

// Tier constants, highest confidence first. The numeric value is attached
// to assignments for auditing.
const (
	TierNone             Tier = 0 // no provider labels, no merchant
	TierAllFields        Tier = 1 // primary + secondary + code + merchant
	TierPrimarySecondary Tier = 2
	TierPrimaryMerchant  Tier = 3
	TierSecondaryMerch   Tier = 4
	TierSecondaryCode    Tier = 5
	TierPrimaryCode      Tier = 6
	TierPrimaryOnly      Tier = 7
	TierSecondaryOnly    Tier = 8
	TierCodeOnly         Tier = 9
	// TierMerchantOnly covers transactions carrying a merchant name but no
	// provider labels at all. They are still eligible for rule matching and
	// the merchant static map, unlike TierNone.
	TierMerchantOnly Tier = 10
)

// CategoryAssignment is the result of one categorization run for one
// transaction. Exactly one is produced per input transaction; MatchedBy is
// never empty, UNCATEGORIZED included.
type CategoryAssignment struct {
	AssignedAt    time.Time  `json:"assigned_at"`
	TransactionID string     `json:"transaction_id"`
	Category      Category   `json:"category"`
	MatchedBy     Provenance `json:"matched_by"`
	Error         string     `json:"error,omitempty"` // set when resolution failed for this transaction
	RuleID        *int64     `json:"rule_id,omitempty"`
	Tier          Tier       `json:"tier"`
}

// Failed reports whether this assignment records a per-transaction
// failure (such as an unresolvable account) rather than a categorization.
func (a CategoryAssignment) Failed() bool {
	return a.Error != ""
}

// Uncategorized builds the explicit terminal assignment for a transaction
// that no rule or taxonomy lookup could place.
func Uncategorized(transactionID string, tier Tier) CategoryAssignment {
	return CategoryAssignment{
		TransactionID: transactionID,
		Category:      CategoryUncategorized,
		MatchedBy:     MatchedByUncategorized,
		Tier:          tier,
		AssignedAt:    time.Now().UTC(),
	}
}
