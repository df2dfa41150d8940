// Package tier classifies transactions by which category signals they
// carry. The resulting tier selects the matching strategy and is recorded
// on every assignment for auditing.
package tier

import "github.com/quillback/spendsort/internal/model"

// Classify inspects which of the four category signals are populated
// (provider primary label, provider secondary label, provider category
// code, merchant name) and returns the confidence tier.
//
// The table is evaluated top-down; the first row whose field combination
// is satisfied wins. Structured provider labels outrank a bare category
// code. A transaction with none of the four signals is TierNone and is
// uncategorizable without further input.
func Classify(txn model.Transaction) model.Tier {
	primary := txn.HasProviderPrimary()
	secondary := txn.HasProviderSecondary()
	code := txn.HasProviderCode()
	merchant := txn.HasMerchant()

	switch {
	case primary && secondary && code && merchant:
		return model.TierAllFields
	case primary && secondary:
		return model.TierPrimarySecondary
	case primary && merchant:
		return model.TierPrimaryMerchant
	case secondary && merchant:
		return model.TierSecondaryMerch
	case secondary && code:
		return model.TierSecondaryCode
	case primary && code:
		return model.TierPrimaryCode
	case primary:
		return model.TierPrimaryOnly
	case secondary:
		return model.TierSecondaryOnly
	case code:
		return model.TierCodeOnly
	case merchant:
		return model.TierMerchantOnly
	default:
		return model.TierNone
	}
}
