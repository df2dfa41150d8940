package rules

import (
	"github.com/shopspring/decimal"

	"github.com/quillback/spendsort/internal/model"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DefaultSystemRules returns the built-in system rule seed. These cover
// merchants whose provider labels are routinely wrong or missing; user
// rules always outrank them.
func DefaultSystemRules() []Rule {
	return []Rule{
		// Flex bills both subscriptions and rent under the same merchant
		// name; only the amount disambiguates them.
		{
			Owner:           model.OwnerSystem,
			Priority:        model.PriorityMerchantAmount,
			MerchantPattern: "Flex Finance",
			AmountMin:       dec("14.99"),
			AmountMax:       dec("14.99"),
			TargetCategory:  model.CategorySubscription,
			IsActive:        true,
		},
		{
			Owner:           model.OwnerSystem,
			Priority:        model.PriorityMerchantMin,
			MerchantPattern: "Flex Finance",
			AmountMin:       dec("100"),
			TargetCategory:  model.CategoryRent,
			IsActive:        true,
		},
		{
			Owner:               model.OwnerSystem,
			Priority:            model.PriorityDescription,
			MerchantPattern:     "Amazon",
			MerchantContains:    true,
			DescriptionPattern:  "Prime Video",
			DescriptionContains: true,
			TargetCategory:      model.CategorySubscription,
			IsActive:            true,
		},
		{
			Owner:               model.OwnerSystem,
			Priority:            model.PriorityDescription,
			MerchantPattern:     "Amazon",
			MerchantContains:    true,
			DescriptionPattern:  "Fresh",
			DescriptionContains: true,
			TargetCategory:      model.CategoryGroceries,
			IsActive:            true,
		},
		{
			Owner:            model.OwnerSystem,
			Priority:         model.PriorityMerchantOnly,
			MerchantPattern:  "Netflix",
			MerchantContains: true,
			TargetCategory:   model.CategorySubscription,
			IsActive:         true,
		},
		{
			Owner:            model.OwnerSystem,
			Priority:         model.PriorityMerchantOnly,
			MerchantPattern:  "Spotify",
			MerchantContains: true,
			TargetCategory:   model.CategorySubscription,
			IsActive:         true,
		},
		{
			Owner:            model.OwnerSystem,
			Priority:         model.PriorityMerchantOnly,
			MerchantPattern:  "Venmo",
			MerchantContains: true,
			TargetCategory:   model.CategoryTransfer,
			IsActive:         true,
		},
		{
			Owner:            model.OwnerSystem,
			Priority:         model.PriorityMerchantOnly,
			MerchantPattern:  "Zelle",
			MerchantContains: true,
			TargetCategory:   model.CategoryTransfer,
			IsActive:         true,
		},
	}
}
