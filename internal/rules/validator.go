package rules

import (
	"fmt"

	"github.com/quillback/spendsort/internal/model"
)

func validateRule(rule Rule) error {
	if rule.TargetCategory.IsUncategorized() {
		return fmt.Errorf("rule must target a category")
	}

	switch rule.Priority {
	case model.PriorityExact:
		if rule.MerchantPattern == "" || rule.DescriptionPattern == "" || rule.ExtendedPattern == "" {
			return fmt.Errorf("level %d rule requires merchant, description, and extended patterns", rule.Priority)
		}
		if rule.AmountMin == nil && rule.AmountMax == nil {
			return fmt.Errorf("level %d rule requires an amount range", rule.Priority)
		}
	case model.PriorityMerchantAmount:
		if rule.MerchantPattern == "" {
			return fmt.Errorf("level %d rule requires a merchant pattern", rule.Priority)
		}
		if rule.AmountMin == nil && rule.AmountMax == nil {
			return fmt.Errorf("level %d rule requires an amount range", rule.Priority)
		}
	case model.PriorityMerchantMin:
		if rule.MerchantPattern == "" || rule.AmountMin == nil {
			return fmt.Errorf("level %d rule requires a merchant pattern and a minimum amount", rule.Priority)
		}
	case model.PriorityMerchantMax:
		if rule.MerchantPattern == "" || rule.AmountMax == nil {
			return fmt.Errorf("level %d rule requires a merchant pattern and a maximum amount", rule.Priority)
		}
	case model.PriorityDescription:
		if rule.MerchantPattern == "" || rule.DescriptionPattern == "" {
			return fmt.Errorf("level %d rule requires merchant and description patterns", rule.Priority)
		}
	case model.PriorityMerchantOnly:
		if rule.MerchantPattern == "" {
			return fmt.Errorf("level %d rule requires a merchant pattern", rule.Priority)
		}
	default:
		return fmt.Errorf("unknown rule priority level %d", rule.Priority)
	}

	if rule.AmountMin != nil && rule.AmountMax != nil && rule.AmountMin.Abs().Cmp(rule.AmountMax.Abs()) > 0 {
		return fmt.Errorf("amount range minimum exceeds maximum")
	}

	return nil
}
