package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quillback/spendsort/internal/cli"
	"github.com/quillback/spendsort/internal/model"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Aliases: []string{"rule"},
		Short:   "Manage pattern rules",
		Long: `Manage the pattern rules the engine evaluates before falling back to
the provider taxonomy. Rules are deactivated rather than deleted, so
past assignments stay auditable.`,
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesAddCmd())
	cmd.AddCommand(rulesDisableCmd())
	return cmd
}

func rulesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pattern rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			allRules, err := store.ListPatternRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to list rules: %w", err)
			}
			if len(allRules) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No rules found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ID\tOWNER\tLEVEL\tMERCHANT\tDESCRIPTION\tAMOUNT\tCATEGORY\tACTIVE\tMATCHES")

			for _, r := range allRules {
				owner := string(r.Owner)
				if r.UserID != "" {
					owner = r.UserID
				}
				_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%v\t%d\n",
					r.ID, owner, r.Priority,
					patternOrDash(r.MerchantPattern, r.MerchantContains),
					patternOrDash(r.DescriptionPattern, r.DescriptionContains),
					formatAmountRange(r.AmountMin, r.AmountMax),
					r.TargetCategory, r.IsActive, r.MatchCount)
			}
			return w.Flush()
		},
	}
	return cmd
}

func rulesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a pattern rule",
		Long: `Add a pattern rule. The --level flag selects which predicates the
engine combines:

  1  merchant + description + extended description + amount range
  2  merchant + amount range
  3  merchant + minimum amount
  4  merchant + maximum amount
  5  merchant + description
  6  merchant only`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rule, err := ruleFromFlags(cmd)
			if err != nil {
				return err
			}

			if err := store.CreatePatternRule(ctx, rule); err != nil {
				return fmt.Errorf("failed to create rule: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created rule %d -> %s", rule.ID, rule.TargetCategory)))
			return nil
		},
	}

	cmd.Flags().String("user", "", "owning user (omit for a system rule)")
	cmd.Flags().Int("level", model.PriorityMerchantOnly, "predicate level (1-6)")
	cmd.Flags().String("merchant", "", "merchant pattern")
	cmd.Flags().Bool("merchant-contains", false, "substring match instead of exact")
	cmd.Flags().String("description", "", "description pattern")
	cmd.Flags().Bool("description-contains", false, "substring match instead of exact")
	cmd.Flags().String("extended", "", "extended description pattern")
	cmd.Flags().String("min", "", "minimum amount")
	cmd.Flags().String("max", "", "maximum amount")
	cmd.Flags().String("category", "", "target category (required)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func rulesDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <rule-id>",
		Short: "Deactivate a pattern rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
			}

			store, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.DeactivatePatternRule(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deactivated rule %d", id)))
			return nil
		},
	}
}

func ruleFromFlags(cmd *cobra.Command) (*model.PatternRule, error) {
	userID, _ := cmd.Flags().GetString("user")
	level, _ := cmd.Flags().GetInt("level")
	merchant, _ := cmd.Flags().GetString("merchant")
	merchantContains, _ := cmd.Flags().GetBool("merchant-contains")
	description, _ := cmd.Flags().GetString("description")
	descriptionContains, _ := cmd.Flags().GetBool("description-contains")
	extended, _ := cmd.Flags().GetString("extended")
	category, _ := cmd.Flags().GetString("category")

	rule := &model.PatternRule{
		Owner:               model.OwnerSystem,
		UserID:              "",
		Priority:            level,
		MerchantPattern:     merchant,
		MerchantContains:    merchantContains,
		DescriptionPattern:  description,
		DescriptionContains: descriptionContains,
		ExtendedPattern:     extended,
		TargetCategory:      model.Category(category),
		IsActive:            true,
	}
	if userID != "" {
		rule.Owner = model.OwnerUser
		rule.UserID = userID
	}

	var err error
	if rule.AmountMin, err = decimalFlag(cmd, "min"); err != nil {
		return nil, err
	}
	if rule.AmountMax, err = decimalFlag(cmd, "max"); err != nil {
		return nil, err
	}
	return rule, nil
}

func decimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s amount %q: %w", name, s, err)
	}
	return &d, nil
}

func patternOrDash(pattern string, contains bool) string {
	if pattern == "" {
		return "-"
	}
	if contains {
		return "~" + pattern
	}
	return pattern
}

func formatAmountRange(min, max *decimal.Decimal) string {
	switch {
	case min == nil && max == nil:
		return "-"
	case min != nil && max == nil:
		return ">= " + min.String()
	case min == nil:
		return "<= " + max.String()
	case min.Equal(*max):
		return "= " + min.String()
	default:
		return fmt.Sprintf("[%s, %s]", min.String(), max.String())
	}
}
