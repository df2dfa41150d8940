package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/quillback/spendsort/internal/cli"
	"github.com/quillback/spendsort/internal/common"
	"github.com/quillback/spendsort/internal/engine"
	"github.com/quillback/spendsort/internal/model"
)

func categorizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Categorize pending transactions",
		Long: `Run the categorization engine over every transaction that has no
category assignment yet. User rules are evaluated first, then system
rules, then the provider taxonomy; anything left resolves to the
explicit UNCATEGORIZED state.`,
		RunE: runCategorize,
	}

	cmd.Flags().Int("limit", 0, "maximum transactions to process (0 = all)")
	return cmd
}

func runCategorize(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	// One memoized resolver serves both the owner grouping below and the
	// engine's per-transaction checks, so each account hits the store once.
	accounts := engine.NewCachedAccountResolver(store)

	assigner, err := newAssigner(ctx, store, accounts)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	transactions, err := store.TransactionsToCategorize(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(transactions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("Nothing to categorize."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Categorizing %d transactions", len(transactions))))

	// One batch per account owner, so each batch runs with that user's
	// rules. Transactions on unknown accounts still get a result: the
	// engine records the resolution failure per transaction.
	batches := groupByOwner(ctx, accounts, transactions)

	bar := progressbar.Default(int64(len(transactions)), "categorizing")

	summary := make(map[model.Provenance]int)
	var failures int

	for userID, batch := range batches {
		var userRules []model.PatternRule
		if userID != "" {
			userRules, err = store.ActiveUserRules(ctx, userID)
			if err != nil {
				return fmt.Errorf("failed to load rules for user %s: %w", userID, err)
			}
		}

		assignments, err := assigner.AssignAll(ctx, batch, userRules)
		if err != nil {
			return err
		}

		for _, a := range assignments {
			summary[a.MatchedBy]++
			if a.Failed() {
				failures++
			}
		}
		_ = bar.Add(len(batch))
	}

	_ = bar.Finish()
	fmt.Println()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Categorized %d transactions", len(transactions))))
	fmt.Printf("  user rules:        %d\n", summary[model.MatchedByUserRule])
	fmt.Printf("  system rules:      %d\n", summary[model.MatchedBySystem])
	fmt.Printf("  taxonomy fallback: %d\n", summary[model.MatchedByTaxonomy])
	fmt.Printf("  uncategorized:     %d\n", summary[model.MatchedByUncategorized])
	if failures > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d transactions failed account resolution", failures)))
	}

	return nil
}

// groupByOwner splits transactions into per-user batches. Transactions
// whose account has no known owner land in the "" batch.
func groupByOwner(ctx context.Context, accounts engine.AccountResolver, transactions []model.Transaction) map[string][]model.Transaction {
	batches := make(map[string][]model.Transaction)

	for _, txn := range transactions {
		userID, err := accounts.AccountOwner(ctx, txn.AccountID)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			common.LogError(err, "Account owner lookup failed", common.Fields{
				"account_id": txn.AccountID,
			})
		}
		batches[userID] = append(batches[userID], txn)
	}

	return batches
}
