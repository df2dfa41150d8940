package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillback/spendsort/internal/cli"
	"github.com/quillback/spendsort/internal/common"
	"github.com/quillback/spendsort/internal/plaid"
	"github.com/quillback/spendsort/internal/storage"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync transactions from the aggregation provider",
		Long: `Fetch transactions from the configured aggregation provider and stage
them for categorization. Provider accounts are registered to the user
given with --user so the engine can resolve ownership.`,
		RunE: runSync,
	}

	cmd.Flags().String("user", "", "user ID owning the synced accounts (required)")
	cmd.Flags().Int("days", 30, "how many days of history to fetch")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	userID, _ := cmd.Flags().GetString("user")
	days, _ := cmd.Flags().GetInt("days")

	client, err := plaid.NewClient(plaid.Config{
		ClientID:    viper.GetString("plaid.client_id"),
		Secret:      viper.GetString("plaid.secret"),
		Environment: viper.GetString("plaid.environment"),
		AccessToken: viper.GetString("plaid.access_token"),
	})
	if err != nil {
		return err
	}

	store, cleanup, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := client.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, a := range accounts {
		if err := store.UpsertAccount(ctx, storage.Account{
			ID:     a.ID,
			UserID: userID,
			Name:   a.Name,
		}); err != nil {
			return fmt.Errorf("failed to register account %s: %w", a.ID, err)
		}
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	transactions, err := client.GetTransactions(ctx, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}
	if len(transactions) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions in the requested window."))
		return nil
	}

	if err := store.SaveTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	common.LogInfo("Provider sync complete", common.Fields{
		"transactions": len(transactions),
		"accounts":     len(accounts),
		"days":         days,
	})

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Synced %d transactions across %d accounts. Run 'spendsort categorize' next.",
		len(transactions), len(accounts))))
	return nil
}
