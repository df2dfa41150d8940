package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quillback/spendsort/internal/cli"
	"github.com/quillback/spendsort/internal/storage"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage account ownership",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsRegisterCmd())
	return cmd
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accounts, err := store.ListAccounts(ctx)
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No accounts registered."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "ACCOUNT\tUSER\tNAME\tINSTITUTION")
			for _, a := range accounts {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.UserID, a.Name, a.Institution)
			}
			return w.Flush()
		},
	}
}

func accountsRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <account-id>",
		Short: "Register an account to a user",
		Long: `Register an account to a user so the engine can resolve ownership.
Transactions on unregistered accounts fail categorization with an
explicit per-transaction error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			userID, _ := cmd.Flags().GetString("user")
			name, _ := cmd.Flags().GetString("name")
			institution, _ := cmd.Flags().GetString("institution")

			store, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := store.UpsertAccount(ctx, storage.Account{
				ID:          args[0],
				UserID:      userID,
				Name:        name,
				Institution: institution,
			}); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registered account %s to user %s", args[0], userID)))
			return nil
		},
	}

	cmd.Flags().String("user", "", "owning user ID (required)")
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("institution", "", "institution name")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
