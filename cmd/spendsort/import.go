package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quillback/spendsort/internal/cli"
	"github.com/quillback/spendsort/internal/common"
	"github.com/quillback/spendsort/internal/importers"
	"github.com/quillback/spendsort/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import transactions from CSV or OFX/QFX statement files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImport,
	}

	cmd.Flags().String("account", "", "account ID for rows without one (CSV only)")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, cleanup, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	defaultAccount, _ := cmd.Flags().GetString("account")

	var total int
	for _, path := range args {
		transactions, err := parseStatementFile(ctx, path, defaultAccount)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		if len(transactions) == 0 {
			fmt.Println(cli.FormatWarning(fmt.Sprintf("%s: no transactions found", path)))
			continue
		}

		if err := store.SaveTransactions(ctx, transactions); err != nil {
			return fmt.Errorf("failed to save transactions from %s: %w", path, err)
		}

		total += len(transactions)
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s: imported %d transactions", path, len(transactions))))
	}

	common.LogInfo("Statement import complete", common.Fields{
		"files":        len(args),
		"transactions": total,
	})

	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("Total: %d transactions. Run 'spendsort categorize' next.", total)))
	return nil
}

func parseStatementFile(ctx context.Context, path, defaultAccount string) ([]model.Transaction, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importers.NewCSVImporter(defaultAccount).Parse(ctx, f)
	case ".ofx", ".qfx":
		return importers.NewOFXImporter().Parse(ctx, f)
	default:
		return nil, fmt.Errorf("unsupported statement format %q", filepath.Ext(path))
	}
}
