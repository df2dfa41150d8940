package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillback/spendsort/internal/cli"
)

func taxonomyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "taxonomy",
		Short: "Show the loaded provider taxonomy",
		RunE: func(_ *cobra.Command, _ []string) error {
			table, err := loadTaxonomy()
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render("Provider taxonomy"))
			fmt.Printf("  version: %s\n", table.Version())
			fmt.Printf("  indexed keys: %d\n", table.Len())
			return nil
		},
	}
}
