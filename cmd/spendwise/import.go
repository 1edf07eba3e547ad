package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"spendwise/internal/cli"
	"spendwise/internal/common"
	"spendwise/internal/export"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import expenses from a CSV file",
		Long: `Bulk-load expense records from a CSV file with columns
date, category id, amount, note. Every row is validated the same way
as a manually added expense; imported expenses start unpaid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			records, err := export.ReadCSV(f)
			if err != nil {
				return fmt.Errorf("failed to parse import file: %w", err)
			}
			if len(records) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing to import."))
				return nil
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			bar := progressbar.NewOptions(len(records),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing expenses..."),
			)

			imported := 0
			for _, record := range records {
				if _, err := store.AddExpense(ctx, record.Amount, record.CategoryID, record.Date, record.Note); err != nil {
					common.LogError(err, "import aborted", common.Fields{
						"file":     args[0],
						"row_date": record.Date,
						"imported": imported,
					})
					return fmt.Errorf("failed to import expense dated %s: %w", record.Date, err)
				}
				imported++
				_ = bar.Add(1)
			}
			_ = bar.Finish()
			fmt.Println()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expenses from %s", imported, args[0])))
			return nil
		},
	}
}
