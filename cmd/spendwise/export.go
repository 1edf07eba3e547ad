package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"spendwise/internal/cli"
	"spendwise/internal/common"
	"spendwise/internal/export"
	"spendwise/internal/model"
	"spendwise/internal/report"
)

func exportCmd() *cobra.Command {
	var (
		status string
		from   string
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses as CSV",
		Long: `Write expense records as CSV with a trailing summary block. Use the
status and date filters to export a subset (e.g. only the outstanding
unpaid balance).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expenses, err := store.ListExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to list expenses: %w", err)
			}
			categories, err := store.ListCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}

			filter := report.Filter{From: from, To: to}
			switch status {
			case "", "all":
			case "paid":
				filter.Status = model.StatusPaid
			case "unpaid":
				filter.Status = model.StatusUnpaid
			default:
				return fmt.Errorf("invalid status %q (want all, paid, or unpaid)", status)
			}
			filtered := report.Apply(expenses, filter)

			out := os.Stdout
			if output != "" {
				f, createErr := os.Create(output)
				if createErr != nil {
					return fmt.Errorf("failed to create output file: %w", createErr)
				}
				defer func() { _ = f.Close() }()
				out = f
			}

			currency := currencySymbol(ctx, store)
			if err := export.WriteCSV(out, filtered, categories, currency); err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}

			if output != "" {
				common.LogInfo("exported expenses", common.Fields{"count": len(filtered), "file": output})
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d records to %s", len(filtered), output)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "filter by status (all, paid, unpaid)")
	cmd.Flags().StringVar(&from, "from", "", "inclusive start date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "inclusive end date YYYY-MM-DD")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}
