package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendwise/internal/cli"
	"spendwise/internal/model"
	"spendwise/internal/report"
)

func settleCmd() *cobra.Command {
	var cutoff string

	cmd := &cobra.Command{
		Use:   "settle <category>",
		Short: "Mark a category's unpaid expenses as paid",
		Long: `Settle a category: every unpaid expense in it dated on or before the
cutoff date becomes paid as of that date, in one atomic batch. Expenses
dated after the cutoff are left alone. Settling a category with nothing
to pay is a no-op.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category, err := resolveCategory(ctx, store, args[0])
			if err != nil {
				return err
			}
			if cutoff == "" {
				cutoff = model.Today()
			}

			settled, err := store.SettleCategory(ctx, category.ID, cutoff)
			if err != nil {
				return fmt.Errorf("failed to settle category: %w", err)
			}

			if len(settled) == 0 {
				fmt.Println(cli.InfoStyle.Render(
					fmt.Sprintf("Nothing to settle in %q up to %s.", category.Name, cutoff)))
				return nil
			}

			currency := currencySymbol(ctx, store)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for i := range settled {
				e := &settled[i]
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n",
					e.ID[:8], e.Date, cli.FormatAmount(currency, e.Amount), e.Note)
			}
			_ = w.Flush()

			total := report.Sum(settled)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Settled %d expenses in %q (%s), paid as of %s",
				len(settled), category.Name, cli.FormatAmount(currency, total), cutoff)))
			return nil
		},
	}

	cmd.Flags().StringVar(&cutoff, "as-of", "", "cutoff date YYYY-MM-DD (default: today)")

	return cmd
}
