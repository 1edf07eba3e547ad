package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"spendwise/internal/cli"
	"spendwise/internal/model"
	"spendwise/internal/report"
)

var decimalThirty = decimal.NewFromInt(30)

func summaryCmd() *cobra.Command {
	var window int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending totals",
		Long: `Display today's and this month's spending, the outstanding balance
per category, and a trailing daily breakdown.`,
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
			names, err := categoryNames(ctx, store)
			if err != nil {
				return err
			}
			currency := currencySymbol(ctx, store)

			today := model.Today()
			monthStart := time.Now().Format("2006-01") + "-01"

			todayTotal := report.Sum(report.Apply(expenses, report.Filter{From: today, To: today}))
			monthTotal := report.Sum(report.Apply(expenses, report.Filter{From: monthStart}))
			unpaidTotal := report.Sum(report.Apply(expenses, report.Filter{Status: model.StatusUnpaid}))
			paidTotal := report.Sum(report.Apply(expenses, report.Filter{Status: model.StatusPaid}))

			fmt.Println(cli.TitleStyle.Render("SpendWise Summary"))
			fmt.Printf("Today:      %s\n", cli.BoldStyle.Render(cli.FormatAmount(currency, todayTotal)))
			fmt.Printf("This month: %s\n", cli.BoldStyle.Render(cli.FormatAmount(currency, monthTotal)))
			fmt.Printf("Unpaid:     %s\n", cli.WarningStyle.Render(cli.FormatAmount(currency, unpaidTotal)))
			fmt.Printf("Paid:       %s\n\n", cli.SuccessStyle.Render(cli.FormatAmount(currency, paidTotal)))

			// Outstanding balance per category, largest first
			unpaid := report.Apply(expenses, report.Filter{Status: model.StatusUnpaid})
			if len(unpaid) > 0 {
				fmt.Println(cli.BoldStyle.Render("Outstanding by category"))

				totals := report.GroupByCategory(unpaid)
				ids := make([]string, 0, len(totals))
				for id := range totals {
					ids = append(ids, id)
				}
				sort.Slice(ids, func(i, j int) bool {
					cmp := totals[ids[i]].Cmp(totals[ids[j]])
					if cmp != 0 {
						return cmp > 0
					}
					return ids[i] < ids[j]
				})

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, id := range ids {
					name := names[id]
					if name == "" {
						name = id
					}
					fmt.Fprintf(w, "  %s\t%s\n", name, cli.FormatAmount(currency, totals[id]))
				}
				_ = w.Flush()
				fmt.Println()
			}

			// Trailing daily totals
			daily, err := report.DailyTotals(expenses, today, window)
			if err != nil {
				return err
			}
			fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Last %d days", window)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, day := range daily {
				bar := strings.Repeat("▇", barWidth(day, daily))
				fmt.Fprintf(w, "  %s\t%s\t%s\n",
					day.Date, cli.FormatAmount(currency, day.Total), cli.InfoStyle.Render(bar))
			}
			_ = w.Flush()

			return nil
		},
	}

	cmd.Flags().IntVar(&window, "days", report.DefaultWindowDays, "size of the trailing daily window")

	return cmd
}

// barWidth scales a day's total against the window maximum, capped at
// 30 cells.
func barWidth(day report.DailyTotal, daily []report.DailyTotal) int {
	maxTotal := daily[0].Total
	for _, d := range daily[1:] {
		if d.Total.GreaterThan(maxTotal) {
			maxTotal = d.Total
		}
	}
	if maxTotal.Sign() <= 0 || day.Total.Sign() <= 0 {
		return 0
	}
	w := day.Total.Div(maxTotal).Mul(decimalThirty).IntPart()
	if w < 1 {
		w = 1
	}
	return int(w)
}
