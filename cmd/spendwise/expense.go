package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"spendwise/internal/cli"
	"spendwise/internal/model"
	"spendwise/internal/report"
	"spendwise/internal/service"
)

func expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage expense records",
		Long:  `Add, list, edit, and delete expenses in the ledger.`,
	}

	cmd.AddCommand(addExpenseCmd())
	cmd.AddCommand(listExpensesCmd())
	cmd.AddCommand(editExpenseCmd())
	cmd.AddCommand(deleteExpenseCmd())

	return cmd
}

func addExpenseCmd() *cobra.Command {
	var (
		amountStr string
		category  string
		date      string
		note      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new expense",
		Long:  `Record a new expense. New expenses start unpaid.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}

			cat, err := resolveCategory(ctx, store, category)
			if err != nil {
				return err
			}
			if date == "" {
				date = model.Today()
			}

			expense, err := store.AddExpense(ctx, amount, cat.ID, date, note)
			if err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}

			currency := currencySymbol(ctx, store)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s to %s on %s",
				cli.FormatAmount(currency, expense.Amount), cat.Name, expense.Date)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "expense amount (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or name (required)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "expense date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "optional note")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func listExpensesCmd() *cobra.Command {
	var (
		status   string
		category string
		from     string
		to       string
		sortKey  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long: `Display expenses grouped by date, newest first. Filters compose:
status, category, and date range all apply together.`,
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
			if category != "" {
				cat, catErr := resolveCategory(ctx, store, category)
				if catErr != nil {
					return catErr
				}
				filter.CategoryID = cat.ID
			}

			filtered := report.Apply(expenses, filter)
			filtered, err = applySort(filtered, sortKey)
			if err != nil {
				return err
			}

			names, err := categoryNames(ctx, store)
			if err != nil {
				return err
			}
			currency := currencySymbol(ctx, store)

			if len(filtered) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found."))
				return nil
			}

			printExpenses(filtered, names, currency, sortKey == "" || strings.HasPrefix(sortKey, "date"))

			total := report.Sum(filtered)
			fmt.Printf("\n%d records · %s\n", len(filtered),
				cli.BoldStyle.Render(cli.FormatAmount(currency, total)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "all", "filter by status (all, paid, unpaid)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category id or name")
	cmd.Flags().StringVar(&from, "from", "", "inclusive start date YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "inclusive end date YYYY-MM-DD")
	cmd.Flags().StringVar(&sortKey, "sort", "date-desc", "sort order (date-desc, date-asc, amount-desc, amount-asc)")

	return cmd
}

// applySort re-orders expenses according to the list sort flag.
func applySort(expenses []model.Expense, sortKey string) ([]model.Expense, error) {
	switch sortKey {
	case "", "date-desc":
		return report.SortByDate(expenses, false), nil
	case "date-asc":
		return report.SortByDate(expenses, true), nil
	case "amount-desc":
		return report.SortByAmount(expenses, false), nil
	case "amount-asc":
		return report.SortByAmount(expenses, true), nil
	default:
		return nil, fmt.Errorf("invalid sort %q", sortKey)
	}
}

// printExpenses writes expenses to stdout, grouped by date with a
// per-day subtotal when date-sorted, flat otherwise.
func printExpenses(expenses []model.Expense, names map[string]string, currency string, grouped bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	writeRow := func(e *model.Expense) {
		name := names[e.CategoryID]
		if name == "" {
			name = e.CategoryID
		}
		statusIcon := cli.WarningStyle.Render(cli.UnpaidIcon + " unpaid")
		if e.IsPaid() {
			statusIcon = cli.SuccessStyle.Render(cli.PaidIcon + " paid " + e.PaidDate)
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID[:8], e.Date, name, cli.FormatAmount(currency, e.Amount), statusIcon, e.Note)
	}

	if !grouped {
		for i := range expenses {
			writeRow(&expenses[i])
		}
		return
	}

	for _, group := range report.GroupByDate(expenses) {
		subtotal := report.Sum(group.Expenses)
		fmt.Fprintf(w, "%s\t\t\t%s\t\t\n",
			cli.BoldStyle.Render(group.Date),
			cli.SubtleStyle.Render(cli.FormatAmount(currency, subtotal)))
		for i := range group.Expenses {
			writeRow(&group.Expenses[i])
		}
	}
}

func editExpenseCmd() *cobra.Command {
	var (
		amountStr string
		category  string
		date      string
		note      string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expense",
		Long: `Update the amount, category, date, or note of an expense. Only the
flags you pass change; paid/unpaid status is never touched by edits.
Use the settle command for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expense, err := findExpense(ctx, store, args[0])
			if err != nil {
				return err
			}

			if amountStr != "" {
				amount, amtErr := decimal.NewFromString(amountStr)
				if amtErr != nil {
					return fmt.Errorf("invalid amount %q: %w", amountStr, amtErr)
				}
				expense.Amount = amount
			}
			if category != "" {
				cat, catErr := resolveCategory(ctx, store, category)
				if catErr != nil {
					return catErr
				}
				expense.CategoryID = cat.ID
			}
			if date != "" {
				expense.Date = date
			}
			if cmd.Flags().Changed("note") {
				expense.Note = note
			}

			updated, err := store.UpdateExpense(ctx, expense)
			if err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			currency := currencySymbol(ctx, store)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated expense %s (%s on %s)",
				updated.ID[:8], cli.FormatAmount(currency, updated.Amount), updated.Date)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&amountStr, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category id or name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new date YYYY-MM-DD")
	cmd.Flags().StringVarP(&note, "note", "n", "", "new note")

	return cmd
}

func deleteExpenseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Long:  `Permanently remove an expense record from the ledger.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			expense, err := findExpense(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := store.DeleteExpense(ctx, expense.ID); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted expense %s", expense.ID[:8])))
			return nil
		},
	}
}

// findExpense looks up an expense by full id or unambiguous prefix,
// since list output shows shortened ids.
func findExpense(ctx context.Context, store service.Storage, idOrPrefix string) (*model.Expense, error) {
	expense, err := store.GetExpenseByID(ctx, idOrPrefix)
	if err == nil {
		return expense, nil
	}

	expenses, listErr := store.ListExpenses(ctx)
	if listErr != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", listErr)
	}

	var match *model.Expense
	for i := range expenses {
		if strings.HasPrefix(expenses[i].ID, idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("expense id prefix %q is ambiguous", idOrPrefix)
			}
			match = &expenses[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no expense matches %q", idOrPrefix)
	}
	return match, nil
}
