package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"spendwise/internal/cli"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all data and reseed defaults",
		Long: `Reset deletes every expense, category, and setting, then restores the
default category set. This is a destructive operation.`,
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

			if !force {
				fmt.Fprintf(os.Stdout, "This will delete %d expenses and all categories and settings.\n", len(expenses))
				fmt.Fprint(os.Stdout, "Are you sure you want to continue? [y/N]: ")

				var response string
				_, _ = fmt.Scanln(&response)
				if !strings.EqualFold(strings.TrimSpace(response), "y") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := store.ResetAll(ctx); err != nil {
				return fmt.Errorf("failed to reset: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Ledger reset; default categories restored."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
