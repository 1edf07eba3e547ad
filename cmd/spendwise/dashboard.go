package main

import (
	"github.com/spf13/cobra"

	"spendwise/internal/tui"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive outstanding-balance dashboard",
		Long: `Open a terminal dashboard showing the outstanding unpaid balance per
category. Move with the arrow keys and press s to settle the selected
category up to today.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			return tui.Run(store)
		},
	}
}
