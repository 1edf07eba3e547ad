package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"spendwise/internal/cli"
	"spendwise/internal/common"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage user preferences",
		Long:  `Read and write preferences such as the currency symbol and theme.`,
	}

	cmd.AddCommand(getSettingCmd())
	cmd.AddCommand(setSettingCmd())
	cmd.AddCommand(listSettingsCmd())

	return cmd
}

func getSettingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a setting value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			value, err := store.GetSetting(ctx, args[0])
			if errors.Is(err, common.ErrNotFound) {
				fmt.Println(cli.SubtleStyle.Render("(not set)"))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get setting: %w", err)
			}

			fmt.Println(value)
			return nil
		},
	}
}

func setSettingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SetSetting(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to set setting: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Set %s = %s", args[0], args[1])))
			return nil
		},
	}
}

func listSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			settings, err := store.ListSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to list settings: %w", err)
			}

			if len(settings) == 0 {
				fmt.Println(cli.InfoStyle.Render("No settings stored; defaults apply."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()
			for _, setting := range settings {
				fmt.Fprintf(w, "%s\t%s\n", setting.Key, setting.Value)
			}
			return nil
		},
	}
}
