package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quotekit/backend/internal/export"
	"github.com/quotekit/backend/internal/model"
)

func newSettingsCmd(a *app) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change pricing settings",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show rates, wages and catalog size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.catalog.Settings()
			if a.jsonOutput {
				return a.out.JSON(s)
			}
			a.out.Section("Pricing settings")
			printSettings(a, s)
			return nil
		},
	}

	var (
		targetHourly float64
		globalMarkup float64
	)
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change the target hourly rate or global markup",
		Long: `Change top-level pricing settings. Only the flags given are changed.

Examples:
  quotectl settings set --target-hourly 120
  quotectl settings set --global-markup 25`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.SettingsPatch
			if cmd.Flags().Changed("target-hourly") {
				patch.TargetHourly = &targetHourly
			}
			if cmd.Flags().Changed("global-markup") {
				patch.GlobalMarkup = &globalMarkup
			}
			if patch.TargetHourly == nil && patch.GlobalMarkup == nil {
				return fmt.Errorf("nothing to change: pass --target-hourly or --global-markup")
			}

			s, err := a.catalog.UpdateSettings(cmd.Context(), patch)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.out.JSON(s)
			}
			a.out.Success("settings updated")
			printSettings(a, s)
			return nil
		},
	}
	setCmd.Flags().Float64Var(&targetHourly, "target-hourly", 0, "Hourly rate charged to customers")
	setCmd.Flags().Float64Var(&globalMarkup, "global-markup", 0, "Default material markup in percent")

	var confirm bool
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all settings, the catalog and saved quotes",
		Long: `Delete the stored settings, the catalog and every saved quote, and start
again from the defaults. Export first if you may want them back.

Examples:
  quotectl export settings --out backup.json
  quotectl settings reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("reset deletes the catalog and all saved quotes: pass --yes to confirm")
			}
			s, err := a.catalog.Reset(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.out.JSON(s)
			}
			a.out.Success("settings reset to defaults")
			printSettings(a, s)
			return nil
		},
	}
	resetCmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the reset")

	settingsCmd.AddCommand(showCmd, setCmd, resetCmd)
	return settingsCmd
}

func printSettings(a *app, s model.AppSettings) {
	wages := make([]string, len(s.Wages))
	for i, w := range s.Wages {
		wages[i] = fmt.Sprintf("[%d] %s", i, export.Money(w))
	}
	if len(wages) == 0 {
		wages = append(wages, "(none)")
	}

	a.out.Table([]string{"SETTING", "VALUE"}, [][]string{
		{"Target hourly", export.Money(s.TargetHourly)},
		{"Wages", strings.Join(wages, ", ")},
		{"Global markup", export.Percent(s.GlobalMarkup)},
		{"Catalog items", fmt.Sprint(len(s.PersistentItems))},
		{"Saved quotes", fmt.Sprint(len(s.SavedQuotes))},
	})
}
