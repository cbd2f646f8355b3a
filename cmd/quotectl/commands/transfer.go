package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var outPath string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export settings or saved quotes as JSON",
		Long: `Export settings or saved quotes as JSON, to stdout or to --out.

Examples:
  quotectl export settings --out backup.json
  quotectl export quotes > quotes.json`,
	}

	run := func(kind string, export func() ([]byte, error)) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			data, err := export()
			if err != nil {
				return fmt.Errorf("export %s: %w", kind, err)
			}
			if outPath == "" {
				return a.out.Raw(data)
			}
			if err := writeFile(cmd.Context(), outPath, bytes.NewReader(data)); err != nil {
				return err
			}
			// stdout may be redirected into the export itself
			fmt.Fprintf(cmd.ErrOrStderr(), "%s exported to %s\n", kind, outPath)
			return nil
		}
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Export all settings, the catalog and saved quotes",
		Args:  cobra.NoArgs,
		RunE:  run("settings", a.exportSettings),
	}
	quotesCmd := &cobra.Command{
		Use:   "quotes",
		Short: "Export saved quotes only",
		Args:  cobra.NoArgs,
		RunE:  run("saved quotes", a.exportSavedQuotes),
	}

	exportCmd.PersistentFlags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	exportCmd.AddCommand(settingsCmd, quotesCmd)
	return exportCmd
}

func newImportCmd(a *app) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import settings or saved quotes from JSON",
	}

	settingsCmd := &cobra.Command{
		Use:   "settings <file>",
		Short: "Replace all settings with an exported file",
		Long: `Replace all settings, the catalog and saved quotes with the contents of
an exported settings file. Nothing changes if the file is not valid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			s, err := a.transfer.ImportSettings(cmd.Context(), data)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.out.JSON(s)
			}
			a.out.Success("imported settings: %d items, %d saved quotes", len(s.PersistentItems), len(s.SavedQuotes))
			return nil
		},
	}

	quotesCmd := &cobra.Command{
		Use:   "quotes <file>",
		Short: "Merge saved quotes from an exported file",
		Long: `Merge saved quotes from an exported file. A quote whose id already
exists is replaced by the imported one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			before := len(a.quotes.Saved())
			quotes, err := a.transfer.ImportSavedQuotes(cmd.Context(), data)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.out.JSON(quotes)
			}
			a.out.Success("imported saved quotes: %d total (%d new)", len(quotes), len(quotes)-before)
			return nil
		},
	}

	importCmd.AddCommand(settingsCmd, quotesCmd)
	return importCmd
}

func (a *app) exportSettings() ([]byte, error)    { return a.transfer.ExportSettings() }
func (a *app) exportSavedQuotes() ([]byte, error) { return a.transfer.ExportSavedQuotes() }
