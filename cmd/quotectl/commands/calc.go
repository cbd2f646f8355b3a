package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quotekit/backend/internal/model"
	"github.com/quotekit/backend/internal/storage"
)

func newCalcCmd(a *app) *cobra.Command {
	var (
		hours    float64
		items    []string
		name     string
		from     string
		save     bool
		xlsxPath string
	)

	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Price a quote",
		Long: `Price a quote from labor hours and catalog items and print its summary.

Items are given as <item>=<quantity>, where <item> is an id or a unique name.
A quantity of 1 is assumed when it is omitted.

Examples:
  quotectl calc --hours 8 --item "Oak board=2" --item Nails=200
  quotectl calc --hours 8 --item "Oak board=2" --name "Kitchen shelves" --save
  quotectl calc --from 5f0c... --hours 10 --xlsx quote.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if from != "" {
				if _, err := a.quotes.Load(from); err != nil {
					return fmt.Errorf("saved quote %q: %w", from, err)
				}
			}
			patch := model.QuotePatch{}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("hours") {
				patch.LaborHours = &hours
			}
			a.quotes.UpdateQuote(patch)

			settings := a.catalog.Settings()
			for _, spec := range items {
				ref, qty, err := parseItemSpec(spec)
				if err != nil {
					return err
				}
				item, err := resolveItem(settings, ref)
				if err != nil {
					return err
				}
				if _, err := a.quotes.AddItem(item.ID); err != nil {
					return err
				}
				if _, err := a.quotes.SetQuantity(item.ID, qty); err != nil {
					return err
				}
			}

			if save {
				saved, err := a.quotes.Save(ctx)
				if err != nil {
					return err
				}
				if !a.jsonOutput {
					a.out.Success("saved %q (%s)", saved.Name, saved.ID)
				}
			}

			if xlsxPath != "" {
				var buf bytes.Buffer
				if err := a.transfer.Workbook(&buf); err != nil {
					return fmt.Errorf("render workbook: %w", err)
				}
				if err := writeFile(ctx, xlsxPath, &buf); err != nil {
					return err
				}
				if !a.jsonOutput {
					a.out.Success("workbook written to %s", xlsxPath)
				}
			}

			if a.jsonOutput {
				return a.out.JSON(map[string]any{
					"quote":  a.quotes.Quote(),
					"totals": a.quotes.Totals(),
				})
			}
			a.out.Text(a.transfer.Summary())
			return nil
		},
	}

	calcCmd.Flags().Float64Var(&hours, "hours", 0, "Labor hours")
	calcCmd.Flags().StringArrayVar(&items, "item", nil, "Catalog item as <item>=<quantity> (repeatable)")
	calcCmd.Flags().StringVar(&name, "name", "", "Quote name")
	calcCmd.Flags().StringVar(&from, "from", "", "Start from a saved quote id")
	calcCmd.Flags().BoolVar(&save, "save", false, "Save the quote (requires a name)")
	calcCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Also write the quote as an XLSX workbook to this path")
	return calcCmd
}

// parseItemSpec splits "<item>=<quantity>"; the quantity defaults to 1.
func parseItemSpec(spec string) (string, float64, error) {
	ref, qty, found := strings.Cut(spec, "=")
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", 0, fmt.Errorf("--item %q: missing item", spec)
	}
	if !found {
		return ref, 1, nil
	}
	q, err := parseAmount(strings.TrimSpace(qty))
	if err != nil {
		return "", 0, fmt.Errorf("--item %q: %w", spec, err)
	}
	return ref, q, nil
}

// writeFile stores r at path through the local storage layer, so a failed
// write never leaves a truncated file behind.
func writeFile(ctx context.Context, path string, r io.Reader) error {
	dir, base := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	if err := storage.NewLocalStorage(dir).Save(ctx, base, r); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
