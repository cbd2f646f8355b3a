package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quotekit/backend/internal/export"
	"github.com/quotekit/backend/internal/model"
)

func newSavedCmd(a *app) *cobra.Command {
	savedCmd := &cobra.Command{
		Use:   "saved",
		Short: "Browse saved quotes",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved quotes, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quotes := a.quotes.Saved()
			if a.jsonOutput {
				if quotes == nil {
					quotes = []model.SavedQuote{}
				}
				return a.out.JSON(quotes)
			}
			if len(quotes) == 0 {
				a.out.Muted("no saved quotes")
				return nil
			}
			rows := make([][]string, 0, len(quotes))
			for _, q := range quotes {
				rows = append(rows, []string{q.ID, q.Date, q.Name, fmt.Sprint(len(q.Items)), export.Money(q.TotalPrice)})
			}
			a.out.Table([]string{"ID", "DATE", "NAME", "ITEMS", "TOTAL"}, rows)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved quote's summary",
		Long: `Print a saved quote's summary. Line items are priced with the current
catalog; the total is the price recorded when the quote was saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonOutput {
				q, ok := a.catalog.Settings().FindSavedQuote(args[0])
				if !ok {
					return fmt.Errorf("saved quote %q: not found", args[0])
				}
				return a.out.JSON(q)
			}
			text, err := a.transfer.SavedSummary(args[0])
			if err != nil {
				return fmt.Errorf("saved quote %q: %w", args[0], err)
			}
			a.out.Text(text)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.quotes.DeleteSaved(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("saved quote %q: %w", args[0], err)
			}
			a.out.Success("deleted %s", args[0])
			return nil
		},
	}

	savedCmd.AddCommand(listCmd, showCmd, deleteCmd)
	return savedCmd
}
