package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quotekit/backend/internal/export"
	"github.com/quotekit/backend/internal/model"
	"github.com/quotekit/backend/internal/service"
)

func newItemCmd(a *app) *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the material catalog",
		Long: `Manage the persistent material catalog.

Items can be referred to by id or by their (unique) name.`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.catalog.Settings()
			if a.jsonOutput {
				return a.out.JSON(s.PersistentItems)
			}
			if len(s.PersistentItems) == 0 {
				a.out.Muted("catalog is empty")
				return nil
			}
			rows := make([][]string, 0, len(s.PersistentItems))
			for _, it := range s.PersistentItems {
				markup := export.Percent(it.Markup(s.GlobalMarkup))
				if !it.UseCustomMarkup {
					markup += " (global)"
				}
				rows = append(rows, []string{it.ID, it.Name, export.Money(it.Cost), markup})
			}
			a.out.Table([]string{"ID", "NAME", "COST", "MARKUP"}, rows)
			return nil
		},
	}

	var (
		name   string
		cost   float64
		markup float64
		global bool
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a catalog item",
		Long: `Add a catalog item. Without --markup the global markup applies.

Examples:
  quotectl item add --name "Oak board" --cost 50
  quotectl item add --name "Brass hinge" --cost 4.5 --markup 60`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.PersistentItemInput{Name: name, Cost: cost}
			if cmd.Flags().Changed("markup") {
				in.UseCustomMarkup = true
				in.CustomMarkup = markup
			}
			item, err := a.catalog.AddItem(cmd.Context(), in)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.out.JSON(item)
			}
			a.out.Success("added %s (%s)", displayName(item.Name), item.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Item name")
	addCmd.Flags().Float64Var(&cost, "cost", 0, "Unit cost")
	addCmd.Flags().Float64Var(&markup, "markup", 0, "Custom markup in percent")

	updateCmd := &cobra.Command{
		Use:   "update <item>",
		Short: "Change a catalog item",
		Long: `Change a catalog item. Only the flags given are changed.
--markup switches the item to a custom markup, --global switches it back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("markup") && global {
				return fmt.Errorf("--markup and --global are mutually exclusive")
			}
			item, err := resolveItem(a.catalog.Settings(), args[0])
			if err != nil {
				return err
			}

			var patch model.PersistentItemPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("cost") {
				patch.Cost = &cost
			}
			if cmd.Flags().Changed("markup") {
				custom := true
				patch.UseCustomMarkup = &custom
				patch.CustomMarkup = &markup
			}
			if global {
				custom := false
				patch.UseCustomMarkup = &custom
			}

			updated, err := a.catalog.UpdateItem(cmd.Context(), item.ID, patch)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.out.JSON(updated)
			}
			a.out.Success("updated %s", displayName(updated.Name))
			return nil
		},
	}
	updateCmd.Flags().StringVar(&name, "name", "", "New name")
	updateCmd.Flags().Float64Var(&cost, "cost", 0, "New unit cost")
	updateCmd.Flags().Float64Var(&markup, "markup", 0, "Custom markup in percent")
	updateCmd.Flags().BoolVar(&global, "global", false, "Use the global markup")

	deleteCmd := &cobra.Command{
		Use:   "delete <item>",
		Short: "Remove a catalog item",
		Long: `Remove a catalog item. Saved quotes that use it keep their reference;
the item simply contributes nothing to their recalculated figures.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveItem(a.catalog.Settings(), args[0])
			if err != nil {
				return err
			}
			if err := a.catalog.DeleteItem(cmd.Context(), item.ID); err != nil {
				return err
			}
			a.out.Success("deleted %s", displayName(item.Name))
			return nil
		},
	}

	itemCmd.AddCommand(listCmd, addCmd, updateCmd, deleteCmd)
	return itemCmd
}

// resolveItem finds a catalog item by id, or by case-insensitive name when
// exactly one item carries it.
func resolveItem(s model.AppSettings, ref string) (model.PersistentItem, error) {
	if it, ok := s.FindItem(ref); ok {
		return it, nil
	}
	var matches []model.PersistentItem
	for _, it := range s.PersistentItems {
		if strings.EqualFold(it.Name, ref) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return model.PersistentItem{}, fmt.Errorf("item %q: %w", ref, service.ErrNotFound)
	default:
		return model.PersistentItem{}, fmt.Errorf("item %q is ambiguous: %d items share that name, use the id", ref, len(matches))
	}
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
