package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quotekit/backend/internal/export"
)

func newWageCmd(a *app) *cobra.Command {
	wageCmd := &cobra.Command{
		Use:   "wage",
		Short: "Manage the wages paid to workers",
		Long: `Manage the wage list. Labor cost uses the average of all wages;
with no wages labor costs nothing.

Wages are addressed by their position as shown by "quotectl settings show".`,
	}

	addCmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Append a wage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wage, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			wages, err := a.catalog.AddWage(cmd.Context(), wage)
			if err != nil {
				return err
			}
			return printWages(a, wages)
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update <index> <amount>",
		Short: "Change the wage at a position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			wage, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			wages, err := a.catalog.UpdateWage(cmd.Context(), index, wage)
			if err != nil {
				return err
			}
			return printWages(a, wages)
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Remove the wage at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			wages, err := a.catalog.DeleteWage(cmd.Context(), index)
			if err != nil {
				return err
			}
			return printWages(a, wages)
		},
	}

	wageCmd.AddCommand(addCmd, updateCmd, deleteCmd)
	return wageCmd
}

func printWages(a *app, wages []float64) error {
	if a.jsonOutput {
		return a.out.JSON(map[string]any{"wages": wages})
	}
	if len(wages) == 0 {
		a.out.Warning("no wages left: labor cost is now zero")
		return nil
	}
	rows := make([][]string, len(wages))
	for i, w := range wages {
		rows[i] = []string{strconv.Itoa(i), export.Money(w)}
	}
	a.out.Table([]string{"#", "WAGE"}, rows)
	return nil
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	return v, nil
}

func parseIndex(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a wage position", s)
	}
	return v, nil
}
