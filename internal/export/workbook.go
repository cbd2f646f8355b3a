package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Quote"

// WriteWorkbook writes s as a single-sheet XLSX workbook to w.
// Amounts are rounded to two decimals; the quote itself is not modified.
func WriteWorkbook(w io.Writer, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("workbook: rename sheet: %w", err)
	}

	title := s.Name
	if title == "" {
		title = "Untitled quote"
	}

	rows := [][]any{
		{"Quote", title},
		{"Date", s.Date},
		{},
		{"Labor hours", amount(s.LaborHours)},
		{"Labor cost", amount(s.LaborCost)},
		{"Labor price", amount(s.LaborPrice)},
		{},
		{"Item", "Quantity", "Unit cost", "Markup %", "Line cost", "Line price"},
	}
	for _, l := range s.Lines {
		rows = append(rows, []any{l.Name, amount(l.Quantity), amount(l.UnitCost), amount(l.Markup), amount(l.Cost), amount(l.Price)})
	}
	rows = append(rows,
		[]any{},
		[]any{"Total cost", amount(s.TotalCost)},
		[]any{"Total price", amount(s.TotalPrice)},
		[]any{"Net profit", amount(s.Profit)},
		[]any{"Margin %", amount(s.Margin)},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("workbook: cell: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("workbook: row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 24); err != nil {
		return fmt.Errorf("workbook: col width: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("workbook: write: %w", err)
	}
	return nil
}

func amount(v float64) any {
	if !finite(v) {
		return "n/a"
	}
	return round2(v).InexactFloat64()
}
