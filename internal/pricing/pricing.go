// Package pricing computes labor and material figures for a quote.
// Every function is pure; inputs are never modified and nothing is rounded.
package pricing

import "github.com/quotekit/backend/internal/model"

// LaborCost returns the wage expense of hours worked, with the hours split
// evenly across every wage entry. It is 0 when there are no wages or no hours.
func LaborCost(wages []float64, hours float64) float64 {
	if len(wages) == 0 || hours == 0 {
		return 0
	}
	share := hours / float64(len(wages))
	total := 0.0
	for _, w := range wages {
		total += w * share
	}
	return total
}

// LaborPrice returns the amount billed for hours at the target hourly rate.
func LaborPrice(hours, targetHourly float64) float64 {
	return hours * targetHourly
}

// Line is one resolved material entry of a quote.
type Line struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UnitCost float64 `json:"unitCost"`
	Markup   float64 `json:"markup"`
	Cost     float64 `json:"cost"`
	Price    float64 `json:"price"`
}

// Totals is the material cost and billable price of a quote.
type Totals struct {
	Cost  float64 `json:"cost"`
	Price float64 `json:"price"`
}

// MaterialLines resolves quote items against the catalog. Items whose id is
// not in the catalog are skipped.
func MaterialLines(items []model.QuoteItem, catalog []model.PersistentItem, globalMarkup float64) []Line {
	byID := make(map[string]model.PersistentItem, len(catalog))
	for _, p := range catalog {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}

	lines := make([]Line, 0, len(items))
	for _, qi := range items {
		p, ok := byID[qi.ItemID]
		if !ok {
			continue
		}
		markup := p.Markup(globalMarkup)
		cost := p.Cost * qi.Quantity
		lines = append(lines, Line{
			ItemID:   p.ID,
			Name:     p.Name,
			Quantity: qi.Quantity,
			UnitCost: p.Cost,
			Markup:   markup,
			Cost:     cost,
			Price:    cost * (1 + markup/100),
		})
	}
	return lines
}

// MaterialTotals sums cost and price over the resolvable quote items.
func MaterialTotals(items []model.QuoteItem, catalog []model.PersistentItem, globalMarkup float64) Totals {
	var t Totals
	for _, l := range MaterialLines(items, catalog, globalMarkup) {
		t.Cost += l.Cost
		t.Price += l.Price
	}
	return t
}
