package model

// SavedQuoteDateLayout is the display format stored in SavedQuote.Date.
const SavedQuoteDateLayout = "2006-01-02 15:04"

// QuoteItem references a catalog entry by id with a per-quote quantity.
// The reference may dangle once the catalog entry is deleted.
type QuoteItem struct {
	ItemID   string  `json:"itemId"`
	Quantity float64 `json:"quantity"`
}

// SavedQuote is a snapshot of a finished quote. TotalPrice is the price at
// save time and is never recomputed.
type SavedQuote struct {
	ID         string      `json:"id" validate:"required"`
	Name       string      `json:"name"`
	Date       string      `json:"date"`
	Items      []QuoteItem `json:"items"`
	LaborHours float64     `json:"laborHours"`
	TotalPrice float64     `json:"totalPrice"`
}

// WorkingQuote is the transient, unsaved quote being edited.
type WorkingQuote struct {
	Name       string      `json:"name"`
	LaborHours float64     `json:"laborHours"`
	Items      []QuoteItem `json:"items"`
}

// QuotePatch holds the scalar fields of a WorkingQuote that can be edited.
type QuotePatch struct {
	Name       *string  `json:"name"`
	LaborHours *float64 `json:"laborHours"`
}

// IndexOf returns the position of itemID in the quote, or -1.
func (q WorkingQuote) IndexOf(itemID string) int {
	for i, it := range q.Items {
		if it.ItemID == itemID {
			return i
		}
	}
	return -1
}

// QuoteTotals are the figures derived from a quote and the current settings.
type QuoteTotals struct {
	LaborCost     float64 `json:"laborCost"`
	LaborPrice    float64 `json:"laborPrice"`
	MaterialCost  float64 `json:"materialCost"`
	MaterialPrice float64 `json:"materialPrice"`
	TotalCost     float64 `json:"totalCost"`
	TotalPrice    float64 `json:"totalPrice"`
	Profit        float64 `json:"profit"`
	Margin        float64 `json:"margin"`
}
