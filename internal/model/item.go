package model

// PersistentItem is a catalog entry that can be added to quotes repeatedly.
type PersistentItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Cost            float64 `json:"cost"`
	UseCustomMarkup bool    `json:"useCustomMarkup"`
	CustomMarkup    float64 `json:"customMarkup"`
}

// Markup returns the percentage applied on top of Cost, falling back to
// globalMarkup unless the item overrides it.
func (p PersistentItem) Markup(globalMarkup float64) float64 {
	if p.UseCustomMarkup {
		return p.CustomMarkup
	}
	return globalMarkup
}

// PersistentItemInput is the payload for a new catalog entry. Zero values are
// valid: an item may be added blank and filled in later.
type PersistentItemInput struct {
	Name            string  `json:"name"`
	Cost            float64 `json:"cost"`
	UseCustomMarkup bool    `json:"useCustomMarkup"`
	CustomMarkup    float64 `json:"customMarkup"`
}

// PersistentItemPatch holds fields that can be updated on a catalog entry.
type PersistentItemPatch struct {
	Name            *string  `json:"name"`
	Cost            *float64 `json:"cost"`
	UseCustomMarkup *bool    `json:"useCustomMarkup"`
	CustomMarkup    *float64 `json:"customMarkup"`
}

// Apply returns a copy of p with the patch fields applied.
func (p PersistentItem) Apply(patch PersistentItemPatch) PersistentItem {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Cost != nil {
		p.Cost = *patch.Cost
	}
	if patch.UseCustomMarkup != nil {
		p.UseCustomMarkup = *patch.UseCustomMarkup
	}
	if patch.CustomMarkup != nil {
		p.CustomMarkup = *patch.CustomMarkup
	}
	return p
}
