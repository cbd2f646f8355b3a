package model

import "slices"

// AppSettings is the root persisted aggregate: rates, the item catalog and
// the saved quote history.
type AppSettings struct {
	TargetHourly    float64          `json:"targetHourly"`
	Wages           []float64        `json:"wages"`
	GlobalMarkup    float64          `json:"globalMarkup"`
	PersistentItems []PersistentItem `json:"persistentItems"`
	SavedQuotes     []SavedQuote     `json:"savedQuotes"`
}

// SettingsPatch holds top-level fields to replace on AppSettings.
// A nil field is left untouched; a non-nil empty slice clears the collection.
type SettingsPatch struct {
	TargetHourly    *float64         `json:"targetHourly,omitempty"`
	Wages           []float64        `json:"wages,omitempty"`
	GlobalMarkup    *float64         `json:"globalMarkup,omitempty"`
	PersistentItems []PersistentItem `json:"persistentItems,omitempty"`
	SavedQuotes     []SavedQuote     `json:"savedQuotes,omitempty"`
}

// Merge returns a copy of s with the fields present in p replaced.
// Collections are swapped wholesale, never merged per element.
func (s AppSettings) Merge(p SettingsPatch) AppSettings {
	next := s
	if p.TargetHourly != nil {
		next.TargetHourly = *p.TargetHourly
	}
	if p.Wages != nil {
		next.Wages = p.Wages
	}
	if p.GlobalMarkup != nil {
		next.GlobalMarkup = *p.GlobalMarkup
	}
	if p.PersistentItems != nil {
		next.PersistentItems = p.PersistentItems
	}
	if p.SavedQuotes != nil {
		next.SavedQuotes = p.SavedQuotes
	}
	return next
}

// Patch returns a SettingsPatch that replaces every field with the values of s.
func (s AppSettings) Patch() SettingsPatch {
	n := s.normalized()
	return SettingsPatch{
		TargetHourly:    &n.TargetHourly,
		Wages:           n.Wages,
		GlobalMarkup:    &n.GlobalMarkup,
		PersistentItems: n.PersistentItems,
		SavedQuotes:     n.SavedQuotes,
	}
}

// FindItem looks up a catalog entry by id.
func (s AppSettings) FindItem(id string) (PersistentItem, bool) {
	for _, item := range s.PersistentItems {
		if item.ID == id {
			return item, true
		}
	}
	return PersistentItem{}, false
}

// FindSavedQuote looks up a saved quote by id.
func (s AppSettings) FindSavedQuote(id string) (SavedQuote, bool) {
	for _, q := range s.SavedQuotes {
		if q.ID == id {
			return q, true
		}
	}
	return SavedQuote{}, false
}

// normalized replaces nil collections with empty ones so that the
// serialized form always carries arrays.
func (s AppSettings) normalized() AppSettings {
	if s.Wages == nil {
		s.Wages = []float64{}
	}
	if s.PersistentItems == nil {
		s.PersistentItems = []PersistentItem{}
	}
	if s.SavedQuotes == nil {
		s.SavedQuotes = []SavedQuote{}
	}
	if slices.ContainsFunc(s.SavedQuotes, func(q SavedQuote) bool { return q.Items == nil }) {
		quotes := slices.Clone(s.SavedQuotes)
		for i := range quotes {
			if quotes[i].Items == nil {
				quotes[i].Items = []QuoteItem{}
			}
		}
		s.SavedQuotes = quotes
	}
	return s
}

// DefaultSettings returns the settings used on first start and whenever the
// persisted blob cannot be read.
func DefaultSettings() AppSettings {
	return AppSettings{
		TargetHourly:    100,
		Wages:           []float64{25},
		GlobalMarkup:    20,
		PersistentItems: []PersistentItem{},
		SavedQuotes:     []SavedQuote{},
	}
}
