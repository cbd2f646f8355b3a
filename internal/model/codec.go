package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSettings is returned when a settings blob does not have the
// AppSettings shape.
var ErrInvalidSettings = errors.New("invalid settings data")

// ErrInvalidSavedQuotes is returned when a payload is not a list of saved quotes.
var ErrInvalidSavedQuotes = errors.New("invalid saved quotes data")

var validate = validator.New()

// settingsBlob enumerates the recognised top-level fields. Pointers tell an
// absent field apart from a zero one.
type settingsBlob struct {
	TargetHourly    *float64          `json:"targetHourly"`
	Wages           *[]float64        `json:"wages"`
	GlobalMarkup    *float64          `json:"globalMarkup"`
	PersistentItems *[]PersistentItem `json:"persistentItems"`
	SavedQuotes     *[]SavedQuote     `json:"savedQuotes"`
}

// DecodeSettings parses a persisted or exported settings blob.
//
// savedQuotes was added after the first release and defaults to an empty
// list when absent. Every other top-level field must be present and
// well-typed. Saved quotes must carry an id, the same as in a saved-quotes
// export; other nested fields are not validated beyond their JSON types.
func DecodeSettings(data []byte) (AppSettings, error) {
	var blob settingsBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return AppSettings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	var missing []string
	if blob.TargetHourly == nil {
		missing = append(missing, "targetHourly")
	}
	if blob.Wages == nil {
		missing = append(missing, "wages")
	}
	if blob.GlobalMarkup == nil {
		missing = append(missing, "globalMarkup")
	}
	if blob.PersistentItems == nil {
		missing = append(missing, "persistentItems")
	}
	if len(missing) > 0 {
		return AppSettings{}, fmt.Errorf("%w: missing %v", ErrInvalidSettings, missing)
	}

	s := AppSettings{
		TargetHourly:    *blob.TargetHourly,
		Wages:           *blob.Wages,
		GlobalMarkup:    *blob.GlobalMarkup,
		PersistentItems: *blob.PersistentItems,
	}
	if blob.SavedQuotes != nil {
		if err := ValidateSavedQuotes(*blob.SavedQuotes); err != nil {
			return AppSettings{}, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
		s.SavedQuotes = *blob.SavedQuotes
	}
	return s.normalized(), nil
}

// EncodeSettings serializes settings in the persisted/exported format.
func EncodeSettings(s AppSettings) ([]byte, error) {
	return json.MarshalIndent(s.normalized(), "", "  ")
}

// DecodeSavedQuotes parses a saved-quotes-only export. The payload must be a
// JSON array and every entry must carry an id.
func DecodeSavedQuotes(data []byte) ([]SavedQuote, error) {
	var quotes []SavedQuote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSavedQuotes, err)
	}
	if quotes == nil {
		return nil, fmt.Errorf("%w: expected an array", ErrInvalidSavedQuotes)
	}
	if err := ValidateSavedQuotes(quotes); err != nil {
		return nil, err
	}
	for i := range quotes {
		if quotes[i].Items == nil {
			quotes[i].Items = []QuoteItem{}
		}
	}
	return quotes, nil
}

// ValidateSavedQuotes reports the first saved quote that a saved-quotes
// import would reject.
func ValidateSavedQuotes(quotes []SavedQuote) error {
	for i, q := range quotes {
		if err := validate.Struct(q); err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrInvalidSavedQuotes, i, err)
		}
	}
	return nil
}

// EncodeSavedQuotes serializes a saved-quotes-only export.
func EncodeSavedQuotes(quotes []SavedQuote) ([]byte, error) {
	return json.MarshalIndent(AppSettings{SavedQuotes: quotes}.normalized().SavedQuotes, "", "  ")
}

// MergeSavedQuotes combines two saved quote lists keyed by id. Entries are
// taken from primary first, then secondary; on an id collision the first
// occurrence wins and keeps its position.
func MergeSavedQuotes(primary, secondary []SavedQuote) []SavedQuote {
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	merged := make([]SavedQuote, 0, len(primary)+len(secondary))
	for _, list := range [][]SavedQuote{primary, secondary} {
		for _, q := range list {
			if _, ok := seen[q.ID]; ok {
				continue
			}
			seen[q.ID] = struct{}{}
			merged = append(merged, q)
		}
	}
	return merged
}
