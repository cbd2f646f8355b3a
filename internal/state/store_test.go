package state

import (
	"testing"

	"github.com/quotekit/backend/internal/model"
)

func TestStore_ApplyLeavesPreviousSnapshotIntact(t *testing.T) {
	s := NewStore(model.DefaultSettings())
	before := s.Get()

	hourly := 150.0
	after := s.Apply(model.SettingsPatch{TargetHourly: &hourly, Wages: []float64{30, 40}})

	if after.TargetHourly != 150 || len(after.Wages) != 2 {
		t.Errorf("unexpected snapshot after apply: %+v", after)
	}
	if before.TargetHourly != 100 || len(before.Wages) != 1 {
		t.Errorf("earlier snapshot changed: %+v", before)
	}
	if got := s.Get(); got.TargetHourly != 150 {
		t.Errorf("Get should return the applied snapshot, got %+v", got)
	}
}

func TestStore_ApplyKeepsUnlistedFields(t *testing.T) {
	initial := model.DefaultSettings()
	initial.SavedQuotes = []model.SavedQuote{{ID: "q1"}}
	s := NewStore(initial)

	markup := 5.0
	got := s.Apply(model.SettingsPatch{GlobalMarkup: &markup})

	if len(got.SavedQuotes) != 1 || got.SavedQuotes[0].ID != "q1" {
		t.Errorf("saved quotes should pass through, got %+v", got.SavedQuotes)
	}
}

func TestStore_QuoteStartsEmpty(t *testing.T) {
	s := NewStore(model.DefaultSettings())
	q := s.Quote()
	if q.Name != "" || q.LaborHours != 0 || q.Items == nil || len(q.Items) != 0 {
		t.Errorf("expected empty working quote, got %+v", q)
	}
}

func TestStore_SetQuote(t *testing.T) {
	s := NewStore(model.DefaultSettings())
	s.SetQuote(model.WorkingQuote{Name: "Fence", LaborHours: 3})

	q := s.Quote()
	if q.Name != "Fence" || q.LaborHours != 3 {
		t.Errorf("unexpected quote: %+v", q)
	}
	if q.Items == nil {
		t.Error("nil items should be normalised to an empty list")
	}
}
