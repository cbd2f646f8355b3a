package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quotekit/backend/internal/model"
)

func TestTransferService_ImportSettings(t *testing.T) {
	ws, repo := newTestWorkspace(model.DefaultSettings())
	svc := NewTransferService(ws)

	data := []byte(`{"targetHourly":75,"wages":[20],"globalMarkup":10,"persistentItems":[{"id":"x","name":"Glue","cost":3,"useCustomMarkup":false,"customMarkup":0}]}`)
	got, err := svc.ImportSettings(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TargetHourly != 75 || got.GlobalMarkup != 10 || len(got.PersistentItems) != 1 {
		t.Errorf("unexpected settings: %+v", got)
	}
	if got.SavedQuotes == nil || len(got.SavedQuotes) != 0 {
		t.Errorf("expected empty saved quotes after migration, got %#v", got.SavedQuotes)
	}
	if persisted := repo.lastSaved(t); persisted.TargetHourly != 75 {
		t.Errorf("expected import to be persisted, got %+v", persisted)
	}
}

func TestTransferService_ImportSettings_InvalidLeavesStateUntouched(t *testing.T) {
	initial := model.DefaultSettings()
	initial.SavedQuotes = []model.SavedQuote{{ID: "q1", Name: "kept"}}
	ws, repo := newTestWorkspace(initial)
	svc := NewTransferService(ws)

	for name, data := range map[string]string{
		"not json":      `hello`,
		"missing wages": `{"targetHourly":75,"globalMarkup":10,"persistentItems":[]}`,
		"wrong type":    `{"targetHourly":"75","wages":[],"globalMarkup":10,"persistentItems":[]}`,
		"quote no id":   `{"targetHourly":75,"wages":[],"globalMarkup":10,"persistentItems":[],"savedQuotes":[{"name":"legacy","totalPrice":5}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ImportSettings(context.Background(), []byte(data))
			if !errors.Is(err, ErrInvalidData) {
				t.Errorf("expected ErrInvalidData, got %v", err)
			}
		})
	}

	s := ws.Settings()
	if s.TargetHourly != 100 || len(s.SavedQuotes) != 1 {
		t.Errorf("settings changed after rejected import: %+v", s)
	}
	if len(repo.saved) != 0 {
		t.Error("rejected import must not persist anything")
	}
}

func TestTransferService_ImportSavedQuotes_ImportedWins(t *testing.T) {
	initial := model.DefaultSettings()
	initial.SavedQuotes = []model.SavedQuote{{ID: "a", Name: "old", Items: []model.QuoteItem{}}}
	ws, _ := newTestWorkspace(initial)
	svc := NewTransferService(ws)

	data := []byte(`[{"id":"a","name":"new","date":"","items":[],"laborHours":0,"totalPrice":0},{"id":"b","name":"other","date":"","items":[],"laborHours":0,"totalPrice":0}]`)
	got, err := svc.ImportSavedQuotes(context.Background(), data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 saved quotes, got %+v", got)
	}
	if got[0].ID != "a" || got[0].Name != "new" || got[1].ID != "b" {
		t.Errorf("unexpected merge result: %+v", got)
	}
}

func TestTransferService_ImportSavedQuotes_NotAnArray(t *testing.T) {
	ws, repo := newTestWorkspace(model.DefaultSettings())
	svc := NewTransferService(ws)

	_, err := svc.ImportSavedQuotes(context.Background(), []byte(`{"id":"a"}`))
	if !errors.Is(err, ErrInvalidData) {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Error("rejected import must not persist anything")
	}
}

func TestTransferService_ExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	initial := catalogSettings()
	initial.SavedQuotes = []model.SavedQuote{
		{ID: "q1", Name: "Deck", Date: "2026-10-01 08:00", Items: []model.QuoteItem{{ItemID: "a", Quantity: 2}}, LaborHours: 3, TotalPrice: 420},
	}
	source, _ := newTestWorkspace(initial)
	exported, err := NewTransferService(source).ExportSettings()
	if err != nil {
		t.Fatalf("ExportSettings: %v", err)
	}

	target, _ := newTestWorkspace(model.DefaultSettings())
	got, err := NewTransferService(target).ImportSettings(ctx, exported)
	if err != nil {
		t.Fatalf("ImportSettings: %v", err)
	}
	if len(got.PersistentItems) != 2 || len(got.SavedQuotes) != 1 || got.SavedQuotes[0].TotalPrice != 420 {
		t.Errorf("round trip lost data: %+v", got)
	}

	quotes, err := NewTransferService(source).ExportSavedQuotes()
	if err != nil {
		t.Fatalf("ExportSavedQuotes: %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(quotes), []byte("[")) {
		t.Errorf("expected a JSON array, got %s", quotes)
	}
}

func TestTransferService_SavedQuotesExportReimports(t *testing.T) {
	ctx := context.Background()
	ws, _ := newTestWorkspace(model.DefaultSettings())
	svc := NewTransferService(ws)

	data := []byte(`{"targetHourly":75,"wages":[20],"globalMarkup":10,"persistentItems":[],"savedQuotes":[{"id":"legacy","name":"Legacy","totalPrice":5}]}`)
	if _, err := svc.ImportSettings(ctx, data); err != nil {
		t.Fatalf("ImportSettings: %v", err)
	}
	quotes := NewQuoteService(ws)
	name := "Fresh"
	quotes.UpdateQuote(model.QuotePatch{Name: &name})
	if _, err := quotes.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	exported, err := svc.ExportSavedQuotes()
	if err != nil {
		t.Fatalf("ExportSavedQuotes: %v", err)
	}
	target, _ := newTestWorkspace(model.DefaultSettings())
	got, err := NewTransferService(target).ImportSavedQuotes(ctx, exported)
	if err != nil {
		t.Fatalf("re-import of an export failed: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Fresh" || got[1].ID != "legacy" {
		t.Errorf("unexpected saved quotes: %+v", got)
	}
}

func TestTransferService_Summary(t *testing.T) {
	ws, _ := newTestWorkspace(catalogSettings())
	quotes := NewQuoteService(ws)
	name := "Shelves"
	hours := 8.0
	quotes.UpdateQuote(model.QuotePatch{Name: &name, LaborHours: &hours})
	_, _ = quotes.AddItem("a")
	_, _ = quotes.SetQuantity("a", 2)

	out := NewTransferService(ws).Summary()
	for _, want := range []string{"QUOTE: Shelves", "Board", "$920.00", "$620.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestTransferService_SavedSummaryUsesFrozenTotal(t *testing.T) {
	initial := catalogSettings()
	initial.SavedQuotes = []model.SavedQuote{
		{ID: "q1", Name: "Old deck", Date: "2025-01-02 03:04", Items: []model.QuoteItem{{ItemID: "a", Quantity: 1}}, LaborHours: 0, TotalPrice: 55},
	}
	ws, _ := newTestWorkspace(initial)
	svc := NewTransferService(ws)

	out, err := svc.SavedSummary("q1")
	if err != nil {
		t.Fatalf("SavedSummary: %v", err)
	}
	for _, want := range []string{"QUOTE: Old deck", "Date: 2025-01-02 03:04", "$55.00", "$5.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	if _, err := svc.SavedSummary("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTransferService_Workbook(t *testing.T) {
	ws, _ := newTestWorkspace(catalogSettings())
	var buf bytes.Buffer
	if err := NewTransferService(ws).Workbook(&buf); err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected workbook bytes")
	}
}
