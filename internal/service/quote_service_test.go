package service

import (
	"context"
	"errors"
	"testing"

	"github.com/quotekit/backend/internal/model"
)

func catalogSettings() model.AppSettings {
	s := model.DefaultSettings()
	s.PersistentItems = []model.PersistentItem{
		{ID: "a", Name: "Board", Cost: 50},
		{ID: "b", Name: "Nails", Cost: 0.1, UseCustomMarkup: true, CustomMarkup: 100},
	}
	return s
}

func TestQuoteService_AddItem(t *testing.T) {
	ws, _ := newTestWorkspace(catalogSettings())
	svc := NewQuoteService(ws)

	q, err := svc.AddItem("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Items) != 1 || q.Items[0].ItemID != "a" || q.Items[0].Quantity != 1 {
		t.Errorf("unexpected items: %+v", q.Items)
	}

	q, err = svc.AddItem("a")
	if err != nil {
		t.Fatalf("unexpected error on re-add: %v", err)
	}
	if len(q.Items) != 1 {
		t.Errorf("re-adding an item should be a no-op, got %+v", q.Items)
	}
}

func TestQuoteService_AddItem_UnknownItem(t *testing.T) {
	ws, _ := newTestWorkspace(catalogSettings())
	_, err := NewQuoteService(ws).AddItem("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestQuoteService_SetQuantityAndRemove(t *testing.T) {
	ws, repo := newTestWorkspace(catalogSettings())
	svc := NewQuoteService(ws)
	_, _ = svc.AddItem("a")
	_, _ = svc.AddItem("b")

	before := svc.Quote()
	q, err := svc.SetQuantity("b", 200)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if q.Items[1].Quantity != 200 {
		t.Errorf("expected quantity 200, got %+v", q.Items[1])
	}
	if before.Items[1].Quantity != 1 {
		t.Error("earlier quote snapshot was mutated")
	}

	q, err = svc.RemoveItem("a")
	if err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if len(q.Items) != 1 || q.Items[0].ItemID != "b" {
		t.Errorf("unexpected items after remove: %+v", q.Items)
	}

	if _, err := svc.SetQuantity("a", 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for removed item, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Error("working quote edits must not persist settings")
	}
}

func TestQuoteService_UpdateQuoteAndTotals(t *testing.T) {
	ws, _ := newTestWorkspace(catalogSettings())
	svc := NewQuoteService(ws)

	name := "Shed"
	hours := 8.0
	svc.UpdateQuote(model.QuotePatch{Name: &name, LaborHours: &hours})
	_, _ = svc.AddItem("a")
	_, _ = svc.SetQuantity("a", 2)

	totals := svc.Totals()
	if totals.LaborCost != 200 || totals.LaborPrice != 800 {
		t.Errorf("unexpected labor: %+v", totals)
	}
	if totals.MaterialCost != 100 || totals.MaterialPrice != 120 {
		t.Errorf("unexpected materials: %+v", totals)
	}
	if totals.TotalPrice != 920 || totals.Profit != 620 {
		t.Errorf("unexpected totals: %+v", totals)
	}
	if q := svc.Quote(); q.Name != "Shed" || q.LaborHours != 8 {
		t.Errorf("unexpected quote: %+v", q)
	}
}

func TestQuoteService_Clear(t *testing.T) {
	ws, _ := newTestWorkspace(catalogSettings())
	svc := NewQuoteService(ws)
	name := "x"
	svc.UpdateQuote(model.QuotePatch{Name: &name})
	_, _ = svc.AddItem("a")

	q := svc.Clear()
	if q.Name != "" || len(q.Items) != 0 || q.Items == nil {
		t.Errorf("expected empty quote, got %+v", q)
	}
}

func TestQuoteService_Save_RequiresName(t *testing.T) {
	ws, repo := newTestWorkspace(catalogSettings())
	svc := NewQuoteService(ws)
	_, _ = svc.AddItem("a")
	blank := "   "
	svc.UpdateQuote(model.QuotePatch{Name: &blank})

	_, err := svc.Save(context.Background())
	if !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if len(svc.Saved()) != 0 || len(repo.saved) != 0 {
		t.Error("failed save must not change state")
	}
	if q := svc.Quote(); len(q.Items) != 1 {
		t.Errorf("working quote should be untouched, got %+v", q)
	}
}

func TestQuoteService_Save(t *testing.T) {
	ctx := context.Background()
	ws, repo := newTestWorkspace(catalogSettings())
	svc := NewQuoteService(ws)
	name := "Porch"
	hours := 2.0
	svc.UpdateQuote(model.QuotePatch{Name: &name, LaborHours: &hours})
	_, _ = svc.AddItem("a")

	first, err := svc.Save(ctx)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first.Name != "Porch" || first.Date != "2026-10-17 09:30" || first.LaborHours != 2 {
		t.Errorf("unexpected saved quote: %+v", first)
	}
	// labor 2*100 + materials 50*1.2
	if first.TotalPrice != 260 {
		t.Errorf("expected totalPrice=260, got %v", first.TotalPrice)
	}

	q := svc.Quote()
	if q.Name != "" {
		t.Errorf("expected name cleared after save, got %q", q.Name)
	}
	if q.LaborHours != 2 || len(q.Items) != 1 {
		t.Errorf("items and hours should be kept after save, got %+v", q)
	}

	again := "Porch v2"
	svc.UpdateQuote(model.QuotePatch{Name: &again})
	second, err := svc.Save(ctx)
	if err != nil {
		t.Fatalf("second Save: %v", err)
	}

	saved := svc.Saved()
	if len(saved) != 2 || saved[0].ID != second.ID || saved[1].ID != first.ID {
		t.Errorf("expected most-recent-first ordering, got %+v", saved)
	}
	if persisted := repo.lastSaved(t); len(persisted.SavedQuotes) != 2 {
		t.Errorf("expected 2 persisted quotes, got %d", len(persisted.SavedQuotes))
	}
}

func TestQuoteService_SavedTotalIsFrozen(t *testing.T) {
	ctx := context.Background()
	initial := model.DefaultSettings()
	initial.Wages = []float64{}
	ws, _ := newTestWorkspace(initial)
	catalog := NewCatalogService(ws)
	quotes := NewQuoteService(ws)

	item, err := catalog.AddItem(ctx, model.PersistentItemInput{Name: "Widget", Cost: 10, UseCustomMarkup: true, CustomMarkup: 0})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := quotes.AddItem(item.ID); err != nil {
		t.Fatalf("quote AddItem: %v", err)
	}
	name := "Frozen"
	quotes.UpdateQuote(model.QuotePatch{Name: &name})
	saved, err := quotes.Save(ctx)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.TotalPrice != 10 {
		t.Fatalf("expected totalPrice=10, got %v", saved.TotalPrice)
	}

	cost := 100.0
	if _, err := catalog.UpdateItem(ctx, item.ID, model.PersistentItemPatch{Cost: &cost}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	stored, ok := catalog.Settings().FindSavedQuote(saved.ID)
	if !ok || stored.TotalPrice != 10 {
		t.Errorf("stored total must stay 10, got %+v", stored)
	}
	if _, err := quotes.Load(saved.ID); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if live := quotes.Totals().TotalPrice; live != 100 {
		t.Errorf("live recomputation should reflect the new cost, got %v", live)
	}
}

func TestQuoteService_LoadIsACopy(t *testing.T) {
	initial := catalogSettings()
	initial.SavedQuotes = []model.SavedQuote{
		{ID: "q1", Name: "Deck", LaborHours: 5, Items: []model.QuoteItem{{ItemID: "a", Quantity: 3}}, TotalPrice: 680},
	}
	ws, _ := newTestWorkspace(initial)
	svc := NewQuoteService(ws)

	q, err := svc.Load("q1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if q.Name != "Deck" || q.LaborHours != 5 || len(q.Items) != 1 {
		t.Errorf("unexpected loaded quote: %+v", q)
	}

	if _, err := svc.SetQuantity("a", 9); err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if got := svc.Saved()[0].Items[0].Quantity; got != 3 {
		t.Errorf("saved quote was mutated through the working copy: quantity=%v", got)
	}
}

func TestQuoteService_Load_NotFound(t *testing.T) {
	ws, _ := newTestWorkspace(catalogSettings())
	svc := NewQuoteService(ws)
	name := "keep"
	svc.UpdateQuote(model.QuotePatch{Name: &name})

	if _, err := svc.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if svc.Quote().Name != "keep" {
		t.Error("failed load must not replace the working quote")
	}
}

func TestQuoteService_DeleteSaved(t *testing.T) {
	ctx := context.Background()
	initial := catalogSettings()
	initial.SavedQuotes = []model.SavedQuote{{ID: "q1"}, {ID: "q2"}}
	ws, _ := newTestWorkspace(initial)
	svc := NewQuoteService(ws)

	if err := svc.DeleteSaved(ctx, "q1"); err != nil {
		t.Fatalf("DeleteSaved: %v", err)
	}
	if saved := svc.Saved(); len(saved) != 1 || saved[0].ID != "q2" {
		t.Errorf("unexpected saved quotes: %+v", saved)
	}
	if err := svc.DeleteSaved(ctx, "q1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
