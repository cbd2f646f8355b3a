package handler

import (
	"net/http"

	"github.com/quotekit/backend/internal/model"
	"github.com/quotekit/backend/internal/service"
)

// QuoteHandler は作業中の見積と保存済み見積の HTTP ハンドラ
type QuoteHandler struct {
	svc service.QuoteService
}

// NewQuoteHandler は QuoteHandler を生成する
func NewQuoteHandler(svc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

// Get handles GET /api/quote.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Quote())
}

// Update handles PUT /api/quote. Accepts name and/or laborHours.
func (h *QuoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.QuotePatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.UpdateQuote(patch))
}

// Clear handles DELETE /api/quote.
func (h *QuoteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Clear())
}

// AddItem handles POST /api/quote/items.
func (h *QuoteHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := h.svc.AddItem(req.ItemID)
	if err != nil {
		writeServiceError(w, err, "quote add item failed")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// SetQuantity handles PUT /api/quote/items/{itemId}.
func (h *QuoteHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity *float64 `json:"quantity"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	q, err := h.svc.SetQuantity(r.PathValue("itemId"), *req.Quantity)
	if err != nil {
		writeServiceError(w, err, "quote set quantity failed")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// RemoveItem handles DELETE /api/quote/items/{itemId}.
func (h *QuoteHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.RemoveItem(r.PathValue("itemId"))
	if err != nil {
		writeServiceError(w, err, "quote remove item failed")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Totals handles GET /api/quote/totals.
func (h *QuoteHandler) Totals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Totals())
}

// Save handles POST /api/quote/save.
func (h *QuoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	saved, err := h.svc.Save(r.Context())
	if err != nil {
		writeServiceError(w, err, "quote save failed")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// ListSaved handles GET /api/saved-quotes. Most recent first.
func (h *QuoteHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	quotes := h.svc.Saved()
	if quotes == nil {
		quotes = []model.SavedQuote{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"savedQuotes": quotes})
}

// LoadSaved handles POST /api/saved-quotes/{id}/load.
func (h *QuoteHandler) LoadSaved(w http.ResponseWriter, r *http.Request) {
	q, err := h.svc.Load(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "quote load failed")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// DeleteSaved handles DELETE /api/saved-quotes/{id}.
func (h *QuoteHandler) DeleteSaved(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSaved(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "saved quote delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
