package handler

import (
	"net/http"
	"strconv"

	"github.com/quotekit/backend/internal/model"
	"github.com/quotekit/backend/internal/service"
)

// CatalogHandler は料金設定・品目カタログ・賃金リストの HTTP ハンドラ
type CatalogHandler struct {
	svc service.CatalogService
}

// NewCatalogHandler は CatalogHandler を生成する
func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// GetSettings handles GET /api/settings.
func (h *CatalogHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings())
}

// PatchSettings handles PATCH /api/settings.
// Only the top-level fields present in the body are replaced.
func (h *CatalogHandler) PatchSettings(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	settings, err := h.svc.UpdateSettings(r.Context(), patch)
	if err != nil {
		writeServiceError(w, err, "settings update failed")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ResetSettings handles DELETE /api/settings.
// The stored settings are removed and the defaults are returned.
func (h *CatalogHandler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Reset(r.Context())
	if err != nil {
		writeServiceError(w, err, "settings reset failed")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// CreateItem handles POST /api/items.
func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var in model.PersistentItemInput
	if !decodeJSON(w, r, &in) {
		return
	}

	item, err := h.svc.AddItem(r.Context(), in)
	if err != nil {
		writeServiceError(w, err, "item create failed")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/items/{id}.
func (h *CatalogHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch model.PersistentItemPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err, "item update failed")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/{id}.
// Quotes referring to the item keep their reference.
func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteItem(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "item delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type wageRequest struct {
	Wage *float64 `json:"wage"`
}

// CreateWage handles POST /api/wages.
func (h *CatalogHandler) CreateWage(w http.ResponseWriter, r *http.Request) {
	var req wageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Wage == nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	wages, err := h.svc.AddWage(r.Context(), *req.Wage)
	if err != nil {
		writeServiceError(w, err, "wage create failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"wages": wages})
}

// UpdateWage handles PUT /api/wages/{index}.
func (h *CatalogHandler) UpdateWage(w http.ResponseWriter, r *http.Request) {
	index, ok := wageIndex(w, r)
	if !ok {
		return
	}

	var req wageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Wage == nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	wages, err := h.svc.UpdateWage(r.Context(), index, *req.Wage)
	if err != nil {
		writeServiceError(w, err, "wage update failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wages": wages})
}

// DeleteWage handles DELETE /api/wages/{index}.
func (h *CatalogHandler) DeleteWage(w http.ResponseWriter, r *http.Request) {
	index, ok := wageIndex(w, r)
	if !ok {
		return
	}

	wages, err := h.svc.DeleteWage(r.Context(), index)
	if err != nil {
		writeServiceError(w, err, "wage delete failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wages": wages})
}

func wageIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_index")
		return 0, false
	}
	return index, true
}
