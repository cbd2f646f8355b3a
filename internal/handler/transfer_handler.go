package handler

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/quotekit/backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransferHandler はエクスポート／インポートと見積サマリーの HTTP ハンドラ
type TransferHandler struct {
	svc service.TransferService
}

// NewTransferHandler は TransferHandler を生成する
func NewTransferHandler(svc service.TransferService) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// ExportSettings handles GET /api/export/settings.
func (h *TransferHandler) ExportSettings(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportSettings()
	if err != nil {
		slog.Error("settings export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}
	writeDownload(w, "application/json", "settings.json", data)
}

// ExportSavedQuotes handles GET /api/export/saved-quotes.
func (h *TransferHandler) ExportSavedQuotes(w http.ResponseWriter, r *http.Request) {
	data, err := h.svc.ExportSavedQuotes()
	if err != nil {
		slog.Error("saved quotes export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}
	writeDownload(w, "application/json", "saved-quotes.json", data)
}

// ImportSettings handles POST /api/import/settings.
// The body replaces the whole settings document; invalid data changes nothing.
func (h *TransferHandler) ImportSettings(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}

	settings, err := h.svc.ImportSettings(r.Context(), data)
	if err != nil {
		writeServiceError(w, err, "settings import failed")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// ImportSavedQuotes handles POST /api/import/saved-quotes.
// Entries are merged by id and imported entries win.
func (h *TransferHandler) ImportSavedQuotes(w http.ResponseWriter, r *http.Request) {
	data, ok := readBody(w, r)
	if !ok {
		return
	}

	quotes, err := h.svc.ImportSavedQuotes(r.Context(), data)
	if err != nil {
		writeServiceError(w, err, "saved quotes import failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"savedQuotes": quotes})
}

// Summary handles GET /api/quote/summary.
func (h *TransferHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeText(w, h.svc.Summary())
}

// SavedSummary handles GET /api/saved-quotes/{id}/summary.
func (h *TransferHandler) SavedSummary(w http.ResponseWriter, r *http.Request) {
	text, err := h.svc.SavedSummary(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "saved quote summary failed")
		return
	}
	writeText(w, text)
}

// Workbook handles GET /api/quote/workbook.
func (h *TransferHandler) Workbook(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Workbook(&buf); err != nil {
		slog.Error("workbook render failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export_failed")
		return
	}
	writeDownload(w, xlsxContentType, "quote.xlsx", buf.Bytes())
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeBodyError(w, err, "invalid_data")
		return nil, false
	}
	return data, true
}

func writeDownload(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func writeText(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, text)
}
