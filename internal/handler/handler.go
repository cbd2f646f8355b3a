package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/quotekit/backend/internal/repository"
	"github.com/quotekit/backend/internal/service"
)

type Handler struct {
	db          repository.DB
	frontendURL string
}

func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeJSON reads a JSON request body into v. On failure it writes
// too_large or invalid_json and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBodyError(w, err, "invalid_json")
		return false
	}
	return true
}

func writeBodyError(w http.ResponseWriter, err error, code string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "too_large")
		return
	}
	writeError(w, http.StatusBadRequest, code)
}

// writeServiceError maps service sentinels to error codes.
// Anything unrecognised is a persistence failure.
func writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "name_required")
	case errors.Is(err, service.ErrInvalidData):
		writeError(w, http.StatusBadRequest, "invalid_data")
	case errors.Is(err, service.ErrWageIndex):
		writeError(w, http.StatusBadRequest, "invalid_index")
	default:
		slog.Error(msg, "error", err)
		writeError(w, http.StatusInternalServerError, "save_failed")
	}
}
