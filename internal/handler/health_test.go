package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/quotekit/backend/internal/repository"
	"github.com/quotekit/backend/internal/storage"
)

type mockDB struct {
	pingFunc func(ctx context.Context) error
}

func (m *mockDB) Ping(ctx context.Context) error {
	if m.pingFunc != nil {
		return m.pingFunc(ctx)
	}
	return nil
}

func TestHealth_OK(t *testing.T) {
	h := New(&mockDB{}, "http://localhost:4321")
	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status=ok, got %q", resp.Status)
	}
	if resp.Message != "Quote API" {
		t.Errorf("expected message='Quote API', got %q", resp.Message)
	}
}

func TestHealth_Unhealthy(t *testing.T) {
	h := New(&mockDB{
		pingFunc: func(ctx context.Context) error {
			return errors.New("state dir not writable")
		},
	}, "http://localhost:4321")

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "unhealthy" || resp.Message != "state dir not writable" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHealth_FileSettingsRepository(t *testing.T) {
	dir := t.TempDir()
	repo := repository.NewFileSettingsRepository(storage.NewLocalStorage(dir))
	h := New(repo, "http://localhost:4321")

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 before any settings are saved, got %d", rec.Code)
	}

	// a state dir that is a regular file cannot hold settings.json
	notADir := filepath.Join(dir, "state")
	if err := os.WriteFile(notADir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	h = New(repository.NewFileSettingsRepository(storage.NewLocalStorage(notADir)), "http://localhost:4321")

	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/api/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 for an unusable state dir, got %d", rec.Code)
	}
}
