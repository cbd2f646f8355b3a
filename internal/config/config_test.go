package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SERVER_READ_TIMEOUT", "")

	cfg := Load()
	if cfg.Port != "8080" || cfg.Addr() != ":8080" {
		t.Errorf("unexpected port: %q", cfg.Port)
	}
	if cfg.StoreBackend != BackendFile {
		t.Errorf("expected file backend by default, got %q", cfg.StoreBackend)
	}
	if cfg.ReadTimeout != 10 {
		t.Errorf("expected default read timeout, got %d", cfg.ReadTimeout)
	}
	if cfg.StateDir == "" {
		t.Error("expected a state dir")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("STATE_DIR", "/tmp/quotes")
	t.Setenv("SERVER_WRITE_TIMEOUT", "30")

	cfg := Load()
	if cfg.Addr() != ":9000" {
		t.Errorf("unexpected addr: %q", cfg.Addr())
	}
	if cfg.StoreBackend != BackendPostgres {
		t.Errorf("expected postgres backend, got %q", cfg.StoreBackend)
	}
	if cfg.StateDir != "/tmp/quotes" || cfg.WriteTimeout != 30 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("QUOTEKIT_TEST_INT", "abc")
	if got := getEnvInt("QUOTEKIT_TEST_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
}
