package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelWarn},
		{"loud", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in, slog.LevelWarn); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStackHandler_AddsStackForErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&stackHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	logger.Info("fine")
	if strings.Contains(buf.String(), "stacktrace") {
		t.Error("info records should not carry a stack trace")
	}

	buf.Reset()
	logger.With("component", "test").ErrorContext(context.Background(), "broken")
	out := buf.String()
	if !strings.Contains(out, "stacktrace") || !strings.Contains(out, `"component":"test"`) {
		t.Errorf("expected stack trace and attrs, got %s", out)
	}
}

func TestSetupCLI_HidesInfo(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	SetupCLI(&buf)
	slog.Info("quiet")
	slog.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Errorf("unexpected CLI log output: %q", out)
	}
}
