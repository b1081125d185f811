package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Debug().Msg("hidden")
	log.Info().Str("path", "numu/spectrum").Msg("loaded")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	entry := jsoniter.Get([]byte(lines[0]))
	if got := entry.Get("message").ToString(); got != "loaded" {
		t.Fatalf("message = %q", got)
	}
	if got := entry.Get("path").ToString(); got != "numu/spectrum" {
		t.Fatalf("path = %q", got)
	}
	if got := entry.Get("level").ToString(); got != "info" {
		t.Fatalf("level = %q", got)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(DefaultConfig(), &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNewErrors(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(Config{Level: "loud"}, &buf); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New(Config{Format: "xml"}, &buf); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("got %v, want ErrUnknownFormat", err)
	}
}
