package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"brandlink/internal/logging"
)

func TestNewJSONOutputsStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("resolved name", logging.String("query", "acme"), logging.Float64("score", 97.5))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if payload["msg"] != "resolved name" {
		t.Fatalf("msg = %v, want %q", payload["msg"], "resolved name")
	}
	if payload["level"] != "info" {
		t.Fatalf("level = %v, want info", payload["level"])
	}
	if payload["query"] != "acme" {
		t.Fatalf("query = %v, want acme", payload["query"])
	}
}

func TestNewConsoleIncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With(logging.String("component", "pipeline")).Info("run complete", logging.Int("errors", 0))

	line := buf.String()
	if !strings.Contains(line, "[pipeline]") {
		t.Fatalf("console line missing component: %q", line)
	}
	if !strings.Contains(line, "run complete") {
		t.Fatalf("console line missing message: %q", line)
	}
	if !strings.Contains(line, "errors=0") {
		t.Fatalf("console line missing attrs: %q", line)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("info line emitted at warn level: %q", buf.String())
	}
	logger.Warn("visible")
	if buf.Len() == 0 {
		t.Fatal("warn line not emitted")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Info("goes nowhere")
	logger.Error("also nowhere", logging.Error(nil))
}
