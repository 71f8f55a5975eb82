package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestCustomHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(Options{Name: "TEST", Writer: &buf}))

	log.Info("Command completed",
		slog.String("type", "cmd"),
		slog.String("name", "profile"),
		slog.String("user_name", "alice"),
		slog.String("status", "success"),
		slog.Int("rows", 1))

	line := buf.String()
	for _, want := range []string{"[TEST]", "INFO", "[CMD]", "Command completed [profile by alice] [Status: success]", "rows=1"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q does not contain %q", line, want)
		}
	}
	if strings.Contains(line, "user_name=") {
		t.Errorf("internal attr printed: %q", line)
	}
}

func TestCustomHandler_ErrorDetails(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(Options{Writer: &buf}))

	log.Error("Query failed", slog.String("type", "db"), slog.Any("error", errors.New("locked")))

	line := buf.String()
	if !strings.Contains(line, "[DB]") || !strings.Contains(line, "Query failed: locked") {
		t.Errorf("unexpected line %q", line)
	}
}

func TestCustomHandler_LevelAndSkip(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(Options{Writer: &buf, Level: slog.LevelInfo}))

	log.Debug("hidden")
	log.Info("sending heartbeat")
	if buf.Len() != 0 {
		t.Errorf("expected nothing written, got %q", buf.String())
	}
}

func TestCustomHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(Options{Writer: &buf})).With(slog.String("service", "web"))

	log.Info("started")
	log.Info("again")

	if got := strings.Count(buf.String(), "service=web"); got != 2 {
		t.Errorf("service attr count = %d, want 2 in %q", got, buf.String())
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(New(Options{Format: "json", Writer: &buf}))

	log.Info("hello", slog.String("type", "sys"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not json: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["type"] != "sys" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestLifecycleHelpers(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	LogSystem("Bot is running", Since(time.Now()))
	LogError("Failed to open gateway", errors.New("invalid token"), slog.String("component", "gateway"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	var system, failure map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &system); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &failure); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if system["type"] != "sys" || system["level"] != "INFO" {
		t.Errorf("system line = %v", system)
	}
	if _, ok := system["took"]; !ok {
		t.Errorf("system line has no took attr: %v", system)
	}
	if failure["type"] != "error" || failure["level"] != "ERROR" ||
		failure["error"] != "invalid token" || failure["component"] != "gateway" {
		t.Errorf("error line = %v", failure)
	}
}
