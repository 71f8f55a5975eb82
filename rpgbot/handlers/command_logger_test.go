package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogCompletion(t *testing.T) {
	user := discord.User{ID: 42, Username: "alice"}

	tests := []struct {
		name       string
		took       time.Duration
		err        error
		wantLevel  string
		wantStatus string
	}{
		{name: "success", took: time.Millisecond, wantLevel: "INFO", wantStatus: "success"},
		{name: "slow", took: 3 * time.Second, wantLevel: "WARN", wantStatus: "slow"},
		{name: "failed", took: time.Millisecond, err: errors.New("boom"), wantLevel: "ERROR", wantStatus: "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			logCompletion("cmd", "Command", "profile", user, 0, tt.took, tt.err)

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log is not json: %v", err)
			}
			if entry["level"] != tt.wantLevel || entry["status"] != tt.wantStatus {
				t.Errorf("level = %v status = %v, want %s %s", entry["level"], entry["status"], tt.wantLevel, tt.wantStatus)
			}
			if entry["name"] != "profile" || entry["user_id"] != "42" {
				t.Errorf("unexpected entry %v", entry)
			}
		})
	}
}

func TestGuildID(t *testing.T) {
	if got := guildID(nil); got != "dm" {
		t.Errorf("guildID(nil) = %q", got)
	}
}
