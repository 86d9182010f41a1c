// File path: internal/common/log_test.go
package common

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogOptions{Level: slog.LevelInfo, Format: "json"})
	logger.Debug("hidden")
	logger.Info("streak updated", "current", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one record, got %d: %q", len(lines), buf.String())
	}
	var record map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record["msg"] != "streak updated" || record["current"] != float64(3) {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestNewLoggerWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "affirmd.log")
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogOptions{Level: slog.LevelDebug, File: path})
	logger.Debug("seeded", "count", 8)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "msg=seeded") {
		t.Fatalf("log file missing record: %q", string(data))
	}
	if buf.String() != string(data) {
		t.Fatalf("expected stdout and file copies to match")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":  slog.LevelDebug,
		" WARN ": slog.LevelWarn,
		"error":  slog.LevelError,
		"":       slog.LevelInfo,
		"noisy":  slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Fatalf("level %q: expected %v, got %v", input, want, got)
		}
	}
}
