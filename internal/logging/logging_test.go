package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInit(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(&buf, true, slog.LevelInfo)
	slog.Debug("hidden")
	slog.Info("scored", "chapters", 3)

	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, "hidden") {
		t.Fatalf("debug line should be filtered: %s", line)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", line, err)
	}
	if rec["msg"] != "scored" || rec["chapters"] != float64(3) {
		t.Fatalf("unexpected record: %v", rec)
	}

	buf.Reset()
	Init(&buf, false, slog.LevelDebug)
	slog.Debug("visible")
	if !strings.Contains(buf.String(), "msg=visible") {
		t.Fatalf("expected text handler output, got %q", buf.String())
	}
}
