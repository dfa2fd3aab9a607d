package logging

import (
	"log/slog"
	"testing"
)

func TestGetLoggerBeforeInitialize(t *testing.T) {
	logger := GetLogger("pretest")
	if logger == nil {
		t.Fatal("GetLogger() returned nil before Initialize")
	}
	// Must not panic
	logger.Info("hello", "k", "v")
}

func TestInitializeSetsModuleLevels(t *testing.T) {
	Initialize(Config{
		Level:  "info",
		Format: "text",
		Modules: map[string]string{
			"chatty": "debug",
			"quiet":  "error",
		},
	})

	if lv, ok := moduleLevelVars["chatty"]; ok && lv.Level() != slog.LevelDebug {
		t.Errorf("chatty level = %v, want debug", lv.Level())
	}

	GetLogger("chatty").Debug("should be visible")
	GetLogger("quiet").Info("should be filtered")

	if lv := moduleLevelVars["quiet"]; lv.Level() != slog.LevelError {
		t.Errorf("quiet level = %v, want error", lv.Level())
	}
}

func TestGetLoggerIsCached(t *testing.T) {
	a := GetLogger("cached")
	b := GetLogger("cached")
	if a != b {
		t.Error("GetLogger() returned different instances for the same module")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got := parseLevel(in)
		if got == nil || *got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if parseLevel("bogus") != nil {
		t.Error("parseLevel accepted an unknown level")
	}
}

func TestRingBufferWrap(t *testing.T) {
	rb := NewRingBuffer(3)
	for _, msg := range []string{"a", "b", "c", "d"} {
		rb.Write(LogEntry{Message: msg})
	}

	entries := rb.Snapshot()
	if len(entries) != 3 {
		t.Fatalf("Snapshot() returned %d entries, want 3", len(entries))
	}
	if entries[0].Message != "b" || entries[2].Message != "d" {
		t.Errorf("Snapshot() order wrong: %v", entries)
	}
}
