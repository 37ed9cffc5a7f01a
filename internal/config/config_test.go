package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := ParseFrom(map[string]string{})
	if err != nil {
		t.Fatalf("ParseFrom() error = %v", err)
	}
	want := Config{
		Host:            "0.0.0.0",
		Port:            2324,
		HostKeyPath:     "ssh_host_key",
		LogLevel:        "info",
		PreRoll:         2 * time.Second,
		Highlight:       500 * time.Millisecond,
		Gap:             200 * time.Millisecond,
		FailFlash:       time.Second,
		RestartDelay:    500 * time.Millisecond,
		ShutdownTimeout: 30 * time.Second,
	}
	if cfg != want {
		t.Fatalf("ParseFrom() = %+v, want %+v", cfg, want)
	}
	if Defaults() != want {
		t.Fatalf("Defaults() = %+v, want %+v", Defaults(), want)
	}
	if cfg.Addr() != "0.0.0.0:2324" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := ParseFrom(map[string]string{
		"HOST":             "127.0.0.1",
		"PORT":             "2222",
		"MEMORY_PREROLL":   "1s",
		"MEMORY_HIGHLIGHT": "250ms",
		"LOG_LEVEL":        "debug",
	})
	if err != nil {
		t.Fatalf("ParseFrom() error = %v", err)
	}
	if cfg.Addr() != "127.0.0.1:2222" {
		t.Fatalf("Addr() = %q, want 127.0.0.1:2222", cfg.Addr())
	}
	if cfg.PreRoll != time.Second || cfg.Highlight != 250*time.Millisecond {
		t.Fatalf("timings = %s/%s", cfg.PreRoll, cfg.Highlight)
	}
	if cfg.Gap != 200*time.Millisecond {
		t.Fatalf("Gap = %s, want default 200ms", cfg.Gap)
	}
	if cfg.Level() != log.DebugLevel {
		t.Fatalf("Level() = %v, want debug", cfg.Level())
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "port not a number", key: "PORT", val: "ssh"},
		{name: "port out of range", key: "PORT", val: "70000"},
		{name: "negative gap", key: "MEMORY_GAP", val: "-1s"},
		{name: "bad duration", key: "MEMORY_FAIL_FLASH", val: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFrom(map[string]string{tt.key: tt.val}); err == nil {
				t.Fatalf("ParseFrom() with %s=%s: expected error", tt.key, tt.val)
			}
		})
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("PORT", "0")
	if got := Load(); got != Defaults() {
		t.Fatalf("Load() = %+v, want defaults", got)
	}
}

func TestLevelUnknownIsInfo(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "chatty"
	if cfg.Level() != log.InfoLevel {
		t.Fatalf("Level() = %v, want info", cfg.Level())
	}
}
