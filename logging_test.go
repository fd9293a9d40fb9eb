package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"savecart/config"
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"WARNING": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetupLogging_WritesJSONToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "savecart.log")
	rotator, err := setupLogging(&config.Config{LogFilePath: path, LogLevel: "INFO", LogMaxSizeMB: 1, CLIMode: true})
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	slog.Info("hello", "component", "test")
	if err := rotator.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) || !strings.Contains(string(data), `"component":"test"`) {
		t.Fatalf("unexpected log content: %s", data)
	}
}

func TestSetupLogging_EmptyPath(t *testing.T) {
	if _, err := setupLogging(&config.Config{}); err == nil {
		t.Fatalf("expected error for empty log path")
	}
}
