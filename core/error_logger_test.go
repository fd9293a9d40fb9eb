package core

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestErrorLogger_RingAndOrder(t *testing.T) {
	logger := NewErrorLogger(2, slog.New(slog.NewTextHandler(io.Discard, nil)))

	logger.Record(Entry{Source: "a", Message: "first", Err: errors.New("e1")})
	logger.Record(Entry{Source: "b", Message: "second", Err: errors.New("e2")})
	logger.Record(Entry{Source: "c", Message: "third", RequestID: "req-3", Context: map[string]any{"cart_id": "abc"}})

	logs := logger.GetErrorLogs()
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].Message != "third" || logs[1].Message != "second" {
		t.Fatalf("expected latest first, got %q then %q", logs[0].Message, logs[1].Message)
	}
	if logs[0].RequestID != "req-3" || !strings.Contains(logs[0].Context, `"cart_id":"abc"`) {
		t.Fatalf("unexpected entry: %+v", logs[0])
	}
	if logs[1].Detail != "e2" || logs[1].Level != "ERROR" {
		t.Fatalf("unexpected entry: %+v", logs[1])
	}

	logger.ClearErrorLogs()
	if len(logger.GetErrorLogs()) != 0 {
		t.Fatalf("expected no logs after clear")
	}
}

func TestErrorLogger_WritesStructuredLog(t *testing.T) {
	var buf strings.Builder
	logger := NewErrorLogger(0, slog.New(slog.NewTextHandler(&buf, nil)))

	logger.Record(Entry{Level: "WARN", Source: "check-login", Message: "session lookup failed", Err: errors.New("db down")})

	out := buf.String()
	for _, want := range []string{"level=WARN", "session lookup failed", "source=check-login", `error="db down"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
