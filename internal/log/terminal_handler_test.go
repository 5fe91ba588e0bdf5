package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestHandler(buf *bytes.Buffer, level slog.Level) *terminalHandler {
	return newTerminalHandler(buf, level)
}

func TestTerminalHandler_Enabled(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf, slog.LevelInfo)

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled at info level")
	}
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled at info level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at info level")
	}
}

func TestTerminalHandler_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTestHandler(&buf, slog.LevelDebug))

	logger.Info("server started", "port", 8080)

	out := buf.String()
	if !strings.Contains(out, "INF") {
		t.Errorf("output missing level label: %q", out)
	}
	if !strings.Contains(out, "server started") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "port=") || !strings.Contains(out, "8080") {
		t.Errorf("output missing attribute: %q", out)
	}
}

func TestTerminalHandler_LevelLabels(t *testing.T) {
	tests := []struct {
		level slog.Level
		label string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(newTestHandler(&buf, slog.LevelDebug))
		logger.Log(context.Background(), tt.level, "msg")

		if !strings.Contains(buf.String(), tt.label) {
			t.Errorf("level %v: output %q missing label %q", tt.level, buf.String(), tt.label)
		}
	}
}

func TestTerminalHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf, slog.LevelDebug)
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("service", "api")}))

	logger.Info("ready")

	if !strings.Contains(buf.String(), "service=") {
		t.Errorf("output missing pre-set attribute: %q", buf.String())
	}
}

func TestTerminalHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(&buf, slog.LevelDebug)
	logger := slog.New(h.WithGroup("http"))

	logger.Info("request", "method", "GET")

	if !strings.Contains(buf.String(), "http.method=") {
		t.Errorf("output missing grouped attribute: %q", buf.String())
	}
}

func TestTerminalHandler_QuotesStringsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTestHandler(&buf, slog.LevelDebug))

	logger.Info("msg", "title", "hello world")

	if !strings.Contains(buf.String(), `"hello world"`) {
		t.Errorf("string with spaces should be quoted: %q", buf.String())
	}
}
