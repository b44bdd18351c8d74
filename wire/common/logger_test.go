package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

// TestLoggerFormat tests the line format and level filtering of the client logger
func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	l := newLynxLogger("transport", logger.INFO, &buf)

	l.Infof("connected to %s", "127.0.0.1:21210")
	line := buf.String()
	if !strings.Contains(line, "[INFO] transport: connected to 127.0.0.1:21210") {
		t.Errorf("Unexpected log line: %q", line)
	}

	buf.Reset()
	l.Debugf("poll tick")
	if buf.Len() != 0 {
		t.Errorf("Debug output should be filtered at INFO level, got %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(logger.DEBUG)
	l.Debugf("poll tick")
	if !strings.Contains(buf.String(), "[DEBUG] transport: poll tick") {
		t.Errorf("Unexpected debug line: %q", buf.String())
	}

	buf.Reset()
	l.SetLevel(logger.ERROR)
	l.Warningf("slow read")
	if buf.Len() != 0 {
		t.Errorf("Warning output should be filtered at ERROR level, got %q", buf.String())
	}
	l.Errorf("read failed")
	if !strings.Contains(buf.String(), "[ERROR] transport: read failed") {
		t.Errorf("Unexpected error line: %q", buf.String())
	}
}

// TestLoggerPanicf tests that Panicf logs the message before panicking
func TestLoggerPanicf(t *testing.T) {
	var buf bytes.Buffer
	l := newLynxLogger("engine", logger.ERROR, &buf)

	defer func() {
		if recover() == nil {
			t.Fatalf("Panicf should panic")
		}
		if !strings.Contains(buf.String(), "[CRIT] engine: unrecoverable state") {
			t.Errorf("Panic message should be logged, got %q", buf.String())
		}
	}()
	l.Panicf("unrecoverable state")
}

// TestParseLogLevel tests level name mapping including the fallbacks
func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want logger.LogLevel
	}{
		{"debug", logger.DEBUG},
		{"info", logger.INFO},
		{"INFO", logger.INFO},
		{"warn", logger.WARNING},
		{"warning", logger.WARNING},
		{"error", logger.ERROR},
		{"", logger.INFO},
		{"verbose", logger.INFO},
	}
	for _, c := range cases {
		if got := ParseLogLevel(c.in); got != c.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
