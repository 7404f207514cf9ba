package logging

import (
	"bytes"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	saved := GetLogLevel()
	t.Cleanup(func() {
		SetOutput(nopWriter{})
		SetLogLevel(levelName(saved))
	})
	return &buf
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func levelName(l LogLevel) string {
	for name, v := range levelNames {
		if v == l && name != "warning" {
			return name
		}
	}
	return "info"
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := capture(t)
	SetLogLevel("info")

	msg := "error rate 100.0% during downtime (518 of 2518)"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "100.0% during downtime") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "MISSING") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLogLevel("warn")

	Debugf("debug %d", 1)
	Infof("info %d", 2)
	Warnf("warn %d", 3)
	Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("messages below warn leaked: %s", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Fatalf("expected warn and error lines, got: %s", out)
	}
}

func TestSetLogLevelIgnoresUnknown(t *testing.T) {
	capture(t)
	SetLogLevel("error")
	SetLogLevel("verbose")
	if GetLogLevel() != LevelError {
		t.Fatalf("unknown level changed state: got %v", GetLogLevel())
	}
	if _, ok := ParseLevel(" WARNING "); !ok {
		t.Fatalf("expected WARNING to parse")
	}
}
