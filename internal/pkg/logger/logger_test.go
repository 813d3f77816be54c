package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStdLoggerSilentUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Info("calling provider", map[string]interface{}{"model": "gemini-2.0-flash"})
	log.Error("failed", errors.New("boom"), nil)

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestStdLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.Info("calling provider", map[string]interface{}{"model": "gemini-2.0-flash", "window": 5})
	log.Error("failed", errors.New("boom"), nil)

	out := buf.String()
	for _, want := range []string{"calling provider", "model=gemini-2.0-flash", "window=5", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
