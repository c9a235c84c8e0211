package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestStdLoggerSilentUnlessVerbose(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Warn("low disk", map[string]interface{}{"free": 1})
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestStdLoggerFormatsSortedFields(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Error("deploy failed", errors.New("boom"), map[string]interface{}{"scope": "user", "bin": "/b"})

	out := buf.String()
	if !strings.Contains(out, "[ERROR] deploy failed: boom bin=/b scope=user") {
		t.Fatalf("unexpected log line %q", out)
	}
}
