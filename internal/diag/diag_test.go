package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestAssertLogsAndReturns(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(NewLogger(&buf, "test"))
	defer log.SetDefault(prev)
	SetStrict(false)

	if !Assert(true, "never logged") {
		t.Error("Assert(true) should return true")
	}
	if Assert(false, "gun missing", "player", "p1") {
		t.Error("Assert(false) should return false")
	}
	if !strings.Contains(buf.String(), "gun missing") {
		t.Errorf("expected log line, got %q", buf.String())
	}
}

func TestAssertPanicsInStrictMode(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Default()
	log.SetDefault(NewLogger(&buf, "test"))
	defer log.SetDefault(prev)

	SetStrict(true)
	defer SetStrict(false)

	defer func() {
		if recover() == nil {
			t.Error("expected panic in strict mode")
		}
	}()
	Assert(false, "boom")
}
