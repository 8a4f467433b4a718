package logging

import (
	"bytes"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
)

// TestLoggingHelpers_WriteToBuffer swaps L for a buffer-backed logger and
// checks that every helper writes through it.
func TestLoggingHelpers_WriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	L.SetLevel(clog.DebugLevel)
	defer func() { L = prev }()

	Debugf("hello %s", "dbg")
	Infof("info %d", 1)
	Warnf("warn")
	Errorf("err %v", "E")

	out := buf.String()
	for _, want := range []string{"hello dbg", "info 1", "warn", "err E"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output; got: %s", want, out)
		}
	}
}

func TestConfigure_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := L
	L = clog.New(&buf)
	defer func() { L = prev }()

	Configure("warn")
	Infof("hidden")
	Warnf("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info should be filtered at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn should pass: %s", buf.String())
	}

	Configure("bogus")
	if L.GetLevel() != clog.WarnLevel {
		t.Fatalf("unknown level should not change the level")
	}

	SetDebug(true)
	Debugf("dbg on")
	if !strings.Contains(buf.String(), "dbg on") {
		t.Fatalf("debug output expected after SetDebug(true)")
	}
}
