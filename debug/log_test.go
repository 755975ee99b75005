package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogDisabledByDefault(t *testing.T) {
	Disable()
	if Enabled() {
		t.Fatal("logger enabled after Disable")
	}
	Log("smf", "dropped") // must not panic with no writer
}

func TestLogWritesCategory(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	Log("smf", "skipped %d bytes", 3)
	if !strings.Contains(buf.String(), "smf") || !strings.Contains(buf.String(), "skipped 3 bytes") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestOnlyFiltersCategories(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()
	Only("live")
	defer Only()

	Log("smf", "hidden")
	Log("live", "shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableWriter(&buf)
	defer Disable()

	for i := 0; i < 10; i++ {
		LogEvery(5, "clock", "tick")
	}
	if got := strings.Count(buf.String(), "tick (every 5"); got != 2 {
		t.Errorf("logged %d times, want 2\n%s", got, buf.String())
	}
}
