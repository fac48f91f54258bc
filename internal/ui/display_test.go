package ui

import (
	"os"
	"strings"
	"testing"
)

func newTestDisplay(t *testing.T) *Display {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "display")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return NewDisplay(f)
}

func TestMeter_SetAndAdvance(t *testing.T) {
	d := newTestDisplay(t)
	m := d.NewMeter("repo", 4)

	m.Set(2, 4)
	if m.current != 2 || m.total != 4 {
		t.Errorf("after Set(2, 4): current=%d total=%d, want 2 and 4", m.current, m.total)
	}

	m.Advance(1)
	if m.current != 3 {
		t.Errorf("after Advance(1): current = %d, want 3", m.current)
	}
}

func TestMeter_SetKeepsTotalWhenZero(t *testing.T) {
	d := newTestDisplay(t)
	m := d.NewMeter("repo", 0)

	m.Set(5, 20)
	if m.total != 20 {
		t.Fatalf("total = %d, want 20", m.total)
	}

	// A zero total in a later update must not erase the known total.
	m.Set(7, 0)
	if m.total != 20 {
		t.Errorf("total = %d after Set(7, 0), want 20", m.total)
	}
	if m.current != 7 {
		t.Errorf("current = %d, want 7", m.current)
	}
}

func TestMeter_Line(t *testing.T) {
	d := newTestDisplay(t)

	m := d.NewMeter("[1/2] caput", 20)
	m.Set(10, 20)
	line := m.line()
	if !strings.Contains(line, "[1/2] caput") {
		t.Errorf("line %q missing label", line)
	}
	if !strings.Contains(line, "10/20") {
		t.Errorf("line %q missing counts", line)
	}

	// Unknown total renders the raw count without a bar.
	u := d.NewMeter("unknown", 0)
	u.Set(3, 0)
	if got := u.line(); !strings.Contains(got, "3") || strings.Contains(got, "#") {
		t.Errorf("line %q should show a bare count and no bar", got)
	}
}

func TestMeter_LineClampsOverflow(t *testing.T) {
	d := newTestDisplay(t)
	m := d.NewMeter("r", 10)
	m.Set(15, 10)
	if got := m.line(); !strings.Contains(got, "10/10") {
		t.Errorf("line %q should clamp current to total", got)
	}
}

func TestDisplay_HiddenMeterNotRendered(t *testing.T) {
	d := newTestDisplay(t)
	shown := d.NewMeter("shown", 4)
	hidden := d.NewMeter("hidden", 4)
	hidden.SetVisible(false)

	d.mu.Lock()
	visible := 0
	for _, m := range d.meters {
		if m.visible {
			visible++
		}
	}
	d.mu.Unlock()

	if visible != 1 {
		t.Fatalf("visible meters = %d, want 1", visible)
	}
	if !shown.visible {
		t.Error("shown meter should stay visible")
	}
	// Hidden meters keep their state.
	if hidden.total != 4 {
		t.Errorf("hidden meter total = %d, want 4", hidden.total)
	}
}

func TestDisplay_StartStopNonTerminal(t *testing.T) {
	d := newTestDisplay(t)
	if d.active {
		t.Fatal("temp file should not be detected as a terminal")
	}
	// Start/Stop must not hang or panic without a terminal.
	d.Start()
	d.NewMeter("repo", 4).Set(1, 4)
	d.Stop()
}
