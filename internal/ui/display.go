// Package ui provides terminal output for the CLI: styled status lines,
// section rules, fixed-width ordinal labels, and a live multi-meter progress
// display redrawn in place with ANSI escapes. The display degrades to silence
// when stdout is not a terminal.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	barWidth     = 20
	redrawEvery  = 80 * time.Millisecond
	escCursorUp  = "\x1b[%dA"
	escClearLine = "\x1b[2K"
)

// Display renders a set of progress meters as aligned terminal lines,
// redrawn in place by a ticker goroutine. Meters may be added and updated
// from multiple goroutines; the display serializes all rendering behind
// its mutex.
type Display struct {
	mu        sync.Mutex
	out       *os.File
	meters    []*Meter
	prevLines int
	done      chan struct{}
	stopped   chan struct{}
	active    bool
}

// Meter is one progress line: a label, a current/total pair, and a
// visibility flag. A hidden meter keeps its state but renders nothing.
type Meter struct {
	d       *Display
	label   string
	current int64
	total   int64
	visible bool
}

// NewDisplay creates a display writing to out. Live rendering only engages
// when out is a terminal.
func NewDisplay(out *os.File) *Display {
	return &Display{
		out:     out,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		active:  isTerminal(out),
	}
}

// NewMeter registers a meter with the given label and total and returns it.
// A zero total renders counts without a bar until a total is known.
func (d *Display) NewMeter(label string, total int64) *Meter {
	m := &Meter{d: d, label: label, total: total, visible: true}
	d.mu.Lock()
	d.meters = append(d.meters, m)
	d.mu.Unlock()
	return m
}

// Start begins the redraw loop. No-op when not on a terminal.
func (d *Display) Start() {
	if !d.active {
		close(d.stopped)
		return
	}
	go func() {
		defer close(d.stopped)
		ticker := time.NewTicker(redrawEvery)
		defer ticker.Stop()
		for {
			select {
			case <-d.done:
				return
			case <-ticker.C:
				d.render()
			}
		}
	}()
}

// Stop halts the redraw loop, leaving a final frame on screen.
func (d *Display) Stop() {
	select {
	case <-d.done:
	default:
		close(d.done)
	}
	<-d.stopped
	if d.active {
		d.render()
	}
}

// Set updates the meter's progress counts.
func (m *Meter) Set(current, total int64) {
	m.d.mu.Lock()
	m.current = current
	if total > 0 {
		m.total = total
	}
	m.d.mu.Unlock()
}

// Advance increments the meter's current count by n.
func (m *Meter) Advance(n int64) {
	m.d.mu.Lock()
	m.current += n
	m.d.mu.Unlock()
}

// SetVisible toggles whether the meter renders. State is retained either way.
func (m *Meter) SetVisible(v bool) {
	m.d.mu.Lock()
	m.visible = v
	m.d.mu.Unlock()
}

// Current returns the meter's current count.
func (m *Meter) Current() int64 {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	return m.current
}

// Total returns the meter's total, 0 while unknown.
func (m *Meter) Total() int64 {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	return m.total
}

// Visible reports whether the meter currently renders.
func (m *Meter) Visible() bool {
	m.d.mu.Lock()
	defer m.d.mu.Unlock()
	return m.visible
}

// render redraws every visible meter, overwriting the previous frame and
// clearing any lines the new frame no longer uses.
func (d *Display) render() {
	d.mu.Lock()
	defer d.mu.Unlock()

	var b strings.Builder
	if d.prevLines > 0 {
		fmt.Fprintf(&b, escCursorUp, d.prevLines)
	}
	lines := 0
	for _, m := range d.meters {
		if !m.visible {
			continue
		}
		b.WriteString(escClearLine + m.line() + "\n")
		lines++
	}
	for extra := d.prevLines - lines; extra > 0; extra-- {
		b.WriteString(escClearLine + "\n")
	}
	if d.prevLines > lines {
		fmt.Fprintf(&b, escCursorUp, d.prevLines-lines)
	}
	d.prevLines = lines
	fmt.Fprint(d.out, b.String())
}

// line formats one meter as "label [####----] cur/total".
func (m *Meter) line() string {
	if m.total <= 0 {
		return m.label + " " + StyleDim.Render(fmt.Sprintf("%d", m.current))
	}
	cur := m.current
	if cur > m.total {
		cur = m.total
	}
	filled := int(cur * barWidth / m.total)
	bar := styleBarFill.Render(strings.Repeat("#", filled)) +
		styleBarEmpty.Render(strings.Repeat("-", barWidth-filled))
	counts := StyleDim.Render(fmt.Sprintf("%d/%d", cur, m.total))
	return fmt.Sprintf("%s [%s] %s", m.label, bar, counts)
}

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
