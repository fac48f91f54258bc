package clone

import (
	"fmt"

	"github.com/chime-experiment/mkchimeenv/internal/ui"
)

// Monitor renders a single repository's transfer on the shared display. The
// overall meter ticks once per completed stage, and each stage gets its own
// sub-meter, created on first sight and hidden once the stage finishes.
type Monitor struct {
	display *ui.Display
	label   string
	name    string
	overall *ui.Meter
	stages  map[Stage]*ui.Meter
	done    map[Stage]bool
}

// NewMonitor registers the overall meter for one repository. The label is a
// fixed-width position marker so concurrent rows line up.
func NewMonitor(display *ui.Display, label, name string) *Monitor {
	m := &Monitor{
		display: display,
		label:   label,
		name:    name,
		stages:  make(map[Stage]*ui.Meter),
		done:    make(map[Stage]bool),
	}
	m.overall = display.NewMeter(fmt.Sprintf("%s %s", label, name), stageTotal)
	return m
}

// Update folds one progress event into the meters. Events may arrive for any
// stage in any order; all unrecognized signals share the Unknown sub-meter.
// A stage ticks the overall meter only the first time it reports finished.
func (m *Monitor) Update(ev Event) {
	stage, finished := MatchOp(ev.Op)
	meter, ok := m.stages[stage]
	if !ok {
		meter = m.display.NewMeter(fmt.Sprintf("%s %s: %s", m.label, m.name, stage), ev.Total)
		m.stages[stage] = meter
	}
	meter.Set(ev.Current, ev.Total)
	meter.SetVisible(!finished)
	if finished && !m.done[stage] {
		m.done[stage] = true
		m.overall.Advance(1)
	}
}
