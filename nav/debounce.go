package nav

import (
	"sync"
	"time"
)

// MinQuietPeriod is the shortest quiet period of a Debouncer.
const MinQuietPeriod = 250 * time.Millisecond

// Debouncer calls a function once a burst of triggers is over.
type Debouncer struct {
	quiet time.Duration
	f     func()

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a Debouncer calling f after quiet without triggers.
// quiet is raised to MinQuietPeriod.
func NewDebouncer(quiet time.Duration, f func()) *Debouncer {
	return &Debouncer{quiet: max(quiet, MinQuietPeriod), f: f}
}

// Quiet returns the quiet period.
func (d *Debouncer) Quiet() time.Duration { return d.quiet }

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, d.f)
}

// Stop cancels a pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
