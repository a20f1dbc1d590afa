package mapview

import (
	"sync"
	"time"
)

// DefaultQuiescence is how long map movement must be idle before the caller
// should re-query stops.
const DefaultQuiescence = 500 * time.Millisecond

// Debouncer defers a function until no new trigger has arrived for the
// quiet window. Each trigger cancels the pending timer, so only the last
// movement in a burst fires.
type Debouncer struct {
	mu    sync.Mutex
	quiet time.Duration
	timer *time.Timer
}

func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiescence
	}
	return &Debouncer{quiet: quiet}
}

// Trigger schedules fn after the quiet window, replacing any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, fn)
}

// Stop cancels any pending call. Required on unmount so no timer outlives
// its owner.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
