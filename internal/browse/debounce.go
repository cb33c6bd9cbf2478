// Package browse implements the paginated list views over ready and raw
// videos: server-driven pagination, sort cycling, filters and a debounced
// title search.
package browse

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay between the last keystroke and the search
// request.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces rapid triggers into one callback: each new trigger
// supersedes the pending one, so only the last value within the window
// fires.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer. delay <= 0 falls back to
// DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the delay, cancelling any pending callback.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
