// Package debounce delays work until its input has stopped changing for
// a quiet window.
package debounce

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultWindow matches the recalculation delay of the interactive form.
const DefaultWindow = 500 * time.Millisecond

// Debouncer calls fn with the most recent value once no newer value has
// arrived for the window. It is safe for concurrent use.
type Debouncer[T any] struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	window  time.Duration
	fn      func(T)
	timer   clockwork.Timer
	pending bool
	latest  T
	stopped bool
}

func New[T any](clock clockwork.Clock, window time.Duration, fn func(T)) *Debouncer[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer[T]{clock: clock, window: window, fn: fn}
}

// Trigger records v and restarts the quiet window.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.latest = v
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = d.clock.AfterFunc(d.window, d.fire)
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.pending = false
	d.mu.Unlock()
	d.fn(v)
}

// Flush runs a pending call now instead of waiting for the window.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.fire()
}

// Stop drops any pending call; later triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}
