// Package debounce collapses bursts of rapidly changing values into a single
// delivery of the most recent one after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delivers the last value passed to Set once no new value has
// arrived for the configured delay. Every Set restarts the timer, so
// intermediate values are never observed by the callback. Stop cancels any
// pending delivery; nothing fires after Stop returns.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	deliver func(T)
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New creates a Debouncer invoking deliver on its own timer goroutine.
func New[T any](delay time.Duration, deliver func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay:   delay,
		deliver: deliver,
	}
}

// Set schedules value for delivery after the quiet period, superseding any
// value still pending.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		// A newer Set or a Stop may have raced with the timer firing;
		// only the latest generation is allowed through. The lock is held
		// across deliver so a concurrent Set cannot slip in between the
		// staleness check and the callback. deliver must not call back
		// into the Debouncer.
		if d.stopped || gen != d.gen {
			return
		}
		d.deliver(value)
	})
}

// Stop cancels any pending delivery and rejects further Set calls.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
