package schedule

import (
	"context"
	"time"
)

var _ Scheduler = (*Realtime)(nil)

// Realtime drives a Manual clock from the wall clock. Every callback, and
// every function passed to Do, runs on the goroutine executing Run, which
// keeps the single-threaded model intact. Scheduler methods must only be
// called from that goroutine.
type Realtime struct {
	clock      *Manual
	resolution time.Duration
	work       chan func()
	done       chan struct{}
}

func NewRealtime(resolution time.Duration) *Realtime {
	if resolution <= 0 {
		panic(ErrInvalidInterval)
	}
	return &Realtime{
		clock:      NewManual(),
		resolution: resolution,
		work:       make(chan func()),
		done:       make(chan struct{}),
	}
}

func (r *Realtime) Schedule(interval time.Duration, fn func()) Handle {
	return r.clock.Schedule(interval, fn)
}

func (r *Realtime) Cancel(h Handle) { r.clock.Cancel(h) }
func (r *Realtime) Pause(h Handle)  { r.clock.Pause(h) }
func (r *Realtime) Resume(h Handle) { r.clock.Resume(h) }

// Elapsed reports simulated time. Only meaningful on the Run goroutine.
func (r *Realtime) Elapsed() time.Duration { return r.clock.Now() }

// Do runs fn on the clock goroutine and waits until it was accepted.
func (r *Realtime) Do(ctx context.Context, fn func()) error {
	select {
	case r.work <- fn:
		return nil
	case <-r.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run advances the clock until ctx is canceled.
func (r *Realtime) Run(ctx context.Context) error {
	defer close(r.done)

	ticker := time.NewTicker(r.resolution)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-r.work:
			fn()
		case now := <-ticker.C:
			r.clock.Advance(now.Sub(last))
			last = now
		}
	}
}
