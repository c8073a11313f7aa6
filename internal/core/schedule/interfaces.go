package schedule

import "time"

// Handle identifies a periodic callback registered with a Scheduler.
type Handle uint64

// NoHandle is never returned by Schedule.
const NoHandle Handle = 0

// Scheduler is the host's periodic callback capability. Callbacks are
// delivered one at a time on a single goroutine; a callback may schedule,
// cancel, pause or resume any handle including its own.
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) Handle
	Cancel(h Handle)
	Pause(h Handle)
	Resume(h Handle)
}

// Tickable is advanced by the shared driver once per period.
type Tickable interface {
	Tick()
}
