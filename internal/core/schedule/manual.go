package schedule

import (
	"time"

	"github.com/zeusync/missiles/pkg/sequence"
)

var _ Scheduler = (*Manual)(nil)

type timer struct {
	handle   Handle
	interval time.Duration
	next     time.Duration
	fn       func()
	item     *sequence.Item[*timer]
}

func dueBefore(a, b *timer) bool {
	if a.next != b.next {
		return a.next < b.next
	}
	return a.handle < b.handle
}

// Manual is a deterministic scheduler driven by explicit Advance calls.
// Due callbacks fire in due-time order, ties broken by registration order.
// Paused timers stay registered but leave the due queue.
type Manual struct {
	now    time.Duration
	seq    Handle
	timers map[Handle]*timer
	due    *sequence.Heap[*timer]
}

func NewManual() *Manual {
	return &Manual{
		timers: make(map[Handle]*timer),
		due:    sequence.NewHeap(dueBefore),
	}
}

// Schedule registers fn to run every interval, first run one interval from now.
// A non-positive interval panics: every caller derives it from validated config.
func (m *Manual) Schedule(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		panic(ErrInvalidInterval)
	}
	m.seq++
	t := &timer{handle: m.seq, interval: interval, next: m.now + interval, fn: fn}
	t.item = m.due.Push(t)
	m.timers[t.handle] = t
	return t.handle
}

func (m *Manual) Cancel(h Handle) {
	if t, ok := m.timers[h]; ok {
		m.due.Remove(t.item)
		delete(m.timers, h)
	}
}

func (m *Manual) Pause(h Handle) {
	if t, ok := m.timers[h]; ok {
		m.due.Remove(t.item)
	}
}

// Resume restarts a paused timer; its next run is one full interval away.
func (m *Manual) Resume(h Handle) {
	if t, ok := m.timers[h]; ok && !t.item.Queued() {
		t.next = m.now + t.interval
		t.item = m.due.Push(t)
	}
}

// Now reports the scheduler's elapsed time.
func (m *Manual) Now() time.Duration { return m.now }

// Pending reports how many timers are registered and not paused.
func (m *Manual) Pending() int { return m.due.Len() }

// Advance moves time forward by d, firing every callback that comes due.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t, ok := m.due.Peek()
		if !ok || t.next > target {
			break
		}
		if t.next > m.now {
			m.now = t.next
		}
		t.next += t.interval
		m.due.Fix(t.item)
		t.fn()
	}
	m.now = target
}

// Step calls Advance(interval) n times; convenient in tests.
func (m *Manual) Step(interval time.Duration, n int) {
	for i := 0; i < n; i++ {
		m.Advance(interval)
	}
}
