package schedule

import "time"

// Membership is a Tickable's slot in the shared driver. It stays valid until
// removed; removing twice is a no-op.
type Membership struct {
	target  Tickable
	removed bool
}

// Removed reports whether the slot was released.
func (m *Membership) Removed() bool { return m == nil || m.removed }

// Driver advances every member once per period from a single periodic
// callback. Members tick in insertion order. The underlying timer runs only
// while the driver has members.
//
// Removal during a pass only marks the slot; the slice is compacted once the
// pass ends, so a member finishing (or destroying another member) mid-pass
// never shifts the iteration. Members added mid-pass first tick next period.
type Driver struct {
	sched    Scheduler
	interval time.Duration
	handle   Handle
	running  bool

	members   []*Membership
	live      int
	iterating bool
	dirty     bool
	passes    uint64
}

func NewDriver(sched Scheduler, interval time.Duration) *Driver {
	if interval <= 0 {
		panic(ErrInvalidInterval)
	}
	return &Driver{sched: sched, interval: interval}
}

func (d *Driver) Interval() time.Duration { return d.interval }

// Len reports live members.
func (d *Driver) Len() int { return d.live }

// Running reports whether the periodic callback is currently active.
func (d *Driver) Running() bool { return d.running }

// Passes reports how many periods the driver has executed.
func (d *Driver) Passes() uint64 { return d.passes }

// Add appends t and starts the driver if it was idle.
func (d *Driver) Add(t Tickable) *Membership {
	m := &Membership{target: t}
	d.members = append(d.members, m)
	d.live++
	if !d.iterating {
		d.syncTimer()
	}
	return m
}

// Remove releases a slot and pauses the driver when it empties.
func (d *Driver) Remove(m *Membership) {
	if m == nil || m.removed {
		return
	}
	m.removed = true
	m.target = nil
	d.live--
	if d.iterating {
		d.dirty = true
		return
	}
	d.sweep()
	d.syncTimer()
}

// Close cancels the periodic callback and drops every member.
func (d *Driver) Close() {
	for _, m := range d.members {
		m.removed = true
		m.target = nil
	}
	d.members = nil
	d.live = 0
	if d.handle != NoHandle {
		d.sched.Cancel(d.handle)
		d.handle = NoHandle
	}
	d.running = false
}

func (d *Driver) run() {
	d.passes++
	d.iterating = true
	n := len(d.members)
	// Close may empty the slice mid-pass.
	for i := 0; i < n && i < len(d.members); i++ {
		if m := d.members[i]; !m.removed {
			m.target.Tick()
		}
	}
	d.iterating = false
	if d.dirty {
		d.sweep()
	}
	d.syncTimer()
}

func (d *Driver) sweep() {
	kept := d.members[:0]
	for _, m := range d.members {
		if !m.removed {
			kept = append(kept, m)
		}
	}
	for i := len(kept); i < len(d.members); i++ {
		d.members[i] = nil
	}
	d.members = kept
	d.dirty = false
}

func (d *Driver) syncTimer() {
	switch {
	case d.live > 0 && !d.running:
		if d.handle == NoHandle {
			d.handle = d.sched.Schedule(d.interval, d.run)
		} else {
			d.sched.Resume(d.handle)
		}
		d.running = true
	case d.live == 0 && d.running:
		d.sched.Pause(d.handle)
		d.running = false
	}
}
