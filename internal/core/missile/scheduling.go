package missile

import (
	"time"

	"github.com/zeusync/missiles/internal/core/schedule"
)

// Mode tells how an armed projectile is being ticked.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeShared
	ModeDedicated
)

func (m Mode) String() string {
	switch m {
	case ModeShared:
		return "shared"
	case ModeDedicated:
		return "dedicated"
	default:
		return "none"
	}
}

// Mode reports the current scheduling mode.
func (p *Projectile) Mode() Mode {
	switch {
	case p.membership != nil:
		return ModeShared
	case p.handle != schedule.NoHandle:
		return ModeDedicated
	default:
		return ModeNone
	}
}

func (p *Projectile) period() time.Duration {
	if p.interval > 0 {
		return p.interval
	}
	return p.sys.tick
}

func (p *Projectile) wantsDedicated() bool {
	return p.interval > 0 && p.interval != p.sys.tick
}

// register makes sure the projectile is ticked exactly once per period in the
// mode its interval calls for. Re-registering in the same mode keeps the
// existing slot.
func (p *Projectile) register() {
	if p.wantsDedicated() {
		if p.membership != nil {
			p.sys.driver.Remove(p.membership)
			p.membership = nil
		}
		if p.handle != schedule.NoHandle {
			if p.handleInterval == p.interval {
				return
			}
			p.sys.sched.Cancel(p.handle)
		}
		p.handle = p.sys.sched.Schedule(p.interval, p.Tick)
		p.handleInterval = p.interval
		return
	}

	if p.handle != schedule.NoHandle {
		p.sys.sched.Cancel(p.handle)
		p.handle = schedule.NoHandle
	}
	if p.membership == nil {
		p.membership = p.sys.driver.Add(p)
	}
}

func (p *Projectile) unregister() {
	if p.membership != nil {
		p.sys.driver.Remove(p.membership)
		p.membership = nil
	}
	if p.handle != schedule.NoHandle {
		p.sys.sched.Cancel(p.handle)
		p.handle = schedule.NoHandle
		p.handleInterval = 0
	}
}
