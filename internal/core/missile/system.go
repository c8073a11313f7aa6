package missile

import (
	"time"

	"github.com/zeusync/missiles/internal/core/events/bus"
	"github.com/zeusync/missiles/internal/core/observability/log"
	"github.com/zeusync/missiles/internal/core/schedule"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

// DefaultTickInterval is the shared driver period used when none is configured.
const DefaultTickInterval = 30 * time.Millisecond

// Stats are lifetime counters for a System.
type Stats struct {
	Fired      uint64
	Finished   uint64
	Stopped    uint64
	Destroyed  uint64
	Collisions uint64
	Ticks      uint64
}

// System owns the state shared by every projectile: the scheduler, the shared
// driver for default-rate projectiles, the spatial query used for collisions,
// and the set of live projectiles. It is built once at simulation start and
// torn down with Shutdown.
type System struct {
	sched  schedule.Scheduler
	driver *schedule.Driver
	space  SpatialQuery
	tick   time.Duration
	log    log.Log
	events bus.EventBus

	presets map[string]Preset
	live    []*Projectile
	stats   Stats
	closed  bool
}

type Option func(*System)

func WithTickInterval(d time.Duration) Option {
	return func(s *System) {
		if d > 0 {
			s.tick = d
		}
	}
}

func WithLogger(l log.Log) Option {
	return func(s *System) {
		if l != nil {
			s.log = l
		}
	}
}

func WithEventBus(b bus.EventBus) Option {
	return func(s *System) { s.events = b }
}

func WithPresets(presets map[string]Preset) Option {
	return func(s *System) {
		for name, p := range presets {
			s.presets[name] = p
		}
	}
}

func New(sched schedule.Scheduler, space SpatialQuery, opts ...Option) *System {
	s := &System{
		sched:   sched,
		space:   space,
		tick:    DefaultTickInterval,
		log:     log.NewNop(),
		presets: make(map[string]Preset),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.driver = schedule.NewDriver(sched, s.tick)
	return s
}

// NewProjectile creates an idle projectile at origin. visual may be nil.
func (s *System) NewProjectile(origin physics.Vec3, visual VisualHandle) (*Projectile, error) {
	if s.closed {
		return nil, ErrSystemClosed
	}
	p := newProjectile(s, origin, visual)
	s.live = append(s.live, p)
	return p, nil
}

func (s *System) TickInterval() time.Duration { return s.tick }

// Driver exposes the shared driver, mainly for inspection.
func (s *System) Driver() *schedule.Driver { return s.driver }

func (s *System) Stats() Stats { return s.stats }

// Live reports projectiles that were created and not yet destroyed.
func (s *System) Live() int { return len(s.live) }

// Armed reports projectiles currently in flight.
func (s *System) Armed() int {
	n := 0
	for _, p := range s.live {
		if p.state == StateArmed {
			n++
		}
	}
	return n
}

// Preset looks up a registered preset by name.
func (s *System) Preset(name string) (Preset, error) {
	p, ok := s.presets[name]
	if !ok {
		return Preset{}, ErrUnknownPreset
	}
	return p, nil
}

func (s *System) RegisterPreset(name string, p Preset) {
	s.presets[name] = p
}

// Shutdown destroys every live projectile without running finish actions and
// stops the shared driver. The system rejects new projectiles afterwards.
func (s *System) Shutdown() {
	if s.closed {
		return
	}
	live := append([]*Projectile(nil), s.live...)
	for _, p := range live {
		if p.state != StateDestroyed {
			p.destroy()
		}
	}
	s.driver.Close()
	s.closed = true
	s.log.Info("missile system shut down",
		log.Uint64("fired", s.stats.Fired),
		log.Uint64("finished", s.stats.Finished),
		log.Uint64("destroyed", s.stats.Destroyed))
}

func (s *System) forget(p *Projectile) {
	for i, cur := range s.live {
		if cur == p {
			copy(s.live[i:], s.live[i+1:])
			s.live[len(s.live)-1] = nil
			s.live = s.live[:len(s.live)-1]
			return
		}
	}
}
