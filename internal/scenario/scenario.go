// Package scenario plays a configured set of units and launches against the
// missile system. It is the host side of the simulation: it owns the units,
// moves them, and decides what a hit means.
package scenario

import (
	"fmt"
	"time"

	"github.com/zeusync/missiles/internal/config"
	"github.com/zeusync/missiles/internal/core/missile"
	"github.com/zeusync/missiles/internal/core/observability/log"
	"github.com/zeusync/missiles/internal/core/schedule"
	"github.com/zeusync/missiles/internal/core/systems/physics"
	"github.com/zeusync/missiles/internal/core/world"
)

type mover struct {
	unit *world.Unit
	step physics.Vec3
}

type Runner struct {
	cfg   *config.Config
	sched schedule.Scheduler
	world *world.World
	sys   *missile.System
	log   log.Log

	units    map[string]*world.Unit
	hp       map[*world.Unit]int
	movers   []mover
	moving   schedule.Handle
	pending  map[schedule.Handle]struct{}
	launched int
}

func New(cfg *config.Config, sched schedule.Scheduler, w *world.World, sys *missile.System, logger log.Log) *Runner {
	return &Runner{
		cfg:     cfg,
		sched:   sched,
		world:   w,
		sys:     sys,
		log:     logger,
		units:   make(map[string]*world.Unit),
		hp:      make(map[*world.Unit]int),
		pending: make(map[schedule.Handle]struct{}),
	}
}

// Setup spawns the units, starts unit movement and queues every launch.
// Launches without a delay fire immediately.
func (r *Runner) Setup() error {
	sc := r.cfg.Scenario
	if sc == nil {
		return nil
	}
	tick := r.cfg.Simulation.Tick
	for _, uc := range sc.Units {
		pos, err := config.Vec3(uc.Position)
		if err != nil {
			return fmt.Errorf("unit %s: %w", uc.Name, err)
		}
		u := r.world.Spawn(uc.Name, pos)
		r.units[uc.Name] = u
		r.hp[u] = uc.HP
		if uc.Velocity != nil {
			v, err := config.Vec3(uc.Velocity)
			if err != nil {
				return fmt.Errorf("unit %s: %w", uc.Name, err)
			}
			r.movers = append(r.movers, mover{unit: u, step: v.Mul(tick.Seconds())})
		}
	}
	if len(r.movers) > 0 {
		r.moving = r.sched.Schedule(tick, r.moveUnits)
	}

	for i, lc := range sc.Launches {
		if lc.Delay <= 0 {
			if err := r.launch(lc); err != nil {
				return fmt.Errorf("launch %d: %w", i, err)
			}
			continue
		}
		r.after(lc.Delay, func() {
			if err := r.launch(lc); err != nil {
				r.log.Warn("delayed launch failed", log.Int("launch", i), log.Error(err))
			}
		})
	}
	return nil
}

// Close stops unit movement and drops launches that have not fired yet.
// Projectiles already in flight belong to the missile system.
func (r *Runner) Close() {
	if r.moving != schedule.NoHandle {
		r.sched.Cancel(r.moving)
		r.moving = schedule.NoHandle
	}
	for h := range r.pending {
		r.sched.Cancel(h)
		delete(r.pending, h)
	}
}

// Pending reports launches that have not fired yet.
func (r *Runner) Pending() int { return len(r.pending) }

// Launched reports how many launches fired.
func (r *Runner) Launched() int { return r.launched }

// Unit looks a scenario unit up by name.
func (r *Runner) Unit(name string) (*world.Unit, bool) {
	u, ok := r.units[name]
	return u, ok
}

func (r *Runner) after(delay time.Duration, fn func()) {
	var h schedule.Handle
	h = r.sched.Schedule(delay, func() {
		r.sched.Cancel(h)
		delete(r.pending, h)
		fn()
	})
	r.pending[h] = struct{}{}
}

func (r *Runner) moveUnits() {
	for _, m := range r.movers {
		if m.unit.IsAlive() {
			m.unit.MoveBy(m.step)
		}
	}
}

func (r *Runner) launch(lc config.LaunchConfig) error {
	preset, err := r.sys.Preset(lc.Preset)
	if err != nil {
		return err
	}
	from, err := config.Vec3(lc.From)
	if err != nil {
		return err
	}
	sprite := r.world.NewSprite(fmt.Sprintf("%s#%d", lc.Preset, r.launched))
	p, err := r.sys.NewProjectile(from, sprite)
	if err != nil {
		return err
	}
	p.AddFinishAction(missile.FinishFunc(r.onFinish))

	if lc.Unit != "" {
		err = p.FirePresetAtEntity(preset, r.units[lc.Unit])
	} else {
		var point physics.Vec3
		if point, err = config.Vec3(lc.Point); err == nil {
			err = p.FirePresetAtPoint(preset, point)
		}
	}
	if err != nil {
		_ = p.Destroy()
		return err
	}
	// the preset installs the session; the first check runs on the next tick
	if p.Collisions() != nil {
		p.SetCollisionFilter(missile.AliveOnly)
		p.SetCollisionAction(missile.CollisionActionFunc(r.onHit))
	}
	r.launched++
	return nil
}

func (r *Runner) onHit(p *missile.Projectile, target missile.EntityRef) {
	u, ok := target.(*world.Unit)
	if !ok {
		return
	}
	u.Hit()
	r.log.Debug("unit hit", log.String("unit", u.Name()), log.Int("hits", u.Hits()), log.Stringer("projectile", p.ID()))
	if hp := r.hp[u]; hp > 0 && u.Hits() >= hp {
		u.Kill()
		r.log.Info("unit destroyed", log.String("unit", u.Name()))
	}
}

func (r *Runner) onFinish(p *missile.Projectile) {
	pos := p.Position()
	r.log.Debug("impact",
		log.Stringer("projectile", p.ID()),
		log.Float64("x", pos.X()),
		log.Float64("y", pos.Y()),
		log.Float64("z", pos.Z()),
		log.Int("ticks", p.Ticks()))
}

// UnitReport is the end-of-run state of one unit.
type UnitReport struct {
	Name  string
	Hits  int
	Alive bool
}

type Report struct {
	Stats    missile.Stats
	Checksum uint64
	Launched int
	Units    []UnitReport
}

func (r *Runner) Report() Report {
	rep := Report{
		Stats:    r.sys.Stats(),
		Checksum: r.world.Checksum(),
		Launched: r.launched,
	}
	for _, u := range r.world.Units() {
		rep.Units = append(rep.Units, UnitReport{Name: u.Name(), Hits: u.Hits(), Alive: u.IsAlive()})
	}
	return rep
}
