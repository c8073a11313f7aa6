package missile

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/missiles/internal/core/observability/log"
	"github.com/zeusync/missiles/internal/core/schedule"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

// State is the lifecycle position of a projectile.
type State uint8

const (
	StateIdle State = iota
	StateArmed
	StateFinished
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateFinished:
		return "finished"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// arcLift converts the arc factor into initial vertical speed per unit of
// planar speed. With gravity solved to land on target this puts the apex at
// roughly arc times the planar distance above a level launch.
const arcLift = 4.0

// Projectile is a single missile. It is not safe for concurrent use; every
// call must come from the goroutine that drives the scheduler.
type Projectile struct {
	id     uuid.UUID
	sys    *System
	visual VisualHandle
	log    log.Log

	position  physics.Vec3
	velocity  physics.Vec3
	speed     float64 // units per tick
	direction float64

	targetPosition physics.Vec3
	target         EntityRef
	zOffset        float64
	arc            float64

	pitch           bool
	destroyOnFinish bool
	arcEnabled      bool
	homing          bool
	stopRequested   bool
	finished        bool

	interval time.Duration
	state    State
	ticks    int

	collision     *CollisionSession
	preUpdate     PreUpdateAction
	finishActions []FinishAction

	membership     *schedule.Membership
	handle         schedule.Handle
	handleInterval time.Duration
}

func newProjectile(sys *System, origin physics.Vec3, visual VisualHandle) *Projectile {
	id := uuid.New()
	p := &Projectile{
		id:              id,
		sys:             sys,
		visual:          visual,
		log:             sys.log.With(log.Stringer("projectile", id)),
		position:        origin,
		targetPosition:  origin,
		destroyOnFinish: true,
	}
	if visual != nil {
		visual.SetPosition(origin)
	}
	return p
}

func (p *Projectile) ID() uuid.UUID { return p.id }

func (p *Projectile) State() State { return p.state }

func (p *Projectile) Position() physics.Vec3 { return p.position }

// Velocity is the displacement applied per tick.
func (p *Projectile) Velocity() physics.Vec3 { return p.velocity }

// Speed is the planar distance covered per tick.
func (p *Projectile) Speed() float64 { return p.speed }

// Direction is the planar heading in radians.
func (p *Projectile) Direction() float64 { return p.direction }

func (p *Projectile) TargetPosition() physics.Vec3 { return p.targetPosition }

// Target returns the unit being fired at, nil for point shots.
func (p *Projectile) Target() EntityRef { return p.target }

func (p *Projectile) Homing() bool { return p.homing }

func (p *Projectile) ArcEnabled() bool { return p.arcEnabled }

func (p *Projectile) Finished() bool { return p.finished }

func (p *Projectile) StopRequested() bool { return p.stopRequested }

func (p *Projectile) DestroyOnFinish() bool { return p.destroyOnFinish }

// Ticks counts ticks run in the current flight, including the finishing one.
func (p *Projectile) Ticks() int { return p.ticks }

func (p *Projectile) Visual() VisualHandle { return p.visual }

// SetPosition teleports the projectile, e.g. to relaunch it from a new spot.
func (p *Projectile) SetPosition(pos physics.Vec3) {
	p.position = pos
	if p.visual != nil {
		p.visual.SetPosition(pos)
	}
}

func (p *Projectile) SetDestroyOnFinish(v bool) { p.destroyOnFinish = v }

// SetPitch enables tilting the visual along the vertical velocity.
func (p *Projectile) SetPitch(v bool) { p.pitch = v }

// SetUpdateInterval selects a dedicated tick rate; zero returns to the shared
// driver. The new rate applies from the next fire.
func (p *Projectile) SetUpdateInterval(d time.Duration) error {
	if d < 0 {
		return ErrInvalidInterval
	}
	p.interval = d
	return nil
}

func (p *Projectile) UpdateInterval() time.Duration { return p.period() }

func (p *Projectile) SetPreUpdate(a PreUpdateAction) { p.preUpdate = a }

// AddFinishAction appends an action; actions run in the order they were added.
func (p *Projectile) AddFinishAction(a FinishAction) {
	if a != nil {
		p.finishActions = append(p.finishActions, a)
	}
}

// FireAtPoint launches towards a fixed point. Firing an armed projectile
// restarts its flight from the current position.
func (p *Projectile) FireAtPoint(target physics.Vec3, speedPerSecond, arc float64) error {
	if err := p.checkFire(speedPerSecond, arc); err != nil {
		return err
	}
	p.target = nil
	p.zOffset = 0
	p.homing = false
	p.launch(target, speedPerSecond, arc)
	return nil
}

// FireAtEntity launches towards a unit's current position raised by zOffset.
// With homing the aim point follows the unit every tick while it is alive.
func (p *Projectile) FireAtEntity(target EntityRef, zOffset float64, homing bool, speedPerSecond, arc float64) error {
	if err := p.checkFire(speedPerSecond, arc); err != nil {
		return err
	}
	if target == nil {
		return p.reject(ErrNilTarget)
	}
	if !target.IsAlive() {
		return p.reject(ErrTargetDead)
	}
	p.target = target
	p.zOffset = zOffset
	p.homing = homing
	p.launch(aimPoint(target, zOffset), speedPerSecond, arc)
	return nil
}

// RequestStop ends the flight at the next opportunity: between collision
// candidates of the current tick or at the start of the next tick.
func (p *Projectile) RequestStop() {
	if p.state == StateArmed {
		p.stopRequested = true
	}
}

// Destroy releases the projectile immediately without running finish actions.
func (p *Projectile) Destroy() error {
	if p.state == StateDestroyed {
		return p.reject(ErrDestroyed)
	}
	p.destroy()
	return nil
}

// Tick advances the projectile by one period. It is a no-op unless armed.
func (p *Projectile) Tick() {
	if p.state != StateArmed {
		return
	}
	p.ticks++
	p.sys.stats.Ticks++

	if p.preUpdate != nil {
		p.preUpdate.PreUpdate(p)
		if p.state != StateArmed {
			return
		}
	}

	dist := physics.PlanarDistance(p.position, p.targetPosition)
	if p.speed >= dist || p.stopRequested {
		p.finish()
		return
	}

	if p.homing && p.target != nil && p.target.IsAlive() {
		p.targetPosition = aimPoint(p.target, p.zOffset)
		p.direction = physics.Angle(p.position, p.targetPosition)
		dist = physics.PlanarDistance(p.position, p.targetPosition)
		h := physics.Heading(p.direction)
		p.velocity[0] = h.X() * p.speed
		p.velocity[1] = h.Y() * p.speed
		if !p.arcEnabled && dist > 0 {
			p.velocity[2] = (p.targetPosition.Z() - p.position.Z()) / (dist / p.speed)
		}
	}

	if p.arcEnabled {
		heightDelta := p.targetPosition.Z() - p.position.Z()
		if dist <= 2*p.speed {
			// last move before the arrival check passes: land on target height
			p.velocity[2] = heightDelta
		} else {
			remaining := dist / p.speed
			p.velocity[2] += (2 / remaining) * (heightDelta/remaining - p.velocity.Z())
		}
	}

	if p.pitch && p.visual != nil {
		p.visual.SetOrientation(physics.Pitch(p.velocity.Z(), p.speed), p.direction, 0)
	}

	p.position = p.position.Add(p.velocity)
	if p.visual != nil {
		p.visual.SetPosition(p.position)
	}

	if p.collision != nil && p.collision.check(p, p.sys.space, p.position) {
		p.finish()
	}
}

func (p *Projectile) checkFire(speedPerSecond, arc float64) error {
	switch {
	case p.state == StateDestroyed:
		return p.reject(ErrDestroyed)
	case p.sys.closed:
		return p.reject(ErrSystemClosed)
	case !(speedPerSecond > 0) || math.IsInf(speedPerSecond, 1):
		return p.reject(ErrInvalidSpeed)
	case arc < 0 || math.IsNaN(arc):
		return p.reject(ErrInvalidArc)
	}
	return nil
}

func (p *Projectile) reject(err error) error {
	p.log.Warn("projectile contract violation", log.Error(err), log.Stringer("state", p.state))
	return err
}

func (p *Projectile) launch(target physics.Vec3, speedPerSecond, arc float64) {
	origin := p.position
	p.targetPosition = target
	p.speed = speedPerSecond * p.period().Seconds()
	p.arc = arc
	p.arcEnabled = arc > 0
	p.direction = physics.Angle(origin, target)

	h := physics.Heading(p.direction)
	vz := 0.0
	if p.arcEnabled {
		vz = p.speed * arcLift * arc
	} else if dist := physics.PlanarDistance(origin, target); dist > 0 {
		vz = (target.Z() - origin.Z()) / (dist / p.speed)
	}
	p.velocity = physics.V3(h.X()*p.speed, h.Y()*p.speed, vz)

	p.stopRequested = false
	p.finished = false
	p.ticks = 0
	p.state = StateArmed
	if p.visual != nil {
		p.visual.SetOrientation(0, p.direction, 0)
	}
	p.register()

	p.sys.stats.Fired++
	p.log.Debug("projectile fired",
		log.Float64("speed", p.speed),
		log.Float64("arc", arc),
		log.Bool("homing", p.homing),
		log.Float64("distance", physics.PlanarDistance(origin, target)),
		log.Duration("interval", p.period()))
	p.sys.publish(EventFired, p, FiredEvent{
		Projectile: p,
		Origin:     origin,
		Target:     target,
		Speed:      p.speed,
		Arc:        arc,
		Homing:     p.homing,
	})
}

func (p *Projectile) finish() {
	if p.finished {
		return
	}
	stopped := p.stopRequested
	p.finished = true
	p.state = StateFinished
	p.unregister()

	p.sys.stats.Finished++
	if stopped {
		p.sys.stats.Stopped++
	}
	p.log.Debug("projectile finished", log.Int("ticks", p.ticks), log.Bool("stopped", stopped))
	p.sys.publish(EventFinished, p, FinishedEvent{Projectile: p, Position: p.position, Ticks: p.ticks, Stopped: stopped})

	actions := append([]FinishAction(nil), p.finishActions...)
	for _, a := range actions {
		a.OnFinish(p)
		if p.state == StateDestroyed {
			return
		}
	}

	// An action may have re-fired the projectile or flipped the flag.
	if p.state == StateFinished && p.destroyOnFinish {
		p.destroy()
	}
}

func (p *Projectile) destroy() {
	p.unregister()
	p.state = StateDestroyed
	p.collision = nil
	p.preUpdate = nil
	p.finishActions = nil
	p.target = nil
	if p.visual != nil {
		p.visual.Release()
		p.visual = nil
	}
	p.sys.forget(p)
	p.sys.stats.Destroyed++
	p.log.Debug("projectile destroyed")
	p.sys.publish(EventDestroyed, p, DestroyedEvent{Projectile: p})
}

func aimPoint(target EntityRef, zOffset float64) physics.Vec3 {
	return target.Position().Add(physics.V3(0, 0, zOffset))
}
