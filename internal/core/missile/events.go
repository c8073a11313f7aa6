package missile

import (
	"github.com/zeusync/missiles/internal/core/events/bus"
	"github.com/zeusync/missiles/internal/core/observability/log"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

// Event types published on the system's bus.
const (
	EventFired     = "projectile.fired"
	EventCollision = "projectile.collision"
	EventFinished  = "projectile.finished"
	EventDestroyed = "projectile.destroyed"
)

type FiredEvent struct {
	Projectile *Projectile
	Origin     physics.Vec3
	Target     physics.Vec3
	Speed      float64
	Arc        float64
	Homing     bool
}

type CollisionEvent struct {
	Projectile *Projectile
	Position   physics.Vec3
	Target     EntityRef
}

type FinishedEvent struct {
	Projectile *Projectile
	Position   physics.Vec3
	Ticks      int
	Stopped    bool
}

type DestroyedEvent struct {
	Projectile *Projectile
}

func (s *System) publish(typ string, p *Projectile, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(bus.NewEvent(typ, p.ID().String(), data)); err != nil {
		s.log.Warn("event handler failed", log.Stringer("projectile", p.ID()), log.String("event", typ), log.Error(err))
	}
}
