package missile

import (
	"github.com/zeusync/missiles/internal/core/observability/log"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

// CollisionSession is the area-of-effect hit configuration of one projectile.
// Every hit is recorded; the record only suppresses repeat hits when
// CollideOnce is set.
type CollisionSession struct {
	rng         float64
	collideOnce bool
	collided    map[EntityRef]struct{}
	filter      CollisionFilter
	action      CollisionAction
}

func (s *CollisionSession) Range() float64 { return s.rng }

func (s *CollisionSession) CollideOnce() bool { return s.collideOnce }

// HasCollided reports whether e was hit since the last clear.
func (s *CollisionSession) HasCollided(e EntityRef) bool {
	_, ok := s.collided[e]
	return ok
}

// Collided reports how many distinct entities were hit since the last clear.
func (s *CollisionSession) Collided() int { return len(s.collided) }

// check runs one query around center and dispatches hits. It reports whether
// the projectile should finish now because a stop was requested.
func (s *CollisionSession) check(p *Projectile, space SpatialQuery, center physics.Vec3) bool {
	if space == nil {
		return false
	}
	for _, candidate := range space.InRange(physics.Planar(center), s.rng) {
		if p.stopRequested {
			return true
		}
		// An action may have destroyed the projectile or swapped the session.
		if p.state != StateArmed || p.collision != s {
			return false
		}
		if s.collideOnce && s.HasCollided(candidate) {
			continue
		}
		if s.filter != nil && !s.filter.Accept(p, candidate) {
			continue
		}

		p.sys.stats.Collisions++
		p.sys.publish(EventCollision, p, CollisionEvent{Projectile: p, Position: center, Target: candidate})
		if s.action != nil {
			s.action.OnCollision(p, candidate)
		}
		if s.collided == nil {
			s.collided = make(map[EntityRef]struct{})
		}
		s.collided[candidate] = struct{}{}
	}
	return p.stopRequested && p.state == StateArmed
}

// EnableCollisions attaches a collision session, replacing any previous one.
func (p *Projectile) EnableCollisions(radius float64, collideOnce bool) error {
	if !(radius > 0) {
		return p.reject(ErrInvalidRange)
	}
	p.collision = &CollisionSession{rng: radius, collideOnce: collideOnce}
	p.log.Debug("collisions enabled", log.Float64("range", radius), log.Bool("collide_once", collideOnce))
	return nil
}

func (p *Projectile) DisableCollisions() { p.collision = nil }

// Collisions returns the active session, nil when collisions are off.
func (p *Projectile) Collisions() *CollisionSession { return p.collision }

// SetCollisionFilter is a no-op while collisions are disabled.
func (p *Projectile) SetCollisionFilter(f CollisionFilter) {
	if p.collision != nil {
		p.collision.filter = f
	}
}

// SetCollisionAction is a no-op while collisions are disabled.
func (p *Projectile) SetCollisionAction(a CollisionAction) {
	if p.collision != nil {
		p.collision.action = a
	}
}

// ClearCollided forgets every recorded hit so those entities can be hit again.
func (p *Projectile) ClearCollided() {
	if p.collision != nil {
		p.collision.collided = nil
	}
}
