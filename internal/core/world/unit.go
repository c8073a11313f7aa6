package world

import (
	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"

	"github.com/zeusync/missiles/internal/core/missile"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

var _ missile.EntityRef = (*Unit)(nil)

// Unit is a game unit living in a World.
type Unit struct {
	id    uuid.UUID
	name  string
	pos   physics.Vec3
	alive bool
	hits  int

	// indexed is the position the unit was last inserted into the tree with;
	// Bounds must keep returning it until the unit is re-indexed.
	indexed physics.Vec2
	world   *World
}

func (u *Unit) ID() uuid.UUID { return u.id }

func (u *Unit) Name() string { return u.name }

func (u *Unit) Position() physics.Vec3 { return u.pos }

func (u *Unit) IsAlive() bool { return u.alive }

// Hits counts collision hits recorded with Hit.
func (u *Unit) Hits() int { return u.hits }

// Hit records one collision against the unit.
func (u *Unit) Hit() { u.hits++ }

// MoveTo relocates the unit and keeps the spatial index in sync.
func (u *Unit) MoveTo(pos physics.Vec3) { u.world.move(u, pos) }

// MoveBy relocates the unit by an offset.
func (u *Unit) MoveBy(delta physics.Vec3) { u.world.move(u, u.pos.Add(delta)) }

// Kill marks the unit dead and drops it from range queries.
func (u *Unit) Kill() { u.world.kill(u) }

// Bounds implements rtreego.Spatial.
func (u *Unit) Bounds() rtreego.Rect {
	return rtreego.Point{u.indexed.X(), u.indexed.Y()}.ToRect(pointTolerance)
}

func (u *Unit) String() string { return u.name }
