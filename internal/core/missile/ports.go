package missile

import (
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

// EntityRef is a host game unit a projectile can target or hit. Implementations
// must be comparable (pointer types in practice) since refs key the collided set.
type EntityRef interface {
	Position() physics.Vec3
	IsAlive() bool
}

// VisualHandle is the host's visual representation of a projectile.
type VisualHandle interface {
	SetPosition(pos physics.Vec3)
	SetOrientation(pitch, yaw, roll float64)
	Release()
}

// SpatialQuery returns every entity within planar range of center. Order is
// unspecified.
type SpatialQuery interface {
	InRange(center physics.Vec2, radius float64) []EntityRef
}
