package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 and Vec3 are the value types used across the simulation.
type (
	Vec2 = mgl64.Vec2
	Vec3 = mgl64.Vec3
)

// V2 builds a planar vector.
func V2(x, y float64) Vec2 { return Vec2{x, y} }

// V3 builds a world vector.
func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

// Planar drops the height component.
func Planar(v Vector2) Vec2 { return Vec2{v.X(), v.Y()} }

// PlanarDistance ignores height; this is the distance used for arrival and range checks.
func PlanarDistance(a, b Vector2) float64 { return math.Hypot(b.X()-a.X(), b.Y()-a.Y()) }

// Angle returns the planar heading in radians from one point to another.
func Angle(from, to Vector2) float64 { return math.Atan2(to.Y()-from.Y(), to.X()-from.X()) }

// Heading returns the unit planar vector for an angle.
func Heading(angle float64) Vec2 { return Vec2{math.Cos(angle), math.Sin(angle)} }

// Pitch returns the elevation angle for a vertical rate against a planar rate.
func Pitch(vertical, planar float64) float64 { return math.Atan2(vertical, planar) }
