package physics

// Vector2 represents anything carrying planar coordinates.
// mgl64.Vec2 and mgl64.Vec3 both satisfy it.
type Vector2 interface {
	X() float64
	Y() float64
}
