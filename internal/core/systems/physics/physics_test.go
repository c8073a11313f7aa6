package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanarDistanceIgnoresHeight(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(3, 4, 100)
	assert.InDelta(t, 5.0, PlanarDistance(a, b), 1e-9)
	assert.InDelta(t, 5.0, PlanarDistance(b, V2(0, 0)), 1e-9)
}

func TestAngle(t *testing.T) {
	origin := V3(10, 10, 7)
	assert.InDelta(t, math.Pi/2, Angle(origin, V2(10, 20)), 1e-9)
	assert.InDelta(t, math.Pi, Angle(origin, V3(0, 10, -3)), 1e-9)
	assert.InDelta(t, -math.Pi/4, Angle(origin, V2(20, 0)), 1e-9)
}

func TestHeadingIsUnit(t *testing.T) {
	for _, a := range []float64{0, 0.3, math.Pi / 2, -2.5, math.Pi} {
		assert.InDelta(t, 1.0, Heading(a).Len(), 1e-9)
	}
}

func TestPlanarDropsHeight(t *testing.T) {
	assert.Equal(t, V2(1, 2), Planar(V3(1, 2, 3)))
}

func TestPitch(t *testing.T) {
	assert.InDelta(t, 0.0, Pitch(0, 15), 1e-9)
	assert.InDelta(t, math.Pi/4, Pitch(15, 15), 1e-9)
	assert.Less(t, Pitch(-5, 15), 0.0)
}
