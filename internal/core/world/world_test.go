package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/missiles/internal/core/missile"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

func names(refs []missile.EntityRef) map[string]bool {
	out := make(map[string]bool, len(refs))
	for _, r := range refs {
		out[r.(*Unit).Name()] = true
	}
	return out
}

func TestInRangeUsesPlanarDistance(t *testing.T) {
	w := New(Options{})
	w.Spawn("near", physics.V3(100, 0, 900))
	w.Spawn("edge", physics.V3(0, 500, 0))
	w.Spawn("corner", physics.V3(400, 400, 0))
	w.Spawn("far", physics.V3(1000, 0, 0))

	got := names(w.InRange(physics.V2(0, 0), 500))
	assert.Equal(t, map[string]bool{"near": true, "edge": true}, got)
}

func TestMoveKeepsIndexInSync(t *testing.T) {
	w := New(Options{MinChildren: 2, MaxChildren: 4})
	u := w.Spawn("runner", physics.V3(0, 0, 0))
	for i := 0; i < 20; i++ {
		w.Spawn("filler", physics.V3(float64(i)*1000, 5000, 0))
	}

	u.MoveBy(physics.V3(2000, 0, 0))
	assert.Empty(t, w.InRange(physics.V2(0, 0), 10))
	got := w.InRange(physics.V2(2000, 0), 10)
	require.Len(t, got, 1)
	assert.Same(t, u, got[0])
}

func TestDeadUnitsLeaveQueries(t *testing.T) {
	w := New(Options{})
	u := w.Spawn("victim", physics.V3(10, 10, 0))
	u.Kill()
	assert.False(t, u.IsAlive())
	assert.Empty(t, w.InRange(physics.V2(10, 10), 50))

	// moving a corpse must not resurrect it in the index
	u.MoveTo(physics.V3(20, 20, 0))
	assert.Empty(t, w.InRange(physics.V2(20, 20), 50))
	assert.Equal(t, physics.V3(20, 20, 0), u.Position())
}

func TestChecksumTracksState(t *testing.T) {
	build := func() (*World, *Sprite) {
		w := New(Options{})
		w.Spawn("a", physics.V3(1, 2, 3))
		s := w.NewSprite("missile")
		s.SetPosition(physics.V3(4, 5, 6))
		return w, s
	}
	w1, _ := build()
	w2, s2 := build()
	assert.Equal(t, w1.Checksum(), w2.Checksum())

	s2.SetPosition(physics.V3(4, 5, 7))
	assert.NotEqual(t, w1.Checksum(), w2.Checksum())
}

func TestSpriteRecordsPose(t *testing.T) {
	w := New(Options{})
	s := w.NewSprite("m")
	s.SetPosition(physics.V3(1, 1, 1))
	s.SetOrientation(0.1, 0.2, 0)
	s.Release()

	pitch, yaw, _ := s.Orientation()
	assert.Equal(t, 0.1, pitch)
	assert.Equal(t, 0.2, yaw)
	assert.Equal(t, 1, s.Moves())
	assert.True(t, s.Released())
	assert.Len(t, w.Sprites(), 1)
}
