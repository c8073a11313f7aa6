package world

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/dhconnelly/rtreego"
	"github.com/google/uuid"

	"github.com/zeusync/missiles/internal/core/missile"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

const (
	pointTolerance = 0.01

	DefaultMinChildren = 25
	DefaultMaxChildren = 50
)

var _ missile.SpatialQuery = (*World)(nil)

// Options tunes the R-tree fan-out.
type Options struct {
	MinChildren int
	MaxChildren int
}

// World is an in-memory host: units indexed in a 2D R-tree for range
// queries, plus the sprites handed out to projectiles.
type World struct {
	tree    *rtreego.Rtree
	units   map[uuid.UUID]*Unit
	order   []*Unit
	sprites []*Sprite
}

func New(opts Options) *World {
	if opts.MinChildren <= 0 {
		opts.MinChildren = DefaultMinChildren
	}
	if opts.MaxChildren <= opts.MinChildren {
		opts.MaxChildren = 2 * opts.MinChildren
	}
	return &World{
		tree:  rtreego.NewTree(2, opts.MinChildren, opts.MaxChildren),
		units: make(map[uuid.UUID]*Unit),
	}
}

// Spawn adds a live unit at pos.
func (w *World) Spawn(name string, pos physics.Vec3) *Unit {
	u := &Unit{
		id:      uuid.New(),
		name:    name,
		pos:     pos,
		alive:   true,
		indexed: physics.Planar(pos),
		world:   w,
	}
	w.units[u.id] = u
	w.order = append(w.order, u)
	w.tree.Insert(u)
	return u
}

// Unit looks a unit up by id.
func (w *World) Unit(id uuid.UUID) (*Unit, bool) {
	u, ok := w.units[id]
	return u, ok
}

// Units returns every unit in spawn order, dead ones included.
func (w *World) Units() []*Unit {
	return append([]*Unit(nil), w.order...)
}

// NewSprite hands out a visual for a projectile.
func (w *World) NewSprite(name string) *Sprite {
	s := &Sprite{name: name}
	w.sprites = append(w.sprites, s)
	return s
}

func (w *World) Sprites() []*Sprite {
	return append([]*Sprite(nil), w.sprites...)
}

// InRange returns live units within radius of center on the plane.
func (w *World) InRange(center physics.Vec2, radius float64) []missile.EntityRef {
	if radius <= 0 {
		return nil
	}
	bb, err := rtreego.NewRect(rtreego.Point{center.X() - radius, center.Y() - radius}, []float64{2 * radius, 2 * radius})
	if err != nil {
		return nil
	}
	found := w.tree.SearchIntersect(bb)
	out := make([]missile.EntityRef, 0, len(found))
	for _, s := range found {
		u := s.(*Unit)
		if u.alive && physics.PlanarDistance(center, u.pos) <= radius {
			out = append(out, u)
		}
	}
	return out
}

// Checksum fingerprints every unit and sprite pose. Two runs of the same
// scenario must produce the same value.
func (w *World) Checksum() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	for _, u := range w.order {
		_, _ = h.WriteString(u.name)
		writeFloat(u.pos.X())
		writeFloat(u.pos.Y())
		writeFloat(u.pos.Z())
		if u.alive {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	}
	for _, s := range w.sprites {
		_, _ = h.WriteString(s.name)
		writeFloat(s.pos.X())
		writeFloat(s.pos.Y())
		writeFloat(s.pos.Z())
		writeFloat(s.yaw)
	}
	return h.Sum64()
}

func (w *World) move(u *Unit, pos physics.Vec3) {
	u.pos = pos
	if !u.alive {
		return
	}
	w.tree.Delete(u)
	u.indexed = physics.Planar(pos)
	w.tree.Insert(u)
}

func (w *World) kill(u *Unit) {
	if !u.alive {
		return
	}
	u.alive = false
	w.tree.Delete(u)
}
