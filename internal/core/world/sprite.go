package world

import (
	"github.com/zeusync/missiles/internal/core/missile"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

var _ missile.VisualHandle = (*Sprite)(nil)

// Sprite is a headless stand-in for a projectile's visual. It keeps the last
// pose it was given so runs can be inspected and fingerprinted.
type Sprite struct {
	name     string
	pos      physics.Vec3
	pitch    float64
	yaw      float64
	roll     float64
	moves    int
	released bool
}

func (s *Sprite) SetPosition(pos physics.Vec3) {
	s.pos = pos
	s.moves++
}

func (s *Sprite) SetOrientation(pitch, yaw, roll float64) {
	s.pitch, s.yaw, s.roll = pitch, yaw, roll
}

func (s *Sprite) Release() { s.released = true }

func (s *Sprite) Name() string { return s.name }

func (s *Sprite) Position() physics.Vec3 { return s.pos }

func (s *Sprite) Orientation() (pitch, yaw, roll float64) { return s.pitch, s.yaw, s.roll }

func (s *Sprite) Moves() int { return s.moves }

func (s *Sprite) Released() bool { return s.released }
