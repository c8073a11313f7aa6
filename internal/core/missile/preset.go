package missile

import (
	"time"

	"github.com/zeusync/missiles/internal/core/systems/physics"
)

// Preset bundles launch parameters that are usually authored as data. The
// zero value of every flag matches a fresh projectile, so a preset only has to
// name what it changes.
type Preset struct {
	Speed   float64
	Arc     float64
	Homing  bool
	ZOffset float64
	Pitch   bool
	// KeepOnFinish leaves the projectile idle after its flight instead of
	// destroying it.
	KeepOnFinish   bool
	UpdateInterval time.Duration
	CollisionRange float64
	CollideOnce    bool
}

// Apply copies the preset's flags and collision settings onto p.
func (p *Projectile) Apply(preset Preset) error {
	if err := p.SetUpdateInterval(preset.UpdateInterval); err != nil {
		return err
	}
	p.pitch = preset.Pitch
	p.destroyOnFinish = !preset.KeepOnFinish
	if preset.CollisionRange > 0 {
		return p.EnableCollisions(preset.CollisionRange, preset.CollideOnce)
	}
	p.collision = nil
	return nil
}

// FirePresetAtPoint applies the preset and fires at a point.
func (p *Projectile) FirePresetAtPoint(preset Preset, target physics.Vec3) error {
	if err := p.Apply(preset); err != nil {
		return err
	}
	return p.FireAtPoint(target, preset.Speed, preset.Arc)
}

// FirePresetAtEntity applies the preset and fires at a unit.
func (p *Projectile) FirePresetAtEntity(preset Preset, target EntityRef) error {
	if err := p.Apply(preset); err != nil {
		return err
	}
	return p.FireAtEntity(target, preset.ZOffset, preset.Homing, preset.Speed, preset.Arc)
}
