package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/missiles/internal/core/missile"
	"github.com/zeusync/missiles/internal/core/systems/physics"
)

// Config is the on-disk description of a simulation run.
type Config struct {
	Simulation SimulationConfig        `yaml:"simulation"`
	Logging    LoggingConfig           `yaml:"logging"`
	Presets    map[string]PresetConfig `yaml:"presets"`
	Scenario   *ScenarioConfig         `yaml:"scenario,omitempty"`
}

type SimulationConfig struct {
	Tick     time.Duration `yaml:"tick"`
	Duration time.Duration `yaml:"duration"`
	Realtime bool          `yaml:"realtime"`
	Index    IndexConfig   `yaml:"index"`
}

// IndexConfig tunes the spatial index fan-out.
type IndexConfig struct {
	MinChildren int `yaml:"min_children"`
	MaxChildren int `yaml:"max_children"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PresetConfig struct {
	Speed           float64       `yaml:"speed"`
	Arc             float64       `yaml:"arc,omitempty"`
	Homing          bool          `yaml:"homing,omitempty"`
	ZOffset         float64       `yaml:"z_offset,omitempty"`
	Pitch           bool          `yaml:"pitch,omitempty"`
	DestroyOnFinish *bool         `yaml:"destroy_on_finish,omitempty"`
	UpdateInterval  time.Duration `yaml:"update_interval,omitempty"`
	CollisionRange  float64       `yaml:"collision_range,omitempty"`
	CollideOnce     bool          `yaml:"collide_once,omitempty"`
}

type ScenarioConfig struct {
	Units    []UnitConfig   `yaml:"units"`
	Launches []LaunchConfig `yaml:"launches"`
}

type UnitConfig struct {
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position"`
	// Velocity is in units per second.
	Velocity []float64 `yaml:"velocity,omitempty"`
	HP       int       `yaml:"hp,omitempty"`
}

type LaunchConfig struct {
	Preset string        `yaml:"preset"`
	From   []float64     `yaml:"from"`
	Unit   string        `yaml:"unit,omitempty"`
	Point  []float64     `yaml:"point,omitempty"`
	Delay  time.Duration `yaml:"delay,omitempty"`
}

// Default returns a runnable configuration with a small preset library.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Tick:     missile.DefaultTickInterval,
			Duration: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
		Presets: map[string]PresetConfig{
			"arrow":  {Speed: 900, Arc: 0.1, CollisionRange: 40, CollideOnce: true},
			"seeker": {Speed: 600, Homing: true, ZOffset: 60, Pitch: true, CollisionRange: 80, CollideOnce: true},
			"mortar": {Speed: 400, Arc: 0.35, Pitch: true, CollisionRange: 250, CollideOnce: true},
		},
	}
}

// Load reads YAML from r on top of Default and validates the result.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads and validates a YAML config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Load(bytes.NewReader(data))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Tick <= 0 {
		return fmt.Errorf("simulation tick must be positive")
	}
	if c.Simulation.Duration < 0 {
		return fmt.Errorf("simulation duration must not be negative")
	}
	for name, p := range c.Presets {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("preset %s validation failed: %w", name, err)
		}
	}
	if c.Scenario != nil {
		if err := c.Scenario.Validate(c.Presets); err != nil {
			return fmt.Errorf("scenario validation failed: %w", err)
		}
	}
	return nil
}

// Validate validates the preset configuration
func (p PresetConfig) Validate() error {
	switch {
	case !(p.Speed > 0):
		return fmt.Errorf("speed must be positive")
	case p.Arc < 0:
		return fmt.Errorf("arc must not be negative")
	case p.UpdateInterval < 0:
		return fmt.Errorf("update interval must not be negative")
	case p.CollisionRange < 0:
		return fmt.Errorf("collision range must not be negative")
	}
	return nil
}

// Preset converts the preset into launch parameters. Projectiles are
// destroyed on finish unless the preset says otherwise.
func (p PresetConfig) Preset() missile.Preset {
	return missile.Preset{
		Speed:          p.Speed,
		Arc:            p.Arc,
		Homing:         p.Homing,
		ZOffset:        p.ZOffset,
		Pitch:          p.Pitch,
		KeepOnFinish:   p.DestroyOnFinish != nil && !*p.DestroyOnFinish,
		UpdateInterval: p.UpdateInterval,
		CollisionRange: p.CollisionRange,
		CollideOnce:    p.CollideOnce,
	}
}

// MissilePresets converts every preset.
func (c *Config) MissilePresets() map[string]missile.Preset {
	out := make(map[string]missile.Preset, len(c.Presets))
	for name, p := range c.Presets {
		out[name] = p.Preset()
	}
	return out
}

// Validate validates the scenario against the known presets
func (s *ScenarioConfig) Validate(presets map[string]PresetConfig) error {
	names := make(map[string]struct{}, len(s.Units))
	for i, u := range s.Units {
		if u.Name == "" {
			return fmt.Errorf("unit %d name is required", i)
		}
		if _, dup := names[u.Name]; dup {
			return fmt.Errorf("unit %s is declared twice", u.Name)
		}
		names[u.Name] = struct{}{}
		if _, err := Vec3(u.Position); err != nil {
			return fmt.Errorf("unit %s position: %w", u.Name, err)
		}
		if u.Velocity != nil {
			if _, err := Vec3(u.Velocity); err != nil {
				return fmt.Errorf("unit %s velocity: %w", u.Name, err)
			}
		}
		if u.HP < 0 {
			return fmt.Errorf("unit %s hp must not be negative", u.Name)
		}
	}
	for i, l := range s.Launches {
		if _, ok := presets[l.Preset]; !ok {
			return fmt.Errorf("launch %d uses unknown preset %q", i, l.Preset)
		}
		if _, err := Vec3(l.From); err != nil {
			return fmt.Errorf("launch %d from: %w", i, err)
		}
		switch {
		case l.Unit != "" && l.Point != nil:
			return fmt.Errorf("launch %d must target either a unit or a point", i)
		case l.Unit != "":
			if _, ok := names[l.Unit]; !ok {
				return fmt.Errorf("launch %d targets unknown unit %q", i, l.Unit)
			}
		case l.Point != nil:
			if _, err := Vec3(l.Point); err != nil {
				return fmt.Errorf("launch %d point: %w", i, err)
			}
		default:
			return fmt.Errorf("launch %d has no target", i)
		}
		if l.Delay < 0 {
			return fmt.Errorf("launch %d delay must not be negative", i)
		}
	}
	return nil
}

// Vec3 converts a YAML coordinate list; a missing z defaults to zero.
func Vec3(v []float64) (physics.Vec3, error) {
	switch len(v) {
	case 2:
		return physics.V3(v[0], v[1], 0), nil
	case 3:
		return physics.V3(v[0], v[1], v[2]), nil
	default:
		return physics.Vec3{}, fmt.Errorf("expected 2 or 3 coordinates, got %d", len(v))
	}
}
