package missile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/missiles/internal/core/events/bus"
	"github.com/zeusync/missiles/internal/core/missile"
	"github.com/zeusync/missiles/internal/core/schedule"
	"github.com/zeusync/missiles/internal/core/systems/physics"
	"github.com/zeusync/missiles/internal/core/world"
)

const tick = 30 * time.Millisecond

type harness struct {
	clock  *schedule.Manual
	world  *world.World
	events bus.EventBus
	sys    *missile.System
}

func newHarness(t *testing.T, opts ...missile.Option) *harness {
	t.Helper()
	h := &harness{
		clock:  schedule.NewManual(),
		world:  world.New(world.Options{}),
		events: bus.New(),
	}
	opts = append([]missile.Option{missile.WithTickInterval(tick), missile.WithEventBus(h.events)}, opts...)
	h.sys = missile.New(h.clock, h.world, opts...)
	t.Cleanup(h.sys.Shutdown)
	return h
}

func (h *harness) projectile(t *testing.T, origin physics.Vec3) (*missile.Projectile, *world.Sprite) {
	t.Helper()
	sprite := h.world.NewSprite("missile")
	p, err := h.sys.NewProjectile(origin, sprite)
	require.NoError(t, err)
	return p, sprite
}

func (h *harness) step(n int) { h.clock.Step(tick, n) }

// runUntilDone steps one period at a time until p leaves the armed state and
// returns how many periods that took.
func (h *harness) runUntilDone(t *testing.T, p *missile.Projectile, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		h.step(1)
		if p.State() != missile.StateArmed {
			return i
		}
	}
	t.Fatalf("projectile still armed after %d ticks at %v", limit, p.Position())
	return 0
}
