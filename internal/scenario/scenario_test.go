package scenario_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/missiles/internal/config"
	"github.com/zeusync/missiles/internal/core/schedule"
	"github.com/zeusync/missiles/internal/injector"
	"github.com/zeusync/missiles/internal/scenario"
)

const doc = `
simulation:
  tick: 30ms
logging:
  level: error
presets:
  bolt:
    speed: 1500
    collision_range: 60
    collide_once: true
scenario:
  units:
    - name: wall
      position: [600, 0]
      hp: 1
    - name: runner
      position: [0, 500, 0]
      velocity: [150, 0, 0]
  launches:
    - preset: bolt
      from: [0, 0]
      point: [1200, 0]
    - preset: seeker
      from: [0, 0]
      unit: runner
    - preset: mortar
      from: [0, 0]
      point: [300, 300]
      delay: 500ms
`

func run(t *testing.T) scenario.Report {
	t.Helper()
	cfg, err := config.Load(strings.NewReader(doc))
	require.NoError(t, err)

	clock := schedule.NewManual()
	rt := injector.InitializeRuntime(cfg, clock)
	defer rt.System.Shutdown()

	require.NoError(t, rt.Scenario.Setup())
	assert.Equal(t, 2, rt.Scenario.Launched())
	assert.Equal(t, 1, rt.Scenario.Pending())

	clock.Advance(5 * time.Second)
	assert.Equal(t, 0, rt.Scenario.Pending())
	assert.Equal(t, 0, rt.System.Armed())
	rep := rt.Scenario.Report()

	rt.Scenario.Close()
	rt.System.Shutdown()
	assert.Equal(t, 0, clock.Pending(), "nothing left scheduled after close")
	return rep
}

func TestScenarioPlaysOut(t *testing.T) {
	rep := run(t)

	assert.Equal(t, 3, rep.Launched)
	assert.Equal(t, uint64(3), rep.Stats.Fired)
	assert.Equal(t, uint64(3), rep.Stats.Finished)
	require.Len(t, rep.Units, 2)

	wall := rep.Units[0]
	assert.Equal(t, "wall", wall.Name)
	assert.Equal(t, 1, wall.Hits)
	assert.False(t, wall.Alive)

	runner := rep.Units[1]
	assert.Equal(t, "runner", runner.Name)
	assert.GreaterOrEqual(t, runner.Hits, 1, "the seeker catches the runner")
	assert.True(t, runner.Alive)
}

func TestScenarioIsDeterministic(t *testing.T) {
	a := run(t)
	b := run(t)
	assert.Equal(t, a.Checksum, b.Checksum)
	assert.Equal(t, a.Stats, b.Stats)
}

func TestCloseCancelsMovementAndQueuedLaunches(t *testing.T) {
	cfg, err := config.Load(strings.NewReader(doc))
	require.NoError(t, err)

	clock := schedule.NewManual()
	rt := injector.InitializeRuntime(cfg, clock)
	defer rt.System.Shutdown()

	require.NoError(t, rt.Scenario.Setup())
	// unit mover, shared projectile driver, delayed mortar
	assert.Equal(t, 3, clock.Pending())

	rt.Scenario.Close()
	assert.Equal(t, 0, rt.Scenario.Pending())
	assert.Equal(t, 1, clock.Pending(), "flights in progress keep ticking")

	runner, ok := rt.Scenario.Unit("runner")
	require.True(t, ok)
	at := runner.Position()

	clock.Advance(2 * time.Second)
	assert.Equal(t, at, runner.Position())
	assert.Equal(t, 2, rt.Scenario.Launched(), "the queued launch never fires")

	rt.System.Shutdown()
	assert.Equal(t, 0, clock.Pending())
}
