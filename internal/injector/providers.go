package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/missiles/internal/config"
	"github.com/zeusync/missiles/internal/core/events/bus"
	"github.com/zeusync/missiles/internal/core/missile"
	"github.com/zeusync/missiles/internal/core/observability/log"
	"github.com/zeusync/missiles/internal/core/schedule"
	"github.com/zeusync/missiles/internal/core/world"
	"github.com/zeusync/missiles/internal/scenario"
)

// Runtime is everything a simulation run needs, wired from one config.
type Runtime struct {
	Config    *config.Config
	Logger    *log.Logger
	Events    bus.EventBus
	World     *world.World
	System    *missile.System
	Scenario  *scenario.Runner
	Scheduler schedule.Scheduler
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideEventBus,
	ProvideWorld,
	ProvideSystem,
	ProvideScenario,
	wire.Struct(new(Runtime), "*"),
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.New(log.ParseLevel(cfg.Logging.Level))
}

func ProvideEventBus() bus.EventBus {
	return bus.New()
}

func ProvideWorld(cfg *config.Config) *world.World {
	return world.New(world.Options{
		MinChildren: cfg.Simulation.Index.MinChildren,
		MaxChildren: cfg.Simulation.Index.MaxChildren,
	})
}

func ProvideSystem(cfg *config.Config, sched schedule.Scheduler, w *world.World, logger *log.Logger, events bus.EventBus) *missile.System {
	return missile.New(sched, w,
		missile.WithTickInterval(cfg.Simulation.Tick),
		missile.WithLogger(logger.With(log.String("component", "missile"))),
		missile.WithEventBus(events),
		missile.WithPresets(cfg.MissilePresets()),
	)
}

func ProvideScenario(cfg *config.Config, sched schedule.Scheduler, w *world.World, sys *missile.System, logger *log.Logger) *scenario.Runner {
	return scenario.New(cfg, sched, w, sys, logger.With(log.String("component", "scenario")))
}
