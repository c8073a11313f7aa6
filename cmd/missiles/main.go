package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/missiles/internal/config"
	"github.com/zeusync/missiles/internal/core/observability/log"
	"github.com/zeusync/missiles/internal/core/schedule"
	"github.com/zeusync/missiles/internal/injector"
	"github.com/zeusync/missiles/internal/scenario"
)

func main() {
	app := cli.NewApp()
	app.Name = "missiles"
	app.Usage = "Headless projectile simulation"
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "Play a scenario and print the outcome",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "config, c", Value: "", Usage: "YAML config file; built-in defaults when empty"},
				cli.DurationFlag{Name: "duration, d", Usage: "Simulated time to run; overrides the config"},
				cli.BoolFlag{Name: "realtime", Usage: "Advance with the wall clock instead of fast-forwarding"},
				cli.StringFlag{Name: "log-level", Value: "", Usage: "Overrides logging.level"},
			},
			Action: runCommand,
		},
		{
			Name:  "validate",
			Usage: "Check a config file",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "config, c", Value: "", Usage: "YAML config file"},
			},
			Action: validateCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}

func validateCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	units, launches := 0, 0
	if cfg.Scenario != nil {
		units, launches = len(cfg.Scenario.Units), len(cfg.Scenario.Launches)
	}
	fmt.Printf("config ok: tick=%s presets=%d units=%d launches=%d\n",
		cfg.Simulation.Tick, len(cfg.Presets), units, launches)
	return nil
}

func runCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("duration") {
		cfg.Simulation.Duration = c.Duration("duration")
	}
	if c.IsSet("realtime") {
		cfg.Simulation.Realtime = c.Bool("realtime")
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	var rep scenario.Report
	if cfg.Simulation.Realtime {
		rep, err = runRealtime(cfg)
	} else {
		rep, err = runFastForward(cfg)
	}
	if err != nil {
		return err
	}
	printReport(rep)
	return nil
}

func runFastForward(cfg *config.Config) (scenario.Report, error) {
	clock := schedule.NewManual()
	rt := injector.InitializeRuntime(cfg, clock)
	defer func() { _ = rt.Logger.Sync() }()

	if err := rt.Scenario.Setup(); err != nil {
		return scenario.Report{}, err
	}
	clock.Advance(cfg.Simulation.Duration)
	rep := rt.Scenario.Report()
	logReport(rt.Logger, rep, clock.Now())
	rt.Scenario.Close()
	rt.System.Shutdown()
	return rep, nil
}

func runRealtime(cfg *config.Config) (scenario.Report, error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := schedule.NewRealtime(cfg.Simulation.Tick)
	rt := injector.InitializeRuntime(cfg, clock)
	defer func() { _ = rt.Logger.Sync() }()

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return clock.Run(gctx) })

	var rep scenario.Report
	g.Go(func() error {
		defer cancel()
		var setupErr error
		if err := onClock(gctx, clock, func() { setupErr = rt.Scenario.Setup() }); err != nil {
			return err
		}
		if setupErr != nil {
			return setupErr
		}

		timer := time.NewTimer(cfg.Simulation.Duration)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-gctx.Done():
			rt.Logger.Info("interrupted, collecting report")
		}

		collect := func() {
			rep = rt.Scenario.Report()
			logReport(rt.Logger, rep, clock.Elapsed())
			rt.Scenario.Close()
			rt.System.Shutdown()
		}
		err := onClock(context.Background(), clock, collect)
		if errors.Is(err, schedule.ErrStopped) {
			// Run has returned, nothing else touches the simulation
			collect()
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return scenario.Report{}, err
	}
	return rep, nil
}

// onClock runs fn on the clock goroutine and waits for it to return.
func onClock(ctx context.Context, clock *schedule.Realtime, fn func()) error {
	done := make(chan struct{})
	if err := clock.Do(ctx, func() { fn(); close(done) }); err != nil {
		return err
	}
	<-done
	return nil
}

func logReport(l log.Log, rep scenario.Report, elapsed time.Duration) {
	l.Info("simulation complete",
		log.Duration("elapsed", elapsed),
		log.Int("launched", rep.Launched),
		log.Uint64("fired", rep.Stats.Fired),
		log.Uint64("finished", rep.Stats.Finished),
		log.Uint64("collisions", rep.Stats.Collisions),
		log.Uint64("ticks", rep.Stats.Ticks),
		log.String("checksum", fmt.Sprintf("%016x", rep.Checksum)))
}

func printReport(rep scenario.Report) {
	fmt.Printf("launched %d, finished %d, collisions %d, checksum %016x\n",
		rep.Launched, rep.Stats.Finished, rep.Stats.Collisions, rep.Checksum)
	for _, u := range rep.Units {
		state := "alive"
		if !u.Alive {
			state = "dead"
		}
		fmt.Printf("  %-16s hits=%-3d %s\n", u.Name, u.Hits, state)
	}
}
