//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/missiles/internal/config"
	"github.com/zeusync/missiles/internal/core/schedule"
)

// InitializeRuntime builds a Runtime for cfg driven by sched.
func InitializeRuntime(cfg *config.Config, sched schedule.Scheduler) *Runtime {
	wire.Build(ProviderSet)
	return nil
}
