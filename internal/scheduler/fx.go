package scheduler

import (
	"context"

	"github.com/smallbiznis/shoplink/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(Start),
)

// Start launches the background sweep loop. A zero SyncInterval leaves
// syncing to the HTTP trigger endpoint alone.
func Start(lc fx.Lifecycle, cfg config.Config, sched *Scheduler) {
	if cfg.SyncInterval <= 0 {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go sched.RunForever(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
