package scheduler

import (
	"context"

	"github.com/sajithvengateri-svg/chefos/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(Register),
)

func Register(lc fx.Lifecycle, cfg config.Config, sched *Scheduler) {
	if !cfg.SchedulerEnabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return sched.Start(cfg.ShortfallCron)
		},
		OnStop: func(context.Context) error {
			sched.Stop()
			return nil
		},
	})
}
