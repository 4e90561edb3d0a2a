package modules

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"
)

// AsynqSchedule registers a task on a cron spec ("@every 1h", "0 9 * * 1").
type AsynqSchedule struct {
	Spec string
	Task *asynq.Task
}

type AsynqScheduler struct {
	RedisUsername string
	RedisPassword string
	RedisAddress  string
	RedisDB       int
}

func (s AsynqScheduler) Run(
	ctx context.Context,
	g *errgroup.Group,
	schedules ...AsynqSchedule,
) {
	g.Go(func() error {
		redisConnection := asynq.RedisClientOpt{
			Addr:     s.RedisAddress,
			Username: s.RedisUsername,
			Password: s.RedisPassword,
			DB:       s.RedisDB,
		}

		scheduler := asynq.NewScheduler(redisConnection, &asynq.SchedulerOpts{})

		for _, schedule := range schedules {
			if _, err := scheduler.Register(schedule.Spec, schedule.Task); err != nil {
				return fmt.Errorf("scheduler.Register %s: %w", schedule.Task.Type(), err)
			}
		}

		go func() {
			<-ctx.Done()
			scheduler.Shutdown()
		}()

		logger(ctx).Info("asynq scheduler started", slog.String("redis-address", s.RedisAddress), slog.Int("schedules", len(schedules)))

		if err := scheduler.Run(); err != nil {
			return fmt.Errorf("scheduler.Run: %w", err)
		}

		logger(ctx).Info("asynq scheduler stopped")

		return nil
	})
}
