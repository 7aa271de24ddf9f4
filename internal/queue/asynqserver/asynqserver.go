package asynqserver

import (
	"fmt"
	"time"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/cache"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/config"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/queue/processor"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/queue/task"
	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/worker"

	"github.com/hibiken/asynq"
)

func New(cfg config.Cache, workers *worker.Workers) (*asynq.Server, *asynq.ServeMux) {
	mux, queues := getQueues(workers)
	srv := asynq.NewServer(
		RedisOptions(cfg),
		asynq.Config{
			Concurrency: 10,
			LogLevel:    asynq.ErrorLevel,
			Queues:      queues,
		},
	)

	return srv, mux
}

// NewScheduler registers the periodic verification sweep. It runs outside
// the request path entirely.
func NewScheduler(cfg config.Cache, sweepEvery time.Duration) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(
		RedisOptions(cfg),
		&asynq.SchedulerOpts{
			LogLevel: asynq.ErrorLevel,
		},
	)

	if _, err := scheduler.Register(
		fmt.Sprintf("@every %s", sweepEvery),
		task.NewSweepVerificationsTask(),
	); err != nil {
		return nil, fmt.Errorf("register sweep verifications task failed: %w", err)
	}

	return scheduler, nil
}

func RedisOptions(cfg config.Cache) asynq.RedisConnOpt {
	var opts asynq.RedisConnOpt
	if cfg.Type == cache.RedisTypeCluster {
		opts = asynq.RedisClusterClientOpt{Addrs: cfg.RedisCluster.Addresses, Password: cfg.RedisCluster.Password}
	} else {
		opts = asynq.RedisClientOpt{Addr: cfg.Redis.Address, Password: cfg.Redis.Password}
	}
	return opts
}

func getQueues(workers *worker.Workers) (*asynq.ServeMux, map[string]int) {
	mux := asynq.NewServeMux()
	mux.Handle(task.SweepVerificationsTaskName, processor.NewSweepVerificationsProcessor(workers))
	queues := map[string]int{
		task.SweepVerificationsQueueName: 1,
	}
	return mux, queues
}
