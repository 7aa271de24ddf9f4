package processor

import (
	"context"

	"github.com/kartikdhasmana/Expense-Tracker-Dashboard/internal/worker"

	"github.com/hibiken/asynq"
	"github.com/pkg/errors"
)

type sweepVerificationsProcessor struct {
	workers *worker.Workers
}

func NewSweepVerificationsProcessor(workers *worker.Workers) *sweepVerificationsProcessor {
	return &sweepVerificationsProcessor{
		workers: workers,
	}
}

func (p *sweepVerificationsProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	if _, err := p.workers.VerificationSweeper.Sweep(ctx); err != nil {
		return errors.Wrap(err, "process sweep verifications task")
	}

	return nil
}
