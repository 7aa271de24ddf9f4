package task

import (
	"github.com/hibiken/asynq"
)

const (
	SweepVerificationsTaskName  = "sweepVerificationsTask"
	SweepVerificationsQueueName = "maintenanceQueue"
)

func NewSweepVerificationsTask() *asynq.Task {
	return asynq.NewTask(
		SweepVerificationsTaskName,
		nil,
		asynq.MaxRetry(3),
		asynq.Queue(SweepVerificationsQueueName),
	)
}
