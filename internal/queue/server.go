package queue

import (
	"context"
	"time"

	"mockmate/internal/config"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Backoff computes the delay before a retry: base doubling per attempt
// (2s, 4s with the default base).
func Backoff(base time.Duration, retried int) time.Duration {
	return base << uint(retried)
}

// NewServer builds the worker-side asynq server with one pool per named
// queue and the exponential retry policy.
func NewServer(redisCfg config.RedisConfig, queueCfg config.QueueConfig, logger *zap.Logger) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Address,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		asynq.Config{
			Concurrency: queueCfg.FeedbackConcurrency + queueCfg.AnalysisConcurrency,
			Queues: map[string]int{
				QueueFeedback: queueCfg.FeedbackConcurrency,
				QueueAnalysis: queueCfg.AnalysisConcurrency,
			},
			RetryDelayFunc: func(retried int, err error, task *asynq.Task) time.Duration {
				return Backoff(queueCfg.BackoffBase, retried)
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("Job attempt failed",
					zap.String("task_type", task.Type()),
					zap.Error(err),
				)
			}),
		},
	)
}
