package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"mockmate/internal/config"
	"mockmate/internal/domain"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Client implements domain.Enqueuer on an asynq client. Payloads are JSON
// with record ids only.
type Client struct {
	client *asynq.Client
	cfg    config.QueueConfig
	logger *zap.Logger
}

// NewClient creates the enqueue side of the job queue.
func NewClient(redisCfg config.RedisConfig, queueCfg config.QueueConfig, logger *zap.Logger) *Client {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	return &Client{client: client, cfg: queueCfg, logger: logger}
}

// Close releases the underlying redis connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueAnswerFeedback implements domain.Enqueuer
func (c *Client) EnqueueAnswerFeedback(ctx context.Context, payload domain.AnswerFeedbackPayload) error {
	return c.enqueue(ctx, TypeAnswerFeedback, QueueFeedback, payload)
}

// EnqueueSessionFeedback implements domain.Enqueuer
func (c *Client) EnqueueSessionFeedback(ctx context.Context, payload domain.SessionFeedbackPayload) error {
	return c.enqueue(ctx, TypeSessionFeedback, QueueFeedback, payload)
}

// EnqueueDocumentAnalysis implements domain.Enqueuer
func (c *Client) EnqueueDocumentAnalysis(ctx context.Context, payload domain.DocumentAnalysisPayload) error {
	return c.enqueue(ctx, TypeDocumentAnalysis, QueueAnalysis, payload)
}

func (c *Client) enqueue(ctx context.Context, taskType, queueName string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}

	// asynq's MaxRetry counts retries after the first attempt; the policy is
	// a total attempt ceiling.
	task := asynq.NewTask(taskType, data,
		asynq.Queue(queueName),
		asynq.MaxRetry(c.cfg.MaxRetries-1),
	)

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}

	c.logger.Info("Job enqueued",
		zap.String("task_type", taskType),
		zap.String("queue", queueName),
		zap.String("task_id", info.ID),
	)
	return nil
}

var _ domain.Enqueuer = (*Client)(nil)
