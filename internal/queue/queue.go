// Package queue provides background render dispatch using Asynq.
// It is used instead of the in-memory task runner when a Redis instance is configured.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gifcrop/internal/types"
	"gifcrop/log"
	apperrors "gifcrop/pkg/errors"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Task type names
const (
	TypeRenderSubmit = "render:submit"
)

// QueueConfig holds Redis configuration for Asynq
type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Concurrency   int
	MaxRetry      int
}

// Queue manages task enqueueing and processing
type Queue struct {
	client *asynq.Client
	server *asynq.Server
	config QueueConfig
}

// DefaultConfig returns default queue configuration
func DefaultConfig() QueueConfig {
	return QueueConfig{
		RedisAddr:   "localhost:6379",
		RedisDB:     0,
		Concurrency: 2,
		MaxRetry:    3,
	}
}

// NewQueue creates a new Queue instance
func NewQueue(cfg QueueConfig) *Queue {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: cfg.Concurrency,
			Queues: map[string]int{
				"default": 1,
			},
			RetryDelayFunc: retryDelay,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.GetLogger().Error("Task failed",
					zap.String("type", task.Type()),
					zap.ByteString("payload", task.Payload()),
					zap.Error(err))
			}),
		},
	)

	return &Queue{
		client: client,
		server: server,
		config: cfg,
	}
}

// retryDelay backs off exponentially: 5s, 10s, 20s, ...
func retryDelay(n int, e error, t *asynq.Task) time.Duration {
	return time.Duration(5<<uint(n)) * time.Second
}

// NewRenderTask builds the asynq task for one render payload.
func NewRenderTask(payload types.RenderPayload, maxRetry int) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeRenderSubmit, data,
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(2*time.Minute),
		asynq.Queue("default"),
	), nil
}

// Dispatch adds a render submission task to the queue
func (q *Queue) Dispatch(payload types.RenderPayload) error {
	task, err := NewRenderTask(payload, q.config.MaxRetry)
	if err != nil {
		return err
	}

	info, err := q.client.Enqueue(task)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeRenderSubmit, "任务入队失败 Failed to enqueue render job", err)
	}

	log.GetLogger().Info("Render job enqueued",
		zap.String("job_id", payload.JobID),
		zap.String("queue_id", info.ID),
		zap.String("queue", info.Queue))

	return nil
}

// Close gracefully shuts down the queue
func (q *Queue) Close() error {
	if err := q.client.Close(); err != nil {
		return err
	}
	q.server.Shutdown()
	return nil
}
