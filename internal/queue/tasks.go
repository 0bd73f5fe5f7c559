package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"gifcrop/internal/types"
	"gifcrop/log"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RenderFunc submits one payload to the render backend.
type RenderFunc func(ctx context.Context, payload types.RenderPayload) error

// TaskHandlers provides handlers for different task types
type TaskHandlers struct {
	render RenderFunc
}

// NewTaskHandlers creates a new TaskHandlers instance
func NewTaskHandlers(render RenderFunc) *TaskHandlers {
	return &TaskHandlers{render: render}
}

// HandleRenderTask decodes a render:submit task and runs it
func (h *TaskHandlers) HandleRenderTask(ctx context.Context, t *asynq.Task) error {
	var payload types.RenderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.GetLogger().Info("[Queue] Processing render job",
		zap.String("job_id", payload.JobID),
		zap.String("endpoint", payload.Endpoint))

	if err := h.render(ctx, payload); err != nil {
		return err
	}

	log.GetLogger().Info("[Queue] Render job completed",
		zap.String("job_id", payload.JobID))

	return nil
}

// RegisterHandlers registers all task handlers with the Asynq server mux
func (h *TaskHandlers) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeRenderSubmit, h.HandleRenderTask)
}

// StartWorker runs the Asynq worker until ctx is done
func StartWorker(ctx context.Context, q *Queue, render RenderFunc) error {
	handlers := NewTaskHandlers(render)

	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	log.GetLogger().Info("[Queue] Starting worker",
		zap.String("redis_addr", q.config.RedisAddr),
		zap.Int("concurrency", q.config.Concurrency))

	if err := q.server.Start(mux); err != nil {
		return err
	}
	<-ctx.Done()
	q.server.Shutdown()
	return nil
}
