package taskrunner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"gifcrop/internal/types"
	"gifcrop/log"
	apperrors "gifcrop/pkg/errors"

	"go.uber.org/zap"
)

const (
	defaultQueueSize   = 64
	defaultConcurrency = 2
)

var (
	ErrRunnerStopped = apperrors.ErrDispatchStopped
	ErrQueueFull     = apperrors.ErrQueueFull
)

// Config controls in-process task runner behavior.
type Config struct {
	QueueSize   int
	Concurrency int
}

// DefaultConfig returns a single-host default config.
func DefaultConfig() Config {
	return Config{
		QueueSize:   defaultQueueSize,
		Concurrency: defaultConcurrency,
	}
}

// Handler runs one render payload on a worker goroutine.
type Handler func(ctx context.Context, payload types.RenderPayload) error

// Runner executes queued render payloads with in-memory workers.
type Runner struct {
	handler Handler
	config  Config

	queue  chan types.RenderPayload
	ctx    context.Context
	cancel context.CancelFunc

	workerWg sync.WaitGroup
	closed   atomic.Bool
}

// New creates and starts a task runner.
func New(handler Handler, cfg Config) *Runner {
	cfg = normalizeConfig(cfg)
	ctx, cancel := context.WithCancel(context.Background())

	runner := &Runner{
		handler: handler,
		config:  cfg,
		queue:   make(chan types.RenderPayload, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < cfg.Concurrency; i++ {
		runner.workerWg.Add(1)
		go runner.worker(i + 1)
	}

	return runner
}

func normalizeConfig(cfg Config) Config {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return cfg
}

// Dispatch queues a render payload without blocking.
func (r *Runner) Dispatch(payload types.RenderPayload) error {
	if payload.JobID == "" {
		return errors.New("render job id is required")
	}
	if r.closed.Load() {
		return ErrRunnerStopped
	}

	select {
	case <-r.ctx.Done():
		return ErrRunnerStopped
	case r.queue <- payload:
		log.GetLogger().Info("[TaskRunner] render job submitted",
			zap.String("job_id", payload.JobID),
			zap.String("endpoint", payload.Endpoint))
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Runner) worker(workerID int) {
	defer r.workerWg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		default:
		}

		select {
		case <-r.ctx.Done():
			return
		case payload := <-r.queue:
			r.process(workerID, payload)
		}
	}
}

func (r *Runner) process(workerID int, payload types.RenderPayload) {
	if r.handler == nil {
		log.GetLogger().Error("[TaskRunner] no handler configured", zap.String("job_id", payload.JobID))
		return
	}

	if err := r.handler(r.ctx, payload); err != nil {
		log.GetLogger().Error("[TaskRunner] render job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", payload.JobID),
			zap.Error(err))
		return
	}

	log.GetLogger().Info("[TaskRunner] render job completed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", payload.JobID))
}

// Close stops workers and rejects new payloads. Payloads still queued are dropped.
func (r *Runner) Close() {
	if !r.closed.CompareAndSwap(false, true) {
		return
	}

	r.cancel()
	r.workerWg.Wait()
}

// Pending returns the number of queued payloads waiting for workers.
func (r *Runner) Pending() int {
	return len(r.queue)
}
