package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spotly/meeting-api/internal/config"
)

// ErrRunnerNotStarted is returned by Submit before Start.
var ErrRunnerNotStarted = errors.New("task runner is not started")

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
	}
}

// RunnerConfigFrom converts the application task settings.
func RunnerConfigFrom(cfg config.TaskConfig) TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
	}
}

// TaskRunner owns a task queue and the worker pool consuming it.
type TaskRunner struct {
	queue  *TaskQueue
	pool   *WorkerPool
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewTaskRunner creates a TaskRunner. Call Start before submitting tasks.
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "task_runner")

	if config.QueueSize <= 0 {
		config.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	queue := NewTaskQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)
	pool.SetErrorHandler(func(task Task, err error) {
		logger.Warn("background task failed",
			"task_id", task.ID(),
			"task_type", task.Type(),
			"error", err)
	})

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// Start launches the workers. Starting twice is a no-op.
func (r *TaskRunner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return
	}
	r.started = true
	r.pool.Start()
}

// Submit queues task for execution without blocking.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	started := r.started
	r.mu.Unlock()
	if !started {
		return ErrRunnerNotStarted
	}

	if err := r.queue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to submit task: %w", err)
	}
	return nil
}

// Stop rejects new tasks and waits for queued ones to finish. If ctx ends
// first, running tasks are cancelled and any still queued are dropped.
func (r *TaskRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil
	}
	r.stopped = true
	started := r.started
	r.mu.Unlock()

	r.queue.Close()
	if !started {
		return nil
	}

	if err := r.pool.Wait(ctx); err != nil {
		r.logger.Warn("task runner stopped before the queue drained",
			"dropped", r.queue.Len(),
			"error", err)
		return err
	}
	r.logger.Info("task runner stopped")
	return nil
}
