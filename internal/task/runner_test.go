package task

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/spotly/meeting-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerConfigFrom(t *testing.T) {
	t.Parallel()

	got := RunnerConfigFrom(config.TaskConfig{WorkerCount: 4, QueueSize: 16})
	assert.Equal(t, TaskRunnerConfig{WorkerCount: 4, QueueSize: 16}, got)
	assert.Equal(t, TaskRunnerConfig{WorkerCount: 2, QueueSize: 100}, DefaultTaskRunnerConfig())
}

func TestTaskRunnerLifecycle(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 2, QueueSize: 10}, setupTestLogger())
	ctx := context.Background()

	assert.ErrorIs(t, runner.Submit(ctx, newFuncTask(nil)), ErrRunnerNotStarted)

	runner.Start()
	runner.Start()

	var executed atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, runner.Submit(ctx, newFuncTask(func(context.Context) error {
			executed.Add(1)
			return nil
		})))
	}

	require.NoError(t, runner.Stop(ctx))
	assert.Equal(t, int32(10), executed.Load())

	assert.ErrorIs(t, runner.Submit(ctx, newFuncTask(nil)), ErrQueueClosed)
	assert.NoError(t, runner.Stop(ctx), "second stop is a no-op")
}

func TestTaskRunnerSubmitHonorsContext(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(DefaultTaskRunnerConfig(), nil)
	runner.Start()
	t.Cleanup(func() { _ = runner.Stop(context.Background()) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, runner.Submit(ctx, newFuncTask(nil)), context.Canceled)
}

func TestTaskRunnerStopWithoutStart(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1}, setupTestLogger())
	assert.NoError(t, runner.Stop(context.Background()))
}
