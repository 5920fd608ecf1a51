package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/events"
	"github.com/spotly/meeting-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc func(ctx context.Context, event *events.MeetingEvent) error

func (f handlerFunc) HandleEvent(ctx context.Context, event *events.MeetingEvent) error {
	return f(ctx, event)
}

type submitterFunc func(ctx context.Context, task Task) error

func (f submitterFunc) Submit(ctx context.Context, task Task) error { return f(ctx, task) }

func newEvent(t *testing.T) *events.MeetingEvent {
	t.Helper()
	event, err := events.NewMeetingEvent(events.TypeMeetingCreated, uuid.New(), uuid.New(),
		events.MeetingCreatedPayload{Title: "Morning run"})
	require.NoError(t, err)
	return event
}

func TestAsyncEventHandlerDeliversInBackground(t *testing.T) {
	t.Parallel()

	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 4}, setupTestLogger())
	runner.Start()

	requestLogger := setupTestLogger().With("trace_id", "abc123")
	delivered := make(chan *events.MeetingEvent, 1)
	var gotLogger bool

	handler := NewAsyncEventHandler(runner, handlerFunc(func(ctx context.Context, e *events.MeetingEvent) error {
		gotLogger = logger.FromContext(ctx) == requestLogger
		delivered <- e
		return nil
	}), setupTestLogger())

	event := newEvent(t)
	reqCtx, cancel := context.WithCancel(logger.WithLogger(context.Background(), requestLogger))
	require.NoError(t, handler.HandleEvent(reqCtx, event))
	// The request may finish before the handler runs.
	cancel()

	select {
	case got := <-delivered:
		assert.Same(t, event, got)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}

	require.NoError(t, runner.Stop(context.Background()))
	assert.True(t, gotLogger, "request logger is carried to the handler")
}

func TestAsyncEventHandlerSubmitFailure(t *testing.T) {
	t.Parallel()

	errFull := errors.New("queue full")
	var submitted Task
	handler := NewAsyncEventHandler(submitterFunc(func(_ context.Context, task Task) error {
		submitted = task
		return errFull
	}), handlerFunc(func(context.Context, *events.MeetingEvent) error {
		t.Fatal("handler must not run")
		return nil
	}), nil)

	event := newEvent(t)
	assert.ErrorIs(t, handler.HandleEvent(context.Background(), event), errFull)
	require.NotNil(t, submitted)
	assert.Equal(t, event.ID, submitted.ID())
	assert.Equal(t, events.TypeMeetingCreated, submitted.Type())
}
