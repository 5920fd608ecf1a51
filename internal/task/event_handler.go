package task

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/events"
	"github.com/spotly/meeting-api/internal/platform/logger"
)

// Submitter queues tasks for background execution.
type Submitter interface {
	Submit(ctx context.Context, task Task) error
}

// AsyncEventHandler implements events.EventHandler by running the wrapped
// handler as a background task. HandleEvent only fails when the task cannot
// be queued.
type AsyncEventHandler struct {
	runner Submitter
	next   events.EventHandler
	logger *slog.Logger
}

var _ events.EventHandler = (*AsyncEventHandler)(nil)

// NewAsyncEventHandler wraps next so that it runs on runner.
func NewAsyncEventHandler(runner Submitter, next events.EventHandler, logger *slog.Logger) *AsyncEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AsyncEventHandler{
		runner: runner,
		next:   next,
		logger: logger.With("component", "async_event_handler"),
	}
}

// HandleEvent queues the event for the wrapped handler. The request logger is
// carried over so the handler's output keeps the trace id.
func (h *AsyncEventHandler) HandleEvent(ctx context.Context, event *events.MeetingEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	task := &eventTask{
		event:   event,
		handler: h.next,
		logger:  log,
	}
	if err := h.runner.Submit(ctx, task); err != nil {
		log.Error("failed to queue event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return err
	}
	return nil
}

// eventTask delivers one event to one handler.
type eventTask struct {
	event   *events.MeetingEvent
	handler events.EventHandler
	logger  *slog.Logger
}

func (t *eventTask) ID() uuid.UUID { return t.event.ID }
func (t *eventTask) Type() string  { return t.event.Type }

func (t *eventTask) Execute(ctx context.Context) error {
	return t.handler.HandleEvent(logger.WithLogger(ctx, t.logger), t.event)
}
