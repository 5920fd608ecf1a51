package events

import (
	"context"
	"log/slog"

	"github.com/spotly/meeting-api/internal/platform/logger"
)

// LoggingEventHandler writes every event to the log.
type LoggingEventHandler struct {
	logger *slog.Logger
}

// NewLoggingEventHandler creates a handler that logs through l, or through
// the request logger when the context carries one.
func NewLoggingEventHandler(l *slog.Logger) *LoggingEventHandler {
	if l == nil {
		l = slog.Default()
	}
	return &LoggingEventHandler{logger: l.With("component", "meeting_event_log")}
}

// HandleEvent implements EventHandler.
func (h *LoggingEventHandler) HandleEvent(ctx context.Context, event *MeetingEvent) error {
	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type),
		slog.String("meeting_id", event.MeetingID.String()),
		slog.String("actor_id", event.ActorID.String()),
	}
	if len(event.Payload) > 0 {
		attrs = append(attrs, slog.String("payload", string(event.Payload)))
	}
	logger.FromContextOrDefault(ctx, h.logger).InfoContext(ctx, "meeting event", attrs...)
	return nil
}
