package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler implements EventHandler for tests.
type recordingHandler struct {
	events []*MeetingEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *MeetingEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func TestNewMeetingEvent(t *testing.T) {
	t.Parallel()

	meetingID := uuid.New()
	actorID := uuid.New()

	event, err := NewMeetingEvent(TypeMeetingStatusChanged, meetingID, actorID, map[string]string{"status": "scheduled"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeMeetingStatusChanged, event.Type)
	assert.Equal(t, meetingID, event.MeetingID)
	assert.Equal(t, actorID, event.ActorID)
	assert.False(t, event.CreatedAt.IsZero())

	var payload struct {
		Status string `json:"status"`
	}
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, "scheduled", payload.Status)

	encoded, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"type":"meeting.status_changed"`)

	bare, err := NewMeetingEvent(TypeMeetingDeleted, meetingID, actorID, nil)
	require.NoError(t, err)
	assert.Empty(t, bare.Payload)

	_, err = NewMeetingEvent(TypeMeetingUpdated, meetingID, actorID, math.Inf(1))
	assert.Error(t, err, "unencodable payloads are rejected")
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	event, err := NewMeetingEvent(TypeMeetingCreated, uuid.New(), uuid.New(), nil)
	require.NoError(t, err)

	t.Run("no handlers", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, NewInMemoryEventEmitter(quiet).EmitEvent(context.Background(), event))
	})

	t.Run("fans out to every handler", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(quiet)
		first, second := &recordingHandler{}, &recordingHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, []*MeetingEvent{event}, first.events)
		assert.Equal(t, []*MeetingEvent{event}, second.events)
	})

	t.Run("returns first error after calling all handlers", func(t *testing.T) {
		t.Parallel()
		emitter := NewInMemoryEventEmitter(nil)
		failing := &recordingHandler{err: errors.New("first failure")}
		alsoFailing := &recordingHandler{err: errors.New("second failure")}
		ok := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(alsoFailing)
		emitter.RegisterHandler(ok)

		err := emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "first failure")
		assert.Len(t, ok.events, 1)
		assert.Len(t, alsoFailing.events, 1)
	})
}

func TestLoggingEventHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	requestLogger := slog.New(slog.NewJSONHandler(&buf, nil)).With("trace_id", "trace-1")
	ctx := logger.WithLogger(context.Background(), requestLogger)

	event, err := NewMeetingEvent(TypeTagAdded, uuid.New(), uuid.New(), map[string]string{"tag": "board"})
	require.NoError(t, err)

	handler := NewLoggingEventHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, handler.HandleEvent(ctx, event))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "meeting event", entry["msg"])
	assert.Equal(t, "trace-1", entry["trace_id"])
	assert.Equal(t, TypeTagAdded, entry["event_type"])
	assert.Equal(t, event.MeetingID.String(), entry["meeting_id"])
	assert.JSONEq(t, `{"tag":"board"}`, entry["payload"].(string))
}
