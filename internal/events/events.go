package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Meeting event types.
const (
	TypeMeetingCreated       = "meeting.created"
	TypeMeetingUpdated       = "meeting.updated"
	TypeMeetingInfoUpdated   = "meeting.information_updated"
	TypeMeetingDeleted       = "meeting.deleted"
	TypeMeetingStatusChanged = "meeting.status_changed"
	TypeParticipantJoined    = "meeting.participant_joined"
	TypeParticipantLeft      = "meeting.participant_left"
	TypeCommentAdded         = "meeting.comment_added"
	TypeCommentEdited        = "meeting.comment_edited"
	TypeCommentDeleted       = "meeting.comment_deleted"
	TypeTagAdded             = "meeting.tag_added"
	TypeTagRemoved           = "meeting.tag_removed"
)

// MeetingEvent records a committed change to a meeting.
type MeetingEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	MeetingID uuid.UUID       `json:"meeting_id"`
	ActorID   uuid.UUID       `json:"actor_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewMeetingEvent builds an event, encoding payload as JSON. A nil payload
// leaves Payload empty.
func NewMeetingEvent(eventType string, meetingID, actorID uuid.UUID, payload any) (*MeetingEvent, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &MeetingEvent{
		ID:        uuid.New(),
		Type:      eventType,
		MeetingID: meetingID,
		ActorID:   actorID,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UnmarshalPayload decodes the event payload into v.
func (e *MeetingEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler reacts to emitted events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *MeetingEvent) error
}

// EventEmitter publishes events to interested handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *MeetingEvent) error
}
