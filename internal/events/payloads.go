package events

import "github.com/google/uuid"

// Payloads carried by meeting events. Events without a listed payload
// have none.

// MeetingCreatedPayload accompanies TypeMeetingCreated.
type MeetingCreatedPayload struct {
	Title   string `json:"title"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

// MeetingUpdatedPayload accompanies TypeMeetingUpdated.
type MeetingUpdatedPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// InformationUpdatedPayload accompanies TypeMeetingInfoUpdated.
type InformationUpdatedPayload struct {
	Location        string `json:"location,omitempty"`
	MaxParticipants int    `json:"max_participants"`
	IsPrivate       bool   `json:"is_private"`
}

// StatusChangedPayload accompanies TypeMeetingStatusChanged.
type StatusChangedPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ParticipantPayload accompanies TypeParticipantJoined and TypeParticipantLeft.
type ParticipantPayload struct {
	ParticipantID uuid.UUID `json:"participant_id"`
}

// CommentPayload accompanies the comment event types.
type CommentPayload struct {
	CommentID uuid.UUID `json:"comment_id"`
	AuthorID  uuid.UUID `json:"author_id"`
}

// TagPayload accompanies TypeTagAdded and TypeTagRemoved.
type TagPayload struct {
	TagID uuid.UUID `json:"tag_id"`
	Text  string    `json:"text"`
}
