package domain

import (
	"bytes"

	"github.com/google/uuid"
)

// MeetingID identifies a meeting. The zero value is not a valid id.
type MeetingID struct {
	value uuid.UUID
}

// NewMeetingID wraps id, rejecting uuid.Nil.
func NewMeetingID(id uuid.UUID) (MeetingID, error) {
	if id == uuid.Nil {
		return MeetingID{}, newMeetingError("meeting id can't be empty")
	}
	return MeetingID{value: id}, nil
}

// ParseMeetingID parses the textual form of a meeting id.
func ParseMeetingID(s string) (MeetingID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MeetingID{}, newMeetingError("meeting id has invalid format")
	}
	return NewMeetingID(id)
}

func (id MeetingID) UUID() uuid.UUID { return id.value }
func (id MeetingID) String() string  { return id.value.String() }
func (id MeetingID) IsZero() bool    { return id.value == uuid.Nil }
func (id MeetingID) Compare(other MeetingID) int {
	return compareUUID(id.value, other.value)
}

// ParticipantID identifies a user taking part in meetings, hosts included.
type ParticipantID struct {
	value uuid.UUID
}

// NewParticipantID wraps id, rejecting uuid.Nil.
func NewParticipantID(id uuid.UUID) (ParticipantID, error) {
	if id == uuid.Nil {
		return ParticipantID{}, newMeetingError("participant id can't be empty")
	}
	return ParticipantID{value: id}, nil
}

// ParseParticipantID parses the textual form of a participant id.
func ParseParticipantID(s string) (ParticipantID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ParticipantID{}, newMeetingError("participant id has invalid format")
	}
	return NewParticipantID(id)
}

func (id ParticipantID) UUID() uuid.UUID { return id.value }
func (id ParticipantID) String() string  { return id.value.String() }
func (id ParticipantID) IsZero() bool    { return id.value == uuid.Nil }
func (id ParticipantID) Compare(other ParticipantID) int {
	return compareUUID(id.value, other.value)
}

// MeetingCommentID identifies a comment within a meeting.
type MeetingCommentID struct {
	value uuid.UUID
}

// NewMeetingCommentID wraps id, rejecting uuid.Nil.
func NewMeetingCommentID(id uuid.UUID) (MeetingCommentID, error) {
	if id == uuid.Nil {
		return MeetingCommentID{}, newMeetingError("meeting comment id can't be empty")
	}
	return MeetingCommentID{value: id}, nil
}

// ParseMeetingCommentID parses the textual form of a comment id.
func ParseMeetingCommentID(s string) (MeetingCommentID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MeetingCommentID{}, newMeetingError("meeting comment id has invalid format")
	}
	return NewMeetingCommentID(id)
}

func (id MeetingCommentID) UUID() uuid.UUID { return id.value }
func (id MeetingCommentID) String() string  { return id.value.String() }
func (id MeetingCommentID) IsZero() bool    { return id.value == uuid.Nil }
func (id MeetingCommentID) Compare(other MeetingCommentID) int {
	return compareUUID(id.value, other.value)
}

// MeetingTagID identifies a tag attached to a meeting.
type MeetingTagID struct {
	value uuid.UUID
}

// NewMeetingTagID wraps id, rejecting uuid.Nil.
func NewMeetingTagID(id uuid.UUID) (MeetingTagID, error) {
	if id == uuid.Nil {
		return MeetingTagID{}, newMeetingError("meeting tag id can't be empty")
	}
	return MeetingTagID{value: id}, nil
}

// ParseMeetingTagID parses the textual form of a tag id.
func ParseMeetingTagID(s string) (MeetingTagID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return MeetingTagID{}, newMeetingError("meeting tag id has invalid format")
	}
	return NewMeetingTagID(id)
}

func (id MeetingTagID) UUID() uuid.UUID { return id.value }
func (id MeetingTagID) String() string  { return id.value.String() }
func (id MeetingTagID) IsZero() bool    { return id.value == uuid.Nil }
func (id MeetingTagID) Compare(other MeetingTagID) int {
	return compareUUID(id.value, other.value)
}

func compareUUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}
