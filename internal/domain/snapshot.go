package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeetingSnapshot is the primitive form of a Meeting used by stores to save
// and reload aggregate state.
type MeetingSnapshot struct {
	ID              uuid.UUID
	HostID          uuid.UUID
	Title           string
	Description     string
	StartAt         time.Time
	EndAt           time.Time
	Location        *LocationParams
	MaxParticipants int
	IsPrivate       bool
	Status          MeetingStatus
	Participants    []uuid.UUID
	Comments        []CommentSnapshot
	Tags            []TagSnapshot
}

// CommentSnapshot is the primitive form of a MeetingComment.
type CommentSnapshot struct {
	ID        uuid.UUID
	MeetingID uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TagSnapshot is the primitive form of a MeetingTag.
type TagSnapshot struct {
	ID        uuid.UUID
	MeetingID uuid.UUID
	Text      string
}

// Snapshot captures the current state of m.
func (m *Meeting) Snapshot() MeetingSnapshot {
	s := MeetingSnapshot{
		ID:              m.id.UUID(),
		HostID:          m.hostID.UUID(),
		Title:           m.title.Value(),
		Description:     m.description.Value(),
		StartAt:         m.startAt.Time(),
		EndAt:           m.endAt.Time(),
		MaxParticipants: m.maxParticipants,
		IsPrivate:       m.isPrivate,
		Status:          m.status,
		Participants:    make([]uuid.UUID, 0, len(m.participants)),
		Comments:        make([]CommentSnapshot, 0, len(m.comments)),
		Tags:            make([]TagSnapshot, 0, len(m.tags)),
	}

	if m.location != nil {
		params := m.location.Params()
		s.Location = &params
	}
	for _, p := range m.participants {
		s.Participants = append(s.Participants, p.UUID())
	}
	for _, c := range m.comments {
		s.Comments = append(s.Comments, CommentSnapshot{
			ID:        c.id.UUID(),
			MeetingID: c.meetingID.UUID(),
			AuthorID:  c.authorID.UUID(),
			Text:      c.text.Value(),
			CreatedAt: c.createdAt,
			UpdatedAt: c.updatedAt,
		})
	}
	for _, t := range m.tags {
		s.Tags = append(s.Tags, TagSnapshot{
			ID:        t.id.UUID(),
			MeetingID: t.meetingID.UUID(),
			Text:      t.text.Value(),
		})
	}

	return s
}

// RestoreMeeting rebuilds a Meeting from persisted state. Every value object
// is validated again, but the start/end ordering, which only applies when a
// meeting is created, is not.
func RestoreMeeting(s MeetingSnapshot) (*Meeting, error) {
	meetingID, err := NewMeetingID(s.ID)
	if err != nil {
		return nil, err
	}
	host, err := NewParticipantID(s.HostID)
	if err != nil {
		return nil, err
	}
	title, err := NewMeetingTitle(s.Title)
	if err != nil {
		return nil, err
	}
	description, err := NewMeetingDescription(s.Description)
	if err != nil {
		return nil, err
	}
	if !s.Status.IsValid() {
		return nil, newMeetingError("meeting status is unknown")
	}
	if s.MaxParticipants < 0 {
		return nil, newMeetingError("max participants must be greater than zero")
	}

	m := &Meeting{
		id:              meetingID,
		hostID:          host,
		title:           title,
		description:     description,
		startAt:         NewStartAtDate(s.StartAt),
		endAt:           NewEndAtDate(s.EndAt),
		maxParticipants: s.MaxParticipants,
		isPrivate:       s.IsPrivate,
		status:          s.Status,
	}

	if s.Location != nil {
		location, err := NewMeetingLocation(*s.Location)
		if err != nil {
			return nil, err
		}
		m.location = &location
	}

	for _, raw := range s.Participants {
		id, err := NewParticipantID(raw)
		if err != nil {
			return nil, err
		}
		if err := m.AddParticipant(id); err != nil {
			return nil, err
		}
	}

	for _, raw := range s.Comments {
		comment, err := NewMeetingComment(raw.ID, raw.MeetingID, raw.AuthorID, raw.Text, raw.CreatedAt)
		if err != nil {
			return nil, err
		}
		comment.updatedAt = raw.UpdatedAt.UTC()
		if err := m.AddComment(comment); err != nil {
			return nil, err
		}
	}

	for _, raw := range s.Tags {
		tag, err := NewMeetingTag(raw.ID, raw.MeetingID, raw.Text)
		if err != nil {
			return nil, err
		}
		if err := m.AddTag(tag); err != nil {
			return nil, err
		}
	}

	return m, nil
}
