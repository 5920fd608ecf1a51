package domain

import "github.com/google/uuid"

// MeetingTag is a short label attached to a meeting.
type MeetingTag struct {
	id        MeetingTagID
	meetingID MeetingID
	text      MeetingTagText
}

// NewMeetingTag validates the raw inputs.
func NewMeetingTag(id, meetingID uuid.UUID, text string) (MeetingTag, error) {
	tagID, err := NewMeetingTagID(id)
	if err != nil {
		return MeetingTag{}, err
	}
	mID, err := NewMeetingID(meetingID)
	if err != nil {
		return MeetingTag{}, err
	}
	label, err := NewMeetingTagText(text)
	if err != nil {
		return MeetingTag{}, err
	}
	return MeetingTag{id: tagID, meetingID: mID, text: label}, nil
}

func (t MeetingTag) ID() MeetingTagID     { return t.id }
func (t MeetingTag) MeetingID() MeetingID { return t.meetingID }
func (t MeetingTag) Text() MeetingTagText { return t.text }

// Equal reports structural equality over every field.
func (t MeetingTag) Equal(other MeetingTag) bool {
	return t == other
}
