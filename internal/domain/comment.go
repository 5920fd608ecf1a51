package domain

import (
	"time"

	"github.com/google/uuid"
)

// MeetingComment is a participant's remark on a meeting. It refers back to
// its meeting by id only.
type MeetingComment struct {
	id        MeetingCommentID
	meetingID MeetingID
	authorID  ParticipantID
	text      CommentText
	createdAt time.Time
	updatedAt time.Time
}

// NewMeetingComment validates the raw inputs and stamps both timestamps
// with now.
func NewMeetingComment(id, meetingID, authorID uuid.UUID, text string, now time.Time) (MeetingComment, error) {
	commentID, err := NewMeetingCommentID(id)
	if err != nil {
		return MeetingComment{}, err
	}
	mID, err := NewMeetingID(meetingID)
	if err != nil {
		return MeetingComment{}, err
	}
	author, err := NewParticipantID(authorID)
	if err != nil {
		return MeetingComment{}, err
	}
	body, err := NewCommentText(text)
	if err != nil {
		return MeetingComment{}, err
	}

	now = now.UTC()
	return MeetingComment{
		id:        commentID,
		meetingID: mID,
		authorID:  author,
		text:      body,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (c MeetingComment) ID() MeetingCommentID    { return c.id }
func (c MeetingComment) MeetingID() MeetingID    { return c.meetingID }
func (c MeetingComment) AuthorID() ParticipantID { return c.authorID }
func (c MeetingComment) Text() CommentText       { return c.text }
func (c MeetingComment) CreatedAt() time.Time    { return c.createdAt }
func (c MeetingComment) UpdatedAt() time.Time    { return c.updatedAt }

// Update replaces the comment text and bumps UpdatedAt. The comment is left
// untouched when text is invalid.
func (c *MeetingComment) Update(text string, now time.Time) error {
	body, err := NewCommentText(text)
	if err != nil {
		return err
	}
	c.text = body
	c.updatedAt = now.UTC()
	return nil
}

// Equal reports structural equality over every field.
func (c MeetingComment) Equal(other MeetingComment) bool {
	return c.id == other.id &&
		c.meetingID == other.meetingID &&
		c.authorID == other.authorID &&
		c.text == other.text &&
		c.createdAt.Equal(other.createdAt) &&
		c.updatedAt.Equal(other.updatedAt)
}
