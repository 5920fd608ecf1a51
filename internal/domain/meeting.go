package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Meeting is the aggregate root of the scheduling feature. Every change to
// its participants, comments, tags and status goes through its methods so
// the invariants below always hold:
//
//   - the host is never in the participant list
//   - participants, comments and tags contain no duplicates
//   - status only moves forward through the lifecycle table
//
// Operations either succeed completely or return a *MeetingError and leave
// the meeting unchanged.
type Meeting struct {
	id              MeetingID
	hostID          ParticipantID
	title           MeetingTitle
	description     MeetingDescription
	startAt         StartAtDate
	endAt           EndAtDate
	location        *MeetingLocation
	maxParticipants int
	isPrivate       bool
	status          MeetingStatus

	participants []ParticipantID
	comments     []MeetingComment
	tags         []MeetingTag
}

// NewMeeting creates a draft meeting. startAt must not be after endAt.
func NewMeeting(
	id, hostID uuid.UUID,
	title, description string,
	startAt, endAt time.Time,
) (*Meeting, error) {
	if startAt.After(endAt) {
		return nil, newMeetingError("start date must be less than end date of meeting")
	}

	meetingID, err := NewMeetingID(id)
	if err != nil {
		return nil, err
	}
	host, err := NewParticipantID(hostID)
	if err != nil {
		return nil, err
	}
	meetingTitle, err := NewMeetingTitle(title)
	if err != nil {
		return nil, err
	}
	meetingDescription, err := NewMeetingDescription(description)
	if err != nil {
		return nil, err
	}

	return &Meeting{
		id:          meetingID,
		hostID:      host,
		title:       meetingTitle,
		description: meetingDescription,
		startAt:     NewStartAtDate(startAt),
		endAt:       NewEndAtDate(endAt),
		status:      MeetingStatusDraft,
	}, nil
}

func (m *Meeting) ID() MeetingID                   { return m.id }
func (m *Meeting) HostID() ParticipantID           { return m.hostID }
func (m *Meeting) Title() MeetingTitle             { return m.title }
func (m *Meeting) Description() MeetingDescription { return m.description }
func (m *Meeting) StartAt() StartAtDate            { return m.startAt }
func (m *Meeting) EndAt() EndAtDate                { return m.endAt }
func (m *Meeting) MaxParticipants() int            { return m.maxParticipants }
func (m *Meeting) IsPrivate() bool                 { return m.isPrivate }
func (m *Meeting) Status() MeetingStatus           { return m.status }

// Location returns the meeting place, if one has been set.
func (m *Meeting) Location() (MeetingLocation, bool) {
	if m.location == nil {
		return MeetingLocation{}, false
	}
	return *m.location, true
}

// IsHost reports whether id belongs to the meeting's host.
func (m *Meeting) IsHost(id ParticipantID) bool {
	return m.hostID == id
}

// AddInformation sets the optional details of the meeting. A nil location
// clears it. maxParticipants is advisory and never enforced against the
// participant list.
func (m *Meeting) AddInformation(location *MeetingLocation, maxParticipants int, isPrivate bool) error {
	if maxParticipants < 0 {
		return newMeetingError("max participants must be greater than zero")
	}

	if location != nil {
		loc := *location
		m.location = &loc
	} else {
		m.location = nil
	}
	m.maxParticipants = maxParticipants
	m.isPrivate = isPrivate
	return nil
}

// ChangeTitle replaces the title.
func (m *Meeting) ChangeTitle(title MeetingTitle) {
	m.title = title
}

// ChangeDescription replaces the description.
func (m *Meeting) ChangeDescription(description MeetingDescription) {
	m.description = description
}

// Participants returns the participants in the order they joined.
func (m *Meeting) Participants() []ParticipantID {
	return append([]ParticipantID(nil), m.participants...)
}

// HasParticipant reports whether id has joined the meeting.
func (m *Meeting) HasParticipant(id ParticipantID) bool {
	return lo.Contains(m.participants, id)
}

// AddParticipant appends id to the participant list.
func (m *Meeting) AddParticipant(id ParticipantID) error {
	if m.IsHost(id) {
		return newMeetingError("participant in meeting can't be host")
	}
	if m.HasParticipant(id) {
		return newMeetingError("participant in meeting already exists")
	}

	m.participants = append(m.participants, id)
	return nil
}

// RemoveParticipant drops id from the participant list.
func (m *Meeting) RemoveParticipant(id ParticipantID) error {
	if m.IsHost(id) {
		return newMeetingError("participant in meeting can't be host")
	}
	if !m.HasParticipant(id) {
		return newMeetingError("participant in meeting doesn't exist")
	}

	m.participants = lo.Without(m.participants, id)
	return nil
}

// Comments returns the comments in the order they were added.
func (m *Meeting) Comments() []MeetingComment {
	return append([]MeetingComment(nil), m.comments...)
}

// Comment looks a comment up by id.
func (m *Meeting) Comment(id MeetingCommentID) (MeetingComment, bool) {
	return lo.Find(m.comments, func(c MeetingComment) bool { return c.id == id })
}

// AddComment appends comment unless a structurally equal one is present.
// The comment must belong to m.
func (m *Meeting) AddComment(comment MeetingComment) error {
	if comment.meetingID != m.id {
		return newMeetingError("comment belongs to another meeting")
	}
	if lo.ContainsBy(m.comments, comment.Equal) {
		return newMeetingError("comment in meeting already exists")
	}

	m.comments = append(m.comments, comment)
	return nil
}

// RemoveComment drops the comment structurally equal to comment.
func (m *Meeting) RemoveComment(comment MeetingComment) error {
	_, index, found := lo.FindIndexOf(m.comments, comment.Equal)
	if !found {
		return newMeetingError("comment in meeting doesn't exist")
	}

	m.comments = append(m.comments[:index:index], m.comments[index+1:]...)
	return nil
}

// EditComment replaces the text of the comment with the given id.
func (m *Meeting) EditComment(id MeetingCommentID, text string, now time.Time) error {
	_, index, found := lo.FindIndexOf(m.comments, func(c MeetingComment) bool { return c.id == id })
	if !found {
		return newMeetingError("comment in meeting doesn't exist")
	}

	return m.comments[index].Update(text, now)
}

// Tags returns the tags in the order they were added.
func (m *Meeting) Tags() []MeetingTag {
	return append([]MeetingTag(nil), m.tags...)
}

// Tag looks a tag up by id.
func (m *Meeting) Tag(id MeetingTagID) (MeetingTag, bool) {
	return lo.Find(m.tags, func(t MeetingTag) bool { return t.id == id })
}

// AddTag appends tag unless an equal one is present. The tag must belong
// to m.
func (m *Meeting) AddTag(tag MeetingTag) error {
	if tag.meetingID != m.id {
		return newMeetingError("tag belongs to another meeting")
	}
	if lo.Contains(m.tags, tag) {
		return newMeetingError("tag in meeting already exists")
	}

	m.tags = append(m.tags, tag)
	return nil
}

// RemoveTag drops the tag equal to tag.
func (m *Meeting) RemoveTag(tag MeetingTag) error {
	if !lo.Contains(m.tags, tag) {
		return newMeetingError("tag in meeting doesn't exist")
	}

	m.tags = lo.Without(m.tags, tag)
	return nil
}

// Schedule moves a draft meeting to Scheduled.
func (m *Meeting) Schedule() error {
	return m.Apply(StatusActionSchedule)
}

// Start moves a scheduled meeting to Ongoing.
func (m *Meeting) Start() error {
	return m.Apply(StatusActionStart)
}

// Finish moves a scheduled or ongoing meeting to Finished.
func (m *Meeting) Finish() error {
	return m.Apply(StatusActionFinish)
}

// Cancel moves a scheduled or ongoing meeting to Cancelled. Drafts cannot be
// cancelled.
func (m *Meeting) Cancel() error {
	return m.Apply(StatusActionCancel)
}

// Apply performs the lifecycle transition named by action.
func (m *Meeting) Apply(action StatusAction) error {
	transition, ok := statusTransitions[action]
	if !ok {
		return newMeetingError("meeting status action %q is unknown", string(action))
	}

	next, err := transition.apply(m.status)
	if err != nil {
		return err
	}
	m.status = next
	return nil
}
