package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Length bounds for the text value objects, inclusive.
const (
	MinTitleLength       = 5
	MaxTitleLength       = 200
	MinDescriptionLength = 5
	MaxDescriptionLength = 700
	MinCommentLength     = 5
	MaxCommentLength     = 1000
	MinTagLength         = 3
	MaxTagLength         = 15
)

var titlePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// validateText applies the shared blank and length rules. Length is counted
// in characters, not bytes.
func validateText(value, subject string, minLen, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return newMeetingError("%s can't be empty", subject)
	}

	length := utf8.RuneCountInString(value)
	if length < minLen || length > maxLen {
		return newMeetingError("%s length must be between %d and %d symbols", subject, minLen, maxLen)
	}

	return nil
}

// MeetingTitle is a short ASCII-only headline for a meeting.
type MeetingTitle struct {
	value string
}

// NewMeetingTitle validates value: non-blank, 5 to 200 characters,
// ASCII letters, digits and spaces only.
func NewMeetingTitle(value string) (MeetingTitle, error) {
	if err := validateText(value, "meeting title", MinTitleLength, MaxTitleLength); err != nil {
		return MeetingTitle{}, err
	}

	if !titlePattern.MatchString(value) {
		return MeetingTitle{}, newMeetingError("meeting title can contain only letters, numbers and spaces")
	}

	return MeetingTitle{value: value}, nil
}

func (t MeetingTitle) Value() string  { return t.value }
func (t MeetingTitle) String() string { return t.value }
func (t MeetingTitle) IsZero() bool   { return t.value == "" }

// Compare orders titles by byte value.
func (t MeetingTitle) Compare(other MeetingTitle) int {
	return strings.Compare(t.value, other.value)
}

// MeetingDescription is the free-form body of a meeting.
type MeetingDescription struct {
	value string
}

// NewMeetingDescription validates value: non-blank, 5 to 700 characters.
func NewMeetingDescription(value string) (MeetingDescription, error) {
	if err := validateText(value, "meeting description", MinDescriptionLength, MaxDescriptionLength); err != nil {
		return MeetingDescription{}, err
	}
	return MeetingDescription{value: value}, nil
}

func (d MeetingDescription) Value() string  { return d.value }
func (d MeetingDescription) String() string { return d.value }
func (d MeetingDescription) IsZero() bool   { return d.value == "" }

func (d MeetingDescription) Compare(other MeetingDescription) int {
	return strings.Compare(d.value, other.value)
}

// CommentText is the body of a MeetingComment.
type CommentText struct {
	value string
}

// NewCommentText validates value: non-blank, 5 to 1000 characters.
func NewCommentText(value string) (CommentText, error) {
	if err := validateText(value, "meeting comment", MinCommentLength, MaxCommentLength); err != nil {
		return CommentText{}, err
	}
	return CommentText{value: value}, nil
}

func (c CommentText) Value() string  { return c.value }
func (c CommentText) String() string { return c.value }
func (c CommentText) IsZero() bool   { return c.value == "" }

func (c CommentText) Compare(other CommentText) int {
	return strings.Compare(c.value, other.value)
}

// MeetingTagText is the label of a MeetingTag.
type MeetingTagText struct {
	value string
}

// NewMeetingTagText validates value: non-blank, 3 to 15 characters.
func NewMeetingTagText(value string) (MeetingTagText, error) {
	if err := validateText(value, "meeting tag", MinTagLength, MaxTagLength); err != nil {
		return MeetingTagText{}, err
	}
	return MeetingTagText{value: value}, nil
}

func (t MeetingTagText) Value() string  { return t.value }
func (t MeetingTagText) String() string { return t.value }
func (t MeetingTagText) IsZero() bool   { return t.value == "" }

func (t MeetingTagText) Compare(other MeetingTagText) int {
	return strings.Compare(t.value, other.value)
}
