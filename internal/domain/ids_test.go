package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestIdentifiersRejectNil(t *testing.T) {
	t.Parallel()

	if _, err := NewMeetingID(uuid.Nil); err == nil || err.Error() != "meeting id can't be empty" {
		t.Errorf("Expected empty meeting id error, got %v", err)
	}
	if _, err := NewParticipantID(uuid.Nil); err == nil || err.Error() != "participant id can't be empty" {
		t.Errorf("Expected empty participant id error, got %v", err)
	}
	if _, err := NewMeetingCommentID(uuid.Nil); err == nil || err.Error() != "meeting comment id can't be empty" {
		t.Errorf("Expected empty comment id error, got %v", err)
	}
	if _, err := NewMeetingTagID(uuid.Nil); err == nil || err.Error() != "meeting tag id can't be empty" {
		t.Errorf("Expected empty tag id error, got %v", err)
	}
}

func TestIdentifierEquality(t *testing.T) {
	t.Parallel()

	raw := uuid.New()
	a, err := NewParticipantID(raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b, _ := NewParticipantID(raw)
	c, _ := NewParticipantID(uuid.New())

	if a != b {
		t.Error("Expected ids wrapping the same uuid to be equal")
	}
	if a == c {
		t.Error("Expected ids wrapping different uuids to differ")
	}
	if a.Compare(b) != 0 {
		t.Error("Expected Compare to return 0 for equal ids")
	}
	if a.UUID() != raw || a.String() != raw.String() {
		t.Error("Expected id to expose the wrapped uuid")
	}
}

func TestParseMeetingID(t *testing.T) {
	t.Parallel()

	raw := uuid.New()
	id, err := ParseMeetingID(raw.String())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id.UUID() != raw {
		t.Errorf("Expected %s, got %s", raw, id)
	}

	_, err = ParseMeetingID("not-a-uuid")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}

	_, err = ParseMeetingID(uuid.Nil.String())
	if err == nil || err.Error() != "meeting id can't be empty" {
		t.Errorf("Expected empty id error, got %v", err)
	}
}

func TestParseChildIDs(t *testing.T) {
	t.Parallel()

	raw := uuid.New()

	participant, err := ParseParticipantID(raw.String())
	if err != nil || participant.UUID() != raw {
		t.Errorf("Expected participant %s, got %s (%v)", raw, participant, err)
	}
	comment, err := ParseMeetingCommentID(raw.String())
	if err != nil || comment.UUID() != raw {
		t.Errorf("Expected comment %s, got %s (%v)", raw, comment, err)
	}
	tag, err := ParseMeetingTagID(raw.String())
	if err != nil || tag.UUID() != raw {
		t.Errorf("Expected tag %s, got %s (%v)", raw, tag, err)
	}

	tests := []struct {
		name    string
		parse   func(string) error
		input   string
		wantErr string
	}{
		{"participant format", func(s string) error { _, err := ParseParticipantID(s); return err }, "x", "participant id has invalid format"},
		{"participant empty", func(s string) error { _, err := ParseParticipantID(s); return err }, uuid.Nil.String(), "participant id can't be empty"},
		{"comment format", func(s string) error { _, err := ParseMeetingCommentID(s); return err }, "x", "meeting comment id has invalid format"},
		{"comment empty", func(s string) error { _, err := ParseMeetingCommentID(s); return err }, uuid.Nil.String(), "meeting comment id can't be empty"},
		{"tag format", func(s string) error { _, err := ParseMeetingTagID(s); return err }, "x", "meeting tag id has invalid format"},
		{"tag empty", func(s string) error { _, err := ParseMeetingTagID(s); return err }, uuid.Nil.String(), "meeting tag id can't be empty"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.parse(tt.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Expected %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
