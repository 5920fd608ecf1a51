package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedMeeting(t *testing.T) *Meeting {
	t.Helper()
	m := newTestMeeting(t)

	location, err := NewMeetingLocation(LocationParams{
		Country:     "Russia",
		City:        "Moscow",
		Street:      "Tverskaya",
		HouseNumber: "1",
		Latitude:    55.75,
		Longitude:   37.61,
	})
	require.NoError(t, err)
	require.NoError(t, m.AddInformation(&location, 8, true))

	require.NoError(t, m.AddParticipant(mustParticipant(t)))
	require.NoError(t, m.AddParticipant(mustParticipant(t)))

	now := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	comment, err := NewMeetingComment(uuid.New(), m.ID().UUID(), uuid.New(), "See you all there", now)
	require.NoError(t, err)
	require.NoError(t, m.AddComment(comment))
	require.NoError(t, m.EditComment(comment.ID(), "See you all at seven", now.Add(time.Minute)))

	tag, err := NewMeetingTag(uuid.New(), m.ID().UUID(), "board")
	require.NoError(t, err)
	require.NoError(t, m.AddTag(tag))

	require.NoError(t, m.Schedule())
	return m
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	original := populatedMeeting(t)
	snapshot := original.Snapshot()

	restored, err := RestoreMeeting(snapshot)
	require.NoError(t, err)

	assert.Equal(t, snapshot, restored.Snapshot())
	assert.Equal(t, original.Participants(), restored.Participants())
	assert.Equal(t, original.Tags(), restored.Tags())
	require.Len(t, restored.Comments(), 1)
	assert.True(t, original.Comments()[0].Equal(restored.Comments()[0]))
	assert.Equal(t, MeetingStatusScheduled, restored.Status())

	loc, ok := restored.Location()
	require.True(t, ok)
	assert.Equal(t, "Russia, Moscow, Tverskaya 1", loc.Formatted())
}

func TestRestoreMeetingSkipsDateOrdering(t *testing.T) {
	t.Parallel()

	snapshot := newTestMeeting(t).Snapshot()
	snapshot.StartAt, snapshot.EndAt = snapshot.EndAt, snapshot.StartAt

	_, err := RestoreMeeting(snapshot)
	assert.NoError(t, err)
}

func TestRestoreMeetingRejectsCorruptState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(s *MeetingSnapshot)
		wantErr string
	}{
		{
			name:    "unknown status",
			mutate:  func(s *MeetingSnapshot) { s.Status = 9 },
			wantErr: "meeting status is unknown",
		},
		{
			name:    "negative capacity",
			mutate:  func(s *MeetingSnapshot) { s.MaxParticipants = -3 },
			wantErr: "max participants must be greater than zero",
		},
		{
			name:    "host among participants",
			mutate:  func(s *MeetingSnapshot) { s.Participants = append(s.Participants, s.HostID) },
			wantErr: "participant in meeting can't be host",
		},
		{
			name: "duplicate participant",
			mutate: func(s *MeetingSnapshot) {
				s.Participants = append(s.Participants, s.Participants[0])
			},
			wantErr: "participant in meeting already exists",
		},
		{
			name:    "invalid title",
			mutate:  func(s *MeetingSnapshot) { s.Title = "no" },
			wantErr: "meeting title length must be between 5 and 200 symbols",
		},
		{
			name:    "invalid location",
			mutate:  func(s *MeetingSnapshot) { s.Location.Latitude = 120 },
			wantErr: "meeting location latitude must be between -90 and 90",
		},
		{
			name:    "comment of another meeting",
			mutate:  func(s *MeetingSnapshot) { s.Comments[0].MeetingID = uuid.New() },
			wantErr: "comment belongs to another meeting",
		},
		{
			name:    "tag of another meeting",
			mutate:  func(s *MeetingSnapshot) { s.Tags[0].MeetingID = uuid.New() },
			wantErr: "tag belongs to another meeting",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			snapshot := populatedMeeting(t).Snapshot()
			tt.mutate(&snapshot)

			_, err := RestoreMeeting(snapshot)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
