package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/events"
	"github.com/spotly/meeting-api/internal/mocks"
	"github.com/spotly/meeting-api/internal/service"
	"github.com/spotly/meeting-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	start    = time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	end      = start.Add(2 * time.Hour)
)

type fixture struct {
	svc      service.MeetingService
	meetings *mocks.MockMeetingStore
	emitter  *mocks.MockEventEmitter
	sql      sqlmock.Sqlmock
	nextID   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		_ = db.Close()
	})

	f := &fixture{
		meetings: mocks.NewMockMeetingStore(db),
		emitter:  &mocks.MockEventEmitter{},
		sql:      sqlMock,
	}

	svc, err := service.NewMeetingService(f.meetings, f.emitter, nil,
		service.WithClock(func() time.Time { return fixedNow }),
		service.WithIDGenerator(func() uuid.UUID {
			f.nextID = uuid.New()
			return f.nextID
		}),
	)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *fixture) expectCommit() {
	f.sql.ExpectBegin()
	f.sql.ExpectCommit()
}

func (f *fixture) expectRollback() {
	f.sql.ExpectBegin()
	f.sql.ExpectRollback()
}

// seed stores a draft meeting hosted by a fresh host and returns it.
func (f *fixture) seed(t *testing.T) *domain.Meeting {
	t.Helper()
	m, err := domain.NewMeeting(uuid.New(), uuid.New(), "Board games night", "Bring your favourite games", start, end)
	require.NoError(t, err)
	f.meetings.Seed(m)
	return m
}

func TestNewMeetingService(t *testing.T) {
	t.Parallel()

	meetings := mocks.NewMockMeetingStore(nil)
	emitter := &mocks.MockEventEmitter{}

	_, err := service.NewMeetingService(nil, emitter, nil)
	assert.EqualError(t, err, "meetings store cannot be nil")

	_, err = service.NewMeetingService(meetings, nil, nil)
	assert.EqualError(t, err, "event emitter cannot be nil")

	svc, err := service.NewMeetingService(meetings, emitter, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestCreateMeeting(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.expectCommit()

		host := uuid.New()
		m, err := f.svc.CreateMeeting(context.Background(), host, service.CreateMeetingParams{
			Title:           "Board games night",
			Description:     "Bring your favourite games",
			StartAt:         start,
			EndAt:           end,
			Location:        &domain.LocationParams{Country: "Russia", City: "Kazan", Latitude: 55.79, Longitude: 49.12},
			MaxParticipants: 8,
			IsPrivate:       true,
		})
		require.NoError(t, err)

		assert.Equal(t, f.nextID, m.ID().UUID())
		assert.Equal(t, host, m.HostID().UUID())
		assert.Equal(t, domain.MeetingStatusDraft, m.Status())
		assert.Equal(t, 8, m.MaxParticipants())
		assert.True(t, m.IsPrivate())
		loc, ok := m.Location()
		require.True(t, ok)
		assert.Equal(t, "Russia, Kazan", loc.Formatted())

		stored := f.meetings.Stored(m.ID().UUID())
		require.NotNil(t, stored)
		assert.Equal(t, m.Snapshot(), stored.Snapshot())

		require.Len(t, f.emitter.Events, 1)
		event := f.emitter.Events[0]
		assert.Equal(t, events.TypeMeetingCreated, event.Type)
		assert.Equal(t, m.ID().UUID(), event.MeetingID)
		assert.Equal(t, host, event.ActorID)
		assert.True(t, event.CreatedAt.Equal(fixedNow))

		var payload events.MeetingCreatedPayload
		require.NoError(t, event.UnmarshalPayload(&payload))
		assert.Equal(t, "Board games night", payload.Title)
		assert.Equal(t, "2026-04-01 18:00:00Z", payload.StartAt)
	})

	t.Run("invalid input never opens a transaction", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		cases := map[string]service.CreateMeetingParams{
			"title":       {Title: "Hi!", Description: "Bring games", StartAt: start, EndAt: end},
			"dates":       {Title: "Board games night", Description: "Bring games", StartAt: end, EndAt: start},
			"location":    {Title: "Board games night", Description: "Bring games", StartAt: start, EndAt: end, Location: &domain.LocationParams{Country: "   "}},
			"max":         {Title: "Board games night", Description: "Bring games", StartAt: start, EndAt: end, MaxParticipants: -1},
			"description": {Title: "Board games night", Description: "", StartAt: start, EndAt: end},
		}
		for name, params := range cases {
			_, err := f.svc.CreateMeeting(context.Background(), uuid.New(), params)
			assert.True(t, domain.IsValidationError(err), "%s: got %v", name, err)
		}
		assert.Empty(t, f.emitter.Events)
	})

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.expectRollback()
		f.meetings.CreateFn = func(context.Context, *domain.Meeting) error {
			return store.NewStoreError("meeting", "create", "duplicate", store.ErrDuplicate)
		}

		_, err := f.svc.CreateMeeting(context.Background(), uuid.New(), service.CreateMeetingParams{
			Title: "Board games night", Description: "Bring games", StartAt: start, EndAt: end,
		})
		assert.ErrorIs(t, err, service.ErrMeetingExists)
		assert.Empty(t, f.emitter.Events)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.expectRollback()
		boom := errors.New("connection reset")
		f.meetings.CreateFn = func(context.Context, *domain.Meeting) error { return boom }

		_, err := f.svc.CreateMeeting(context.Background(), uuid.New(), service.CreateMeetingParams{
			Title: "Board games night", Description: "Bring games", StartAt: start, EndAt: end,
		})
		var serviceErr *service.MeetingServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "create_meeting", serviceErr.Operation)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("begin failure", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.sql.ExpectBegin().WillReturnError(errors.New("too many connections"))

		_, err := f.svc.CreateMeeting(context.Background(), uuid.New(), service.CreateMeetingParams{
			Title: "Board games night", Description: "Bring games", StartAt: start, EndAt: end,
		})
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
	})
}

func TestGetMeeting(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	m := f.seed(t)

	got, err := f.svc.GetMeeting(context.Background(), m.ID().UUID())
	require.NoError(t, err)
	assert.Equal(t, m.Snapshot(), got.Snapshot())

	_, err = f.svc.GetMeeting(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrMeetingNotFound)
}

func TestListMeetings(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	m := f.seed(t)
	f.seed(t)

	host := m.HostID().UUID()
	got, err := f.svc.ListMeetings(context.Background(), store.MeetingFilter{HostID: &host})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, m.ID(), got[0].ID())

	var seen store.MeetingFilter
	f.meetings.ListFn = func(_ context.Context, filter store.MeetingFilter) ([]*domain.Meeting, error) {
		seen = filter
		return nil, nil
	}
	_, err = f.svc.ListMeetings(context.Background(), store.MeetingFilter{Limit: 1000, Offset: -5})
	require.NoError(t, err)
	assert.Equal(t, store.MaxListLimit, seen.Limit)
	assert.Equal(t, 0, seen.Offset)
}

func TestUpdateDetails(t *testing.T) {
	t.Parallel()

	title := "Chess club"
	description := "Weekly chess evening"

	t.Run("host changes both", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m := f.seed(t)
		f.expectCommit()

		got, err := f.svc.UpdateDetails(context.Background(), m.HostID().UUID(), m.ID().UUID(),
			service.UpdateDetailsParams{Title: &title, Description: &description})
		require.NoError(t, err)
		assert.Equal(t, title, got.Title().Value())
		assert.Equal(t, description, got.Description().Value())
		assert.Equal(t, title, f.meetings.Stored(m.ID().UUID()).Title().Value())
		assert.Equal(t, []uuid.UUID{m.ID().UUID()}, f.meetings.LockedIDs)
		assert.Equal(t, []string{events.TypeMeetingUpdated}, f.emitter.Types())
	})

	t.Run("only title", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m := f.seed(t)
		f.expectCommit()

		got, err := f.svc.UpdateDetails(context.Background(), m.HostID().UUID(), m.ID().UUID(),
			service.UpdateDetailsParams{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, got.Title().Value())
		assert.Equal(t, m.Description(), got.Description())
	})

	t.Run("invalid description keeps title", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m := f.seed(t)
		f.expectRollback()

		bad := "no"
		_, err := f.svc.UpdateDetails(context.Background(), m.HostID().UUID(), m.ID().UUID(),
			service.UpdateDetailsParams{Title: &title, Description: &bad})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, m.Title(), f.meetings.Stored(m.ID().UUID()).Title())
		assert.Zero(t, f.meetings.UpdateCalls)
		assert.Empty(t, f.emitter.Events)
	})

	t.Run("not host", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m := f.seed(t)
		f.expectRollback()

		_, err := f.svc.UpdateDetails(context.Background(), uuid.New(), m.ID().UUID(),
			service.UpdateDetailsParams{Title: &title})
		assert.ErrorIs(t, err, service.ErrNotHost)
	})

	t.Run("missing meeting", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.expectRollback()

		_, err := f.svc.UpdateDetails(context.Background(), uuid.New(), uuid.New(),
			service.UpdateDetailsParams{Title: &title})
		assert.ErrorIs(t, err, service.ErrMeetingNotFound)
	})
}

func TestUpdateInformation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.seed(t)
	host := m.HostID().UUID()
	ctx := context.Background()

	f.expectCommit()
	got, err := f.svc.UpdateInformation(ctx, host, m.ID().UUID(), service.UpdateInformationParams{
		Location:        &domain.LocationParams{Country: "Georgia", City: "Tbilisi", Latitude: 41.7, Longitude: 44.8},
		MaxParticipants: 12,
		IsPrivate:       true,
	})
	require.NoError(t, err)
	loc, ok := got.Location()
	require.True(t, ok)
	assert.Equal(t, "Georgia, Tbilisi", loc.Formatted())
	assert.Equal(t, 12, got.MaxParticipants())

	var payload events.InformationUpdatedPayload
	require.Len(t, f.emitter.Events, 1)
	require.NoError(t, f.emitter.Events[0].UnmarshalPayload(&payload))
	assert.Equal(t, events.InformationUpdatedPayload{Location: "Georgia, Tbilisi", MaxParticipants: 12, IsPrivate: true}, payload)

	f.expectCommit()
	got, err = f.svc.UpdateInformation(ctx, host, m.ID().UUID(), service.UpdateInformationParams{})
	require.NoError(t, err)
	_, ok = got.Location()
	assert.False(t, ok)

	f.expectRollback()
	_, err = f.svc.UpdateInformation(ctx, host, m.ID().UUID(), service.UpdateInformationParams{MaxParticipants: -1})
	assert.EqualError(t, err, "max participants must be greater than zero")

	f.expectRollback()
	_, err = f.svc.UpdateInformation(ctx, uuid.New(), m.ID().UUID(), service.UpdateInformationParams{})
	assert.ErrorIs(t, err, service.ErrNotHost)
}

func TestJoinAndLeaveMeeting(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.seed(t)
	id := m.ID().UUID()
	guest := uuid.New()
	ctx := context.Background()

	f.expectCommit()
	got, err := f.svc.JoinMeeting(ctx, guest, id)
	require.NoError(t, err)
	require.Len(t, got.Participants(), 1)
	assert.Equal(t, guest, got.Participants()[0].UUID())

	f.expectRollback()
	_, err = f.svc.JoinMeeting(ctx, guest, id)
	assert.EqualError(t, err, "participant in meeting already exists")

	f.expectRollback()
	_, err = f.svc.JoinMeeting(ctx, m.HostID().UUID(), id)
	assert.EqualError(t, err, "participant in meeting can't be host")

	f.expectCommit()
	got, err = f.svc.LeaveMeeting(ctx, guest, id)
	require.NoError(t, err)
	assert.Empty(t, got.Participants())

	f.expectRollback()
	_, err = f.svc.LeaveMeeting(ctx, guest, id)
	assert.EqualError(t, err, "participant in meeting doesn't exist")

	assert.Equal(t, []string{events.TypeParticipantJoined, events.TypeParticipantLeft}, f.emitter.Types())
}

func TestComments(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.seed(t)
	id := m.ID().UUID()
	host := m.HostID().UUID()
	author := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	f.expectCommit()
	comment, err := f.svc.AddComment(ctx, author, id, "Count me in!")
	require.NoError(t, err)
	assert.Equal(t, f.nextID, comment.ID().UUID())
	assert.Equal(t, author, comment.AuthorID().UUID())
	assert.True(t, comment.CreatedAt().Equal(fixedNow))

	f.expectRollback()
	_, err = f.svc.AddComment(ctx, author, id, "no")
	assert.ErrorIs(t, err, domain.ErrValidation)

	commentID := comment.ID().UUID()

	f.expectRollback()
	_, err = f.svc.EditComment(ctx, stranger, id, commentID, "Hijacked comment")
	assert.ErrorIs(t, err, service.ErrNotCommentAuthor)

	f.expectRollback()
	_, err = f.svc.EditComment(ctx, author, id, uuid.New(), "Anything at all")
	assert.ErrorIs(t, err, service.ErrCommentNotFound)

	f.expectCommit()
	edited, err := f.svc.EditComment(ctx, author, id, commentID, "I will bring snacks")
	require.NoError(t, err)
	assert.Equal(t, "I will bring snacks", edited.Text().Value())

	stored, ok := f.meetings.Stored(id).Comment(comment.ID())
	require.True(t, ok)
	assert.Equal(t, "I will bring snacks", stored.Text().Value())

	f.expectRollback()
	err = f.svc.DeleteComment(ctx, stranger, id, commentID)
	assert.ErrorIs(t, err, service.ErrNotCommentAuthor)

	f.expectCommit()
	require.NoError(t, f.svc.DeleteComment(ctx, host, id, commentID))
	assert.Empty(t, f.meetings.Stored(id).Comments())

	f.expectRollback()
	err = f.svc.DeleteComment(ctx, author, id, commentID)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)

	assert.Equal(t, []string{
		events.TypeCommentAdded,
		events.TypeCommentEdited,
		events.TypeCommentDeleted,
	}, f.emitter.Types())
}

func TestTags(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.seed(t)
	id := m.ID().UUID()
	host := m.HostID().UUID()
	ctx := context.Background()

	f.expectRollback()
	_, err := f.svc.AddTag(ctx, uuid.New(), id, "games")
	assert.ErrorIs(t, err, service.ErrNotHost)

	f.expectRollback()
	_, err = f.svc.AddTag(ctx, host, id, "ab")
	assert.EqualError(t, err, "meeting tag length must be between 3 and 15 symbols")

	f.expectCommit()
	tag, err := f.svc.AddTag(ctx, host, id, "games")
	require.NoError(t, err)
	assert.Equal(t, "games", tag.Text().Value())
	assert.Len(t, f.meetings.Stored(id).Tags(), 1)

	f.expectRollback()
	err = f.svc.RemoveTag(ctx, host, id, uuid.New())
	assert.ErrorIs(t, err, service.ErrTagNotFound)

	f.expectRollback()
	err = f.svc.RemoveTag(ctx, uuid.New(), id, tag.ID().UUID())
	assert.ErrorIs(t, err, service.ErrNotHost)

	f.expectCommit()
	require.NoError(t, f.svc.RemoveTag(ctx, host, id, tag.ID().UUID()))
	assert.Empty(t, f.meetings.Stored(id).Tags())

	require.Len(t, f.emitter.Events, 2)
	var payload events.TagPayload
	require.NoError(t, f.emitter.Events[1].UnmarshalPayload(&payload))
	assert.Equal(t, events.TagPayload{TagID: tag.ID().UUID(), Text: "games"}, payload)
}

func TestChangeStatus(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.seed(t)
	id := m.ID().UUID()
	host := m.HostID().UUID()
	ctx := context.Background()

	f.expectRollback()
	_, err := f.svc.ChangeStatus(ctx, host, id, domain.StatusActionCancel)
	assert.EqualError(t, err, "meeting is draft")

	f.expectRollback()
	_, err = f.svc.ChangeStatus(ctx, uuid.New(), id, domain.StatusActionSchedule)
	assert.ErrorIs(t, err, service.ErrNotHost)

	for _, step := range []struct {
		action domain.StatusAction
		want   domain.MeetingStatus
	}{
		{domain.StatusActionSchedule, domain.MeetingStatusScheduled},
		{domain.StatusActionStart, domain.MeetingStatusOngoing},
		{domain.StatusActionFinish, domain.MeetingStatusFinished},
	} {
		f.expectCommit()
		got, err := f.svc.ChangeStatus(ctx, host, id, step.action)
		require.NoError(t, err, step.action)
		assert.Equal(t, step.want, got.Status())
	}

	f.expectRollback()
	_, err = f.svc.ChangeStatus(ctx, host, id, domain.StatusActionCancel)
	assert.EqualError(t, err, "meeting is finished")
	assert.Equal(t, domain.MeetingStatusFinished, f.meetings.Stored(id).Status())

	require.Len(t, f.emitter.Events, 3)
	var payload events.StatusChangedPayload
	require.NoError(t, f.emitter.Events[0].UnmarshalPayload(&payload))
	assert.Equal(t, events.StatusChangedPayload{From: "draft", To: "scheduled"}, payload)
}

func TestDeleteMeeting(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	m := f.seed(t)
	id := m.ID().UUID()
	ctx := context.Background()

	f.expectRollback()
	assert.ErrorIs(t, f.svc.DeleteMeeting(ctx, uuid.New(), id), service.ErrNotHost)
	assert.NotNil(t, f.meetings.Stored(id))

	f.expectCommit()
	require.NoError(t, f.svc.DeleteMeeting(ctx, m.HostID().UUID(), id))
	assert.Nil(t, f.meetings.Stored(id))
	assert.Equal(t, []string{events.TypeMeetingDeleted}, f.emitter.Types())
	assert.Empty(t, f.emitter.Events[0].Payload)

	f.expectRollback()
	assert.ErrorIs(t, f.svc.DeleteMeeting(ctx, m.HostID().UUID(), id), service.ErrMeetingNotFound)
}

func TestMutationFailures(t *testing.T) {
	t.Parallel()

	t.Run("update error rolls back", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m := f.seed(t)
		f.expectRollback()
		f.meetings.UpdateFn = func(context.Context, *domain.Meeting) error {
			return store.NewStoreError("meeting", "update", "failed", errors.New("deadlock detected"))
		}

		_, err := f.svc.JoinMeeting(context.Background(), uuid.New(), m.ID().UUID())
		var serviceErr *service.MeetingServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "join_meeting", serviceErr.Operation)
		assert.Empty(t, f.meetings.Stored(m.ID().UUID()).Participants())
		assert.Empty(t, f.emitter.Events)
	})

	t.Run("commit error", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m := f.seed(t)
		f.sql.ExpectBegin()
		f.sql.ExpectCommit().WillReturnError(errors.New("serialization failure"))

		_, err := f.svc.JoinMeeting(context.Background(), uuid.New(), m.ID().UUID())
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
		assert.Empty(t, f.emitter.Events)
	})

	t.Run("emit error does not fail the operation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		m := f.seed(t)
		f.expectCommit()
		f.emitter.EmitEventFn = func(context.Context, *events.MeetingEvent) error {
			return errors.New("handler down")
		}

		got, err := f.svc.JoinMeeting(context.Background(), uuid.New(), m.ID().UUID())
		require.NoError(t, err)
		assert.Len(t, got.Participants(), 1)
		assert.Len(t, f.emitter.Events, 1)
	})
}
