package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/events"
	"github.com/spotly/meeting-api/internal/platform/logger"
	"github.com/spotly/meeting-api/internal/store"
)

// CreateMeetingParams holds the input for CreateMeeting.
type CreateMeetingParams struct {
	Title           string
	Description     string
	StartAt         time.Time
	EndAt           time.Time
	Location        *domain.LocationParams
	MaxParticipants int
	IsPrivate       bool
}

// UpdateDetailsParams holds the input for UpdateDetails. Nil fields are left
// unchanged.
type UpdateDetailsParams struct {
	Title       *string
	Description *string
}

// UpdateInformationParams holds the input for UpdateInformation. A nil
// Location clears the meeting's location.
type UpdateInformationParams struct {
	Location        *domain.LocationParams
	MaxParticipants int
	IsPrivate       bool
}

// MeetingService provides meeting use cases. caller is the authenticated
// participant performing the operation.
type MeetingService interface {
	// CreateMeeting creates a draft meeting hosted by hostID.
	CreateMeeting(ctx context.Context, hostID uuid.UUID, params CreateMeetingParams) (*domain.Meeting, error)

	// GetMeeting returns the meeting with the given id.
	GetMeeting(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)

	// ListMeetings returns meetings matching filter ordered by start date.
	ListMeetings(ctx context.Context, filter store.MeetingFilter) ([]*domain.Meeting, error)

	// UpdateDetails changes the title and/or description. Host only.
	UpdateDetails(ctx context.Context, caller, id uuid.UUID, params UpdateDetailsParams) (*domain.Meeting, error)

	// UpdateInformation replaces location, capacity and privacy. Host only.
	UpdateInformation(ctx context.Context, caller, id uuid.UUID, params UpdateInformationParams) (*domain.Meeting, error)

	// JoinMeeting adds caller to the participants.
	JoinMeeting(ctx context.Context, caller, id uuid.UUID) (*domain.Meeting, error)

	// LeaveMeeting removes caller from the participants.
	LeaveMeeting(ctx context.Context, caller, id uuid.UUID) (*domain.Meeting, error)

	// AddComment posts a comment authored by caller.
	AddComment(ctx context.Context, caller, meetingID uuid.UUID, text string) (domain.MeetingComment, error)

	// EditComment replaces the text of a comment. Author only.
	EditComment(ctx context.Context, caller, meetingID, commentID uuid.UUID, text string) (domain.MeetingComment, error)

	// DeleteComment removes a comment. Author or host.
	DeleteComment(ctx context.Context, caller, meetingID, commentID uuid.UUID) error

	// AddTag attaches a tag. Host only.
	AddTag(ctx context.Context, caller, meetingID uuid.UUID, text string) (domain.MeetingTag, error)

	// RemoveTag detaches a tag. Host only.
	RemoveTag(ctx context.Context, caller, meetingID, tagID uuid.UUID) error

	// ChangeStatus applies a lifecycle action. Host only.
	ChangeStatus(ctx context.Context, caller, id uuid.UUID, action domain.StatusAction) (*domain.Meeting, error)

	// DeleteMeeting removes the meeting and everything attached to it. Host only.
	DeleteMeeting(ctx context.Context, caller, id uuid.UUID) error
}

// Option customizes a MeetingService.
type Option func(*meetingServiceImpl)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *meetingServiceImpl) {
		if now != nil {
			s.clock = now
		}
	}
}

// WithIDGenerator replaces uuid.New as the source of new entity ids.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *meetingServiceImpl) {
		if newID != nil {
			s.newID = newID
		}
	}
}

type meetingServiceImpl struct {
	meetings store.MeetingStore
	emitter  events.EventEmitter
	logger   *slog.Logger
	clock    func() time.Time
	newID    func() uuid.UUID
}

var _ MeetingService = (*meetingServiceImpl)(nil)

// NewMeetingService creates a MeetingService.
// It returns an error if any of the required dependencies are nil.
func NewMeetingService(
	meetings store.MeetingStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) (MeetingService, error) {
	if meetings == nil {
		return nil, errors.New("meetings store cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("event emitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &meetingServiceImpl{
		meetings: meetings,
		emitter:  emitter,
		logger:   logger.With(slog.String("component", "meeting_service")),
		clock:    time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *meetingServiceImpl) now() time.Time {
	return s.clock().UTC()
}

// CreateMeeting implements MeetingService.CreateMeeting
func (s *meetingServiceImpl) CreateMeeting(
	ctx context.Context,
	hostID uuid.UUID,
	params CreateMeetingParams,
) (*domain.Meeting, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	meeting, err := domain.NewMeeting(s.newID(), hostID, params.Title, params.Description, params.StartAt, params.EndAt)
	if err != nil {
		log.Debug("rejected new meeting", slog.String("error", err.Error()))
		return nil, err
	}

	var location *domain.MeetingLocation
	if params.Location != nil {
		loc, err := domain.NewMeetingLocation(*params.Location)
		if err != nil {
			return nil, err
		}
		location = &loc
	}
	if err := meeting.AddInformation(location, params.MaxParticipants, params.IsPrivate); err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.meetings.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.meetings.WithTx(tx).Create(ctx, meeting)
	})
	if err != nil {
		return nil, s.translate(ctx, "create_meeting", err)
	}

	log.Info("meeting created",
		slog.String("meeting_id", meeting.ID().String()),
		slog.String("host_id", hostID.String()))

	s.emit(ctx, events.TypeMeetingCreated, meeting.ID().UUID(), hostID, events.MeetingCreatedPayload{
		Title:   meeting.Title().Value(),
		StartAt: meeting.StartAt().String(),
		EndAt:   meeting.EndAt().String(),
	})
	return meeting, nil
}

// GetMeeting implements MeetingService.GetMeeting
func (s *meetingServiceImpl) GetMeeting(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	meeting, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, s.translate(ctx, "get_meeting", err)
	}
	return meeting, nil
}

// ListMeetings implements MeetingService.ListMeetings
func (s *meetingServiceImpl) ListMeetings(ctx context.Context, filter store.MeetingFilter) ([]*domain.Meeting, error) {
	meetings, err := s.meetings.List(ctx, filter.Normalized())
	if err != nil {
		return nil, s.translate(ctx, "list_meetings", err)
	}
	return meetings, nil
}

// UpdateDetails implements MeetingService.UpdateDetails
func (s *meetingServiceImpl) UpdateDetails(
	ctx context.Context,
	caller, id uuid.UUID,
	params UpdateDetailsParams,
) (*domain.Meeting, error) {
	meeting, err := s.mutate(ctx, "update_details", id, func(m *domain.Meeting) error {
		if err := requireHost(m, caller); err != nil {
			return err
		}

		// Validate both before changing either.
		title, description := m.Title(), m.Description()
		if params.Title != nil {
			t, err := domain.NewMeetingTitle(*params.Title)
			if err != nil {
				return err
			}
			title = t
		}
		if params.Description != nil {
			d, err := domain.NewMeetingDescription(*params.Description)
			if err != nil {
				return err
			}
			description = d
		}

		m.ChangeTitle(title)
		m.ChangeDescription(description)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.TypeMeetingUpdated, id, caller, events.MeetingUpdatedPayload{
		Title:       meeting.Title().Value(),
		Description: meeting.Description().Value(),
	})
	return meeting, nil
}

// UpdateInformation implements MeetingService.UpdateInformation
func (s *meetingServiceImpl) UpdateInformation(
	ctx context.Context,
	caller, id uuid.UUID,
	params UpdateInformationParams,
) (*domain.Meeting, error) {
	meeting, err := s.mutate(ctx, "update_information", id, func(m *domain.Meeting) error {
		if err := requireHost(m, caller); err != nil {
			return err
		}

		var location *domain.MeetingLocation
		if params.Location != nil {
			loc, err := domain.NewMeetingLocation(*params.Location)
			if err != nil {
				return err
			}
			location = &loc
		}
		return m.AddInformation(location, params.MaxParticipants, params.IsPrivate)
	})
	if err != nil {
		return nil, err
	}

	payload := events.InformationUpdatedPayload{
		MaxParticipants: meeting.MaxParticipants(),
		IsPrivate:       meeting.IsPrivate(),
	}
	if loc, ok := meeting.Location(); ok {
		payload.Location = loc.Formatted()
	}
	s.emit(ctx, events.TypeMeetingInfoUpdated, id, caller, payload)
	return meeting, nil
}

// JoinMeeting implements MeetingService.JoinMeeting
func (s *meetingServiceImpl) JoinMeeting(ctx context.Context, caller, id uuid.UUID) (*domain.Meeting, error) {
	meeting, err := s.mutate(ctx, "join_meeting", id, func(m *domain.Meeting) error {
		participant, err := domain.NewParticipantID(caller)
		if err != nil {
			return err
		}
		return m.AddParticipant(participant)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.TypeParticipantJoined, id, caller, events.ParticipantPayload{ParticipantID: caller})
	return meeting, nil
}

// LeaveMeeting implements MeetingService.LeaveMeeting
func (s *meetingServiceImpl) LeaveMeeting(ctx context.Context, caller, id uuid.UUID) (*domain.Meeting, error) {
	meeting, err := s.mutate(ctx, "leave_meeting", id, func(m *domain.Meeting) error {
		participant, err := domain.NewParticipantID(caller)
		if err != nil {
			return err
		}
		return m.RemoveParticipant(participant)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.TypeParticipantLeft, id, caller, events.ParticipantPayload{ParticipantID: caller})
	return meeting, nil
}

// AddComment implements MeetingService.AddComment
func (s *meetingServiceImpl) AddComment(
	ctx context.Context,
	caller, meetingID uuid.UUID,
	text string,
) (domain.MeetingComment, error) {
	var comment domain.MeetingComment
	_, err := s.mutate(ctx, "add_comment", meetingID, func(m *domain.Meeting) error {
		c, err := domain.NewMeetingComment(s.newID(), meetingID, caller, text, s.now())
		if err != nil {
			return err
		}
		if err := m.AddComment(c); err != nil {
			return err
		}
		comment = c
		return nil
	})
	if err != nil {
		return domain.MeetingComment{}, err
	}

	s.emit(ctx, events.TypeCommentAdded, meetingID, caller, events.CommentPayload{
		CommentID: comment.ID().UUID(),
		AuthorID:  caller,
	})
	return comment, nil
}

// EditComment implements MeetingService.EditComment
func (s *meetingServiceImpl) EditComment(
	ctx context.Context,
	caller, meetingID, commentID uuid.UUID,
	text string,
) (domain.MeetingComment, error) {
	var edited domain.MeetingComment
	_, err := s.mutate(ctx, "edit_comment", meetingID, func(m *domain.Meeting) error {
		comment, err := findComment(m, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID().UUID() != caller {
			return ErrNotCommentAuthor
		}
		if err := m.EditComment(comment.ID(), text, s.now()); err != nil {
			return err
		}
		edited, _ = m.Comment(comment.ID())
		return nil
	})
	if err != nil {
		return domain.MeetingComment{}, err
	}

	s.emit(ctx, events.TypeCommentEdited, meetingID, caller, events.CommentPayload{
		CommentID: commentID,
		AuthorID:  edited.AuthorID().UUID(),
	})
	return edited, nil
}

// DeleteComment implements MeetingService.DeleteComment
func (s *meetingServiceImpl) DeleteComment(ctx context.Context, caller, meetingID, commentID uuid.UUID) error {
	var author uuid.UUID
	_, err := s.mutate(ctx, "delete_comment", meetingID, func(m *domain.Meeting) error {
		comment, err := findComment(m, commentID)
		if err != nil {
			return err
		}
		author = comment.AuthorID().UUID()
		if author != caller && m.HostID().UUID() != caller {
			return ErrNotCommentAuthor
		}
		return m.RemoveComment(comment)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, events.TypeCommentDeleted, meetingID, caller, events.CommentPayload{
		CommentID: commentID,
		AuthorID:  author,
	})
	return nil
}

// AddTag implements MeetingService.AddTag
func (s *meetingServiceImpl) AddTag(
	ctx context.Context,
	caller, meetingID uuid.UUID,
	text string,
) (domain.MeetingTag, error) {
	var tag domain.MeetingTag
	_, err := s.mutate(ctx, "add_tag", meetingID, func(m *domain.Meeting) error {
		if err := requireHost(m, caller); err != nil {
			return err
		}
		t, err := domain.NewMeetingTag(s.newID(), meetingID, text)
		if err != nil {
			return err
		}
		if err := m.AddTag(t); err != nil {
			return err
		}
		tag = t
		return nil
	})
	if err != nil {
		return domain.MeetingTag{}, err
	}

	s.emit(ctx, events.TypeTagAdded, meetingID, caller, events.TagPayload{
		TagID: tag.ID().UUID(),
		Text:  tag.Text().Value(),
	})
	return tag, nil
}

// RemoveTag implements MeetingService.RemoveTag
func (s *meetingServiceImpl) RemoveTag(ctx context.Context, caller, meetingID, tagID uuid.UUID) error {
	var removed domain.MeetingTag
	_, err := s.mutate(ctx, "remove_tag", meetingID, func(m *domain.Meeting) error {
		if err := requireHost(m, caller); err != nil {
			return err
		}
		id, err := domain.NewMeetingTagID(tagID)
		if err != nil {
			return err
		}
		tag, ok := m.Tag(id)
		if !ok {
			return ErrTagNotFound
		}
		removed = tag
		return m.RemoveTag(tag)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, events.TypeTagRemoved, meetingID, caller, events.TagPayload{
		TagID: tagID,
		Text:  removed.Text().Value(),
	})
	return nil
}

// ChangeStatus implements MeetingService.ChangeStatus
func (s *meetingServiceImpl) ChangeStatus(
	ctx context.Context,
	caller, id uuid.UUID,
	action domain.StatusAction,
) (*domain.Meeting, error) {
	var from domain.MeetingStatus
	meeting, err := s.mutate(ctx, "change_status", id, func(m *domain.Meeting) error {
		if err := requireHost(m, caller); err != nil {
			return err
		}
		from = m.Status()
		return m.Apply(action)
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.TypeMeetingStatusChanged, id, caller, events.StatusChangedPayload{
		From: from.String(),
		To:   meeting.Status().String(),
	})
	return meeting, nil
}

// DeleteMeeting implements MeetingService.DeleteMeeting
func (s *meetingServiceImpl) DeleteMeeting(ctx context.Context, caller, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.meetings.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.meetings.WithTx(tx)

		meeting, err := txStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := requireHost(meeting, caller); err != nil {
			return err
		}
		return txStore.Delete(ctx, id)
	})
	if err != nil {
		return s.translate(ctx, "delete_meeting", err)
	}

	log.Info("meeting deleted", slog.String("meeting_id", id.String()))
	s.emit(ctx, events.TypeMeetingDeleted, id, caller, nil)
	return nil
}

// mutate locks the meeting, applies fn and saves the result, all in one
// transaction. fn must leave the meeting unchanged when it fails.
func (s *meetingServiceImpl) mutate(
	ctx context.Context,
	operation string,
	id uuid.UUID,
	fn func(m *domain.Meeting) error,
) (*domain.Meeting, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result *domain.Meeting
	err := store.RunInTransaction(ctx, s.meetings.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.meetings.WithTx(tx)

		meeting, err := txStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(meeting); err != nil {
			return err
		}
		if err := txStore.Update(ctx, meeting); err != nil {
			return err
		}

		result = meeting
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, operation, err)
	}

	log.Debug("meeting changed",
		slog.String("operation", operation),
		slog.String("meeting_id", id.String()))
	return result, nil
}

// translate maps store and domain failures to the errors callers check for.
func (s *meetingServiceImpl) translate(ctx context.Context, operation string, err error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	switch {
	case errors.Is(err, store.ErrMeetingNotFound):
		return ErrMeetingNotFound
	case errors.Is(err, ErrNotHost),
		errors.Is(err, ErrNotCommentAuthor),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrTagNotFound):
		return err
	case domain.IsValidationError(err):
		log.Debug("meeting rule violated",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return err
	case store.IsDuplicateError(err):
		return ErrMeetingExists
	}

	log.Error("meeting operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()))
	return NewMeetingServiceError(operation, "unexpected error", err)
}

// emit publishes an event for a committed change. Failures are logged only,
// since the change itself has already been saved.
func (s *meetingServiceImpl) emit(ctx context.Context, eventType string, meetingID, actorID uuid.UUID, payload any) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewMeetingEvent(eventType, meetingID, actorID, payload)
	if err != nil {
		log.Error("failed to build meeting event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	event.CreatedAt = s.now()

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("failed to emit meeting event",
			slog.String("event_type", eventType),
			slog.String("meeting_id", meetingID.String()),
			slog.String("error", err.Error()))
	}
}

func requireHost(m *domain.Meeting, caller uuid.UUID) error {
	if m.HostID().UUID() != caller {
		return ErrNotHost
	}
	return nil
}

func findComment(m *domain.Meeting, commentID uuid.UUID) (domain.MeetingComment, error) {
	id, err := domain.NewMeetingCommentID(commentID)
	if err != nil {
		return domain.MeetingComment{}, err
	}
	comment, ok := m.Comment(id)
	if !ok {
		return domain.MeetingComment{}, ErrCommentNotFound
	}
	return comment, nil
}
