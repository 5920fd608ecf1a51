package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/service"
	"github.com/spotly/meeting-api/internal/store"
)

// errNotConfigured is returned by MockMeetingService methods whose function
// field is nil.
var errNotConfigured = errors.New("mock method not configured")

// MockMeetingService implements service.MeetingService for handler tests.
// Every method delegates to its function field.
type MockMeetingService struct {
	CreateMeetingFn     func(ctx context.Context, hostID uuid.UUID, params service.CreateMeetingParams) (*domain.Meeting, error)
	GetMeetingFn        func(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	ListMeetingsFn      func(ctx context.Context, filter store.MeetingFilter) ([]*domain.Meeting, error)
	UpdateDetailsFn     func(ctx context.Context, caller, id uuid.UUID, params service.UpdateDetailsParams) (*domain.Meeting, error)
	UpdateInformationFn func(ctx context.Context, caller, id uuid.UUID, params service.UpdateInformationParams) (*domain.Meeting, error)
	JoinMeetingFn       func(ctx context.Context, caller, id uuid.UUID) (*domain.Meeting, error)
	LeaveMeetingFn      func(ctx context.Context, caller, id uuid.UUID) (*domain.Meeting, error)
	AddCommentFn        func(ctx context.Context, caller, meetingID uuid.UUID, text string) (domain.MeetingComment, error)
	EditCommentFn       func(ctx context.Context, caller, meetingID, commentID uuid.UUID, text string) (domain.MeetingComment, error)
	DeleteCommentFn     func(ctx context.Context, caller, meetingID, commentID uuid.UUID) error
	AddTagFn            func(ctx context.Context, caller, meetingID uuid.UUID, text string) (domain.MeetingTag, error)
	RemoveTagFn         func(ctx context.Context, caller, meetingID, tagID uuid.UUID) error
	ChangeStatusFn      func(ctx context.Context, caller, id uuid.UUID, action domain.StatusAction) (*domain.Meeting, error)
	DeleteMeetingFn     func(ctx context.Context, caller, id uuid.UUID) error
}

var _ service.MeetingService = (*MockMeetingService)(nil)

func (m *MockMeetingService) CreateMeeting(ctx context.Context, hostID uuid.UUID, params service.CreateMeetingParams) (*domain.Meeting, error) {
	if m.CreateMeetingFn == nil {
		return nil, errNotConfigured
	}
	return m.CreateMeetingFn(ctx, hostID, params)
}

func (m *MockMeetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	if m.GetMeetingFn == nil {
		return nil, errNotConfigured
	}
	return m.GetMeetingFn(ctx, id)
}

func (m *MockMeetingService) ListMeetings(ctx context.Context, filter store.MeetingFilter) ([]*domain.Meeting, error) {
	if m.ListMeetingsFn == nil {
		return nil, errNotConfigured
	}
	return m.ListMeetingsFn(ctx, filter)
}

func (m *MockMeetingService) UpdateDetails(ctx context.Context, caller, id uuid.UUID, params service.UpdateDetailsParams) (*domain.Meeting, error) {
	if m.UpdateDetailsFn == nil {
		return nil, errNotConfigured
	}
	return m.UpdateDetailsFn(ctx, caller, id, params)
}

func (m *MockMeetingService) UpdateInformation(ctx context.Context, caller, id uuid.UUID, params service.UpdateInformationParams) (*domain.Meeting, error) {
	if m.UpdateInformationFn == nil {
		return nil, errNotConfigured
	}
	return m.UpdateInformationFn(ctx, caller, id, params)
}

func (m *MockMeetingService) JoinMeeting(ctx context.Context, caller, id uuid.UUID) (*domain.Meeting, error) {
	if m.JoinMeetingFn == nil {
		return nil, errNotConfigured
	}
	return m.JoinMeetingFn(ctx, caller, id)
}

func (m *MockMeetingService) LeaveMeeting(ctx context.Context, caller, id uuid.UUID) (*domain.Meeting, error) {
	if m.LeaveMeetingFn == nil {
		return nil, errNotConfigured
	}
	return m.LeaveMeetingFn(ctx, caller, id)
}

func (m *MockMeetingService) AddComment(ctx context.Context, caller, meetingID uuid.UUID, text string) (domain.MeetingComment, error) {
	if m.AddCommentFn == nil {
		return domain.MeetingComment{}, errNotConfigured
	}
	return m.AddCommentFn(ctx, caller, meetingID, text)
}

func (m *MockMeetingService) EditComment(ctx context.Context, caller, meetingID, commentID uuid.UUID, text string) (domain.MeetingComment, error) {
	if m.EditCommentFn == nil {
		return domain.MeetingComment{}, errNotConfigured
	}
	return m.EditCommentFn(ctx, caller, meetingID, commentID, text)
}

func (m *MockMeetingService) DeleteComment(ctx context.Context, caller, meetingID, commentID uuid.UUID) error {
	if m.DeleteCommentFn == nil {
		return errNotConfigured
	}
	return m.DeleteCommentFn(ctx, caller, meetingID, commentID)
}

func (m *MockMeetingService) AddTag(ctx context.Context, caller, meetingID uuid.UUID, text string) (domain.MeetingTag, error) {
	if m.AddTagFn == nil {
		return domain.MeetingTag{}, errNotConfigured
	}
	return m.AddTagFn(ctx, caller, meetingID, text)
}

func (m *MockMeetingService) RemoveTag(ctx context.Context, caller, meetingID, tagID uuid.UUID) error {
	if m.RemoveTagFn == nil {
		return errNotConfigured
	}
	return m.RemoveTagFn(ctx, caller, meetingID, tagID)
}

func (m *MockMeetingService) ChangeStatus(ctx context.Context, caller, id uuid.UUID, action domain.StatusAction) (*domain.Meeting, error) {
	if m.ChangeStatusFn == nil {
		return nil, errNotConfigured
	}
	return m.ChangeStatusFn(ctx, caller, id, action)
}

func (m *MockMeetingService) DeleteMeeting(ctx context.Context, caller, id uuid.UUID) error {
	if m.DeleteMeetingFn == nil {
		return errNotConfigured
	}
	return m.DeleteMeetingFn(ctx, caller, id)
}
