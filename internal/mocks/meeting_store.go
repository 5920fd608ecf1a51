package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/store"
)

// MockMeetingStore implements store.MeetingStore for testing.
//
// The default implementation keeps snapshots in memory, so a meeting
// returned by GetByID is a fresh copy and changes to it are only visible
// after Update. WithTx returns the same mock.
type MockMeetingStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, meeting *domain.Meeting) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	GetByIDForUpdateFn func(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	UpdateFn           func(ctx context.Context, meeting *domain.Meeting) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error
	ListFn             func(ctx context.Context, filter store.MeetingFilter) ([]*domain.Meeting, error)

	// Data for default implementation
	Conn        *sql.DB
	UpdateCalls int
	LockedIDs   []uuid.UUID

	mu       sync.Mutex
	meetings map[uuid.UUID]domain.MeetingSnapshot
}

var _ store.MeetingStore = (*MockMeetingStore)(nil)

// NewMockMeetingStore creates a mock store whose DB returns conn.
func NewMockMeetingStore(conn *sql.DB) *MockMeetingStore {
	return &MockMeetingStore{
		Conn:     conn,
		meetings: make(map[uuid.UUID]domain.MeetingSnapshot),
	}
}

// Seed stores meetings directly, bypassing CreateFn.
func (m *MockMeetingStore) Seed(meetings ...*domain.Meeting) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, meeting := range meetings {
		m.meetings[meeting.ID().UUID()] = meeting.Snapshot()
	}
}

// Stored returns a copy of the stored meeting, or nil if absent.
func (m *MockMeetingStore) Stored(id uuid.UUID) *domain.Meeting {
	meeting, err := m.load(id)
	if err != nil {
		return nil
	}
	return meeting
}

// Create implements store.MeetingStore
func (m *MockMeetingStore) Create(ctx context.Context, meeting *domain.Meeting) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, meeting)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.meetings[meeting.ID().UUID()]; exists {
		return store.ErrDuplicate
	}
	m.meetings[meeting.ID().UUID()] = meeting.Snapshot()
	return nil
}

// GetByID implements store.MeetingStore
func (m *MockMeetingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.load(id)
}

// GetByIDForUpdate implements store.MeetingStore. It records the locked id.
func (m *MockMeetingStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	m.mu.Lock()
	m.LockedIDs = append(m.LockedIDs, id)
	m.mu.Unlock()

	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.load(id)
}

// Update implements store.MeetingStore
func (m *MockMeetingStore) Update(ctx context.Context, meeting *domain.Meeting) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, meeting)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.meetings[meeting.ID().UUID()]; !exists {
		return store.ErrMeetingNotFound
	}
	m.meetings[meeting.ID().UUID()] = meeting.Snapshot()
	return nil
}

// Delete implements store.MeetingStore
func (m *MockMeetingStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.meetings[id]; !exists {
		return store.ErrMeetingNotFound
	}
	delete(m.meetings, id)
	return nil
}

// List implements store.MeetingStore. The default filters by status, host
// and participant, and orders by start date, then id.
func (m *MockMeetingStore) List(ctx context.Context, filter store.MeetingFilter) ([]*domain.Meeting, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	filter = filter.Normalized()

	m.mu.Lock()
	snapshots := make([]domain.MeetingSnapshot, 0, len(m.meetings))
	for _, s := range m.meetings {
		if matches(s, filter) {
			snapshots = append(snapshots, s)
		}
	}
	m.mu.Unlock()

	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].StartAt.Equal(snapshots[j].StartAt) {
			return snapshots[i].StartAt.Before(snapshots[j].StartAt)
		}
		return snapshots[i].ID.String() < snapshots[j].ID.String()
	})

	if filter.Offset >= len(snapshots) {
		return []*domain.Meeting{}, nil
	}
	snapshots = snapshots[filter.Offset:]
	if len(snapshots) > filter.Limit {
		snapshots = snapshots[:filter.Limit]
	}

	result := make([]*domain.Meeting, 0, len(snapshots))
	for _, s := range snapshots {
		meeting, err := domain.RestoreMeeting(s)
		if err != nil {
			return nil, err
		}
		result = append(result, meeting)
	}
	return result, nil
}

// WithTx implements store.MeetingStore
func (m *MockMeetingStore) WithTx(tx *sql.Tx) store.MeetingStore {
	return m
}

// DB implements store.MeetingStore
func (m *MockMeetingStore) DB() *sql.DB {
	return m.Conn
}

func (m *MockMeetingStore) load(id uuid.UUID) (*domain.Meeting, error) {
	m.mu.Lock()
	s, exists := m.meetings[id]
	m.mu.Unlock()
	if !exists {
		return nil, store.ErrMeetingNotFound
	}
	return domain.RestoreMeeting(s)
}

func matches(s domain.MeetingSnapshot, filter store.MeetingFilter) bool {
	if filter.Status != nil && s.Status != *filter.Status {
		return false
	}
	if filter.HostID != nil && s.HostID != *filter.HostID {
		return false
	}
	if filter.ParticipantID != nil {
		for _, p := range s.Participants {
			if p == *filter.ParticipantID {
				return true
			}
		}
		return false
	}
	return true
}
