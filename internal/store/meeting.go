package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/domain"
)

// List paging bounds.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// MeetingFilter narrows MeetingStore.List. Nil fields match everything.
type MeetingFilter struct {
	Status        *domain.MeetingStatus
	HostID        *uuid.UUID
	ParticipantID *uuid.UUID
	Limit         int
	Offset        int
}

// Normalized clamps Limit into [1, MaxListLimit], using DefaultListLimit for
// zero or negative values, and floors Offset at zero.
func (f MeetingFilter) Normalized() MeetingFilter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultListLimit
	case f.Limit > MaxListLimit:
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// MeetingStore persists Meeting aggregates together with their
// participants, comments and tags.
type MeetingStore interface {
	// Create inserts a new meeting and all of its children.
	// Returns ErrDuplicate if a meeting with the same id exists.
	Create(ctx context.Context, meeting *domain.Meeting) error

	// GetByID loads a meeting with its children.
	// Returns ErrMeetingNotFound if the meeting does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)

	// GetByIDForUpdate behaves like GetByID but also locks the meeting row
	// until the surrounding transaction ends. Use it through WithTx.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)

	// Update saves the meeting's fields and replaces its children.
	// Returns ErrMeetingNotFound if the meeting does not exist.
	Update(ctx context.Context, meeting *domain.Meeting) error

	// Delete removes the meeting and, by cascade, its children.
	// Returns ErrMeetingNotFound if the meeting does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns meetings matching filter ordered by start date, then id.
	List(ctx context.Context, filter MeetingFilter) ([]*domain.Meeting, error)

	// WithTx returns a MeetingStore bound to tx.
	WithTx(tx *sql.Tx) MeetingStore

	// DB returns the underlying connection pool, for starting transactions.
	DB() *sql.DB
}
