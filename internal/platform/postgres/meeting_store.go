package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/spotly/meeting-api/internal/domain"
	"github.com/spotly/meeting-api/internal/platform/logger"
	"github.com/spotly/meeting-api/internal/store"
)

const meetingColumns = `id, host_id, title, description, start_at, end_at,
	max_participants, is_private, status,
	location_country, location_region, location_city, location_street,
	location_house_number, location_apartment, location_latitude,
	location_longitude, location_provider_id, location_formatted`

const insertMeetingQuery = `
	INSERT INTO meetings (` + meetingColumns + `, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, NOW(), NOW())
`

const updateMeetingQuery = `
	UPDATE meetings
	SET title = $2, description = $3, start_at = $4, end_at = $5,
		max_participants = $6, is_private = $7, status = $8,
		location_country = $9, location_region = $10, location_city = $11,
		location_street = $12, location_house_number = $13,
		location_apartment = $14, location_latitude = $15,
		location_longitude = $16, location_provider_id = $17,
		location_formatted = $18, updated_at = NOW()
	WHERE id = $1
`

// PostgresMeetingStore implements store.MeetingStore. A meeting spans four
// tables; writes that touch children should run inside a transaction
// obtained through WithTx.
type PostgresMeetingStore struct {
	db     store.DBTX
	pool   *sql.DB
	logger *slog.Logger
}

var _ store.MeetingStore = (*PostgresMeetingStore)(nil)

// NewPostgresMeetingStore creates a store on the given pool. A nil logger
// means slog.Default().
func NewPostgresMeetingStore(db *sql.DB, logger *slog.Logger) *PostgresMeetingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMeetingStore{
		db:     db,
		pool:   db,
		logger: logger.With(slog.String("component", "meeting_store")),
	}
}

// WithTx implements store.MeetingStore.
func (s *PostgresMeetingStore) WithTx(tx *sql.Tx) store.MeetingStore {
	return &PostgresMeetingStore{db: tx, pool: s.pool, logger: s.logger}
}

// DB implements store.MeetingStore.
func (s *PostgresMeetingStore) DB() *sql.DB {
	return s.pool
}

// Create implements store.MeetingStore.
func (s *PostgresMeetingStore) Create(ctx context.Context, meeting *domain.Meeting) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	snap := meeting.Snapshot()

	args := append([]any{
		snap.ID, snap.HostID, snap.Title, snap.Description, snap.StartAt, snap.EndAt,
		snap.MaxParticipants, snap.IsPrivate, int(snap.Status),
	}, locationArgs(snap.Location)...)

	if _, err := s.db.ExecContext(ctx, insertMeetingQuery, args...); err != nil {
		err = MapError(err)
		log.Error("failed to insert meeting",
			slog.String("error", err.Error()),
			slog.String("meeting_id", snap.ID.String()))
		return store.NewStoreError("meeting", "create", "failed to insert meeting", err)
	}

	if err := s.insertChildren(ctx, snap); err != nil {
		log.Error("failed to insert meeting children",
			slog.String("error", err.Error()),
			slog.String("meeting_id", snap.ID.String()))
		return store.NewStoreError("meeting", "create", "failed to insert children", err)
	}

	log.Info("meeting created",
		slog.String("meeting_id", snap.ID.String()),
		slog.String("host_id", snap.HostID.String()))
	return nil
}

// GetByID implements store.MeetingStore.
func (s *PostgresMeetingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	return s.get(ctx, id, false)
}

// GetByIDForUpdate implements store.MeetingStore.
func (s *PostgresMeetingStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	return s.get(ctx, id, true)
}

func (s *PostgresMeetingStore) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Meeting, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	snap, err := scanMeeting(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("meeting not found", slog.String("meeting_id", id.String()))
			return nil, store.ErrMeetingNotFound
		}
		log.Error("failed to get meeting",
			slog.String("error", err.Error()),
			slog.String("meeting_id", id.String()))
		return nil, store.NewStoreError("meeting", "get", "failed to query meeting", MapError(err))
	}

	return s.restore(ctx, snap)
}

// Update implements store.MeetingStore.
func (s *PostgresMeetingStore) Update(ctx context.Context, meeting *domain.Meeting) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	snap := meeting.Snapshot()

	args := append([]any{
		snap.ID, snap.Title, snap.Description, snap.StartAt, snap.EndAt,
		snap.MaxParticipants, snap.IsPrivate, int(snap.Status),
	}, locationArgs(snap.Location)...)

	result, err := s.db.ExecContext(ctx, updateMeetingQuery, args...)
	if err != nil {
		err = MapError(err)
		log.Error("failed to update meeting",
			slog.String("error", err.Error()),
			slog.String("meeting_id", snap.ID.String()))
		return store.NewStoreError("meeting", "update", "failed to update meeting", err)
	}
	if err := CheckRowsAffected(result, store.ErrMeetingNotFound); err != nil {
		if !errors.Is(err, store.ErrMeetingNotFound) {
			log.Error("failed to check updated rows", slog.String("error", err.Error()))
		}
		return err
	}

	for _, table := range []string{"meeting_participants", "meeting_comments", "meeting_tags"} {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE meeting_id = $1`, snap.ID); err != nil {
			log.Error("failed to clear meeting children",
				slog.String("error", err.Error()),
				slog.String("table", table),
				slog.String("meeting_id", snap.ID.String()))
			return store.NewStoreError("meeting", "update", "failed to clear "+table, MapError(err))
		}
	}

	if err := s.insertChildren(ctx, snap); err != nil {
		log.Error("failed to insert meeting children",
			slog.String("error", err.Error()),
			slog.String("meeting_id", snap.ID.String()))
		return store.NewStoreError("meeting", "update", "failed to insert children", err)
	}

	log.Debug("meeting updated",
		slog.String("meeting_id", snap.ID.String()),
		slog.String("status", snap.Status.String()))
	return nil
}

// Delete implements store.MeetingStore.
func (s *PostgresMeetingStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete meeting",
			slog.String("error", err.Error()),
			slog.String("meeting_id", id.String()))
		return store.NewStoreError("meeting", "delete", "failed to delete meeting", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrMeetingNotFound); err != nil {
		return err
	}

	log.Info("meeting deleted", slog.String("meeting_id", id.String()))
	return nil
}

// List implements store.MeetingStore.
func (s *PostgresMeetingStore) List(ctx context.Context, filter store.MeetingFilter) ([]*domain.Meeting, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	query, args := buildListQuery(filter.Normalized())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list meetings", slog.String("error", err.Error()))
		return nil, store.NewStoreError("meeting", "list", "failed to query meetings", MapError(err))
	}

	var snaps []domain.MeetingSnapshot
	for rows.Next() {
		snap, err := scanMeeting(rows)
		if err != nil {
			_ = rows.Close()
			return nil, store.NewStoreError("meeting", "list", "failed to scan meeting", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, store.NewStoreError("meeting", "list", "failed to iterate meetings", err)
	}
	// Rows must be released before the child queries reuse a transaction's
	// connection.
	if err := rows.Close(); err != nil {
		return nil, store.NewStoreError("meeting", "list", "failed to close rows", err)
	}

	meetings := make([]*domain.Meeting, 0, len(snaps))
	for _, snap := range snaps {
		m, err := s.restore(ctx, snap)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}

	log.Debug("meetings listed", slog.Int("count", len(meetings)))
	return meetings, nil
}

func buildListQuery(filter store.MeetingFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "status = "+next(int(*filter.Status)))
	}
	if filter.HostID != nil {
		conditions = append(conditions, "host_id = "+next(*filter.HostID))
	}
	if filter.ParticipantID != nil {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM meeting_participants p WHERE p.meeting_id = meetings.id AND p.participant_id = "+
				next(*filter.ParticipantID)+")")
	}

	var b strings.Builder
	b.WriteString("SELECT " + meetingColumns + " FROM meetings")
	if len(conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY start_at, id")
	b.WriteString(" LIMIT " + next(filter.Limit))
	b.WriteString(" OFFSET " + next(filter.Offset))
	return b.String(), args
}

// restore loads the children of snap and rebuilds the aggregate.
func (s *PostgresMeetingStore) restore(ctx context.Context, snap domain.MeetingSnapshot) (*domain.Meeting, error) {
	if err := s.loadChildren(ctx, &snap); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load meeting children",
			slog.String("error", err.Error()),
			slog.String("meeting_id", snap.ID.String()))
		return nil, store.NewStoreError("meeting", "get", "failed to load children", MapError(err))
	}

	m, err := domain.RestoreMeeting(snap)
	if err != nil {
		return nil, store.NewStoreError("meeting", "get", "stored meeting is invalid",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}
	return m, nil
}

func (s *PostgresMeetingStore) loadChildren(ctx context.Context, snap *domain.MeetingSnapshot) error {
	var err error

	snap.Participants, err = collect(ctx, s.db,
		`SELECT participant_id FROM meeting_participants WHERE meeting_id = $1 ORDER BY position`,
		func(rows *sql.Rows) (uuid.UUID, error) {
			var id uuid.UUID
			return id, rows.Scan(&id)
		}, snap.ID)
	if err != nil {
		return err
	}

	snap.Comments, err = collect(ctx, s.db,
		`SELECT id, author_id, text, created_at, updated_at
		FROM meeting_comments WHERE meeting_id = $1 ORDER BY position`,
		func(rows *sql.Rows) (domain.CommentSnapshot, error) {
			c := domain.CommentSnapshot{MeetingID: snap.ID}
			return c, rows.Scan(&c.ID, &c.AuthorID, &c.Text, &c.CreatedAt, &c.UpdatedAt)
		}, snap.ID)
	if err != nil {
		return err
	}

	snap.Tags, err = collect(ctx, s.db,
		`SELECT id, text FROM meeting_tags WHERE meeting_id = $1 ORDER BY position`,
		func(rows *sql.Rows) (domain.TagSnapshot, error) {
			t := domain.TagSnapshot{MeetingID: snap.ID}
			return t, rows.Scan(&t.ID, &t.Text)
		}, snap.ID)
	return err
}

func (s *PostgresMeetingStore) insertChildren(ctx context.Context, snap domain.MeetingSnapshot) error {
	for i, p := range snap.Participants {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO meeting_participants (meeting_id, participant_id, position) VALUES ($1, $2, $3)`,
			snap.ID, p, i); err != nil {
			return MapError(err)
		}
	}
	for i, c := range snap.Comments {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO meeting_comments (id, meeting_id, author_id, text, position, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			c.ID, snap.ID, c.AuthorID, c.Text, i, c.CreatedAt, c.UpdatedAt); err != nil {
			return MapError(err)
		}
	}
	for i, t := range snap.Tags {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO meeting_tags (id, meeting_id, text, position) VALUES ($1, $2, $3, $4)`,
			t.ID, snap.ID, t.Text, i); err != nil {
			return MapError(err)
		}
	}
	return nil
}

// collect runs query and scans every row with scan.
func collect[T any](
	ctx context.Context,
	db store.DBTX,
	query string,
	scan func(*sql.Rows) (T, error),
	args ...any,
) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMeeting(row rowScanner) (domain.MeetingSnapshot, error) {
	var (
		snap                                      domain.MeetingSnapshot
		status                                    int
		country, region, city, street, house, apt sql.NullString
		providerID, formatted                     sql.NullString
		latitude, longitude                       sql.NullFloat64
	)

	err := row.Scan(
		&snap.ID, &snap.HostID, &snap.Title, &snap.Description, &snap.StartAt, &snap.EndAt,
		&snap.MaxParticipants, &snap.IsPrivate, &status,
		&country, &region, &city, &street, &house, &apt,
		&latitude, &longitude, &providerID, &formatted,
	)
	if err != nil {
		return domain.MeetingSnapshot{}, err
	}

	snap.Status = domain.MeetingStatus(status)
	if country.Valid {
		snap.Location = &domain.LocationParams{
			Country:     country.String,
			Region:      region.String,
			City:        city.String,
			Street:      street.String,
			HouseNumber: house.String,
			Apartment:   apt.String,
			Latitude:    latitude.Float64,
			Longitude:   longitude.Float64,
			ProviderID:  providerID.String,
		}
	}
	return snap, nil
}

// locationArgs returns the ten location column values in table order, all
// NULL when p is nil.
func locationArgs(p *domain.LocationParams) []any {
	if p == nil {
		return make([]any, 10)
	}
	return []any{
		p.Country, p.Region, p.City, p.Street, p.HouseNumber, p.Apartment,
		p.Latitude, p.Longitude, p.ProviderID,
		domain.FormatLocation(p.Country, p.Region, p.City, p.Street, p.HouseNumber, p.Apartment),
	}
}
