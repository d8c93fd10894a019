package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// SQLiteSessionRepository implements domain.SessionRepository using SQLite.
type SQLiteSessionRepository struct {
	db *sql.DB
}

// NewSQLiteSessionRepository creates a new SQLite focus session repository.
func NewSQLiteSessionRepository(db *sql.DB) *SQLiteSessionRepository {
	return &SQLiteSessionRepository{db: db}
}

const sessionColumns = `id, user_id, session_type, planned_minutes, actual_minutes, completed, started_at, ended_at, created_at, updated_at`

// Save inserts or updates a focus session.
func (r *SQLiteSessionRepository) Save(ctx context.Context, s *domain.FocusSession) error {
	var endedAt any
	if s.EndedAt() != nil {
		endedAt = s.EndedAt().UTC().Format(time.RFC3339)
	}

	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO focus_sessions (id, user_id, session_type, planned_minutes, actual_minutes, completed, started_at, ended_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			actual_minutes = excluded.actual_minutes,
			completed = excluded.completed,
			ended_at = excluded.ended_at,
			updated_at = excluded.updated_at`,
		s.ID().String(),
		s.UserID().String(),
		s.Type().String(),
		s.PlannedMinutes(),
		s.ActualMinutes(),
		boolToInt(s.Completed()),
		s.StartedAt().UTC().Format(time.RFC3339),
		endedAt,
		s.CreatedAt().UTC().Format(time.RFC3339),
		s.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save focus session: %w", err)
	}
	return nil
}

// FindByID retrieves a session by its identifier.
func (r *SQLiteSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FocusSession, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE id = ?`, id.String())

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	return s, err
}

// FindActive retrieves the most recent session that has not ended.
func (r *SQLiteSessionRepository) FindActive(ctx context.Context, userID uuid.UUID) (*domain.FocusSession, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions
		 WHERE user_id = ? AND ended_at IS NULL
		 ORDER BY started_at DESC LIMIT 1`, userID.String())

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	return s, err
}

// ListInRange retrieves sessions started within [start, end).
func (r *SQLiteSessionRepository) ListInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.FocusSession, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions
		 WHERE user_id = ? AND started_at >= ? AND started_at < ?
		 ORDER BY started_at`,
		userID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to list focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.FocusSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func scanSession(row rowScanner) (*domain.FocusSession, error) {
	var (
		id, userID, sessionType         string
		plannedMinutes, actualMinutes   int
		completed                       int
		startedAt, createdAt, updatedAt string
		endedAt                         sql.NullString
	)

	if err := row.Scan(&id, &userID, &sessionType, &plannedMinutes, &actualMinutes,
		&completed, &startedAt, &endedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	created, _ := time.Parse(time.RFC3339, createdAt)
	updated, _ := time.Parse(time.RFC3339, updatedAt)
	started, _ := time.Parse(time.RFC3339, startedAt)

	var ended *time.Time
	if endedAt.Valid {
		t, _ := time.Parse(time.RFC3339, endedAt.String)
		ended = &t
	}

	base := sharedDomain.RehydrateBaseEntity(sessionID, created, updated)
	return domain.RehydrateFocusSession(base, ownerID, domain.ParseSessionType(sessionType),
		plannedMinutes, actualMinutes, completed != 0, started, ended), nil
}
