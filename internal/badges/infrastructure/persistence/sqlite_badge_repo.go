// Package persistence contains the SQLite repositories for the badges
// context.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/badges/domain"
	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

type sqliteQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func querier(ctx context.Context, db *sql.DB) sqliteQuerier {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return db
}

// SQLiteBadgeRepository implements domain.Repository using SQLite. The
// unique (user_id, badge_type) constraint makes awarding idempotent.
type SQLiteBadgeRepository struct {
	db *sql.DB
}

// NewSQLiteBadgeRepository creates a new SQLite badge repository.
func NewSQLiteBadgeRepository(db *sql.DB) *SQLiteBadgeRepository {
	return &SQLiteBadgeRepository{db: db}
}

// Save stores an award record. Duplicate awards are silently ignored.
func (r *SQLiteBadgeRepository) Save(ctx context.Context, b *domain.Badge) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT OR IGNORE INTO badges (id, user_id, badge_type, awarded_at)
		VALUES (?, ?, ?, ?)`,
		b.ID.String(),
		b.UserID.String(),
		b.BadgeType,
		b.AwardedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save badge: %w", err)
	}
	return nil
}

// Exists reports whether the user already holds the badge.
func (r *SQLiteBadgeRepository) Exists(ctx context.Context, userID uuid.UUID, badgeType string) (bool, error) {
	var count int
	err := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM badges WHERE user_id = ? AND badge_type = ?`,
		userID.String(), badgeType).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check badge: %w", err)
	}
	return count > 0, nil
}

// ListByUser retrieves all badges awarded to a user.
func (r *SQLiteBadgeRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT id, user_id, badge_type, awarded_at FROM badges WHERE user_id = ? ORDER BY awarded_at`,
		userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*domain.Badge
	for rows.Next() {
		var (
			id, owner, badgeType, awardedAt string
		)
		if err := rows.Scan(&id, &owner, &badgeType, &awardedAt); err != nil {
			return nil, err
		}

		badgeID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid badge id: %w", err)
		}
		ownerID, err := uuid.Parse(owner)
		if err != nil {
			return nil, fmt.Errorf("invalid user id: %w", err)
		}
		awarded, _ := time.Parse(time.RFC3339, awardedAt)

		badges = append(badges, &domain.Badge{
			ID:        badgeID,
			UserID:    ownerID,
			BadgeType: badgeType,
			AwardedAt: awarded,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return badges, nil
}

// SQLiteProgressSource implements domain.ProgressSource with count queries
// over the tracking and goals tables.
type SQLiteProgressSource struct {
	db *sql.DB
}

// NewSQLiteProgressSource creates a new SQLite progress source.
func NewSQLiteProgressSource(db *sql.DB) *SQLiteProgressSource {
	return &SQLiteProgressSource{db: db}
}

func (s *SQLiteProgressSource) count(ctx context.Context, query string, userID uuid.UUID) (int, error) {
	var count int
	if err := querier(ctx, s.db).QueryRowContext(ctx, query, userID.String()).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count progress: %w", err)
	}
	return count, nil
}

// CountCompletedTasks counts the user's lifetime completed tasks.
func (s *SQLiteProgressSource) CountCompletedTasks(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = ? AND status = 'completed'`, userID)
}

// CountCompletedWorkSessions counts the user's lifetime completed work
// sessions.
func (s *SQLiteProgressSource) CountCompletedWorkSessions(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM focus_sessions WHERE user_id = ? AND session_type = 'work' AND completed = 1`, userID)
}

// CountCompletedGoals counts the user's lifetime completed goals.
func (s *SQLiteProgressSource) CountCompletedGoals(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM goals WHERE user_id = ? AND completed = 1`, userID)
}
