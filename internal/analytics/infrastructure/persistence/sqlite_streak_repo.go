package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
)

// SQLiteStreakRepository implements domain.StreakRepository on top of the
// users table.
type SQLiteStreakRepository struct {
	db *sql.DB
}

// NewSQLiteStreakRepository creates a new SQLite streak repository.
func NewSQLiteStreakRepository(db *sql.DB) *SQLiteStreakRepository {
	return &SQLiteStreakRepository{db: db}
}

// Get retrieves the streak state for a user. Unknown users get a zero state
// so the first productive day starts the streak.
func (r *SQLiteStreakRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.StreakState, error) {
	var (
		state        domain.StreakState
		lastActivity sql.NullString
	)

	err := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT current_streak, longest_streak, last_activity_date FROM users WHERE id = ?`,
		userID.String()).Scan(&state.Current, &state.Longest, &lastActivity)
	if err == sql.ErrNoRows {
		return &domain.StreakState{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}

	if lastActivity.Valid {
		t, err := time.Parse(dateLayout, lastActivity.String)
		if err != nil {
			return nil, fmt.Errorf("invalid last activity date: %w", err)
		}
		state.LastActivityDate = &t
	}

	return &state, nil
}

// Save persists the streak state, creating the user row if needed.
func (r *SQLiteStreakRepository) Save(ctx context.Context, userID uuid.UUID, state *domain.StreakState) error {
	var lastActivity any
	if state.LastActivityDate != nil {
		lastActivity = state.LastActivityDate.Format(dateLayout)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	q := querier(ctx, r.db)

	if _, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (id, created_at, updated_at) VALUES (?, ?, ?)`,
		userID.String(), now, now); err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}

	if _, err := q.ExecContext(ctx,
		`UPDATE users SET current_streak = ?, longest_streak = ?, last_activity_date = ?, updated_at = ? WHERE id = ?`,
		state.Current, state.Longest, lastActivity, now, userID.String()); err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	return nil
}

// ListUserIDs returns all known user identifiers for batch processing.
func (r *SQLiteStreakRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
