package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
)

// lateNightHour is the local hour from which a session start counts as
// late-night work.
const lateNightHour = 22

// SQLiteActivitySource implements domain.ActivitySource with aggregate
// queries over the tracking tables.
type SQLiteActivitySource struct {
	db *sql.DB
}

// NewSQLiteActivitySource creates a new SQLite activity source.
func NewSQLiteActivitySource(db *sql.DB) *SQLiteActivitySource {
	return &SQLiteActivitySource{db: db}
}

func dayBounds(date time.Time) (string, string) {
	start := domain.NormalizeDate(date)
	end := start.AddDate(0, 0, 1)
	return start.Format(time.RFC3339), end.Format(time.RFC3339)
}

// GetTaskStats aggregates task counts for one user and day.
func (s *SQLiteActivitySource) GetTaskStats(ctx context.Context, userID uuid.UUID, date time.Time) (domain.TaskStats, error) {
	start, end := dayBounds(date)

	var stats domain.TaskStats
	err := querier(ctx, s.db).QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN created_at >= ? AND created_at < ? THEN 1 END),
			COUNT(CASE WHEN completed_at >= ? AND completed_at < ? THEN 1 END),
			COUNT(CASE WHEN completed_at >= ? AND completed_at < ?
			            AND created_at >= ? AND created_at < ? THEN 1 END)
		FROM tasks WHERE user_id = ?`,
		start, end, start, end, start, end, start, end,
		userID.String(),
	).Scan(&stats.Created, &stats.Completed, &stats.CompletedSameDay)
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("failed to get task stats: %w", err)
	}
	return stats, nil
}

// GetSessionStats aggregates focus session counts for one user and day.
// Only completed sessions contribute minutes; a session's minutes are its
// actual duration, falling back to the plan when none was recorded.
func (s *SQLiteActivitySource) GetSessionStats(ctx context.Context, userID uuid.UUID, date time.Time) (domain.SessionStats, error) {
	start, end := dayBounds(date)

	var stats domain.SessionStats
	err := querier(ctx, s.db).QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN session_type = 'work' AND completed = 1
				THEN CASE WHEN actual_minutes > 0 THEN actual_minutes ELSE planned_minutes END
				ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN session_type = 'break' AND completed = 1
				THEN CASE WHEN actual_minutes > 0 THEN actual_minutes ELSE planned_minutes END
				ELSE 0 END), 0),
			COUNT(CASE WHEN session_type = 'work' AND completed = 1 THEN 1 END),
			COUNT(CASE WHEN session_type = 'work' AND ended_at IS NOT NULL AND completed = 0 THEN 1 END),
			COUNT(CASE WHEN CAST(strftime('%H', started_at) AS INTEGER) >= ? THEN 1 END)
		FROM focus_sessions
		WHERE user_id = ? AND started_at >= ? AND started_at < ?`,
		lateNightHour,
		userID.String(), start, end,
	).Scan(&stats.FocusMinutes, &stats.BreakMinutes, &stats.PomodorosCompleted,
		&stats.InterruptedSessions, &stats.LateNightSessions)
	if err != nil {
		return domain.SessionStats{}, fmt.Errorf("failed to get session stats: %w", err)
	}
	return stats, nil
}

// GetQuadrantCounts buckets the user's open tasks by urgency and importance.
func (s *SQLiteActivitySource) GetQuadrantCounts(ctx context.Context, userID uuid.UUID) (domain.EisenhowerDistribution, error) {
	var dist domain.EisenhowerDistribution
	err := querier(ctx, s.db).QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN urgent = 1 AND important = 1 THEN 1 END),
			COUNT(CASE WHEN urgent = 1 AND important = 0 THEN 1 END),
			COUNT(CASE WHEN urgent = 0 AND important = 1 THEN 1 END),
			COUNT(CASE WHEN urgent = 0 AND important = 0 THEN 1 END)
		FROM tasks
		WHERE user_id = ? AND status NOT IN ('completed', 'archived')`,
		userID.String(),
	).Scan(&dist.UrgentImportant, &dist.UrgentNotImportant,
		&dist.NotUrgentImportant, &dist.NotUrgentNotImportant)
	if err != nil {
		return domain.EisenhowerDistribution{}, fmt.Errorf("failed to get quadrant counts: %w", err)
	}
	return dist, nil
}
