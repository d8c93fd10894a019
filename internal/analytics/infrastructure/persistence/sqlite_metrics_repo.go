// Package persistence contains the SQLite and Postgres repositories for the
// analytics context.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

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

// SQLiteMetricsRepository implements domain.MetricsRepository using SQLite.
type SQLiteMetricsRepository struct {
	db *sql.DB
}

// NewSQLiteMetricsRepository creates a new SQLite metrics repository.
func NewSQLiteMetricsRepository(db *sql.DB) *SQLiteMetricsRepository {
	return &SQLiteMetricsRepository{db: db}
}

const metricsColumns = `id, user_id, metrics_date, tasks_created, tasks_completed, tasks_completed_same_day,
	pomodoros_completed, focus_minutes, break_minutes, interrupted_sessions, late_night_sessions, overwork_minutes,
	consecutive_work_days, urgent_important, urgent_not_important, not_urgent_important, not_urgent_not_important,
	completion_rate, productivity_score, focus_score, burnout_risk_score, computed_at, created_at, updated_at`

// Save inserts or updates the metrics row for the (user, date) pair.
func (r *SQLiteMetricsRepository) Save(ctx context.Context, m *domain.DailyMetrics) error {
	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO daily_metrics (`+metricsColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, metrics_date) DO UPDATE SET
			tasks_created = excluded.tasks_created,
			tasks_completed = excluded.tasks_completed,
			tasks_completed_same_day = excluded.tasks_completed_same_day,
			pomodoros_completed = excluded.pomodoros_completed,
			focus_minutes = excluded.focus_minutes,
			break_minutes = excluded.break_minutes,
			interrupted_sessions = excluded.interrupted_sessions,
			late_night_sessions = excluded.late_night_sessions,
			overwork_minutes = excluded.overwork_minutes,
			consecutive_work_days = excluded.consecutive_work_days,
			urgent_important = excluded.urgent_important,
			urgent_not_important = excluded.urgent_not_important,
			not_urgent_important = excluded.not_urgent_important,
			not_urgent_not_important = excluded.not_urgent_not_important,
			completion_rate = excluded.completion_rate,
			productivity_score = excluded.productivity_score,
			focus_score = excluded.focus_score,
			burnout_risk_score = excluded.burnout_risk_score,
			computed_at = excluded.computed_at,
			updated_at = excluded.updated_at`,
		m.ID.String(),
		m.UserID.String(),
		m.Date.Format(dateLayout),
		m.TasksCreated,
		m.TasksCompleted,
		m.TasksCompletedSameDay,
		m.PomodorosCompleted,
		m.FocusMinutes,
		m.BreakMinutes,
		m.InterruptedSessions,
		m.LateNightSessions,
		m.OverworkMinutes,
		m.ConsecutiveWorkDays,
		m.Quadrants.UrgentImportant,
		m.Quadrants.UrgentNotImportant,
		m.Quadrants.NotUrgentImportant,
		m.Quadrants.NotUrgentNotImportant,
		m.CompletionRate,
		m.ProductivityScore,
		m.FocusScore,
		m.BurnoutRiskScore,
		m.ComputedAt.UTC().Format(time.RFC3339),
		m.CreatedAt.UTC().Format(time.RFC3339),
		m.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save daily metrics: %w", err)
	}
	return nil
}

// FindByDate retrieves the metrics row for one user and day.
func (r *SQLiteMetricsRepository) FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyMetrics, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+metricsColumns+` FROM daily_metrics WHERE user_id = ? AND metrics_date = ?`,
		userID.String(),
		domain.NormalizeDate(date).Format(dateLayout))

	m, err := scanMetrics(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMetricsNotFound
	}
	return m, err
}

// FindRange retrieves the metrics rows in [start, end], ordered by date.
func (r *SQLiteMetricsRepository) FindRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.DailyMetrics, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT `+metricsColumns+` FROM daily_metrics
		 WHERE user_id = ? AND metrics_date >= ? AND metrics_date <= ?
		 ORDER BY metrics_date`,
		userID.String(),
		domain.NormalizeDate(start).Format(dateLayout),
		domain.NormalizeDate(end).Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*domain.DailyMetrics
	for rows.Next() {
		m, err := scanMetrics(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return metrics, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetrics(row rowScanner) (*domain.DailyMetrics, error) {
	var (
		m                                domain.DailyMetrics
		id, userID, date                 string
		computedAt, createdAt, updatedAt string
	)

	if err := row.Scan(&id, &userID, &date,
		&m.TasksCreated, &m.TasksCompleted, &m.TasksCompletedSameDay,
		&m.PomodorosCompleted, &m.FocusMinutes, &m.BreakMinutes,
		&m.InterruptedSessions, &m.LateNightSessions, &m.OverworkMinutes,
		&m.ConsecutiveWorkDays,
		&m.Quadrants.UrgentImportant, &m.Quadrants.UrgentNotImportant,
		&m.Quadrants.NotUrgentImportant, &m.Quadrants.NotUrgentNotImportant,
		&m.CompletionRate, &m.ProductivityScore, &m.FocusScore, &m.BurnoutRiskScore,
		&computedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	metricsID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid metrics id: %w", err)
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	m.ID = metricsID
	m.UserID = ownerID
	m.Date, _ = time.Parse(dateLayout, date)
	m.ComputedAt, _ = time.Parse(time.RFC3339, computedAt)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &m, nil
}
