package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMetricsRepository implements domain.MetricsRepository using
// PostgreSQL.
type PostgresMetricsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMetricsRepository creates a new PostgreSQL metrics repository.
func NewPostgresMetricsRepository(pool *pgxpool.Pool) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{pool: pool}
}

var _ domain.MetricsRepository = (*PostgresMetricsRepository)(nil)

const pgMetricsColumns = `id, user_id, metrics_date, tasks_created, tasks_completed, tasks_completed_same_day,
	pomodoros_completed, focus_minutes, break_minutes, interrupted_sessions, late_night_sessions, overwork_minutes,
	consecutive_work_days, urgent_important, urgent_not_important, not_urgent_important, not_urgent_not_important,
	completion_rate, productivity_score, focus_score, burnout_risk_score, computed_at, created_at, updated_at`

// Save inserts or updates the metrics row for the (user, date) pair.
func (r *PostgresMetricsRepository) Save(ctx context.Context, m *domain.DailyMetrics) error {
	query := `
		INSERT INTO daily_metrics (` + pgMetricsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (user_id, metrics_date) DO UPDATE SET
			tasks_created = EXCLUDED.tasks_created,
			tasks_completed = EXCLUDED.tasks_completed,
			tasks_completed_same_day = EXCLUDED.tasks_completed_same_day,
			pomodoros_completed = EXCLUDED.pomodoros_completed,
			focus_minutes = EXCLUDED.focus_minutes,
			break_minutes = EXCLUDED.break_minutes,
			interrupted_sessions = EXCLUDED.interrupted_sessions,
			late_night_sessions = EXCLUDED.late_night_sessions,
			overwork_minutes = EXCLUDED.overwork_minutes,
			consecutive_work_days = EXCLUDED.consecutive_work_days,
			urgent_important = EXCLUDED.urgent_important,
			urgent_not_important = EXCLUDED.urgent_not_important,
			not_urgent_important = EXCLUDED.not_urgent_important,
			not_urgent_not_important = EXCLUDED.not_urgent_not_important,
			completion_rate = EXCLUDED.completion_rate,
			productivity_score = EXCLUDED.productivity_score,
			focus_score = EXCLUDED.focus_score,
			burnout_risk_score = EXCLUDED.burnout_risk_score,
			computed_at = EXCLUDED.computed_at,
			updated_at = EXCLUDED.updated_at`

	execer := sharedPersistence.Executor(ctx, r.pool)
	_, err := execer.Exec(ctx, query,
		m.ID,
		m.UserID,
		m.Date,
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
		m.ComputedAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save daily metrics: %w", err)
	}
	return nil
}

// FindByDate retrieves the metrics row for one user and day.
func (r *PostgresMetricsRepository) FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyMetrics, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	row := execer.QueryRow(ctx,
		`SELECT `+pgMetricsColumns+` FROM daily_metrics WHERE user_id = $1 AND metrics_date = $2`,
		userID, domain.NormalizeDate(date))

	m, err := scanPgMetrics(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMetricsNotFound
	}
	return m, err
}

// FindRange retrieves the metrics rows in [start, end], ordered by date.
func (r *PostgresMetricsRepository) FindRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.DailyMetrics, error) {
	execer := sharedPersistence.Executor(ctx, r.pool)
	rows, err := execer.Query(ctx,
		`SELECT `+pgMetricsColumns+` FROM daily_metrics
		 WHERE user_id = $1 AND metrics_date >= $2 AND metrics_date <= $3
		 ORDER BY metrics_date`,
		userID, domain.NormalizeDate(start), domain.NormalizeDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query daily metrics: %w", err)
	}
	defer rows.Close()

	var metrics []*domain.DailyMetrics
	for rows.Next() {
		m, err := scanPgMetrics(rows)
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

func scanPgMetrics(row pgx.Row) (*domain.DailyMetrics, error) {
	var m domain.DailyMetrics

	if err := row.Scan(&m.ID, &m.UserID, &m.Date,
		&m.TasksCreated, &m.TasksCompleted, &m.TasksCompletedSameDay,
		&m.PomodorosCompleted, &m.FocusMinutes, &m.BreakMinutes,
		&m.InterruptedSessions, &m.LateNightSessions, &m.OverworkMinutes,
		&m.ConsecutiveWorkDays,
		&m.Quadrants.UrgentImportant, &m.Quadrants.UrgentNotImportant,
		&m.Quadrants.NotUrgentImportant, &m.Quadrants.NotUrgentNotImportant,
		&m.CompletionRate, &m.ProductivityScore, &m.FocusScore, &m.BurnoutRiskScore,
		&m.ComputedAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}

	m.Date = domain.NormalizeDate(m.Date)
	return &m, nil
}
