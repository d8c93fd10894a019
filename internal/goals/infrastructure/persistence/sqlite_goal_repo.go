// Package persistence contains the SQLite repository for the goals context.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/cadence/internal/goals/domain"
	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
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

// SQLiteGoalRepository implements domain.Repository using SQLite.
type SQLiteGoalRepository struct {
	db *sql.DB
}

// NewSQLiteGoalRepository creates a new SQLite goal repository.
func NewSQLiteGoalRepository(db *sql.DB) *SQLiteGoalRepository {
	return &SQLiteGoalRepository{db: db}
}

const goalColumns = `id, user_id, title, period_type, target_tasks, target_pomodoros, target_focus_minutes,
	current_tasks, current_pomodoros, current_focus_minutes, start_date, end_date, completed, completed_date,
	created_at, updated_at`

// Save inserts or updates a goal.
func (r *SQLiteGoalRepository) Save(ctx context.Context, g *domain.Goal) error {
	var completedDate any
	if g.CompletedDate() != nil {
		completedDate = g.CompletedDate().Format(dateLayout)
	}

	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			current_tasks = excluded.current_tasks,
			current_pomodoros = excluded.current_pomodoros,
			current_focus_minutes = excluded.current_focus_minutes,
			completed = excluded.completed,
			completed_date = excluded.completed_date,
			updated_at = excluded.updated_at`,
		g.ID().String(),
		g.UserID().String(),
		g.Title(),
		g.PeriodType().String(),
		g.TargetTasks(),
		g.TargetPomodoros(),
		g.TargetFocusMinutes(),
		g.CurrentTasks(),
		g.CurrentPomodoros(),
		g.CurrentFocusMinutes(),
		g.StartDate().Format(dateLayout),
		g.EndDate().Format(dateLayout),
		boolToInt(g.IsCompleted()),
		completedDate,
		g.CreatedAt().UTC().Format(time.RFC3339),
		g.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save goal: %w", err)
	}
	return nil
}

// FindByID retrieves a goal by its identifier.
func (r *SQLiteGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id.String())

	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGoalNotFound
	}
	return g, err
}

// FindByUser retrieves a user's goals, optionally only the active ones.
func (r *SQLiteGoalRepository) FindByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ?`
	if activeOnly {
		query += ` AND completed = 0`
	}
	query += ` ORDER BY created_at`

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

// CountCompleted counts a user's lifetime completed goals.
func (r *SQLiteGoalRepository) CountCompleted(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM goals WHERE user_id = ? AND completed = 1`,
		userID.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed goals: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var (
		id, userID, title, periodType                       string
		targetTasks, targetPomodoros, targetFocusMinutes    int
		currentTasks, currentPomodoros, currentFocusMinutes int
		startDate, endDate                                  string
		completed                                           int
		completedDate                                       sql.NullString
		createdAt, updatedAt                                string
	)

	if err := row.Scan(&id, &userID, &title, &periodType,
		&targetTasks, &targetPomodoros, &targetFocusMinutes,
		&currentTasks, &currentPomodoros, &currentFocusMinutes,
		&startDate, &endDate, &completed, &completedDate,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	goalID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid goal id: %w", err)
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	period, err := domain.ParsePeriodType(periodType)
	if err != nil {
		return nil, err
	}

	created, _ := time.Parse(time.RFC3339, createdAt)
	updated, _ := time.Parse(time.RFC3339, updatedAt)
	start, _ := time.Parse(dateLayout, startDate)
	end, _ := time.Parse(dateLayout, endDate)

	var completedAt *time.Time
	if completedDate.Valid {
		t, _ := time.Parse(dateLayout, completedDate.String)
		completedAt = &t
	}

	base := sharedDomain.RehydrateBaseEntity(goalID, created, updated)
	return domain.RehydrateGoal(base, ownerID, title, period,
		targetTasks, targetPomodoros, targetFocusMinutes,
		currentTasks, currentPomodoros, currentFocusMinutes,
		start, end, completed != 0, completedAt), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
