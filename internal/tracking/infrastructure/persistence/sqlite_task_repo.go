// Package persistence contains the SQLite repositories for the tracking context.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/cadence/internal/shared/domain"
	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
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

// SQLiteTaskRepository implements domain.TaskRepository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

const taskColumns = `id, user_id, title, description, status, urgent, important, status_changed_at, completed_at, created_at, updated_at`

// Save inserts or updates a task.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t *domain.Task) error {
	var completedAt any
	if t.CompletedAt() != nil {
		completedAt = t.CompletedAt().UTC().Format(time.RFC3339)
	}

	_, err := querier(ctx, r.db).ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, title, description, status, urgent, important, status_changed_at, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			urgent = excluded.urgent,
			important = excluded.important,
			status_changed_at = excluded.status_changed_at,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at`,
		t.ID().String(),
		t.UserID().String(),
		t.Title(),
		t.Description(),
		t.Status().String(),
		boolToInt(t.Urgent()),
		boolToInt(t.Important()),
		t.StatusChangedAt().UTC().Format(time.RFC3339),
		completedAt,
		t.CreatedAt().UTC().Format(time.RFC3339),
		t.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its identifier.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	return t, err
}

// ListByUser retrieves all non-archived tasks for a user.
func (r *SQLiteTaskRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND status != 'archived' ORDER BY created_at`,
		userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListCompletedInRange retrieves tasks completed within [start, end).
func (r *SQLiteTaskRepository) ListCompletedInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = ? AND completed_at IS NOT NULL AND completed_at >= ? AND completed_at < ?
		 ORDER BY completed_at`,
		userID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		id, userID, title, description, status string
		urgent, important                      int
		statusChangedAt, createdAt, updatedAt  string
		completedAt                            sql.NullString
	)

	if err := row.Scan(&id, &userID, &title, &description, &status, &urgent, &important,
		&statusChangedAt, &completedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	created, _ := time.Parse(time.RFC3339, createdAt)
	updated, _ := time.Parse(time.RFC3339, updatedAt)
	statusChanged, _ := time.Parse(time.RFC3339, statusChangedAt)

	var completed *time.Time
	if completedAt.Valid {
		t, _ := time.Parse(time.RFC3339, completedAt.String)
		completed = &t
	}

	base := sharedDomain.RehydrateBaseEntity(taskID, created, updated)
	return domain.RehydrateTask(base, ownerID, title, description,
		domain.ParseTaskStatus(status), urgent != 0, important != 0,
		statusChanged, completed), nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
