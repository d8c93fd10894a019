package persistence_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/felixgeelhaar/cadence/internal/tracking/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sqlite.OpenInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(context.Background(), db))
	return db
}

func TestSQLiteTaskRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := persistence.NewSQLiteTaskRepository(db)
	userID := uuid.New()

	t.Run("save and find by id", func(t *testing.T) {
		task, err := domain.NewTask(userID, "Write report", true, true)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, task))

		found, err := repo.FindByID(ctx, task.ID())
		require.NoError(t, err)
		assert.Equal(t, task.ID(), found.ID())
		assert.Equal(t, "Write report", found.Title())
		assert.True(t, found.Urgent())
		assert.True(t, found.Important())
		assert.Equal(t, domain.TaskStatusPending, found.Status())
	})

	t.Run("save is an upsert", func(t *testing.T) {
		task, _ := domain.NewTask(userID, "Review PR", false, true)
		require.NoError(t, repo.Save(ctx, task))

		require.NoError(t, task.Complete())
		require.NoError(t, repo.Save(ctx, task))

		found, err := repo.FindByID(ctx, task.ID())
		require.NoError(t, err)
		assert.True(t, found.IsCompleted())
		require.NotNil(t, found.CompletedAt())
	})

	t.Run("find missing task", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("list completed in range", func(t *testing.T) {
		otherUser := uuid.New()

		done, _ := domain.NewTask(otherUser, "Done today", false, false)
		require.NoError(t, done.Complete())
		require.NoError(t, repo.Save(ctx, done))

		open, _ := domain.NewTask(otherUser, "Still open", false, false)
		require.NoError(t, repo.Save(ctx, open))

		start := time.Now().UTC().Add(-time.Hour)
		end := time.Now().UTC().Add(time.Hour)

		completed, err := repo.ListCompletedInRange(ctx, otherUser, start, end)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		assert.Equal(t, done.ID(), completed[0].ID())
	})

	t.Run("list by user excludes archived", func(t *testing.T) {
		listUser := uuid.New()

		active, _ := domain.NewTask(listUser, "Active", false, false)
		require.NoError(t, repo.Save(ctx, active))

		archived, _ := domain.NewTask(listUser, "Archived", false, false)
		require.NoError(t, archived.Archive())
		require.NoError(t, repo.Save(ctx, archived))

		tasks, err := repo.ListByUser(ctx, listUser)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, active.ID(), tasks[0].ID())
	})
}

func TestSQLiteSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	repo := persistence.NewSQLiteSessionRepository(db)
	userID := uuid.New()

	t.Run("save and find by id", func(t *testing.T) {
		session, err := domain.StartSession(userID, domain.SessionTypeWork, 25)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, session))

		found, err := repo.FindByID(ctx, session.ID())
		require.NoError(t, err)
		assert.Equal(t, session.ID(), found.ID())
		assert.Equal(t, domain.SessionTypeWork, found.Type())
		assert.Equal(t, 25, found.PlannedMinutes())
		assert.False(t, found.IsEnded())
	})

	t.Run("find active returns the open session", func(t *testing.T) {
		activeUser := uuid.New()

		ended, _ := domain.StartSession(activeUser, domain.SessionTypeWork, 25)
		require.NoError(t, ended.End(25, true))
		require.NoError(t, repo.Save(ctx, ended))

		open, _ := domain.StartSession(activeUser, domain.SessionTypeWork, 25)
		require.NoError(t, repo.Save(ctx, open))

		found, err := repo.FindActive(ctx, activeUser)
		require.NoError(t, err)
		assert.Equal(t, open.ID(), found.ID())
	})

	t.Run("find active with none open", func(t *testing.T) {
		_, err := repo.FindActive(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("list in range", func(t *testing.T) {
		rangeUser := uuid.New()

		s1, _ := domain.StartSession(rangeUser, domain.SessionTypeWork, 25)
		require.NoError(t, s1.End(25, true))
		require.NoError(t, repo.Save(ctx, s1))

		s2, _ := domain.StartSession(rangeUser, domain.SessionTypeBreak, 5)
		require.NoError(t, s2.End(5, true))
		require.NoError(t, repo.Save(ctx, s2))

		start := time.Now().UTC().Add(-time.Hour)
		end := time.Now().UTC().Add(time.Hour)

		sessions, err := repo.ListInRange(ctx, rangeUser, start, end)
		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})
}
