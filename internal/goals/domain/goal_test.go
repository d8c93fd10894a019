package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/internal/goals/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func weeklyGoal(t *testing.T, targetTasks, targetPomodoros, targetFocusMinutes int) *domain.Goal {
	t.Helper()
	g, err := domain.NewGoal(uuid.New(), "Ship the release", domain.PeriodWeekly,
		targetTasks, targetPomodoros, targetFocusMinutes,
		day("2026-03-09"), day("2026-03-15"))
	require.NoError(t, err)
	return g
}

func TestNewGoal(t *testing.T) {
	t.Run("requires at least one target", func(t *testing.T) {
		_, err := domain.NewGoal(uuid.New(), "Empty", domain.PeriodDaily, 0, 0, 0,
			day("2026-03-09"), day("2026-03-09"))
		assert.ErrorIs(t, err, domain.ErrNoTargets)
	})

	t.Run("rejects negative targets", func(t *testing.T) {
		_, err := domain.NewGoal(uuid.New(), "Bad", domain.PeriodDaily, -1, 0, 0,
			day("2026-03-09"), day("2026-03-09"))
		assert.ErrorIs(t, err, domain.ErrNegativeTarget)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := domain.NewGoal(uuid.New(), "  ", domain.PeriodDaily, 5, 0, 0,
			day("2026-03-09"), day("2026-03-09"))
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	})
}

func TestGoal_ProgressPercentage(t *testing.T) {
	t.Run("averages only the set targets", func(t *testing.T) {
		g := weeklyGoal(t, 10, 0, 100)

		require.True(t, g.RecordTaskCompletion(day("2026-03-10")))
		require.True(t, g.RecordWorkSession(day("2026-03-10"), 50))

		// tasks 1/10 = 10%, focus 50/100 = 50%, pomodoros unset.
		assert.InDelta(t, 30.0, g.ProgressPercentage(), 0.001)
	})
}

func TestGoal_RecordTaskCompletion(t *testing.T) {
	t.Run("caps at the target and completes exactly once", func(t *testing.T) {
		g := weeklyGoal(t, 2, 0, 0)

		require.True(t, g.RecordTaskCompletion(day("2026-03-10")))
		assert.False(t, g.IsCompleted())

		require.True(t, g.RecordTaskCompletion(day("2026-03-11")))
		assert.Equal(t, 2, g.CurrentTasks())
		assert.True(t, g.IsCompleted())
		require.NotNil(t, g.CompletedDate())
		assert.Equal(t, day("2026-03-11"), *g.CompletedDate())

		events := g.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, domain.RoutingKeyGoalCompleted, events[0].RoutingKey())

		// Further completions leave the goal untouched.
		assert.False(t, g.RecordTaskCompletion(day("2026-03-12")))
		assert.Equal(t, 2, g.CurrentTasks())
		assert.Len(t, g.DomainEvents(), 1)
	})

	t.Run("outside the window is skipped", func(t *testing.T) {
		g := weeklyGoal(t, 5, 0, 0)

		assert.False(t, g.RecordTaskCompletion(day("2026-03-16")))
		assert.False(t, g.RecordTaskCompletion(day("2026-03-08")))
		assert.Zero(t, g.CurrentTasks())
	})
}

func TestGoal_RecordWorkSession(t *testing.T) {
	t.Run("focus minutes are capped at the target", func(t *testing.T) {
		g := weeklyGoal(t, 0, 0, 60)

		require.True(t, g.RecordWorkSession(day("2026-03-10"), 50))
		assert.Equal(t, 50, g.CurrentFocusMinutes())
		assert.False(t, g.IsCompleted())

		require.True(t, g.RecordWorkSession(day("2026-03-10"), 50))
		assert.Equal(t, 60, g.CurrentFocusMinutes())
		assert.True(t, g.IsCompleted())
	})

	t.Run("increments pomodoros and focus minutes independently", func(t *testing.T) {
		g := weeklyGoal(t, 0, 4, 100)

		require.True(t, g.RecordWorkSession(day("2026-03-10"), 25))
		assert.Equal(t, 1, g.CurrentPomodoros())
		assert.Equal(t, 25, g.CurrentFocusMinutes())
	})

	t.Run("zero minutes still counts the pomodoro", func(t *testing.T) {
		g := weeklyGoal(t, 0, 2, 100)

		require.True(t, g.RecordWorkSession(day("2026-03-10"), 0))
		assert.Equal(t, 1, g.CurrentPomodoros())
		assert.Zero(t, g.CurrentFocusMinutes())
	})
}
