package domain_test

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	ts := time.Date(2026, 3, 10, 17, 42, 13, 0, time.UTC)
	assert.Equal(t, day("2026-03-10"), domain.NormalizeDate(ts))
}

func TestDailyMetrics_SetTaskMetrics(t *testing.T) {
	m := domain.NewDailyMetrics(uuid.New(), day("2026-03-10"))

	t.Run("derives completion rate", func(t *testing.T) {
		m.SetTaskMetrics(10, 9, 8)

		assert.Equal(t, 10, m.TasksCreated)
		assert.InDelta(t, 80.0, m.CompletionRate, 0.001)
	})

	t.Run("no created tasks means zero rate", func(t *testing.T) {
		m.SetTaskMetrics(0, 2, 0)
		assert.Zero(t, m.CompletionRate)
	})
}

func TestDailyMetrics_SetSessionMetrics(t *testing.T) {
	m := domain.NewDailyMetrics(uuid.New(), day("2026-03-10"))

	t.Run("derives overwork above the ceiling", func(t *testing.T) {
		m.SetSessionMetrics(10, 420, 30, 1, 0)
		assert.Equal(t, 60, m.OverworkMinutes)
	})

	t.Run("no overwork under the ceiling", func(t *testing.T) {
		m.SetSessionMetrics(6, 150, 20, 0, 0)
		assert.Zero(t, m.OverworkMinutes)
	})
}

func TestDailyMetrics_IsProductive(t *testing.T) {
	m := domain.NewDailyMetrics(uuid.New(), day("2026-03-10"))
	assert.False(t, m.IsProductive())

	m.FocusMinutes = 30
	assert.True(t, m.IsProductive())

	m.FocusMinutes = 29
	assert.False(t, m.IsProductive())

	m.TasksCompleted = 1
	assert.True(t, m.IsProductive())
}

func TestDailyMetrics_CalculateScores(t *testing.T) {
	// Worked example: 10 tasks created, 8 completed same day, six
	// completed 25-minute pomodoros and no breaks.
	m := domain.NewDailyMetrics(uuid.New(), day("2026-03-10"))
	m.SetTaskMetrics(10, 8, 8)
	m.SetSessionMetrics(6, 150, 0, 0, 0)

	m.CalculateScores()

	assert.InDelta(t, 80.0, m.CompletionRate, 0.001)
	assert.InDelta(t, 62.5, m.FocusScore, 0.001)
	assert.InDelta(t, 57.0, m.ProductivityScore, 0.001)
	assert.Zero(t, m.BurnoutRiskScore)
	assert.False(t, m.ComputedAt.IsZero())
}
