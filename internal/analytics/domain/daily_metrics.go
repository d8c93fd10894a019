// Package domain contains the metrics, scoring, and streak model for the
// analytics bounded context.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// EisenhowerDistribution buckets open tasks by urgency and importance.
type EisenhowerDistribution struct {
	UrgentImportant       int
	UrgentNotImportant    int
	NotUrgentImportant    int
	NotUrgentNotImportant int
}

// DailyMetrics is the computed, persisted per-user-per-day analytics row.
// One row per (user, date); recomputation overwrites in place.
type DailyMetrics struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Date   time.Time

	// Task metrics
	TasksCreated          int
	TasksCompleted        int
	TasksCompletedSameDay int

	// Session metrics
	PomodorosCompleted  int
	FocusMinutes        int
	BreakMinutes        int
	InterruptedSessions int
	LateNightSessions   int
	OverworkMinutes     int

	ConsecutiveWorkDays int
	Quadrants           EisenhowerDistribution

	// Derived scores, all in [0,100]
	CompletionRate    float64
	ProductivityScore float64
	FocusScore        float64
	BurnoutRiskScore  float64

	ComputedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDailyMetrics creates an empty metrics row for the given day.
// The date is normalized to midnight UTC.
func NewDailyMetrics(userID uuid.UUID, date time.Time) *DailyMetrics {
	now := time.Now().UTC()
	return &DailyMetrics{
		ID:         uuid.New(),
		UserID:     userID,
		Date:       NormalizeDate(date),
		ComputedAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NormalizeDate truncates a timestamp to its calendar date at midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SetTaskMetrics sets the task counts and derives the completion rate.
// Rate is completed-same-day over created; zero created resolves to 0.
func (m *DailyMetrics) SetTaskMetrics(created, completed, completedSameDay int) {
	m.TasksCreated = created
	m.TasksCompleted = completed
	m.TasksCompletedSameDay = completedSameDay

	if created > 0 {
		m.CompletionRate = clampScore(float64(completedSameDay) / float64(created) * 100)
	} else {
		m.CompletionRate = 0
	}
}

// SetSessionMetrics sets the focus session counts and derives overwork.
func (m *DailyMetrics) SetSessionMetrics(pomodoros, focusMinutes, breakMinutes, interrupted, lateNight int) {
	m.PomodorosCompleted = pomodoros
	m.FocusMinutes = focusMinutes
	m.BreakMinutes = breakMinutes
	m.InterruptedSessions = interrupted
	m.LateNightSessions = lateNight

	m.OverworkMinutes = 0
	if focusMinutes > HealthyFocusCeiling {
		m.OverworkMinutes = focusMinutes - HealthyFocusCeiling
	}
}

// IsProductive reports whether the day meets the minimal productivity bar.
func (m *DailyMetrics) IsProductive() bool {
	return m.FocusMinutes >= ProductiveFocusMinutes || m.TasksCompleted >= 1
}

// CalculateScores derives the focus, productivity, and burnout risk scores
// from the raw counts. Call after all raw metrics are set.
func (m *DailyMetrics) CalculateScores() {
	m.FocusScore = FocusScore(m.FocusMinutes)
	m.ProductivityScore = ProductivityScore(m.CompletionRate, m.FocusMinutes, m.BreakMinutes)
	m.BurnoutRiskScore = BurnoutRiskScore(BurnoutFactors{
		OverworkMinutes:     m.OverworkMinutes,
		LateNightSessions:   m.LateNightSessions,
		InterruptedSessions: m.InterruptedSessions,
		CompletedSessions:   m.PomodorosCompleted,
		ProductivityScore:   m.ProductivityScore,
		ConsecutiveWorkDays: m.ConsecutiveWorkDays,
	})
	m.ComputedAt = time.Now().UTC()
	m.UpdatedAt = m.ComputedAt
}
