package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Trend labels for period-over-period comparisons.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// trendDeadBand is the absolute percentage change below which a metric is
// considered stable.
const trendDeadBand = 5.0

// PeriodSummary aggregates daily metrics over a date range. Counts are
// summed, scores and rates are averaged over the days that have data.
type PeriodSummary struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time

	Days           int
	ProductiveDays int

	TasksCreated       int
	TasksCompleted     int
	PomodorosCompleted int
	FocusMinutes       int
	BreakMinutes       int

	AvgCompletionRate    float64
	AvgProductivityScore float64
	AvgFocusScore        float64
	AvgBurnoutRiskScore  float64

	BestDay *time.Time
}

// Summarize folds a range of daily metrics into a period summary. Averages
// are over the rows present; days without a persisted row contribute
// nothing. The best day is the one with the highest productivity score.
func Summarize(userID uuid.UUID, start, end time.Time, metrics []*DailyMetrics) PeriodSummary {
	summary := PeriodSummary{
		UserID:    userID,
		StartDate: NormalizeDate(start),
		EndDate:   NormalizeDate(end),
		Days:      len(metrics),
	}

	if len(metrics) == 0 {
		return summary
	}

	var bestScore float64
	for _, m := range metrics {
		summary.TasksCreated += m.TasksCreated
		summary.TasksCompleted += m.TasksCompleted
		summary.PomodorosCompleted += m.PomodorosCompleted
		summary.FocusMinutes += m.FocusMinutes
		summary.BreakMinutes += m.BreakMinutes

		summary.AvgCompletionRate += m.CompletionRate
		summary.AvgProductivityScore += m.ProductivityScore
		summary.AvgFocusScore += m.FocusScore
		summary.AvgBurnoutRiskScore += m.BurnoutRiskScore

		if m.IsProductive() {
			summary.ProductiveDays++
		}
		if summary.BestDay == nil || m.ProductivityScore > bestScore {
			day := m.Date
			summary.BestDay = &day
			bestScore = m.ProductivityScore
		}
	}

	n := float64(len(metrics))
	summary.AvgCompletionRate /= n
	summary.AvgProductivityScore /= n
	summary.AvgFocusScore /= n
	summary.AvgBurnoutRiskScore /= n

	return summary
}

// PercentChange computes the period-over-period change. A zero baseline
// resolves to 100 when the new value is positive, otherwise 0.
func PercentChange(current, previous float64) float64 {
	if previous != 0 {
		return (current - previous) / previous * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}

// Trend maps a percentage change to a label, with a dead band around zero.
func Trend(change float64) string {
	if math.Abs(change) < trendDeadBand {
		return TrendStable
	}
	if change > 0 {
		return TrendUp
	}
	return TrendDown
}

// MetricChange is one compared metric in a PeriodComparison.
type MetricChange struct {
	Current  float64
	Previous float64
	Change   float64
	Trend    string
}

func compareMetric(current, previous float64) MetricChange {
	change := PercentChange(current, previous)
	return MetricChange{
		Current:  current,
		Previous: previous,
		Change:   change,
		Trend:    Trend(change),
	}
}

// PeriodComparison is the period-over-period read model.
type PeriodComparison struct {
	UserID   uuid.UUID
	Current  PeriodSummary
	Previous PeriodSummary

	TasksCompleted     MetricChange
	FocusMinutes       MetricChange
	PomodorosCompleted MetricChange
	ProductivityScore  MetricChange
	FocusScore         MetricChange
	CompletionRate     MetricChange
	BurnoutRiskScore   MetricChange
}

// ComparePeriods compares two period summaries metric by metric.
func ComparePeriods(current, previous PeriodSummary) PeriodComparison {
	return PeriodComparison{
		UserID:             current.UserID,
		Current:            current,
		Previous:           previous,
		TasksCompleted:     compareMetric(float64(current.TasksCompleted), float64(previous.TasksCompleted)),
		FocusMinutes:       compareMetric(float64(current.FocusMinutes), float64(previous.FocusMinutes)),
		PomodorosCompleted: compareMetric(float64(current.PomodorosCompleted), float64(previous.PomodorosCompleted)),
		ProductivityScore:  compareMetric(current.AvgProductivityScore, previous.AvgProductivityScore),
		FocusScore:         compareMetric(current.AvgFocusScore, previous.AvgFocusScore),
		CompletionRate:     compareMetric(current.AvgCompletionRate, previous.AvgCompletionRate),
		BurnoutRiskScore:   compareMetric(current.AvgBurnoutRiskScore, previous.AvgBurnoutRiskScore),
	}
}
