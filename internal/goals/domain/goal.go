// Package domain contains the goal model for the goals bounded context.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyTitle        = errors.New("goal title cannot be empty")
	ErrNoTargets         = errors.New("goal needs at least one target")
	ErrNegativeTarget    = errors.New("goal targets cannot be negative")
	ErrInvalidPeriodType = errors.New("invalid goal period type")
	ErrGoalNotOwned      = errors.New("goal does not belong to user")
)

// PeriodType is the goal's recurrence horizon.
type PeriodType int

const (
	PeriodDaily PeriodType = iota
	PeriodWeekly
	PeriodMonthly
)

func (p PeriodType) String() string {
	switch p {
	case PeriodDaily:
		return "daily"
	case PeriodWeekly:
		return "weekly"
	case PeriodMonthly:
		return "monthly"
	default:
		return "unknown"
	}
}

// ParsePeriodType parses a period type string as stored in the database.
func ParsePeriodType(s string) (PeriodType, error) {
	switch s {
	case "daily":
		return PeriodDaily, nil
	case "weekly":
		return PeriodWeekly, nil
	case "monthly":
		return PeriodMonthly, nil
	default:
		return PeriodDaily, ErrInvalidPeriodType
	}
}

// Goal is a user-defined target over tasks, pomodoros, or focus minutes.
// Targets of zero are unset; current values never exceed their target and
// never move once the goal is completed.
type Goal struct {
	domain.BaseAggregateRoot
	userID              uuid.UUID
	title               string
	periodType          PeriodType
	targetTasks         int
	targetPomodoros     int
	targetFocusMinutes  int
	currentTasks        int
	currentPomodoros    int
	currentFocusMinutes int
	startDate           time.Time
	endDate             time.Time
	completed           bool
	completedDate       *time.Time
}

// NewGoal creates a new goal. At least one target must be set.
func NewGoal(userID uuid.UUID, title string, periodType PeriodType, targetTasks, targetPomodoros, targetFocusMinutes int, startDate, endDate time.Time) (*Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if targetTasks < 0 || targetPomodoros < 0 || targetFocusMinutes < 0 {
		return nil, ErrNegativeTarget
	}
	if targetTasks == 0 && targetPomodoros == 0 && targetFocusMinutes == 0 {
		return nil, ErrNoTargets
	}

	return &Goal{
		BaseAggregateRoot:  domain.NewBaseAggregateRoot(),
		userID:             userID,
		title:              title,
		periodType:         periodType,
		targetTasks:        targetTasks,
		targetPomodoros:    targetPomodoros,
		targetFocusMinutes: targetFocusMinutes,
		startDate:          normalizeDate(startDate),
		endDate:            normalizeDate(endDate),
	}, nil
}

// RehydrateGoal recreates a goal from persisted state.
func RehydrateGoal(
	base domain.BaseEntity,
	userID uuid.UUID,
	title string,
	periodType PeriodType,
	targetTasks, targetPomodoros, targetFocusMinutes int,
	currentTasks, currentPomodoros, currentFocusMinutes int,
	startDate, endDate time.Time,
	completed bool,
	completedDate *time.Time,
) *Goal {
	return &Goal{
		BaseAggregateRoot:   domain.RehydrateBaseAggregateRoot(base),
		userID:              userID,
		title:               title,
		periodType:          periodType,
		targetTasks:         targetTasks,
		targetPomodoros:     targetPomodoros,
		targetFocusMinutes:  targetFocusMinutes,
		currentTasks:        currentTasks,
		currentPomodoros:    currentPomodoros,
		currentFocusMinutes: currentFocusMinutes,
		startDate:           startDate,
		endDate:             endDate,
		completed:           completed,
		completedDate:       completedDate,
	}
}

func normalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (g *Goal) UserID() uuid.UUID         { return g.userID }
func (g *Goal) Title() string             { return g.title }
func (g *Goal) PeriodType() PeriodType    { return g.periodType }
func (g *Goal) TargetTasks() int          { return g.targetTasks }
func (g *Goal) TargetPomodoros() int      { return g.targetPomodoros }
func (g *Goal) TargetFocusMinutes() int   { return g.targetFocusMinutes }
func (g *Goal) CurrentTasks() int         { return g.currentTasks }
func (g *Goal) CurrentPomodoros() int     { return g.currentPomodoros }
func (g *Goal) CurrentFocusMinutes() int  { return g.currentFocusMinutes }
func (g *Goal) StartDate() time.Time      { return g.startDate }
func (g *Goal) EndDate() time.Time        { return g.endDate }
func (g *Goal) IsCompleted() bool         { return g.completed }
func (g *Goal) CompletedDate() *time.Time { return g.completedDate }

// ContainsDate reports whether the date falls inside [startDate, endDate].
func (g *Goal) ContainsDate(date time.Time) bool {
	d := normalizeDate(date)
	return !d.Before(g.startDate) && !d.After(g.endDate)
}

// AcceptsProgress reports whether the goal should react to a completion
// dated at the given time. Completed goals and dates outside the window are
// skipped entirely.
func (g *Goal) AcceptsProgress(date time.Time) bool {
	return !g.completed && g.ContainsDate(date)
}

// ProgressPercentage is the mean per-target progress, each capped at 100.
func (g *Goal) ProgressPercentage() float64 {
	var sum float64
	var targets int

	add := func(current, target int) {
		if target <= 0 {
			return
		}
		pct := float64(current) / float64(target) * 100
		if pct > 100 {
			pct = 100
		}
		sum += pct
		targets++
	}

	add(g.currentTasks, g.targetTasks)
	add(g.currentPomodoros, g.targetPomodoros)
	add(g.currentFocusMinutes, g.targetFocusMinutes)

	if targets == 0 {
		return 0
	}
	return sum / float64(targets)
}

// RecordTaskCompletion applies one completed task dated at the given time.
// Returns true when the goal state changed.
func (g *Goal) RecordTaskCompletion(date time.Time) bool {
	if !g.AcceptsProgress(date) {
		return false
	}

	changed := false
	if g.targetTasks > 0 && g.currentTasks < g.targetTasks {
		g.currentTasks++
		changed = true
	}

	if changed {
		g.afterIncrement(date)
	}
	return changed
}

// RecordWorkSession applies one completed work session dated at the given
// time. minutes is the session's worked duration.
func (g *Goal) RecordWorkSession(date time.Time, minutes int) bool {
	if !g.AcceptsProgress(date) {
		return false
	}

	changed := false
	if g.targetPomodoros > 0 && g.currentPomodoros < g.targetPomodoros {
		g.currentPomodoros++
		changed = true
	}
	if minutes > 0 && g.targetFocusMinutes > 0 && g.currentFocusMinutes < g.targetFocusMinutes {
		g.currentFocusMinutes += minutes
		if g.currentFocusMinutes > g.targetFocusMinutes {
			g.currentFocusMinutes = g.targetFocusMinutes
		}
		changed = true
	}

	if changed {
		g.afterIncrement(date)
	}
	return changed
}

func (g *Goal) afterIncrement(date time.Time) {
	g.Touch()

	if g.ProgressPercentage() >= 100 {
		d := normalizeDate(date)
		g.completed = true
		g.completedDate = &d
		g.AddDomainEvent(NewGoalCompleted(g.ID(), g.title, d))
	}
}
