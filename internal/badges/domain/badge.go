// Package domain contains the badge catalog and award model.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups badge types by the lifetime count they reward.
type Category int

const (
	CategoryTask Category = iota
	CategoryPomodoro
	CategoryGoal
)

func (c Category) String() string {
	switch c {
	case CategoryTask:
		return "task"
	case CategoryPomodoro:
		return "pomodoro"
	case CategoryGoal:
		return "goal"
	default:
		return "unknown"
	}
}

// Definition is one badge in the fixed catalog: a type name, the category
// it counts, and the lifetime count required to earn it.
type Definition struct {
	Type        string
	Category    Category
	Requirement int
	Title       string
}

// Catalog is the fixed badge catalog. Order within a category is ascending
// by requirement.
var Catalog = []Definition{
	{Type: "first_task", Category: CategoryTask, Requirement: 1, Title: "First Steps"},
	{Type: "task_10", Category: CategoryTask, Requirement: 10, Title: "Getting Things Done"},
	{Type: "task_50", Category: CategoryTask, Requirement: 50, Title: "Task Master"},
	{Type: "task_250", Category: CategoryTask, Requirement: 250, Title: "Unstoppable"},
	{Type: "first_pomodoro", Category: CategoryPomodoro, Requirement: 1, Title: "Tomato Sprout"},
	{Type: "pomodoro_25", Category: CategoryPomodoro, Requirement: 25, Title: "Deep Worker"},
	{Type: "pomodoro_100", Category: CategoryPomodoro, Requirement: 100, Title: "Focus Veteran"},
	{Type: "pomodoro_500", Category: CategoryPomodoro, Requirement: 500, Title: "Zen Master"},
	{Type: "first_goal", Category: CategoryGoal, Requirement: 1, Title: "Goal Getter"},
	{Type: "goal_10", Category: CategoryGoal, Requirement: 10, Title: "Achiever"},
	{Type: "goal_50", Category: CategoryGoal, Requirement: 50, Title: "Overachiever"},
}

// DefinitionsFor returns the catalog entries of one category.
func DefinitionsFor(category Category) []Definition {
	var defs []Definition
	for _, d := range Catalog {
		if d.Category == category {
			defs = append(defs, d)
		}
	}
	return defs
}

// Badge is an award record. One per (user, badge type), immutable once
// created.
type Badge struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BadgeType string
	AwardedAt time.Time
}

// NewBadge creates a new award record.
func NewBadge(userID uuid.UUID, badgeType string) *Badge {
	return &Badge{
		ID:        uuid.New(),
		UserID:    userID,
		BadgeType: badgeType,
		AwardedAt: time.Now().UTC(),
	}
}
