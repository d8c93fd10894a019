package cli

import (
	analyticsCommands "github.com/felixgeelhaar/cadence/internal/analytics/application/commands"
	analyticsQueries "github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	analyticsDomain "github.com/felixgeelhaar/cadence/internal/analytics/domain"
	badgesDomain "github.com/felixgeelhaar/cadence/internal/badges/domain"
	goalCommands "github.com/felixgeelhaar/cadence/internal/goals/application/commands"
	goalQueries "github.com/felixgeelhaar/cadence/internal/goals/application/queries"
	trackingCommands "github.com/felixgeelhaar/cadence/internal/tracking/application/commands"
	trackingDomain "github.com/felixgeelhaar/cadence/internal/tracking/domain"
	"github.com/google/uuid"
)

// App holds the CLI application dependencies.
type App struct {
	// Tracking Command Handlers
	CreateTaskHandler   *trackingCommands.CreateTaskHandler
	CompleteTaskHandler *trackingCommands.CompleteTaskHandler
	StartSessionHandler *trackingCommands.StartSessionHandler
	EndSessionHandler   *trackingCommands.EndSessionHandler

	// Tracking read access
	TaskRepo    trackingDomain.TaskRepository
	SessionRepo trackingDomain.SessionRepository

	// Goal Handlers
	CreateGoalHandler *goalCommands.CreateGoalHandler
	ListGoalsHandler  *goalQueries.ListGoalsHandler

	// Analytics Handlers
	ComputeDailyMetricsHandler *analyticsCommands.ComputeDailyMetricsHandler
	GetDailyMetricsHandler     *analyticsQueries.GetDailyMetricsHandler
	GetPeriodSummaryHandler    *analyticsQueries.GetPeriodSummaryHandler
	ComparePeriodsHandler      *analyticsQueries.ComparePeriodsHandler

	// Streaks and badges
	StreakRepo analyticsDomain.StreakRepository
	BadgeRepo  badgesDomain.Repository

	// Current user (configured per environment)
	CurrentUserID uuid.UUID
}

// SetCurrentUserID updates the current user ID.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
