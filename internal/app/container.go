// Package app wires the application container used by the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	analyticsCommands "github.com/felixgeelhaar/cadence/internal/analytics/application/commands"
	analyticsConsumers "github.com/felixgeelhaar/cadence/internal/analytics/application/consumers"
	analyticsQueries "github.com/felixgeelhaar/cadence/internal/analytics/application/queries"
	analyticsDomain "github.com/felixgeelhaar/cadence/internal/analytics/domain"
	analyticsCache "github.com/felixgeelhaar/cadence/internal/analytics/infrastructure/cache"
	analyticsPersistence "github.com/felixgeelhaar/cadence/internal/analytics/infrastructure/persistence"
	badgeConsumers "github.com/felixgeelhaar/cadence/internal/badges/application/consumers"
	badgesDomain "github.com/felixgeelhaar/cadence/internal/badges/domain"
	badgePersistence "github.com/felixgeelhaar/cadence/internal/badges/infrastructure/persistence"
	goalCommands "github.com/felixgeelhaar/cadence/internal/goals/application/commands"
	goalConsumers "github.com/felixgeelhaar/cadence/internal/goals/application/consumers"
	goalQueries "github.com/felixgeelhaar/cadence/internal/goals/application/queries"
	goalsDomain "github.com/felixgeelhaar/cadence/internal/goals/domain"
	goalPersistence "github.com/felixgeelhaar/cadence/internal/goals/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/cadence/internal/shared/application"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	trackingCommands "github.com/felixgeelhaar/cadence/internal/tracking/application/commands"
	trackingDomain "github.com/felixgeelhaar/cadence/internal/tracking/domain"
	trackingPersistence "github.com/felixgeelhaar/cadence/internal/tracking/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DB *sql.DB

	// Redis (nil when unavailable; the cache falls back to memory)
	RedisClient *redis.Client

	// Repositories
	TaskRepo    trackingDomain.TaskRepository
	SessionRepo trackingDomain.SessionRepository
	GoalRepo    goalsDomain.Repository
	BadgeRepo   badgesDomain.Repository
	MetricsRepo analyticsDomain.MetricsRepository
	StreakRepo  analyticsDomain.StreakRepository
	OutboxRepo  outbox.Repository

	// Cache
	MetricsCache analyticsDomain.MetricsCache

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Tracking Command Handlers
	CreateTaskHandler   *trackingCommands.CreateTaskHandler
	CompleteTaskHandler *trackingCommands.CompleteTaskHandler
	StartSessionHandler *trackingCommands.StartSessionHandler
	EndSessionHandler   *trackingCommands.EndSessionHandler

	// Goal Handlers
	CreateGoalHandler *goalCommands.CreateGoalHandler
	ListGoalsHandler  *goalQueries.ListGoalsHandler

	// Analytics Handlers
	ComputeDailyMetricsHandler *analyticsCommands.ComputeDailyMetricsHandler
	GetDailyMetricsHandler     *analyticsQueries.GetDailyMetricsHandler
	GetPeriodSummaryHandler    *analyticsQueries.GetPeriodSummaryHandler
	ComparePeriodsHandler      *analyticsQueries.ComparePeriodsHandler

	// Event pipeline. The CLI runs the in-process bus: the outbox processor
	// publishes staged events straight into the registered consumers.
	EventBus        *eventbus.InProcessEventBus
	OutboxProcessor *outbox.Processor
}

// NewContainer wires all dependencies for local mode.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
	}

	// Repositories
	c.TaskRepo = trackingPersistence.NewSQLiteTaskRepository(db)
	c.SessionRepo = trackingPersistence.NewSQLiteSessionRepository(db)
	c.GoalRepo = goalPersistence.NewSQLiteGoalRepository(db)
	c.BadgeRepo = badgePersistence.NewSQLiteBadgeRepository(db)
	c.MetricsRepo = analyticsPersistence.NewSQLiteMetricsRepository(db)
	c.StreakRepo = analyticsPersistence.NewSQLiteStreakRepository(db)
	c.OutboxRepo = outbox.NewSQLiteRepository(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)

	activitySource := analyticsPersistence.NewSQLiteActivitySource(db)
	progressSource := badgePersistence.NewSQLiteProgressSource(db)

	// Cache: Redis when reachable, in-memory otherwise
	if opts, err := redis.ParseURL(cfg.RedisURL); err == nil {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			c.RedisClient = client
			c.MetricsCache = analyticsCache.NewRedisMetricsCache(client, cfg.CachePeriodTTL, logger)
		} else {
			logger.Debug("Redis not available, using in-memory cache", "error", err)
			_ = client.Close()
		}
	}
	if c.MetricsCache == nil {
		c.MetricsCache = analyticsCache.NewMemoryMetricsCache(cfg.CachePeriodTTL)
	}

	// Tracking handlers
	c.CreateTaskHandler = trackingCommands.NewCreateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteTaskHandler = trackingCommands.NewCompleteTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.StartSessionHandler = trackingCommands.NewStartSessionHandler(c.SessionRepo, c.UnitOfWork)
	c.EndSessionHandler = trackingCommands.NewEndSessionHandler(c.SessionRepo, c.OutboxRepo, c.UnitOfWork)

	// Goal handlers
	c.CreateGoalHandler = goalCommands.NewCreateGoalHandler(c.GoalRepo, c.UnitOfWork)
	c.ListGoalsHandler = goalQueries.NewListGoalsHandler(c.GoalRepo)

	// Analytics handlers
	c.ComputeDailyMetricsHandler = analyticsCommands.NewComputeDailyMetricsHandler(
		c.MetricsRepo, c.StreakRepo, activitySource, c.MetricsCache)
	c.GetDailyMetricsHandler = analyticsQueries.NewGetDailyMetricsHandler(
		c.MetricsRepo, c.MetricsCache, c.ComputeDailyMetricsHandler)
	c.GetPeriodSummaryHandler = analyticsQueries.NewGetPeriodSummaryHandler(c.MetricsRepo, c.MetricsCache)
	c.ComparePeriodsHandler = analyticsQueries.NewComparePeriodsHandler(c.GetPeriodSummaryHandler)

	// Event pipeline
	c.EventBus = eventbus.NewInProcessEventBus(logger)
	c.EventBus.RegisterConsumer(analyticsConsumers.NewActivityConsumer(c.MetricsCache, logger))
	c.EventBus.RegisterConsumer(goalConsumers.NewGoalProgressConsumer(c.GoalRepo, c.OutboxRepo, c.UnitOfWork, logger))
	c.EventBus.RegisterConsumer(badgeConsumers.NewBadgeEvaluator(c.BadgeRepo, progressSource, logger))

	publisher := eventbus.NewInProcessPublisher(c.EventBus, logger)
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, publisher, outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}, logger)

	return c, nil
}

// Close releases the container's resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
