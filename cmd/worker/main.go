package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	analyticsCommands "github.com/felixgeelhaar/cadence/internal/analytics/application/commands"
	analyticsConsumers "github.com/felixgeelhaar/cadence/internal/analytics/application/consumers"
	analyticsDomain "github.com/felixgeelhaar/cadence/internal/analytics/domain"
	analyticsCache "github.com/felixgeelhaar/cadence/internal/analytics/infrastructure/cache"
	analyticsPersistence "github.com/felixgeelhaar/cadence/internal/analytics/infrastructure/persistence"
	badgeConsumers "github.com/felixgeelhaar/cadence/internal/badges/application/consumers"
	badgePersistence "github.com/felixgeelhaar/cadence/internal/badges/infrastructure/persistence"
	goalConsumers "github.com/felixgeelhaar/cadence/internal/goals/application/consumers"
	goalPersistence "github.com/felixgeelhaar/cadence/internal/goals/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/migrations"
	sharedPersistence "github.com/felixgeelhaar/cadence/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/cadence/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/cadence/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	logger.Info("starting cadence worker")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Update logger level based on config
	if cfg.IsDevelopment() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}

	// Connect to the local database
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// The outbox relay reads Postgres when one is configured, otherwise the
	// local SQLite outbox.
	var outboxRepo outbox.Repository
	var pool *pgxpool.Pool
	if cfg.UsePostgres() {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to Postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to ping Postgres", "error", err)
			os.Exit(1)
		}
		outboxRepo = outbox.NewPostgresRepository(pool)
		logger.Info("relaying Postgres outbox")
	} else {
		outboxRepo = outbox.NewSQLiteRepository(db)
	}

	// Repositories and handlers. Daily metrics follow the outbox choice: with
	// a Postgres deployment the nightly batch writes there, otherwise SQLite.
	var metricsRepo analyticsDomain.MetricsRepository
	if pool != nil {
		metricsRepo = analyticsPersistence.NewPostgresMetricsRepository(pool)
	} else {
		metricsRepo = analyticsPersistence.NewSQLiteMetricsRepository(db)
	}
	streakRepo := analyticsPersistence.NewSQLiteStreakRepository(db)
	activitySource := analyticsPersistence.NewSQLiteActivitySource(db)
	goalRepo := goalPersistence.NewSQLiteGoalRepository(db)
	badgeRepo := badgePersistence.NewSQLiteBadgeRepository(db)
	progressSource := badgePersistence.NewSQLiteProgressSource(db)
	uow := sharedPersistence.NewSQLiteUnitOfWork(db)

	var cache analyticsDomain.MetricsCache
	if redisOpts, err := redis.ParseURL(cfg.RedisURL); err == nil {
		client := redis.NewClient(redisOpts)
		if err := client.Ping(ctx).Err(); err == nil {
			cache = analyticsCache.NewRedisMetricsCache(client, cfg.CachePeriodTTL, logger)
			logger.Info("connected to Redis cache")
			defer client.Close()
		} else {
			logger.Warn("Redis not available, using in-memory cache", "error", err)
			_ = client.Close()
		}
	}
	if cache == nil {
		cache = analyticsCache.NewMemoryMetricsCache(cfg.CachePeriodTTL)
	}

	computeHandler := analyticsCommands.NewComputeDailyMetricsHandler(metricsRepo, streakRepo, activitySource, cache)
	sweepHandler := analyticsCommands.NewSweepStreakHandler(streakRepo)
	nightlyBatch := analyticsCommands.NewNightlyBatchHandler(computeHandler, sweepHandler, streakRepo, logger)

	// Event consumers
	domainConsumers := []eventbus.EventConsumer{
		analyticsConsumers.NewActivityConsumer(cache, logger),
		goalConsumers.NewGoalProgressConsumer(goalRepo, outboxRepo, uow, logger),
		badgeConsumers.NewBadgeEvaluator(badgeRepo, progressSource, logger),
	}

	// Create event publisher and consumer pipeline
	var publisher eventbus.Publisher
	rabbitPublisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}

		// Local mode: close the loop in process. The outbox processor
		// publishes straight into the bus and consumers run synchronously.
		logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
		bus := eventbus.NewInProcessEventBus(logger)
		for _, consumer := range domainConsumers {
			bus.RegisterConsumer(consumer)
		}
		publisher = eventbus.NewInProcessPublisher(bus, logger)
	} else {
		publisher = rabbitPublisher
		defer rabbitPublisher.Close()

		registry := eventbus.NewConsumerRegistry(logger)
		dispatcher := eventbus.NewPartitionedDispatcher(registry, 4, logger)
		dispatcher.Start(ctx)
		defer dispatcher.Stop()

		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:        cfg.RabbitMQURL,
			Dispatcher: dispatcher,
			Logger:     logger,
		}, registry)
		if err != nil {
			logger.Error("failed to create RabbitMQ consumer", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()

		for _, c := range domainConsumers {
			consumer.RegisterConsumer(c)
		}

		go func() {
			if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("event consumer stopped", "error", err)
				cancel()
			}
		}()
	}
	logger.Info("event pipeline initialized")

	// Create outbox processor
	processorConfig := outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}
	processor := outbox.NewProcessor(outboxRepo, publisher, processorConfig, logger)

	// Start processing
	logger.Info("starting outbox processor",
		"poll_interval", processorConfig.PollInterval,
		"batch_size", processorConfig.BatchSize,
		"max_retries", processorConfig.MaxRetries,
	)

	if err := processor.Start(ctx); err != nil {
		logger.Error("failed to start outbox processor", "error", err)
		os.Exit(1)
	}

	cleanupTicker := time.NewTicker(cfg.OutboxCleanupInterval)
	defer cleanupTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-cleanupTicker.C:
				deleted, err := outboxRepo.DeleteOld(ctx, cfg.OutboxRetentionDays)
				if err != nil {
					logger.Error("outbox cleanup failed", "error", err)
					continue
				}
				if deleted > 0 {
					logger.Info("outbox cleanup completed", "deleted", deleted, "retention_days", cfg.OutboxRetentionDays)
				}
			}
		}
	}()

	// Nightly batch: recompute yesterday's metrics and sweep stale streaks
	// for every user shortly after midnight.
	go func() {
		for {
			next := nextBatchTime(time.Now(), cfg.NightlyBatchHour, cfg.NightlyBatchMinute)
			logger.Info("nightly batch scheduled", "at", next)

			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case now := <-timer.C:
				if err := nightlyBatch.Run(ctx, now); err != nil {
					logger.Error("nightly batch failed", "error", err)
				}
			}
		}
	}()

	if cfg.WorkerHealthAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			stats := processor.GetStats()
			response := map[string]any{
				"status":            "ok",
				"running":           stats.IsRunning,
				"published":         stats.PublishedCount,
				"failed":            stats.FailedCount,
				"dead":              stats.DeadCount,
				"last_processed_at": stats.LastProcessedAt,
				"last_error_at":     stats.LastErrorAt,
				"last_error":        stats.LastError,
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(response)
		})

		mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
			checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			err := db.PingContext(checkCtx)
			if err == nil && pool != nil {
				err = pool.Ping(checkCtx)
			}
			if err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"status": "not_ready",
					"error":  err.Error(),
				})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "ready"})
		})

		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("health server error", "error", err)
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health server shutdown error", "error", err)
			}
		}()
	}

	statsTicker := time.NewTicker(cfg.OutboxStatsInterval)
	defer statsTicker.Stop()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-statsTicker.C:
				stats := processor.GetStats()
				logger.Info("outbox stats",
					"running", stats.IsRunning,
					"published", stats.PublishedCount,
					"failed", stats.FailedCount,
					"dead", stats.DeadCount,
					"lag_seconds", stats.LagSeconds,
					"oldest_message_at", stats.OldestMessageAt,
					"last_processed_at", stats.LastProcessedAt,
					"last_error_at", stats.LastErrorAt,
					"last_error", stats.LastError,
				)
			}
		}
	}()

	// Wait for shutdown
	<-ctx.Done()
	logger.Info("shutting down worker")

	processor.Stop()
	logger.Info("worker stopped")
}

// nextBatchTime returns the next occurrence of hour:minute after now.
func nextBatchTime(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
