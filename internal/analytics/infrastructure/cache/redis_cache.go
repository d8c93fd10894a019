// Package cache contains the metrics cache implementations.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

const (
	// DefaultDailyTTL bounds the lifetime of a daily entry. Today's entry is
	// additionally invalidated on new activity.
	DefaultDailyTTL = 24 * time.Hour

	// DefaultPeriodTTL bounds the staleness of a period aggregate.
	DefaultPeriodTTL = 15 * time.Minute
)

// RedisMetricsCache implements domain.MetricsCache on Redis. Reads go
// through a circuit breaker so a degraded Redis falls back to the database
// instead of stalling every request.
type RedisMetricsCache struct {
	client    *redis.Client
	breaker   *gobreaker.CircuitBreaker[[]byte]
	dailyTTL  time.Duration
	periodTTL time.Duration
	logger    *slog.Logger
}

// NewRedisMetricsCache creates a new Redis metrics cache.
func NewRedisMetricsCache(client *redis.Client, periodTTL time.Duration, logger *slog.Logger) *RedisMetricsCache {
	if periodTTL <= 0 {
		periodTTL = DefaultPeriodTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "metrics-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return &RedisMetricsCache{
		client:    client,
		breaker:   breaker,
		dailyTTL:  DefaultDailyTTL,
		periodTTL: periodTTL,
		logger:    logger,
	}
}

func dailyKey(userID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("metrics:%s:day:%s", userID, date.Format("2006-01-02"))
}

func periodKey(userID uuid.UUID, start, end time.Time) string {
	return fmt.Sprintf("metrics:%s:range:%s:%s", userID,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (c *RedisMetricsCache) get(ctx context.Context, key string) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		data, err := c.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return nil, domain.ErrCacheMiss
		}
		return data, err
	})
}

// GetDaily retrieves a cached daily metrics row.
func (c *RedisMetricsCache) GetDaily(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyMetrics, error) {
	data, err := c.get(ctx, dailyKey(userID, domain.NormalizeDate(date)))
	if err != nil {
		return nil, err
	}

	var metrics domain.DailyMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, fmt.Errorf("failed to decode cached metrics: %w", err)
	}
	return &metrics, nil
}

// SetDaily caches a daily metrics row.
func (c *RedisMetricsCache) SetDaily(ctx context.Context, metrics *domain.DailyMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	return c.client.Set(ctx, dailyKey(metrics.UserID, metrics.Date), data, c.dailyTTL).Err()
}

// InvalidateDaily drops the cached entry for one user and day.
func (c *RedisMetricsCache) InvalidateDaily(ctx context.Context, userID uuid.UUID, date time.Time) error {
	return c.client.Del(ctx, dailyKey(userID, domain.NormalizeDate(date))).Err()
}

// GetPeriod retrieves a cached period summary.
func (c *RedisMetricsCache) GetPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) (*domain.PeriodSummary, error) {
	data, err := c.get(ctx, periodKey(userID, domain.NormalizeDate(start), domain.NormalizeDate(end)))
	if err != nil {
		return nil, err
	}

	var summary domain.PeriodSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, nil
}

// SetPeriod caches a period summary with a short TTL.
func (c *RedisMetricsCache) SetPeriod(ctx context.Context, summary *domain.PeriodSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return c.client.Set(ctx, periodKey(summary.UserID, summary.StartDate, summary.EndDate), data, c.periodTTL).Err()
}
