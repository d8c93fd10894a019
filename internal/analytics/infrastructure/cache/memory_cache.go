package cache

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/google/uuid"
)

type memoryEntry struct {
	data      any
	expiresAt time.Time
}

func (e memoryEntry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// MemoryMetricsCache implements domain.MetricsCache in process memory. Used
// for the CLI single-user mode and in tests, where Redis is not available.
type MemoryMetricsCache struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	dailyTTL  time.Duration
	periodTTL time.Duration
}

// NewMemoryMetricsCache creates a new in-memory metrics cache.
func NewMemoryMetricsCache(periodTTL time.Duration) *MemoryMetricsCache {
	if periodTTL <= 0 {
		periodTTL = DefaultPeriodTTL
	}
	return &MemoryMetricsCache{
		entries:   make(map[string]memoryEntry),
		dailyTTL:  DefaultDailyTTL,
		periodTTL: periodTTL,
	}
}

func (c *MemoryMetricsCache) get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || entry.expired() {
		return nil, false
	}
	return entry.data, true
}

func (c *MemoryMetricsCache) set(key string, data any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// GetDaily retrieves a cached daily metrics row.
func (c *MemoryMetricsCache) GetDaily(_ context.Context, userID uuid.UUID, date time.Time) (*domain.DailyMetrics, error) {
	data, ok := c.get(dailyKey(userID, domain.NormalizeDate(date)))
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	copied := *data.(*domain.DailyMetrics)
	return &copied, nil
}

// SetDaily caches a daily metrics row.
func (c *MemoryMetricsCache) SetDaily(_ context.Context, metrics *domain.DailyMetrics) error {
	copied := *metrics
	c.set(dailyKey(metrics.UserID, metrics.Date), &copied, c.dailyTTL)
	return nil
}

// InvalidateDaily drops the cached entry for one user and day.
func (c *MemoryMetricsCache) InvalidateDaily(_ context.Context, userID uuid.UUID, date time.Time) error {
	c.mu.Lock()
	delete(c.entries, dailyKey(userID, domain.NormalizeDate(date)))
	c.mu.Unlock()
	return nil
}

// GetPeriod retrieves a cached period summary.
func (c *MemoryMetricsCache) GetPeriod(_ context.Context, userID uuid.UUID, start, end time.Time) (*domain.PeriodSummary, error) {
	data, ok := c.get(periodKey(userID, domain.NormalizeDate(start), domain.NormalizeDate(end)))
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	copied := *data.(*domain.PeriodSummary)
	return &copied, nil
}

// SetPeriod caches a period summary.
func (c *MemoryMetricsCache) SetPeriod(_ context.Context, summary *domain.PeriodSummary) error {
	copied := *summary
	c.set(periodKey(summary.UserID, summary.StartDate, summary.EndDate), &copied, c.periodTTL)
	return nil
}
