package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrMetricsNotFound is returned when no metrics row exists for a day.
	ErrMetricsNotFound = errors.New("daily metrics not found")

	// ErrCacheMiss is returned by MetricsCache when a key is absent.
	ErrCacheMiss = errors.New("metrics cache miss")
)

// MetricsRepository persists computed daily metrics. Save is an upsert on
// (user, date).
type MetricsRepository interface {
	Save(ctx context.Context, metrics *DailyMetrics) error
	FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyMetrics, error)
	FindRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*DailyMetrics, error)
}

// StreakRepository persists per-user streak state.
type StreakRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*StreakState, error)
	Save(ctx context.Context, userID uuid.UUID, state *StreakState) error
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

// TaskStats are the raw task counts for one user and day.
type TaskStats struct {
	Created          int
	Completed        int
	CompletedSameDay int
}

// SessionStats are the raw focus session counts for one user and day.
type SessionStats struct {
	FocusMinutes        int
	BreakMinutes        int
	PomodorosCompleted  int
	InterruptedSessions int
	LateNightSessions   int
}

// ActivitySource reads raw activity data from the tracking context. The
// analytics context never touches tracking tables through its aggregates.
type ActivitySource interface {
	GetTaskStats(ctx context.Context, userID uuid.UUID, date time.Time) (TaskStats, error)
	GetSessionStats(ctx context.Context, userID uuid.UUID, date time.Time) (SessionStats, error)
	GetQuadrantCounts(ctx context.Context, userID uuid.UUID) (EisenhowerDistribution, error)
}

// MetricsCache memoizes computed metrics. Daily entries are invalidated on
// new activity; period entries expire by TTL.
type MetricsCache interface {
	GetDaily(ctx context.Context, userID uuid.UUID, date time.Time) (*DailyMetrics, error)
	SetDaily(ctx context.Context, metrics *DailyMetrics) error
	InvalidateDaily(ctx context.Context, userID uuid.UUID, date time.Time) error

	GetPeriod(ctx context.Context, userID uuid.UUID, start, end time.Time) (*PeriodSummary, error)
	SetPeriod(ctx context.Context, summary *PeriodSummary) error
}
