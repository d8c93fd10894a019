package outbox

import (
	"context"
	"time"
)

// Repository is the outbox store. Command handlers stage messages through
// Save/SaveBatch inside their transaction; the processor drives the rest of
// the lifecycle.
type Repository interface {
	Save(ctx context.Context, msg *Message) error

	// SaveBatch stores the messages atomically.
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetUnpublished returns messages ready to publish, oldest first,
	// skipping those waiting on a retry backoff.
	GetUnpublished(ctx context.Context, limit int) ([]*Message, error)

	MarkPublished(ctx context.Context, id int64) error

	// MarkFailed records a publish failure and when to try again.
	MarkFailed(ctx context.Context, id int64, err string, nextRetryAt time.Time) error

	// MarkDead parks a message that exhausted its retries.
	MarkDead(ctx context.Context, id int64, reason string) error

	// GetFailed returns messages that failed at least once but remain
	// eligible for retry.
	GetFailed(ctx context.Context, maxRetries, limit int) ([]*Message, error)

	// DeleteOld removes published messages past the retention window and
	// reports how many were removed.
	DeleteOld(ctx context.Context, olderThanDays int) (int64, error)
}
