package eventbus

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// PartitionedDispatcher fans consumed events out to a fixed set of workers,
// routing every event for the same user to the same worker. Events for one
// user are therefore handled serially in arrival order, while different
// users proceed in parallel.
type PartitionedDispatcher struct {
	registry   *ConsumerRegistry
	logger     *slog.Logger
	partitions []chan *ConsumedEvent
	bufferSize int

	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	stopped bool
}

// NewPartitionedDispatcher creates a dispatcher with the given number of
// partitions. A non-positive count defaults to 4.
func NewPartitionedDispatcher(registry *ConsumerRegistry, partitions int, logger *slog.Logger) *PartitionedDispatcher {
	if partitions <= 0 {
		partitions = 4
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PartitionedDispatcher{
		registry:   registry,
		logger:     logger,
		partitions: make([]chan *ConsumedEvent, partitions),
		bufferSize: 64,
	}
}

// Start launches the partition workers. It returns immediately; workers run
// until Stop is called or the context is cancelled.
func (d *PartitionedDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true

	for i := range d.partitions {
		d.partitions[i] = make(chan *ConsumedEvent, d.bufferSize)
		d.wg.Add(1)
		go d.runWorker(ctx, i, d.partitions[i])
	}

	d.logger.Info("partitioned dispatcher started", "partitions", len(d.partitions))
}

// Dispatch enqueues an event on the partition owning its user. Blocks when
// the partition's buffer is full, which applies backpressure to the consumer.
func (d *PartitionedDispatcher) Dispatch(ctx context.Context, event *ConsumedEvent) error {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		// Not running as a pipeline; handle inline.
		return d.registry.Dispatch(ctx, event)
	}
	ch := d.partitions[d.partitionFor(event)]
	d.mu.Unlock()

	select {
	case ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop closes the partitions and waits for in-flight events to drain.
func (d *PartitionedDispatcher) Stop() {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	for _, ch := range d.partitions {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("partitioned dispatcher stopped")
}

func (d *PartitionedDispatcher) runWorker(ctx context.Context, partition int, events <-chan *ConsumedEvent) {
	defer d.wg.Done()

	for event := range events {
		// Registry logs per-consumer failures; a failed reaction must not
		// stall the partition.
		if err := d.registry.Dispatch(ctx, event); err != nil {
			d.logger.Warn("event handling failed",
				"partition", partition,
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"error", err,
			)
		}
	}
}

// partitionFor hashes the user identity to a partition index. Events without
// user metadata fall back to the aggregate identity so related events still
// serialize.
func (d *PartitionedDispatcher) partitionFor(event *ConsumedEvent) int {
	key := event.Metadata.UserID.String()
	if event.Metadata.UserID == uuid.Nil {
		key = event.AggregateID.String()
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.partitions)))
}
