package eventbus

import "context"

// Publisher is the outbound side of the event pipeline. The outbox
// processor is its only caller; implementations are the RabbitMQ publisher
// and the in-process bus.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}
