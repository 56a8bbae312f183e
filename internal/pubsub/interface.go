package pubsub

import "context"

// PubSubClient publishes auction events for downstream consumers.
type PubSubClient interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
