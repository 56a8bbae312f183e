package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub and binds the client to one topic.
func New(ctx context.Context, projectID, topic string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{
		client: pubSubC,
		topic:  pubSubC.Topic(topic),
	}, nil
}

// Encode serialises an event the way it is published.
func Encode(event Event) ([]byte, error) {
	return msgpack.Marshal(event)
}

func (c *client) Publish(ctx context.Context, event Event) error {
	msgpackData, err := Encode(event)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event_type": string(event.Type)},
	}
	result := c.topic.Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", c.topic.ID(), "event", event.Type)
		return err
	}
	log.Debug("Event published", "serverID", serverID, "event", event.Type)
	return nil
}

func (c *client) Close() error {
	c.topic.Stop()
	return c.client.Close()
}

// Noop drops every event. It is used when no project is configured.
type Noop struct{}

var _ PubSubClient = Noop{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error { return nil }
