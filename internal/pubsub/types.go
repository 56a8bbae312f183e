package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/player-auction/internal/auction"
)

type client struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventSale    EventType = "sale"
	EventCaptain EventType = "captain"
	EventRevert  EventType = "revert"
	EventOnBlock EventType = "on-block"
	EventReset   EventType = "reset"
)

// Event is the msgpack payload published for every auction transition.
type Event struct {
	Type   EventType      `msgpack:"type"`
	Time   time.Time      `msgpack:"time"`
	Player auction.Player `msgpack:"player"`
	// Team and Price describe the transition. For a revert they hold the
	// previous owner and the refunded price.
	Team  auction.Team `msgpack:"team"`
	Price int          `msgpack:"price"`
}
