package auctioneer

import (
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/metrics"
	"github.com/mauv0809/player-auction/internal/pubsub"
)

// Auctioneer runs engine operations and fans committed transitions out to
// metrics, notifications, events and live clients.
type Auctioneer struct {
	engine   Engine
	notifier Notifier
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	live     Broadcaster
	clock    clockwork.Clock
}

// Board is the state shown on the projector screen.
type Board struct {
	Ledger   auction.Ledger          `json:"ledger"`
	Summary  auction.Summary         `json:"summary"`
	Activity []auction.ActivityEntry `json:"activity"`
}

// boardActivity is how many log lines a board snapshot carries.
const boardActivity = 10
