package auctioneer

import (
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/notifier"
)

// Engine defines the auction operations the auctioneer drives.
type Engine interface {
	Spin(f auction.Filter) (auction.Player, error)
	Search(name string) (auction.Player, error)
	Pass(authorized bool) error
	CheckSale(playerID int, team auction.Team, price int) error
	SellWithBuyer(playerID int, team auction.Team, price int, authorized bool) (auction.Player, auction.LedgerEntry, error)
	AssignCaptain(playerID int, team auction.Team, sport auction.Sport, price int, authorized bool) (auction.Player, error)
	RevertWithPrevious(playerID int, authorized bool) (auction.Player, auction.Player, error)
	ReplacePlayers(players []auction.Player, authorized bool) error
	SetRules(rules auction.Rules, authorized bool) error
	Reset(authorized bool) error

	Player(id int) (auction.Player, bool)
	Snapshot() (auction.Ledger, auction.Summary, []auction.ActivityEntry)
}

// Notifier defines the notification operations required by the auctioneer.
type Notifier interface {
	notifier.Notifier
}

// Broadcaster pushes board updates to live clients.
type Broadcaster interface {
	Broadcast(msgType string, payload any)
}
