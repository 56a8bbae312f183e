package auctioneer

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/live"
	"github.com/mauv0809/player-auction/internal/metrics"
	"github.com/mauv0809/player-auction/internal/pubsub"
)

// New creates a new Auctioneer.
func New(engine Engine, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, live Broadcaster, clock clockwork.Clock) *Auctioneer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Auctioneer{
		engine:   engine,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
		live:     live,
		clock:    clock,
	}
}

// Board returns the current projector view.
func (a *Auctioneer) Board() Board {
	ledger, summary, activity := a.engine.Snapshot()
	if len(activity) > boardActivity {
		activity = activity[:boardActivity]
	}
	return Board{
		Ledger:   ledger,
		Summary:  summary,
		Activity: activity,
	}
}

// Spin draws a player and announces it.
func (a *Auctioneer) Spin(ctx context.Context, f auction.Filter) (auction.Player, error) {
	p, err := a.engine.Spin(f)
	if err != nil {
		a.countRejection(err)
		return auction.Player{}, err
	}
	a.metrics.IncSpins()
	a.announceBlock(ctx, p)
	return p, nil
}

// Search puts a named player on the block and announces it.
func (a *Auctioneer) Search(ctx context.Context, name string) (auction.Player, error) {
	p, err := a.engine.Search(name)
	if err != nil {
		a.countRejection(err)
		return auction.Player{}, err
	}
	a.announceBlock(ctx, p)
	return p, nil
}

// Pass clears the block.
func (a *Auctioneer) Pass(authorized bool) error {
	if err := a.engine.Pass(authorized); err != nil {
		a.countRejection(err)
		return err
	}
	a.live.Broadcast(live.TypeOnBlock, nil)
	return nil
}

// Sell commits a sale. With dryRun set only the checks run and nothing is
// committed or announced.
func (a *Auctioneer) Sell(ctx context.Context, playerID int, team auction.Team, price int, authorized, dryRun bool) (auction.Player, error) {
	if dryRun {
		if !authorized {
			return auction.Player{}, auction.ErrUnauthorized
		}
		if err := a.engine.CheckSale(playerID, team, price); err != nil {
			a.countRejection(err)
			return auction.Player{}, err
		}
		p, _ := a.engine.Player(playerID)
		log.Info("[Dry Run] Sale would be accepted", "playerID", playerID, "team", team, "price", price)
		return p, nil
	}

	p, buyer, err := a.engine.SellWithBuyer(playerID, team, price, authorized)
	if err != nil {
		a.countRejection(err)
		return auction.Player{}, err
	}
	a.metrics.IncSales()
	a.metrics.ObserveSalePrice(float64(p.Price))

	if err := a.notifier.SendSale(ctx, p, buyer, false); err != nil {
		log.Error("Failed to send sale notification", "error", err, "playerID", p.ID)
	}
	a.publish(ctx, pubsub.EventSale, p, p.Team, p.Price)
	a.broadcastBoard(live.TypeSale)
	return p, nil
}

// AssignCaptain commits a captain pick and announces it.
func (a *Auctioneer) AssignCaptain(ctx context.Context, playerID int, team auction.Team, sport auction.Sport, price int, authorized bool) (auction.Player, error) {
	p, err := a.engine.AssignCaptain(playerID, team, sport, price, authorized)
	if err != nil {
		a.countRejection(err)
		return auction.Player{}, err
	}
	a.metrics.IncCaptains()
	if err := a.notifier.SendCaptain(ctx, p, false); err != nil {
		log.Error("Failed to send captain notification", "error", err, "playerID", p.ID)
	}
	a.publish(ctx, pubsub.EventCaptain, p, p.Team, p.Price)
	a.broadcastBoard(live.TypeCaptain)
	return p, nil
}

// Revert undoes a sale and announces it.
func (a *Auctioneer) Revert(ctx context.Context, playerID int, authorized bool) (auction.Player, error) {
	p, before, err := a.engine.RevertWithPrevious(playerID, authorized)
	if err != nil {
		a.countRejection(err)
		return auction.Player{}, err
	}
	a.metrics.IncReverts()
	if err := a.notifier.SendRevert(ctx, p, before.Team, before.Price, false); err != nil {
		log.Error("Failed to send revert notification", "error", err, "playerID", p.ID)
	}
	a.publish(ctx, pubsub.EventRevert, p, before.Team, before.Price)
	a.broadcastBoard(live.TypeRevert)
	return p, nil
}

// Import replaces the registry.
func (a *Auctioneer) Import(players []auction.Player, authorized bool) error {
	if err := a.engine.ReplacePlayers(players, authorized); err != nil {
		a.countRejection(err)
		return err
	}
	a.broadcastBoard(live.TypeSnapshot)
	return nil
}

// SetRules replaces the tournament rules.
func (a *Auctioneer) SetRules(rules auction.Rules, authorized bool) error {
	if err := a.engine.SetRules(rules, authorized); err != nil {
		a.countRejection(err)
		return err
	}
	a.broadcastBoard(live.TypeSnapshot)
	return nil
}

// Reset wipes the auction.
func (a *Auctioneer) Reset(ctx context.Context, authorized bool) error {
	if err := a.engine.Reset(authorized); err != nil {
		a.countRejection(err)
		return err
	}
	a.publish(ctx, pubsub.EventReset, auction.Player{}, "", 0)
	a.broadcastBoard(live.TypeReset)
	return nil
}

// NotifyStandings posts the current ledger to the notifier.
func (a *Auctioneer) NotifyStandings(ctx context.Context, authorized, dryRun bool) error {
	if !authorized {
		return auction.ErrUnauthorized
	}
	ledger, summary, _ := a.engine.Snapshot()
	return a.notifier.SendStandings(ctx, ledger, summary, dryRun)
}

func (a *Auctioneer) announceBlock(ctx context.Context, p auction.Player) {
	a.publish(ctx, pubsub.EventOnBlock, p, "", 0)
	a.live.Broadcast(live.TypeOnBlock, p)
}

func (a *Auctioneer) publish(ctx context.Context, eventType pubsub.EventType, p auction.Player, team auction.Team, price int) {
	event := pubsub.Event{
		Type:   eventType,
		Time:   a.clock.Now(),
		Player: p,
		Team:   team,
		Price:  price,
	}
	if err := a.pubsub.Publish(ctx, event); err != nil {
		a.metrics.IncEventsFailed()
		log.Error("Failed to publish auction event", "error", err, "event", eventType)
		return
	}
	a.metrics.IncEventsPublished()
}

func (a *Auctioneer) broadcastBoard(msgType string) {
	board := a.Board()
	a.metrics.SetPlayerCounts(board.Summary.TotalSold, board.Summary.Unsold)
	a.live.Broadcast(msgType, board)
}

func (a *Auctioneer) countRejection(err error) {
	var rej *auction.Rejection
	if errors.As(err, &rej) {
		a.metrics.IncRejections(string(rej.Kind))
	}
}
