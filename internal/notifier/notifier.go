package notifier

import (
	"context"

	"github.com/mauv0809/player-auction/internal/auction"
)

// Notifier defines a high-level interface for sending notifications about auction events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendSale announces a committed sale with the buyer's remaining position.
	SendSale(ctx context.Context, player auction.Player, buyer auction.LedgerEntry, dryRun bool) error
	SendCaptain(ctx context.Context, player auction.Player, dryRun bool) error
	// SendRevert announces that a sale to team at price was undone.
	SendRevert(ctx context.Context, player auction.Player, team auction.Team, price int, dryRun bool) error
	SendStandings(ctx context.Context, ledger auction.Ledger, summary auction.Summary, dryRun bool) error
}

// Noop discards every notification. It is used when no provider is configured.
type Noop struct{}

var _ Notifier = Noop{}

func (Noop) SendSale(context.Context, auction.Player, auction.LedgerEntry, bool) error { return nil }
func (Noop) SendCaptain(context.Context, auction.Player, bool) error                  { return nil }
func (Noop) SendRevert(context.Context, auction.Player, auction.Team, int, bool) error {
	return nil
}
func (Noop) SendStandings(context.Context, auction.Ledger, auction.Summary, bool) error { return nil }
