package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/metrics"
	"github.com/mauv0809/player-auction/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts auction events to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return NewNotifierWithAPI(slack.New(token), channelID, metrics)
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendSale(ctx context.Context, player auction.Player, buyer auction.LedgerEntry, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatSale(player, buyer), dryRun)
	return err
}

func (s *Notifier) SendCaptain(ctx context.Context, player auction.Player, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatCaptain(player), dryRun)
	return err
}

func (s *Notifier) SendRevert(ctx context.Context, player auction.Player, team auction.Team, price int, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatRevert(player, team, price), dryRun)
	return err
}

func (s *Notifier) SendStandings(ctx context.Context, ledger auction.Ledger, summary auction.Summary, dryRun bool) error {
	_, _, err := s.sendMessage(ctx, formatStandings(ledger, summary), dryRun)
	return err
}

func plainSection(text string) slack.Block {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

func grades(p auction.Player) string {
	var parts []string
	for _, sport := range auction.Sports {
		if g := p.GradeFor(sport); g != auction.GradeNone {
			parts = append(parts, fmt.Sprintf("%s %s", sport, g))
		}
	}
	if len(parts) == 0 {
		return "no graded sports"
	}
	return strings.Join(parts, " · ")
}

// formatSale creates the Slack message for a committed sale using Block Kit.
func formatSale(p auction.Player, buyer auction.LedgerEntry) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🔨 SOLD!", true, false)),
		plainSection(fmt.Sprintf("%s goes to %s for %d", p.Name, p.Team, p.Price)),
		slack.NewContextBlock("",
			slack.NewTextBlockObject("plain_text", grades(p), true, false),
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("Squad %d · Purse left %d · Disposable %d", buyer.Count, buyer.Available, buyer.Disposable), true, false),
		),
	}
	return slack.NewBlockMessage(blocks...)
}

func formatCaptain(p auction.Player) slack.Message {
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "⭐ Captain assigned", true, false)),
		plainSection(fmt.Sprintf("%s captains %s in %s (%d)", p.Name, p.Team, p.CaptainFor, p.Price)),
	)
}

func formatRevert(p auction.Player, team auction.Team, price int) slack.Message {
	return slack.NewBlockMessage(
		plainSection(fmt.Sprintf("↩️ Sale reverted: %s is back in the pool (was %s for %d)", p.Name, team, price)),
	)
}

// formatStandings renders the ledger as one line per team.
func formatStandings(ledger auction.Ledger, summary auction.Summary) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "📊 Auction standings", true, false)),
	}
	var b strings.Builder
	for _, entry := range ledger {
		fmt.Fprintf(&b, "*%s*: %d players, %d spent, %d left, %d disposable\n",
			entry.Team, entry.Count, entry.Spent, entry.Available, entry.Disposable)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", b.String(), false, false), nil, nil))
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", fmt.Sprintf("Sold %d · Unsold %d · Highest bid %d", summary.TotalSold, summary.Unsold, summary.HighestPrice), true, false),
	))
	return slack.NewBlockMessage(blocks...)
}
