package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/metrics"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func sectionTexts(msg slackapi.Message) []string {
	var out []string
	for _, block := range msg.Blocks.BlockSet {
		switch b := block.(type) {
		case *slackapi.SectionBlock:
			out = append(out, b.Text.Text)
		case *slackapi.HeaderBlock:
			out = append(out, b.Text.Text)
		}
	}
	return out
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	err := notifier.SendCaptain(context.Background(), auction.Player{Name: "Asha"}, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "posts are bounded by a timeout")
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	p := auction.Player{Name: "Asha", Cricket: auction.GradeA, Team: auction.Teams[0], Price: 300}
	err := notifier.SendSale(context.Background(), p, auction.LedgerEntry{Team: auction.Teams[0], Count: 4}, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendRevert(context.Background(), auction.Player{Name: "Asha"}, auction.Teams[1], 200, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatSale(t *testing.T) {
	p := auction.Player{Name: "Asha", Cricket: auction.GradeA, TT: auction.GradeC, Team: auction.Teams[2], Price: 450}
	msg := formatSale(p, auction.LedgerEntry{Count: 3, Available: 550, Disposable: 330})

	texts := sectionTexts(msg)
	require.Len(t, texts, 2)
	assert.Equal(t, "Asha goes to Lantern Legends for 450", texts[1])
	assert.Equal(t, "Cricket A · TT C", grades(p))
	assert.Equal(t, "no graded sports", grades(auction.Player{}))
}

func TestFormatStandings(t *testing.T) {
	rules := auction.DefaultRules()
	ledger := auction.ComputeLedger([]auction.Player{{ID: 1, Name: "Asha", Team: auction.Teams[0], Price: 100}}, rules)
	msg := formatStandings(ledger, auction.Summary{TotalSold: 1, HighestPrice: 100})

	texts := sectionTexts(msg)
	require.Len(t, texts, 2)
	assert.Contains(t, texts[1], "*Aditya Avengers*: 1 players, 100 spent, 9900 left")
	assert.Contains(t, texts[1], "*Taluka Fighters*: 0 players")
}
