package auctioneer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/live"
	"github.com/mauv0809/player-auction/internal/metrics"
	"github.com/mauv0809/player-auction/internal/notifier"
	"github.com/mauv0809/player-auction/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	mu    sync.Mutex
	types []string
}

func (b *recordingBroadcaster) Broadcast(msgType string, _ any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.types = append(b.types, msgType)
}

type fixture struct {
	auctioneer *Auctioneer
	engine     *auction.Engine
	notifier   *notifier.Mock
	metrics    *metrics.Mock
	pubsub     *pubsub.MockPubSubClient
	live       *recordingBroadcaster
}

func setup(t *testing.T) fixture {
	t.Helper()
	clock := clockwork.NewFakeClock()
	rules := auction.DefaultRules()
	rules.PurseLimit = 1000
	rules.MaxSquadSize = 5
	engine := auction.NewEngine(nil, rules, clock)
	require.NoError(t, engine.ReplacePlayers([]auction.Player{
		{ID: 1, Name: "Asha", Cricket: auction.GradeA},
		{ID: 2, Name: "Dev", TT: auction.GradeB},
	}, true))

	f := fixture{
		engine:   engine,
		notifier: notifier.NewMock(),
		metrics:  metrics.NewMock(),
		pubsub:   pubsub.NewMock(),
		live:     &recordingBroadcaster{},
	}
	f.auctioneer = New(engine, f.notifier, f.metrics, f.pubsub, f.live, clock)
	return f
}

func TestAuctioneer_Sell(t *testing.T) {
	t.Run("committed sale fans out everywhere", func(t *testing.T) {
		f := setup(t)
		team := auction.Teams[0]

		p, err := f.auctioneer.Sell(context.Background(), 1, team, 200, true, false)
		require.NoError(t, err)
		assert.Equal(t, team, p.Team)

		assert.Equal(t, 1, f.metrics.Sales())
		assert.Equal(t, []float64{200}, f.metrics.SalePrices())
		sold, unsold := f.metrics.PlayerCounts()
		assert.Equal(t, 1, sold)
		assert.Equal(t, 1, unsold)

		require.Len(t, f.notifier.SendSaleCalls, 1)
		assert.Equal(t, 1, f.notifier.SendSaleCalls[0].Buyer.Count, "buyer position reflects the sale")

		events := f.pubsub.Events()
		require.Len(t, events, 1)
		assert.Equal(t, pubsub.EventSale, events[0].Type)
		assert.Equal(t, 200, events[0].Price)
		assert.Equal(t, []string{live.TypeSale}, f.live.types)
	})

	t.Run("rejection is counted and nothing is announced", func(t *testing.T) {
		f := setup(t)
		_, err := f.auctioneer.Sell(context.Background(), 1, auction.Teams[0], 5000, true, false)
		assert.ErrorIs(t, err, auction.ErrInsufficientFunds)
		assert.Equal(t, 1, f.metrics.Rejections(string(auction.KindInsufficientFunds)))
		assert.Empty(t, f.notifier.SendSaleCalls)
		assert.Empty(t, f.pubsub.Events())
		assert.Empty(t, f.live.types)
	})

	t.Run("dry run only checks", func(t *testing.T) {
		f := setup(t)
		p, err := f.auctioneer.Sell(context.Background(), 1, auction.Teams[0], 200, true, true)
		require.NoError(t, err)
		assert.False(t, p.Sold())
		stored, _ := f.engine.Player(1)
		assert.False(t, stored.Sold())
		assert.Equal(t, 0, f.metrics.Sales())

		_, err = f.auctioneer.Sell(context.Background(), 1, auction.Teams[0], 200, false, true)
		assert.ErrorIs(t, err, auction.ErrUnauthorized)
	})

	t.Run("side-effect failures never undo the sale", func(t *testing.T) {
		f := setup(t)
		f.notifier.SendSaleFunc = func(auction.Player, auction.LedgerEntry) error { return errors.New("slack down") }
		f.pubsub.PublishFunc = func(pubsub.Event) error { return errors.New("pubsub down") }

		_, err := f.auctioneer.Sell(context.Background(), 1, auction.Teams[0], 200, true, false)
		require.NoError(t, err)
		stored, _ := f.engine.Player(1)
		assert.True(t, stored.Sold())
		assert.Equal(t, 1, f.metrics.EventsFailed())
	})
}

func TestAuctioneer_RevertCarriesPreviousOwner(t *testing.T) {
	f := setup(t)
	team := auction.Teams[3]
	_, err := f.auctioneer.AssignCaptain(context.Background(), 2, team, auction.SportTT, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 1, f.metrics.Captains())

	_, err = f.auctioneer.Revert(context.Background(), 2, true)
	require.NoError(t, err)

	require.Len(t, f.notifier.SendRevertCalls, 1)
	assert.Equal(t, team, f.notifier.SendRevertCalls[0].Team)
	events := f.pubsub.Events()
	require.Len(t, events, 2)
	assert.Equal(t, pubsub.EventRevert, events[1].Type)
	assert.Equal(t, team, events[1].Team)
	assert.Equal(t, 1, f.metrics.Reverts())
}

func TestAuctioneer_SpinAndPass(t *testing.T) {
	f := setup(t)
	p, err := f.auctioneer.Spin(context.Background(), auction.Filter{Sport: auction.SportTT})
	require.NoError(t, err)
	assert.Equal(t, 2, p.ID)
	assert.Equal(t, 1, f.metrics.Spins())

	require.NoError(t, f.auctioneer.Pass(true))
	assert.Equal(t, []string{live.TypeOnBlock, live.TypeOnBlock}, f.live.types)

	_, err = f.auctioneer.Spin(context.Background(), auction.Filter{Sport: auction.SportBadminton})
	assert.ErrorIs(t, err, auction.ErrEmptyPool)
	assert.Equal(t, 1, f.metrics.Rejections(string(auction.KindEmptyPool)))
}

func TestAuctioneer_BoardAndStandings(t *testing.T) {
	f := setup(t)
	board := f.auctioneer.Board()
	assert.Len(t, board.Ledger, len(auction.Teams))
	assert.Equal(t, 2, board.Summary.Unsold)
	require.Len(t, board.Activity, 1)

	assert.ErrorIs(t, f.auctioneer.NotifyStandings(context.Background(), false, false), auction.ErrUnauthorized)
	require.NoError(t, f.auctioneer.NotifyStandings(context.Background(), true, true))
	assert.Len(t, f.notifier.SendStandingsCalls, 1)

	require.NoError(t, f.auctioneer.Reset(context.Background(), true))
	assert.Equal(t, pubsub.EventReset, f.pubsub.Events()[0].Type)
	assert.Equal(t, 0, f.auctioneer.Board().Summary.Unsold)
}

func TestAuctioneer_ConcurrentSalesNotifyTheirOwnPosition(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.engine.ReplacePlayers([]auction.Player{
		{ID: 1, Name: "Asha"},
		{ID: 2, Name: "Dev"},
		{ID: 3, Name: "Kiran"},
		{ID: 4, Name: "Meera"},
	}, true))
	team := auction.Teams[0]

	var wg sync.WaitGroup
	for id := 1; id <= 4; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := f.auctioneer.Sell(context.Background(), id, team, 10, true, false)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	require.Len(t, f.notifier.SendSaleCalls, 4)
	seen := map[int]bool{}
	for _, call := range f.notifier.SendSaleCalls {
		seen[call.Buyer.Count] = true
		assert.Equal(t, call.Buyer.Count*10, call.Buyer.Spent, "spend matches the squad size at commit")
	}
	assert.Len(t, seen, 4, "every notification carries a distinct squad size")
}
