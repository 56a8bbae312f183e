package pubsub_test

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestEncode(t *testing.T) {
	event := pubsub.Event{
		Type:   pubsub.EventSale,
		Time:   time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC),
		Player: auction.Player{ID: 3, Name: "Meera", Badminton: auction.GradeA, Team: auction.Teams[4], Price: 210},
		Team:   auction.Teams[4],
		Price:  210,
	}
	data, err := pubsub.Encode(event)
	require.NoError(t, err)

	// Downstream consumers decode the payload with plain msgpack.
	var decoded pubsub.Event
	require.NoError(t, msgpack.Unmarshal(data, &decoded))
	assert.Equal(t, event.Type, decoded.Type)
	assert.True(t, event.Time.Equal(decoded.Time))
	assert.Equal(t, event.Player, decoded.Player)
	assert.Equal(t, auction.GradeA, decoded.Player.Badminton)
}

func TestNoopAndMock(t *testing.T) {
	var client pubsub.PubSubClient = pubsub.Noop{}
	assert.NoError(t, client.Publish(context.Background(), pubsub.Event{Type: pubsub.EventReset}))
	assert.NoError(t, client.Close())

	mock := pubsub.NewMock()
	require.NoError(t, mock.Publish(context.Background(), pubsub.Event{Type: pubsub.EventRevert}))
	require.NoError(t, mock.Close())
	require.Len(t, mock.Events(), 1)
	assert.Equal(t, pubsub.EventRevert, mock.Events()[0].Type)
	assert.True(t, mock.Closed)
}
