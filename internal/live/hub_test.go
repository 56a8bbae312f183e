package live_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mauv0809/player-auction/internal/live"
	"github.com/mauv0809/player-auction/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, origins []string) (*live.Hub, *metrics.Mock, string) {
	t.Helper()
	m := metrics.NewMock()
	hub := live.NewHub(m, origins, func() any { return map[string]int{"sold": 3} })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		hub.Run(ctx)
	}()
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		cancel()
		<-done
		srv.Close()
	})
	return hub, m, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHub_SnapshotThenBroadcast(t *testing.T) {
	hub, m, url := startHub(t, []string{"*"})

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var msg live.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, live.TypeSnapshot, msg.Type)
	assert.Equal(t, map[string]any{"sold": float64(3)}, msg.Payload)
	assert.Equal(t, 1, hub.Count())
	assert.Equal(t, 1, m.LiveClients())

	hub.Broadcast(live.TypeSale, map[string]string{"player": "Asha"})
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, live.TypeSale, msg.Type)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHub_RejectsUnknownOrigin(t *testing.T) {
	_, _, url := startHub(t, []string{"http://projector.local"})

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "http://projector.local")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	conn.Close()
}

func TestHub_BroadcastWithoutClientsDoesNotBlock(t *testing.T) {
	hub := live.NewHub(nil, []string{"*"}, nil)
	for i := 0; i < 200; i++ {
		hub.Broadcast(live.TypeOnBlock, i)
	}
}
