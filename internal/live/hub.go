// Package live pushes auction board updates to connected websocket clients.
package live

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/mauv0809/player-auction/internal/metrics"
)

// Message is the envelope every client receives.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Message types.
const (
	TypeSnapshot = "snapshot"
	TypeSale     = "sale"
	TypeCaptain  = "captain"
	TypeRevert   = "revert"
	TypeOnBlock  = "on_block"
	TypeReset    = "reset"
)

// Hub fans board updates out to every connected client. Run must be started
// before clients connect.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	clients  map[*Client]bool
	count    atomic.Int64
	metrics  metrics.Metrics
	upgrader websocket.Upgrader
	snapshot func() any
}

// NewHub creates a hub. allowedOrigins limits the Origin header on upgrade;
// "*" allows any origin. snapshot, if set, is sent to each client on connect.
func NewHub(m metrics.Metrics, allowedOrigins []string, snapshot func() any) *Hub {
	h := &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
		metrics:    m,
		snapshot:   snapshot,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// Run serves registrations and broadcasts until ctx is cancelled, then closes
// every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			log.Info("Live hub stopped")
			return nil

		case client := <-h.register:
			h.clients[client] = true
			h.setCount()
			if h.snapshot != nil {
				if data, err := encode(TypeSnapshot, h.snapshot()); err == nil {
					client.send <- data
				} else {
					log.Error("Failed to encode snapshot", "error", err)
				}
			}
			log.Info("Live client connected", "clients", len(h.clients), "remote", client.remote)

		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
				log.Info("Live client disconnected", "clients", len(h.clients), "remote", client.remote)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					log.Warn("Live client too slow, dropping", "remote", client.remote)
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.setCount()
}

func (h *Hub) setCount() {
	h.count.Store(int64(len(h.clients)))
	if h.metrics != nil {
		h.metrics.SetLiveClients(len(h.clients))
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	return int(h.count.Load())
}

// Broadcast queues a message for every client. It never blocks; when the queue
// is full the update is dropped and clients catch up with the next one.
func (h *Hub) Broadcast(msgType string, payload any) {
	data, err := encode(msgType, payload)
	if err != nil {
		log.Error("Failed to encode live message", "error", err, "type", msgType)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		log.Warn("Live broadcast queue full, dropping update", "type", msgType)
	}
}

// ServeHTTP upgrades the request and attaches a new client to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	client := &Client{hub: h, conn: conn, send: make(chan []byte, 16), remote: r.RemoteAddr}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}
	go client.writePump()
	go client.readPump()
}

func encode(msgType string, payload any) ([]byte, error) {
	return json.Marshal(Message{Type: msgType, Payload: payload})
}
