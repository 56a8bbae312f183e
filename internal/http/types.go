package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/auctioneer"
	"github.com/mauv0809/player-auction/internal/config"
	"github.com/mauv0809/player-auction/internal/http/handlers"
	"github.com/mauv0809/player-auction/internal/metrics"
)

// Gate authenticates admin sessions.
type Gate interface {
	Login(passphrase string) (token string, expires time.Time, err error)
	Authorized(token string) bool
}

type Server struct {
	Engine         handlers.Reader
	Auctioneer     *auctioneer.Auctioneer
	Gate           Gate
	Stats          handlers.StatsFunc
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Live           http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	handler        http.Handler
}

type loginRequest struct {
	Passphrase string `json:"passphrase"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type selectRequest struct {
	Sport string `json:"sport"`
	Grade string `json:"grade"`
	Name  string `json:"name"`
}

type saleRequest struct {
	PlayerID int    `json:"player_id"`
	Team     string `json:"team"`
	Price    int    `json:"price"`
	Sport    string `json:"sport,omitempty"`
}

type errorResponse struct {
	Kind   auction.Kind  `json:"kind,omitempty"`
	Error  string        `json:"error"`
	MaxBid *int          `json:"max_bid,omitempty"`
	Sport  auction.Sport `json:"sport,omitempty"`
	Grade  string        `json:"grade,omitempty"`
	Limit  *int          `json:"limit,omitempty"`
}
