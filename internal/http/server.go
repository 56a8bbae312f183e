package http

import (
	"net/http"

	"github.com/mauv0809/player-auction/internal/auctioneer"
	"github.com/mauv0809/player-auction/internal/config"
	"github.com/mauv0809/player-auction/internal/http/handlers"
	"github.com/mauv0809/player-auction/internal/metrics"
)

func NewServer(engine handlers.Reader, auc *auctioneer.Auctioneer, gate Gate, stats handlers.StatsFunc, metricsSvc metrics.Metrics, metricsHandler http.Handler, live http.Handler, cfg config.Config) *Server {
	server := &Server{
		Engine:         engine,
		Auctioneer:     auc,
		Gate:           gate,
		Stats:          stats,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Live:           live,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	server.handler = corsHandler(cfg.AllowedOrigins, server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	wrap := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, s.authMiddleware)
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /live", s.Live)
	s.Router.Handle("GET /health", wrap(handlers.HealthCheckHandler(s.Stats)))

	s.Router.Handle("POST /admin/login", wrap(s.LoginHandler()))

	s.Router.Handle("GET /ledger", wrap(handlers.LedgerHandler(s.Engine)))
	s.Router.Handle("GET /summary", wrap(handlers.SummaryHandler(s.Engine)))
	s.Router.Handle("GET /players", wrap(handlers.ListPlayersHandler(s.Engine)))
	s.Router.Handle("GET /players/export", wrap(handlers.ExportHandler(s.Engine)))
	s.Router.Handle("POST /players/import", wrap(s.ImportHandler()))
	s.Router.Handle("GET /teams/{team}", wrap(handlers.TeamHandler(s.Engine)))
	s.Router.Handle("GET /rules", wrap(handlers.RulesHandler(s.Engine)))
	s.Router.Handle("PUT /rules", wrap(s.SetRulesHandler()))
	s.Router.Handle("GET /activity", wrap(handlers.ActivityHandler(s.Engine)))

	s.Router.Handle("GET /auction/current", wrap(handlers.CurrentHandler(s.Engine)))
	s.Router.Handle("POST /auction/spin", wrap(s.SpinHandler()))
	s.Router.Handle("POST /auction/search", wrap(s.SearchHandler()))
	s.Router.Handle("POST /auction/pass", wrap(s.PassHandler()))
	s.Router.Handle("POST /auction/sell", wrap(s.SellHandler()))
	s.Router.Handle("POST /auction/captain", wrap(s.CaptainHandler()))
	s.Router.Handle("POST /auction/revert", wrap(s.RevertHandler()))

	s.Router.Handle("POST /reset", wrap(s.ResetHandler()))
	s.Router.Handle("POST /standings/notify", wrap(s.NotifyStandingsHandler()))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
