package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Sales: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_sales_total",
			Help: "The total number of committed sales.",
		}),
		SalePrice: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "auction_sale_price",
			Help:    "Winning bid of committed sales.",
			Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auction_rejections_total",
			Help: "Refused operations by rejection kind.",
		}, []string{"kind"}),
		Captains: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_captains_total",
			Help: "The total number of captain assignments.",
		}),
		Reverts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_reverts_total",
			Help: "The total number of reverted sales.",
		}),
		Spins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_spins_total",
			Help: "The total number of players put on the block.",
		}),
		PlayersSold: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "auction_players_sold",
			Help: "Players currently owned by a team.",
		}),
		PlayersUnsold: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "auction_players_unsold",
			Help: "Players still in the pool.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_events_published_total",
			Help: "The total number of auction events published to Pub/Sub.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_events_failed_total",
			Help: "The total number of auction events that failed to publish.",
		}),
		LiveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "auction_live_clients",
			Help: "Connected live board clients.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "auction_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Sales,
		s.SalePrice,
		s.Rejections,
		s.Captains,
		s.Reverts,
		s.Spins,
		s.PlayersSold,
		s.PlayersUnsold,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.EventsPublished,
		s.EventsFailed,
		s.LiveClients,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSales() {
	s.Sales.Inc()
}

func (s *Service) ObserveSalePrice(price float64) {
	s.SalePrice.Observe(price)
}

func (s *Service) IncRejections(kind string) {
	s.Rejections.WithLabelValues(kind).Inc()
}

func (s *Service) IncCaptains() {
	s.Captains.Inc()
}

func (s *Service) IncReverts() {
	s.Reverts.Inc()
}

func (s *Service) IncSpins() {
	s.Spins.Inc()
}

func (s *Service) SetPlayerCounts(sold, unsold int) {
	s.PlayersSold.Set(float64(sold))
	s.PlayersUnsold.Set(float64(unsold))
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventsFailed() {
	s.EventsFailed.Inc()
}

func (s *Service) SetLiveClients(n int) {
	s.LiveClients.Set(float64(n))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
