package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Sales              prometheus.Counter
	SalePrice          prometheus.Histogram
	Rejections         *prometheus.CounterVec
	Captains           prometheus.Counter
	Reverts            prometheus.Counter
	Spins              prometheus.Counter
	PlayersSold        prometheus.Gauge
	PlayersUnsold      prometheus.Gauge
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	EventsPublished    prometheus.Counter
	EventsFailed       prometheus.Counter
	LiveClients        prometheus.Gauge
	StartupTimeSeconds prometheus.Gauge
}
