package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSales()
	ObserveSalePrice(price float64)
	IncRejections(kind string)
	IncCaptains()
	IncReverts()
	IncSpins()
	SetPlayerCounts(sold, unsold int)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	IncEventsFailed()
	SetLiveClients(n int)
	SetStartupTime(duration float64)
}
