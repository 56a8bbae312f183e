package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	sales            int
	salePrices       []float64
	rejections       map[string]int
	captains         int
	reverts          int
	spins            int
	sold, unsold     int
	slackNotifSent   int
	slackNotifFailed int
	eventsPublished  int
	eventsFailed     int
	liveClients      int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		salePrices: make([]float64, 0),
		rejections: make(map[string]int),
	}
}

func (m *Mock) IncSales() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales++
}

func (m *Mock) ObserveSalePrice(price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salePrices = append(m.salePrices, price)
}

func (m *Mock) IncRejections(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejections[kind]++
}

func (m *Mock) IncCaptains() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captains++
}

func (m *Mock) IncReverts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reverts++
}

func (m *Mock) IncSpins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spins++
}

func (m *Mock) SetPlayerCounts(sold, unsold int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sold, m.unsold = sold, unsold
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
}

func (m *Mock) SetLiveClients(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.liveClients = n
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Sales returns the number of times IncSales was called.
func (m *Mock) Sales() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sales
}

// SalePrices returns every observed sale price.
func (m *Mock) SalePrices() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.salePrices...)
}

// Rejections returns how often a rejection kind was counted.
func (m *Mock) Rejections(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejections[kind]
}

func (m *Mock) Captains() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.captains
}

func (m *Mock) Reverts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reverts
}

func (m *Mock) Spins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spins
}

// PlayerCounts returns the last sold/unsold values set.
func (m *Mock) PlayerCounts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sold, m.unsold
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}

func (m *Mock) LiveClients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.liveClients
}
