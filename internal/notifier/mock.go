package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/player-auction/internal/auction"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendSaleFunc      func(player auction.Player, buyer auction.LedgerEntry) error
	SendCaptainFunc   func(player auction.Player) error
	SendRevertFunc    func(player auction.Player, team auction.Team, price int) error
	SendStandingsFunc func(ledger auction.Ledger, summary auction.Summary) error

	// Call records
	SendSaleCalls []struct {
		Player auction.Player
		Buyer  auction.LedgerEntry
		DryRun bool
	}
	SendCaptainCalls []auction.Player
	SendRevertCalls  []struct {
		Player auction.Player
		Team   auction.Team
		Price  int
	}
	SendStandingsCalls []auction.Ledger
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSaleCalls = nil
	m.SendCaptainCalls = nil
	m.SendRevertCalls = nil
	m.SendStandingsCalls = nil
}

func (m *Mock) SendSale(_ context.Context, player auction.Player, buyer auction.LedgerEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSaleCalls = append(m.SendSaleCalls, struct {
		Player auction.Player
		Buyer  auction.LedgerEntry
		DryRun bool
	}{player, buyer, dryRun})
	if m.SendSaleFunc != nil {
		return m.SendSaleFunc(player, buyer)
	}
	return nil
}

func (m *Mock) SendCaptain(_ context.Context, player auction.Player, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCaptainCalls = append(m.SendCaptainCalls, player)
	if m.SendCaptainFunc != nil {
		return m.SendCaptainFunc(player)
	}
	return nil
}

func (m *Mock) SendRevert(_ context.Context, player auction.Player, team auction.Team, price int, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRevertCalls = append(m.SendRevertCalls, struct {
		Player auction.Player
		Team   auction.Team
		Price  int
	}{player, team, price})
	if m.SendRevertFunc != nil {
		return m.SendRevertFunc(player, team, price)
	}
	return nil
}

func (m *Mock) SendStandings(_ context.Context, ledger auction.Ledger, summary auction.Summary, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, ledger)
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(ledger, summary)
	}
	return nil
}

// SaleCount returns the number of SendSale calls.
func (m *Mock) SaleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendSaleCalls)
}
