package registry

import (
	"sync"

	"github.com/mauv0809/player-auction/internal/auction"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	LoadPlayersFunc      func() ([]auction.Player, error)
	ReplacePlayersFunc   func(players []auction.Player) error
	RecordTransitionFunc func(player auction.Player, entry auction.ActivityEntry, keep int) error
	AppendActivityFunc   func(entry auction.ActivityEntry, keep int) error
	LoadRulesFunc        func() (*auction.Rules, error)
	SaveRulesFunc        func(rules auction.Rules) error
	LoadActivityFunc     func(limit int) ([]auction.ActivityEntry, error)
	StatsFunc            func() (int, int, error)
	ClearFunc            func() error

	// Call records
	ReplacePlayersCalls   [][]auction.Player
	RecordTransitionCalls []struct {
		Player auction.Player
		Entry  auction.ActivityEntry
	}
	AppendActivityCalls []auction.ActivityEntry
	SaveRulesCalls      []auction.Rules
	ClearCalls          int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplacePlayersCalls = nil
	m.RecordTransitionCalls = nil
	m.AppendActivityCalls = nil
	m.SaveRulesCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) LoadPlayers() ([]auction.Player, error) {
	if m.LoadPlayersFunc != nil {
		return m.LoadPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) ReplacePlayers(players []auction.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplacePlayersCalls = append(m.ReplacePlayersCalls, players)
	if m.ReplacePlayersFunc != nil {
		return m.ReplacePlayersFunc(players)
	}
	return nil
}

func (m *MockStore) RecordTransition(player auction.Player, entry auction.ActivityEntry, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordTransitionCalls = append(m.RecordTransitionCalls, struct {
		Player auction.Player
		Entry  auction.ActivityEntry
	}{player, entry})
	if m.RecordTransitionFunc != nil {
		return m.RecordTransitionFunc(player, entry, keep)
	}
	return nil
}

func (m *MockStore) AppendActivity(entry auction.ActivityEntry, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendActivityCalls = append(m.AppendActivityCalls, entry)
	if m.AppendActivityFunc != nil {
		return m.AppendActivityFunc(entry, keep)
	}
	return nil
}

func (m *MockStore) LoadRules() (*auction.Rules, error) {
	if m.LoadRulesFunc != nil {
		return m.LoadRulesFunc()
	}
	return nil, nil
}

func (m *MockStore) SaveRules(rules auction.Rules) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveRulesCalls = append(m.SaveRulesCalls, rules)
	if m.SaveRulesFunc != nil {
		return m.SaveRulesFunc(rules)
	}
	return nil
}

func (m *MockStore) LoadActivity(limit int) ([]auction.ActivityEntry, error) {
	if m.LoadActivityFunc != nil {
		return m.LoadActivityFunc(limit)
	}
	return nil, nil
}

func (m *MockStore) Stats() (int, int, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc()
	}
	return 0, 0, nil
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
