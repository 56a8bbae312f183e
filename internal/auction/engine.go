package auction

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Engine owns the player registry, the rules, the auction state and the
// activity log. Every mutation runs its checks and its commit under one lock.
type Engine struct {
	mu sync.RWMutex

	store Store
	clock clockwork.Clock
	intn  func(n int) int

	rules    Rules
	players  []Player
	index    map[int]int
	onBlock  int
	hasBlock bool
	activity *ActivityLog
}

// NewEngine creates an engine. A nil store keeps state in memory only; rules are
// used until Load finds persisted ones.
func NewEngine(store Store, rules Rules, clock clockwork.Clock) *Engine {
	if store == nil {
		store = nopStore{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{
		store:    store,
		clock:    clock,
		intn:     rand.IntN,
		rules:    rules.clone(),
		index:    make(map[int]int),
		activity: NewActivityLog(ActivityLimit),
	}
}

// SetPicker replaces the random source used by Spin. fn must return a value in [0, n).
func (e *Engine) SetPicker(fn func(n int) int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.intn = fn
}

// Load restores players, rules and activity from the store. When the store has
// no rules yet the current ones are written to it.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	players, err := e.store.LoadPlayers()
	if err != nil {
		return fmt.Errorf("failed to load players: %w", err)
	}
	rules, err := e.store.LoadRules()
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	if rules == nil {
		if err := e.store.SaveRules(e.rules); err != nil {
			return fmt.Errorf("failed to save default rules: %w", err)
		}
	} else {
		e.rules = rules.clone()
	}
	entries, err := e.store.LoadActivity(ActivityLimit)
	if err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}

	e.setPlayers(players)
	e.activity.Reset()
	// Stored newest first; replay oldest first so the ring keeps the order.
	for i := len(entries) - 1; i >= 0; i-- {
		e.activity.Append(entries[i])
	}
	log.Info("Auction state loaded", "players", len(e.players), "activity", e.activity.Len())
	return nil
}

// Rules returns a copy of the current rules.
func (e *Engine) Rules() Rules {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules.clone()
}

// SetRules replaces the tournament rules.
func (e *Engine) SetRules(rules Rules, authorized bool) error {
	if !authorized {
		return reject(ErrUnauthorized, "admin login required to edit rules")
	}
	rules, err := rules.Normalize()
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.SaveRules(rules); err != nil {
		return fmt.Errorf("failed to save rules: %w", err)
	}
	e.rules = rules
	e.record(e.newEntry(CategoryCorrection, fmt.Sprintf("RULES: purse %d, squad %d, base %d", rules.PurseLimit, rules.MaxSquadSize, rules.BasePrice)))
	log.Info("Rules updated", "purse_limit", rules.PurseLimit, "max_squad_size", rules.MaxSquadSize, "base_price", rules.BasePrice)
	return nil
}

// Players returns a copy of the registry in import order.
func (e *Engine) Players() []Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.players)
}

// Player looks a player up by ID.
func (e *Engine) Player(id int) (Player, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	idx, ok := e.index[id]
	if !ok {
		return Player{}, false
	}
	return e.players[idx], true
}

// Roster returns the players owned by a team.
func (e *Engine) Roster(team Team) []Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []Player
	for _, p := range e.players {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// ReplacePlayers swaps the whole registry, typically after a bulk import.
func (e *Engine) ReplacePlayers(players []Player, authorized bool) error {
	if !authorized {
		return reject(ErrUnauthorized, "admin login required to import players")
	}
	normalized, err := normalizePlayers(players)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.ReplacePlayers(normalized); err != nil {
		return fmt.Errorf("failed to save players: %w", err)
	}
	e.setPlayers(normalized)
	e.clearBlock()
	e.record(e.newEntry(CategoryCorrection, fmt.Sprintf("IMPORT: %d players loaded", len(normalized))))
	log.Info("Player registry replaced", "players", len(normalized))
	return nil
}

// Reset wipes players, activity and the block. Rules are kept.
func (e *Engine) Reset(authorized bool) error {
	if !authorized {
		return reject(ErrUnauthorized, "admin login required to reset the auction")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	e.setPlayers(nil)
	e.clearBlock()
	e.activity.Reset()
	log.Warn("Auction reset")
	return nil
}

// Ledger computes every team's position from the current registry.
func (e *Engine) Ledger() Ledger {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ComputeLedger(e.players, e.rules)
}

// Summary returns the dashboard headline numbers.
func (e *Engine) Summary() Summary {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.summary()
}

// Snapshot returns the ledger, summary and activity read under one lock, so
// all three describe the same committed state.
func (e *Engine) Snapshot() (Ledger, Summary, []ActivityEntry) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return ComputeLedger(e.players, e.rules), e.summary(), e.activity.Entries()
}

func (e *Engine) summary() Summary {
	var s Summary
	for _, p := range e.players {
		if !p.Sold() {
			s.Unsold++
			continue
		}
		s.TotalSold++
		s.HighestPrice = max(s.HighestPrice, p.Price)
	}
	s.RemainingSlots = len(Teams)*e.rules.MaxSquadSize - s.TotalSold
	if p, ok := e.blockPlayer(); ok {
		s.OnBlock = &p
	}
	return s
}

// Activity returns the audit trail, most recent first.
func (e *Engine) Activity() []ActivityEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.activity.Entries()
}

// OnBlock returns the player currently up for bidding.
func (e *Engine) OnBlock() (Player, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.blockPlayer()
}

// Pass takes the current player off the block without selling.
func (e *Engine) Pass(authorized bool) error {
	if !authorized {
		return reject(ErrUnauthorized, "admin login required to pass")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearBlock()
	return nil
}

// CheckSale runs every sale check without committing anything.
func (e *Engine) CheckSale(playerID int, team Team, price int) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, err := e.validateSale(playerID, team, price)
	return err
}

// Sell validates a winning bid and, if admissible, commits it.
func (e *Engine) Sell(playerID int, team Team, price int, authorized bool) (Player, error) {
	p, _, err := e.SellWithBuyer(playerID, team, price, authorized)
	return p, err
}

// SellWithBuyer is Sell that also returns the buyer's ledger entry as it stood
// right after this sale committed.
func (e *Engine) SellWithBuyer(playerID int, team Team, price int, authorized bool) (Player, LedgerEntry, error) {
	if !authorized {
		return Player{}, LedgerEntry{}, reject(ErrUnauthorized, "admin login required to sell")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.validateSale(playerID, team, price)
	if err != nil {
		log.Info("Sale rejected", "playerID", playerID, "team", team, "price", price, "reason", err)
		return Player{}, LedgerEntry{}, err
	}
	p.Team = team
	p.Price = price
	p.CaptainFor = ""
	entry := e.newEntry(CategorySale, fmt.Sprintf("SOLD: %s to %s (%d)", p.Name, team, price))
	if err := e.commit(p, entry); err != nil {
		return Player{}, LedgerEntry{}, err
	}
	e.clearBlock()
	buyer, _ := ComputeLedger(e.players, e.rules).Team(team)
	log.Info("Sale committed", "playerID", p.ID, "player", p.Name, "team", team, "price", price)
	return p, buyer, nil
}

// AssignCaptain sells a player directly to a team as its captain for a sport.
// Funds, capacity and quota are deliberately not checked.
func (e *Engine) AssignCaptain(playerID int, team Team, sport Sport, price int, authorized bool) (Player, error) {
	if !authorized {
		return Player{}, reject(ErrUnauthorized, "admin login required to assign captains")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.index[playerID]
	if !ok {
		return Player{}, reject(ErrUnknownPlayer, "no player with id %d", playerID)
	}
	p := e.players[idx]
	if p.Sold() {
		return Player{}, reject(ErrStaleSelection, "%s has already been sold to %s", p.Name, p.Team)
	}
	if !slices.Contains(Teams, team) {
		return Player{}, reject(ErrUnknownTeam, "unknown team %q", team)
	}
	if !slices.Contains(Sports, sport) {
		return Player{}, reject(ErrUnknownSport, "unknown sport %q", sport)
	}
	if price < 0 {
		return Player{}, reject(ErrInvalidPrice, "captain price must not be negative")
	}

	p.Team = team
	p.Price = price
	p.CaptainFor = sport
	entry := e.newEntry(CategoryCaptain, fmt.Sprintf("CAPTAIN: %s to %s for %s (%d)", p.Name, team, sport, price))
	if err := e.commit(p, entry); err != nil {
		return Player{}, err
	}
	if e.hasBlock && e.onBlock == p.ID {
		e.clearBlock()
	}
	log.Info("Captain assigned", "playerID", p.ID, "player", p.Name, "team", team, "sport", sport, "price", price)
	return p, nil
}

// Revert returns a sold player to the pool. The team's money comes back on the
// next ledger read; nothing is re-validated.
func (e *Engine) Revert(playerID int, authorized bool) (Player, error) {
	p, _, err := e.RevertWithPrevious(playerID, authorized)
	return p, err
}

// RevertWithPrevious is Revert that also returns the player as it was sold.
func (e *Engine) RevertWithPrevious(playerID int, authorized bool) (Player, Player, error) {
	if !authorized {
		return Player{}, Player{}, reject(ErrUnauthorized, "admin login required to revert a sale")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.index[playerID]
	if !ok {
		return Player{}, Player{}, reject(ErrUnknownPlayer, "no player with id %d", playerID)
	}
	before := e.players[idx]
	if !before.Sold() {
		return Player{}, Player{}, reject(ErrNotSold, "%s is not sold", before.Name)
	}
	p := before
	p.Team = ""
	p.Price = 0
	p.CaptainFor = ""
	entry := e.newEntry(CategoryRevert, fmt.Sprintf("REVERTED: %s from %s (%d)", p.Name, before.Team, before.Price))
	if err := e.commit(p, entry); err != nil {
		return Player{}, Player{}, err
	}
	log.Info("Sale reverted", "playerID", p.ID, "player", p.Name, "team", before.Team, "price", before.Price)
	return p, before, nil
}

// validateSale runs the read-only sale checks in order. Caller holds the lock.
func (e *Engine) validateSale(playerID int, team Team, price int) (Player, error) {
	idx, ok := e.index[playerID]
	if !ok {
		return Player{}, reject(ErrUnknownPlayer, "no player with id %d", playerID)
	}
	p := e.players[idx]
	if p.Sold() {
		return Player{}, reject(ErrStaleSelection, "%s has already been sold to %s", p.Name, p.Team)
	}
	if !slices.Contains(Teams, team) {
		return Player{}, reject(ErrUnknownTeam, "unknown team %q", team)
	}

	ledger := ComputeLedger(e.players, e.rules)
	entry, _ := ledger.Team(team)
	if entry.Count >= e.rules.MaxSquadSize {
		return Player{}, reject(ErrSquadFull, "%s already has %d players (max %d)", team, entry.Count, e.rules.MaxSquadSize)
	}
	maxBid := entry.MaxBid(e.rules)
	if price > maxBid {
		return Player{}, &Rejection{
			Kind:   KindInsufficientFunds,
			Reason: fmt.Sprintf("funds exceeded for %s: bid %d, max: %d", team, price, maxBid),
			MaxBid: maxBid,
		}
	}
	if price < e.rules.BasePrice {
		return Player{}, reject(ErrBelowBasePrice, "bid %d is below the base price %d", price, e.rules.BasePrice)
	}
	if err := checkQuota(ledger, e.rules, team, p); err != nil {
		return Player{}, err
	}
	return p, nil
}

// commit persists a player transition and then applies it in memory.
func (e *Engine) commit(p Player, entry ActivityEntry) error {
	if err := e.store.RecordTransition(p, entry, ActivityLimit); err != nil {
		log.Error("Failed to persist transition", "error", err, "playerID", p.ID, "category", entry.Category)
		return fmt.Errorf("failed to persist %s of player %d: %w", entry.Category, p.ID, err)
	}
	e.players[e.index[p.ID]] = p
	e.activity.Append(entry)
	return nil
}

// record appends an entry that has no player attached. A failed write is logged
// and the entry kept in memory.
func (e *Engine) record(entry ActivityEntry) {
	if err := e.store.AppendActivity(entry, ActivityLimit); err != nil {
		log.Error("Failed to persist activity entry", "error", err, "category", entry.Category)
	}
	e.activity.Append(entry)
}

func (e *Engine) newEntry(category Category, message string) ActivityEntry {
	return ActivityEntry{
		ID:       uuid.NewString(),
		Time:     e.clock.Now(),
		Category: category,
		Message:  message,
	}
}

func (e *Engine) setPlayers(players []Player) {
	e.players = slices.Clone(players)
	e.index = make(map[int]int, len(players))
	for i, p := range e.players {
		e.index[p.ID] = i
	}
}

func (e *Engine) putOnBlock(id int) {
	e.onBlock = id
	e.hasBlock = true
}

func (e *Engine) clearBlock() {
	e.onBlock = 0
	e.hasBlock = false
}

func (e *Engine) blockPlayer() (Player, bool) {
	if !e.hasBlock {
		return Player{}, false
	}
	idx, ok := e.index[e.onBlock]
	if !ok {
		return Player{}, false
	}
	return e.players[idx], true
}

// normalizePlayers enforces the registry invariants on imported records.
func normalizePlayers(players []Player) ([]Player, error) {
	seen := make(map[int]bool, len(players))
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if p.ID <= 0 {
			return nil, reject(ErrInvalidPlayers, "player %q has no valid id", p.Name)
		}
		if seen[p.ID] {
			return nil, reject(ErrInvalidPlayers, "duplicate player id %d", p.ID)
		}
		seen[p.ID] = true
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, reject(ErrInvalidPlayers, "player %d has no name", p.ID)
		}
		if p.Team != "" && !slices.Contains(Teams, p.Team) {
			return nil, reject(ErrUnknownTeam, "player %s belongs to unknown team %q", p.Name, p.Team)
		}
		if p.Price < 0 {
			return nil, reject(ErrInvalidPrice, "player %s has a negative price", p.Name)
		}
		if !p.Sold() {
			p.Price = 0
			p.CaptainFor = ""
		}
		out = append(out, p)
	}
	return out, nil
}
