package auction

// Store persists engine state. The engine calls it inside its critical section,
// before changing memory, so a failed write leaves both sides untouched.
type Store interface {
	LoadPlayers() ([]Player, error)
	ReplacePlayers(players []Player) error
	// RecordTransition saves one player's new state together with its audit entry.
	RecordTransition(player Player, entry ActivityEntry, keep int) error
	AppendActivity(entry ActivityEntry, keep int) error
	LoadRules() (*Rules, error)
	SaveRules(rules Rules) error
	LoadActivity(limit int) ([]ActivityEntry, error)
	Clear() error
}

// nopStore keeps everything in memory only.
type nopStore struct{}

func (nopStore) LoadPlayers() ([]Player, error)                    { return nil, nil }
func (nopStore) ReplacePlayers([]Player) error                     { return nil }
func (nopStore) RecordTransition(Player, ActivityEntry, int) error { return nil }
func (nopStore) AppendActivity(ActivityEntry, int) error           { return nil }
func (nopStore) LoadRules() (*Rules, error)                        { return nil, nil }
func (nopStore) SaveRules(Rules) error                             { return nil }
func (nopStore) LoadActivity(int) ([]ActivityEntry, error)         { return nil, nil }
func (nopStore) Clear() error                                      { return nil }
