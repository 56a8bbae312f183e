package auction

import (
	"fmt"
	"strings"
)

// Matches reports whether a player falls inside the filter. With no sport set, a
// grade filter matches a player holding that grade in any sport.
func (f Filter) Matches(p Player) bool {
	switch {
	case f.Sport == "" && f.Grade == GradeNone:
		return true
	case f.Sport == "":
		for _, sport := range Sports {
			if p.GradeFor(sport) == f.Grade {
				return true
			}
		}
		return false
	case f.Grade == GradeNone:
		return p.Plays(f.Sport)
	default:
		return p.GradeFor(f.Sport) == f.Grade
	}
}

func (f Filter) String() string {
	sport, grade := "any sport", "any grade"
	if f.Sport != "" {
		sport = string(f.Sport)
	}
	if f.Grade != GradeNone {
		grade = "grade " + f.Grade.String()
	}
	return fmt.Sprintf("%s, %s", sport, grade)
}

// pool returns the unsold players matching the filter. The second result is the
// total number of unsold players, used to tell an exhausted auction apart from
// a filter with no match.
func pool(players []Player, f Filter) ([]Player, int) {
	var out []Player
	unsold := 0
	for _, p := range players {
		if p.Sold() {
			continue
		}
		unsold++
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out, unsold
}

// Spin draws a random unsold player matching the filter and puts it on the block.
func (e *Engine) Spin(f Filter) (Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	candidates, unsold := pool(e.players, f)
	if unsold == 0 {
		return Player{}, reject(ErrAuctionComplete, "auction complete: every player has been sold")
	}
	if len(candidates) == 0 {
		return Player{}, reject(ErrEmptyPool, "no unsold players match %s", f)
	}
	chosen := candidates[e.intn(len(candidates))]
	e.putOnBlock(chosen.ID)
	return chosen, nil
}

// Search puts the unsold player with exactly this name on the block.
func (e *Engine) Search(name string) (Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	name = strings.TrimSpace(name)
	_, unsold := pool(e.players, Filter{})
	if unsold == 0 {
		return Player{}, reject(ErrAuctionComplete, "auction complete: every player has been sold")
	}
	for _, p := range e.players {
		if p.Name != name {
			continue
		}
		if p.Sold() {
			return Player{}, reject(ErrStaleSelection, "%s has already been sold to %s", p.Name, p.Team)
		}
		e.putOnBlock(p.ID)
		return p, nil
	}
	return Player{}, reject(ErrEmptyPool, "no unsold player named %q", name)
}

// Pool lists the unsold players matching the filter without touching the block.
func (e *Engine) Pool(f Filter) []Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	candidates, _ := pool(e.players, f)
	return candidates
}
