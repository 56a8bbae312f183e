package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mauv0809/player-auction/internal/auction"
)

func scanPlayer(scanner interface{ Scan(...any) error }) (auction.Player, error) {
	var p auction.Player
	var cricket, badminton, tt, team, captain string
	err := scanner.Scan(&p.ID, &p.Name, &cricket, &badminton, &tt, &team, &p.Price, &captain, &p.ContactNo)
	if err != nil {
		return auction.Player{}, err
	}
	p.Cricket = auction.ParseGrade(cricket)
	p.Badminton = auction.ParseGrade(badminton)
	p.TT = auction.ParseGrade(tt)
	p.Team = auction.Team(team)
	p.CaptainFor = auction.Sport(captain)
	return p, nil
}

func scanActivity(scanner interface{ Scan(...any) error }) (auction.ActivityEntry, error) {
	var entry auction.ActivityEntry
	var createdAt int64
	var category string
	if err := scanner.Scan(&entry.ID, &createdAt, &category, &entry.Message); err != nil {
		return auction.ActivityEntry{}, err
	}
	entry.Time = time.Unix(0, createdAt).UTC()
	entry.Category = auction.Category(category)
	return entry, nil
}

// rulesToRows flattens rules into auction_config key/value pairs.
func rulesToRows(rules auction.Rules) (map[string]string, error) {
	limits, err := json.Marshal(rules.CategoryLimits)
	if err != nil {
		return nil, fmt.Errorf("failed to encode category limits: %w", err)
	}
	return map[string]string{
		keyPurseLimit:     strconv.Itoa(rules.PurseLimit),
		keyMaxSquadSize:   strconv.Itoa(rules.MaxSquadSize),
		keyBasePrice:      strconv.Itoa(rules.BasePrice),
		keyCategoryLimits: string(limits),
	}, nil
}

// rulesFromRows rebuilds rules from auction_config. A stored category table
// replaces the default one as a whole. Missing keys fall back to the defaults
// so older databases keep loading.
func rulesFromRows(rows map[string]string) (auction.Rules, error) {
	rules := auction.DefaultRules()
	ints := map[string]*int{
		keyPurseLimit:   &rules.PurseLimit,
		keyMaxSquadSize: &rules.MaxSquadSize,
		keyBasePrice:    &rules.BasePrice,
	}
	for key, dst := range ints {
		raw, ok := rows[key]
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return auction.Rules{}, fmt.Errorf("invalid %s %q: %w", key, raw, err)
		}
		*dst = v
	}
	if raw, ok := rows[keyCategoryLimits]; ok {
		limits := make(map[auction.Sport]auction.GradeLimits)
		if err := json.Unmarshal([]byte(raw), &limits); err != nil {
			return auction.Rules{}, fmt.Errorf("invalid %s: %w", keyCategoryLimits, err)
		}
		rules.CategoryLimits = limits
	}
	return rules.Normalize()
}
