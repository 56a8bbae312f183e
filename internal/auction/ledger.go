package auction

// GradeCounts holds sold-player counts per grade within one sport.
type GradeCounts struct {
	A int `json:"A"`
	B int `json:"B"`
	C int `json:"C"`
}

// For returns the count for a grade.
func (c GradeCounts) For(g Grade) int {
	switch g {
	case GradeA:
		return c.A
	case GradeB:
		return c.B
	case GradeC:
		return c.C
	default:
		return 0
	}
}

func (c *GradeCounts) add(g Grade) {
	switch g {
	case GradeA:
		c.A++
	case GradeB:
		c.B++
	case GradeC:
		c.C++
	}
}

// LedgerEntry is the derived financial and category position of one team.
type LedgerEntry struct {
	Team      Team `json:"team"`
	Count     int  `json:"count"`
	Spent     int  `json:"spent"`
	Available int  `json:"available"`
	// Reserve is earmarked so every empty slot can still be filled at base price.
	Reserve int `json:"reserve"`
	// Disposable is what the team may commit to its very next purchase.
	Disposable int                   `json:"disposable"`
	Grades     map[Sport]GradeCounts `json:"grades"`
	// Sports counts squad members taking part in each sport at any grade.
	Sports map[Sport]int `json:"sports"`
}

// MaxBid is the highest price the team may pay for its next player. The extra
// base price is the reserve released by the slot this purchase fills.
func (e LedgerEntry) MaxBid(rules Rules) int {
	return e.Disposable + rules.BasePrice
}

// GradeCount returns the number of sold players of this team at the given grade in a sport.
func (e LedgerEntry) GradeCount(sport Sport, grade Grade) int {
	return e.Grades[sport].For(grade)
}

// Ledger has one entry per team, in Teams order.
type Ledger []LedgerEntry

// Team returns the entry for a team.
func (l Ledger) Team(team Team) (LedgerEntry, bool) {
	for _, entry := range l {
		if entry.Team == team {
			return entry, true
		}
	}
	return LedgerEntry{}, false
}

// Eligible returns the teams that have a free slot and can still pay base price.
func (l Ledger) Eligible(rules Rules) []LedgerEntry {
	var out []LedgerEntry
	for _, entry := range l {
		if entry.Count < rules.MaxSquadSize && entry.MaxBid(rules) >= rules.BasePrice {
			out = append(out, entry)
		}
	}
	return out
}

// ComputeLedger derives every team's position from the player set. It is a pure
// function of its inputs and must be recomputed after every mutation.
func ComputeLedger(players []Player, rules Rules) Ledger {
	index := make(map[Team]int, len(Teams))
	ledger := make(Ledger, len(Teams))
	for i, team := range Teams {
		index[team] = i
		ledger[i] = LedgerEntry{
			Team:   team,
			Grades: make(map[Sport]GradeCounts, len(Sports)),
			Sports: make(map[Sport]int, len(Sports)),
		}
		for _, sport := range Sports {
			ledger[i].Grades[sport] = GradeCounts{}
			ledger[i].Sports[sport] = 0
		}
	}

	for _, p := range players {
		i, ok := index[p.Team]
		if !ok {
			continue
		}
		entry := &ledger[i]
		entry.Count++
		entry.Spent += p.Price
		for _, sport := range Sports {
			grade := p.GradeFor(sport)
			if grade == GradeNone {
				continue
			}
			counts := entry.Grades[sport]
			counts.add(grade)
			entry.Grades[sport] = counts
			entry.Sports[sport]++
		}
	}

	for i := range ledger {
		entry := &ledger[i]
		entry.Available = rules.PurseLimit - entry.Spent
		entry.Reserve = max(0, rules.MaxSquadSize-entry.Count) * rules.BasePrice
		entry.Disposable = entry.Available - entry.Reserve
	}
	return ledger
}
