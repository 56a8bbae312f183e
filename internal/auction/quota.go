package auction

import "fmt"

// checkQuota applies the fair-play rule for every sport the player takes part in.
// Reaching a limit only blocks a team while some other team is still below it;
// once every team has caught up the limit stops constraining anyone.
func checkQuota(ledger Ledger, rules Rules, team Team, p Player) error {
	entry, ok := ledger.Team(team)
	if !ok {
		return reject(ErrUnknownTeam, "unknown team %q", team)
	}
	for _, sport := range Sports {
		grade := p.GradeFor(sport)
		if grade == GradeNone {
			continue
		}
		limit := rules.Limit(sport, grade)
		current := entry.GradeCount(sport, grade)
		if current < limit {
			continue
		}
		for _, other := range ledger {
			if other.Team == team {
				continue
			}
			if other.GradeCount(sport, grade) < limit {
				return &Rejection{
					Kind:   KindQuotaViolation,
					Reason: fmt.Sprintf("fair-play quota: %s has %d %s grade %s player(s), limit is %d until every team reaches it", team, current, sport, grade, limit),
					Sport:  sport,
					Grade:  grade,
					Limit:  limit,
				}
			}
		}
	}
	return nil
}
