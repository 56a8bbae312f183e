package auction

import (
	"strings"
	"time"
)

// Sport is one of the disciplines a player can be graded in.
type Sport string

const (
	SportCricket   Sport = "Cricket"
	SportBadminton Sport = "Badminton"
	SportTT        Sport = "TT"
)

// Sports lists every sport in the order quota checks are evaluated.
var Sports = []Sport{SportCricket, SportBadminton, SportTT}

// ParseSport resolves a sport name case-insensitively.
func ParseSport(s string) (Sport, bool) {
	for _, sport := range Sports {
		if strings.EqualFold(strings.TrimSpace(s), string(sport)) {
			return sport, true
		}
	}
	return "", false
}

// Grade is a per-sport skill tier.
type Grade uint8

const (
	GradeNone Grade = iota
	GradeA
	GradeB
	GradeC
)

// Grades lists the grades that count towards quotas.
var Grades = []Grade{GradeA, GradeB, GradeC}

// ParseGrade coerces any input to a grade. Anything that is not A, B or C
// (blank, "0", "none", typos) means the player does not take part.
func ParseGrade(s string) Grade {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return GradeA
	case "B":
		return GradeB
	case "C":
		return GradeC
	default:
		return GradeNone
	}
}

func (g Grade) String() string {
	switch g {
	case GradeA:
		return "A"
	case GradeB:
		return "B"
	case GradeC:
		return "C"
	default:
		return "0"
	}
}

func (g Grade) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	*g = ParseGrade(string(text))
	return nil
}

// Team is one of the fixed franchises taking part in the auction.
type Team string

// Teams are fixed for the lifetime of the process.
var Teams = []Team{
	"Aditya Avengers",
	"Alfen Royals",
	"Lantern Legends",
	"Primark Superkings",
	"Sai Kripa Soldiers",
	"Taluka Fighters",
}

// ParseTeam resolves a team name case-insensitively.
func ParseTeam(s string) (Team, bool) {
	for _, team := range Teams {
		if strings.EqualFold(strings.TrimSpace(s), string(team)) {
			return team, true
		}
	}
	return "", false
}

// Player is a single entry in the registry. A player is sold iff Team is set.
type Player struct {
	ID         int    `json:"id" msgpack:"id"`
	Name       string `json:"name" msgpack:"name"`
	Cricket    Grade  `json:"cricket" msgpack:"cricket"`
	Badminton  Grade  `json:"badminton" msgpack:"badminton"`
	TT         Grade  `json:"tt" msgpack:"tt"`
	Team       Team   `json:"team,omitempty" msgpack:"team"`
	Price      int    `json:"price" msgpack:"price"`
	CaptainFor Sport  `json:"captain_for,omitempty" msgpack:"captain_for"`
	ContactNo  string `json:"contact_no,omitempty" msgpack:"contact_no"`
}

// Sold reports whether the player belongs to a team.
func (p Player) Sold() bool {
	return p.Team != ""
}

// GradeFor returns the player's grade in the given sport.
func (p Player) GradeFor(sport Sport) Grade {
	switch sport {
	case SportCricket:
		return p.Cricket
	case SportBadminton:
		return p.Badminton
	case SportTT:
		return p.TT
	default:
		return GradeNone
	}
}

// Plays reports whether the player takes part in the given sport.
func (p Player) Plays(sport Sport) bool {
	return p.GradeFor(sport) != GradeNone
}

// GradeLimits holds one quota value per grade.
type GradeLimits struct {
	A int `json:"A" yaml:"A"`
	B int `json:"B" yaml:"B"`
	C int `json:"C" yaml:"C"`
}

// For returns the limit for a grade. GradeNone has no limit.
func (l GradeLimits) For(g Grade) int {
	switch g {
	case GradeA:
		return l.A
	case GradeB:
		return l.B
	case GradeC:
		return l.C
	default:
		return 0
	}
}

// Rules are the tournament settings every sale is validated against.
type Rules struct {
	PurseLimit     int                   `json:"purse_limit" yaml:"purse_limit"`
	MaxSquadSize   int                   `json:"max_squad_size" yaml:"max_squad_size"`
	BasePrice      int                   `json:"base_price" yaml:"base_price"`
	CategoryLimits map[Sport]GradeLimits `json:"category_limits" yaml:"category_limits"`
}

// DefaultRules returns the settings used when nothing has been configured.
func DefaultRules() Rules {
	return Rules{
		PurseLimit:   10000,
		MaxSquadSize: 25,
		BasePrice:    10,
		CategoryLimits: map[Sport]GradeLimits{
			SportCricket:   {A: 5, B: 5, C: 5},
			SportBadminton: {A: 5, B: 5, C: 5},
			SportTT:        {A: 5, B: 5, C: 5},
		},
	}
}

// Limit returns the fair-play quota for a sport and grade.
func (r Rules) Limit(sport Sport, grade Grade) int {
	return r.CategoryLimits[sport].For(grade)
}

// Validate rejects negative settings.
func (r Rules) Validate() error {
	if r.PurseLimit < 0 || r.MaxSquadSize < 0 || r.BasePrice < 0 {
		return reject(ErrInvalidRules, "purse limit, squad size and base price must not be negative")
	}
	for sport, limits := range r.CategoryLimits {
		if _, ok := ParseSport(string(sport)); !ok {
			return reject(ErrInvalidRules, "unknown sport %q in category limits", sport)
		}
		if limits.A < 0 || limits.B < 0 || limits.C < 0 {
			return reject(ErrInvalidRules, "category limits for %s must not be negative", sport)
		}
	}
	return nil
}

// Normalize validates the rules and returns a copy whose category table has
// one canonical key per sport. Sports missing from the table get the default
// limits, so the saved table is always complete.
func (r Rules) Normalize() (Rules, error) {
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	out := r
	out.CategoryLimits = make(map[Sport]GradeLimits, len(Sports))
	for key, limits := range r.CategoryLimits {
		sport, _ := ParseSport(string(key))
		if _, dup := out.CategoryLimits[sport]; dup {
			return Rules{}, reject(ErrInvalidRules, "sport %s appears more than once in category limits", sport)
		}
		out.CategoryLimits[sport] = limits
	}
	defaults := DefaultRules().CategoryLimits
	for _, sport := range Sports {
		if _, ok := out.CategoryLimits[sport]; !ok {
			out.CategoryLimits[sport] = defaults[sport]
		}
	}
	return out, nil
}

func (r Rules) clone() Rules {
	out := r
	out.CategoryLimits = make(map[Sport]GradeLimits, len(r.CategoryLimits))
	for sport, limits := range r.CategoryLimits {
		out.CategoryLimits[sport] = limits
	}
	return out
}

// Category classifies activity log entries.
type Category string

const (
	CategorySale       Category = "sale"
	CategoryCaptain    Category = "captain"
	CategoryCorrection Category = "correction"
	CategoryRevert     Category = "revert"
)

// ActivityEntry is a single line of the audit trail.
type ActivityEntry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Category Category  `json:"category"`
	Message  string    `json:"message"`
}

// Summary holds the headline numbers shown on the dashboard.
type Summary struct {
	TotalSold      int     `json:"total_sold"`
	RemainingSlots int     `json:"remaining_slots"`
	HighestPrice   int     `json:"highest_price"`
	Unsold         int     `json:"unsold"`
	OnBlock        *Player `json:"on_block,omitempty"`
}

// Filter narrows the selection pool. Zero values mean "any".
type Filter struct {
	Sport Sport
	Grade Grade
}
