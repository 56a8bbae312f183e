package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/player-auction/internal/auction"
)

// Reader is the read side of the auction engine.
type Reader interface {
	Ledger() auction.Ledger
	Summary() auction.Summary
	Rules() auction.Rules
	Players() []auction.Player
	Pool(f auction.Filter) []auction.Player
	Roster(team auction.Team) []auction.Player
	Activity() []auction.ActivityEntry
	OnBlock() (auction.Player, bool)
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// ParseFilter reads sport and grade from strings. Empty or "any" means no
// constraint; an unknown sport is an error.
func ParseFilter(sport, grade string) (auction.Filter, bool) {
	var f auction.Filter
	if s := strings.TrimSpace(sport); s != "" && !strings.EqualFold(s, "any") {
		parsed, ok := auction.ParseSport(s)
		if !ok {
			return auction.Filter{}, false
		}
		f.Sport = parsed
	}
	f.Grade = auction.ParseGrade(grade)
	return f, true
}
