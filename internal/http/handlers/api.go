package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/importer"
)

// TeamView is a team's ledger position together with its squad.
type TeamView struct {
	auction.LedgerEntry
	MaxBid  int              `json:"max_bid"`
	Players []auction.Player `json:"players"`
}

// LedgerView is the ledger with each team's max bid and the teams still able to buy.
type LedgerView struct {
	Teams    []TeamView     `json:"teams"`
	Eligible []auction.Team `json:"eligible"`
}

func LedgerHandler(engine Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules := engine.Rules()
		ledger := engine.Ledger()
		view := LedgerView{Teams: make([]TeamView, 0, len(ledger)), Eligible: []auction.Team{}}
		for _, entry := range ledger {
			view.Teams = append(view.Teams, TeamView{LedgerEntry: entry, MaxBid: entry.MaxBid(rules)})
		}
		for _, entry := range ledger.Eligible(rules) {
			view.Eligible = append(view.Eligible, entry.Team)
		}
		WriteJSON(w, http.StatusOK, view)
	}
}

func SummaryHandler(engine Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, engine.Summary())
	}
}

// ListPlayersHandler lists the registry. With unsold=true it returns the
// selection pool narrowed by the sport and grade query parameters.
func ListPlayersHandler(engine Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("unsold") != "true" {
			WriteJSON(w, http.StatusOK, nonNil(engine.Players()))
			return
		}
		f, ok := ParseFilter(q.Get("sport"), q.Get("grade"))
		if !ok {
			http.Error(w, fmt.Sprintf("unknown sport %q", q.Get("sport")), http.StatusBadRequest)
			return
		}
		WriteJSON(w, http.StatusOK, nonNil(engine.Pool(f)))
	}
}

func TeamHandler(engine Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		team, ok := auction.ParseTeam(r.PathValue("team"))
		if !ok {
			http.Error(w, fmt.Sprintf("unknown team %q", r.PathValue("team")), http.StatusNotFound)
			return
		}
		entry, _ := engine.Ledger().Team(team)
		WriteJSON(w, http.StatusOK, TeamView{
			LedgerEntry: entry,
			MaxBid:      entry.MaxBid(engine.Rules()),
			Players:     nonNil(engine.Roster(team)),
		})
	}
}

func RulesHandler(engine Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, engine.Rules())
	}
}

func ActivityHandler(engine Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, engine.Activity())
	}
}

func CurrentHandler(engine Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := engine.OnBlock()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		WriteJSON(w, http.StatusOK, p)
	}
}

func ExportHandler(engine Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="auction_results.csv"`)
		if err := importer.Write(w, engine.Players()); err != nil {
			log.Error("Failed to export players", "error", err)
		}
	}
}

func nonNil(players []auction.Player) []auction.Player {
	if players == nil {
		return []auction.Player{}
	}
	return players
}
