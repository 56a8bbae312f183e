package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/auth"
	"github.com/mauv0809/player-auction/internal/http/handlers"
	"github.com/mauv0809/player-auction/internal/importer"
)

// maxImportSize caps uploaded registry files.
const maxImportSize = 10 << 20

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		token, expires, err := s.Gate.Login(req.Passphrase)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidPassphrase) {
				log.Warn("Admin login failed")
				handlers.WriteJSON(w, http.StatusUnauthorized, errorResponse{Kind: auction.KindUnauthorized, Error: err.Error()})
				return
			}
			writeError(w, err)
			return
		}
		log.Info("Admin logged in", "expires", expires)
		handlers.WriteJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
	}
}

func (s *Server) SpinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectRequest
		if !decodeOptional(w, r, &req) {
			return
		}
		f, ok := handlers.ParseFilter(req.Sport, req.Grade)
		if !ok {
			writeError(w, &auction.Rejection{Kind: auction.KindUnknownSport, Reason: "unknown sport " + req.Sport})
			return
		}
		p, err := s.Auctioneer.Spin(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, p)
	}
}

func (s *Server) SearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			badRequest(w, "name is required")
			return
		}
		p, err := s.Auctioneer.Search(r.Context(), req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, p)
	}
}

func (s *Server) PassHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Auctioneer.Pass(isAuthorizedFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) SellHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		dryRun := isDryRunFromContext(r)
		p, err := s.Auctioneer.Sell(r.Context(), req.PlayerID, resolveTeam(req.Team), req.Price, isAuthorizedFromContext(r), dryRun)
		if err != nil {
			writeError(w, err)
			return
		}
		if dryRun {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, p)
	}
}

func (s *Server) CaptainHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		sport, ok := auction.ParseSport(req.Sport)
		if !ok {
			sport = auction.Sport(req.Sport)
		}
		p, err := s.Auctioneer.AssignCaptain(r.Context(), req.PlayerID, resolveTeam(req.Team), sport, req.Price, isAuthorizedFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, p)
	}
}

func (s *Server) RevertHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		p, err := s.Auctioneer.Revert(r.Context(), req.PlayerID, isAuthorizedFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, p)
	}
}

// ImportHandler accepts either a multipart upload in the "file" field or a raw
// CSV body.
func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isAuthorizedFromContext(r) {
			writeError(w, auction.ErrUnauthorized)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
		var src io.Reader = r.Body
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			file, _, err := r.FormFile("file")
			if err != nil {
				badRequest(w, "missing file field")
				return
			}
			defer file.Close()
			src = file
		}
		players, err := importer.Read(src)
		if err != nil {
			log.Warn("Import failed", "error", err)
			writeError(w, &auction.Rejection{Kind: auction.KindInvalidPlayers, Reason: err.Error()})
			return
		}
		if err := s.Auctioneer.Import(players, true); err != nil {
			writeError(w, err)
			return
		}
		log.Info("Registry imported", "players", len(players))
		handlers.WriteJSON(w, http.StatusOK, s.Engine.Summary())
	}
}

func (s *Server) SetRulesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rules auction.Rules
		if err := json.NewDecoder(r.Body).Decode(&rules); err != nil {
			badRequest(w, "invalid rules")
			return
		}
		if err := s.Auctioneer.SetRules(rules, isAuthorizedFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		handlers.WriteJSON(w, http.StatusOK, s.Engine.Rules())
	}
}

func (s *Server) ResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Auctioneer.Reset(r.Context(), isAuthorizedFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		log.Info("Auction reset")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) NotifyStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Auctioneer.NotifyStandings(r.Context(), isAuthorizedFromContext(r), isDryRunFromContext(r)); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// resolveTeam matches a team name case-insensitively and otherwise passes it
// through so the engine can reject it.
func resolveTeam(name string) auction.Team {
	if team, ok := auction.ParseTeam(name); ok {
		return team
	}
	return auction.Team(name)
}

// decodeOptional decodes a JSON body when one is present.
func decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	badRequest(w, "invalid request body")
	return false
}
