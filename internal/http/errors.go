package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/mauv0809/player-auction/internal/http/handlers"
)

// statusFor maps a rejection kind to the HTTP status the API answers with.
func statusFor(kind auction.Kind) int {
	switch kind {
	case auction.KindUnauthorized:
		return http.StatusUnauthorized
	case auction.KindStaleSelection, auction.KindNotSold:
		return http.StatusConflict
	case auction.KindEmptyPool, auction.KindUnknownPlayer, auction.KindUnknownTeam:
		return http.StatusNotFound
	case auction.KindAuctionComplete:
		return http.StatusGone
	default:
		return http.StatusUnprocessableEntity
	}
}

// writeError answers with the rejection details when err is a rejection and a
// plain 500 otherwise.
func writeError(w http.ResponseWriter, err error) {
	var rej *auction.Rejection
	if !errors.As(err, &rej) {
		log.Error("Request failed", "error", err)
		handlers.WriteJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	resp := errorResponse{Kind: rej.Kind, Error: rej.Error()}
	switch rej.Kind {
	case auction.KindInsufficientFunds:
		resp.MaxBid = &rej.MaxBid
	case auction.KindQuotaViolation:
		resp.Sport = rej.Sport
		resp.Grade = rej.Grade.String()
		resp.Limit = &rej.Limit
	}
	log.Warn("Request rejected", "kind", rej.Kind, "reason", rej.Error())
	handlers.WriteJSON(w, statusFor(rej.Kind), resp)
}

func badRequest(w http.ResponseWriter, msg string) {
	handlers.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
