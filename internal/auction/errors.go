package auction

import "fmt"

// Kind identifies why the engine refused an operation.
type Kind string

const (
	KindStaleSelection    Kind = "stale_selection"
	KindSquadFull         Kind = "squad_full"
	KindInsufficientFunds Kind = "insufficient_funds"
	KindBelowBasePrice    Kind = "below_base_price"
	KindQuotaViolation    Kind = "quota_violation"
	KindEmptyPool         Kind = "empty_pool"
	KindAuctionComplete   Kind = "auction_complete"
	KindUnauthorized      Kind = "unauthorized"
	KindUnknownPlayer     Kind = "unknown_player"
	KindUnknownTeam       Kind = "unknown_team"
	KindNotSold           Kind = "not_sold"
	KindInvalidRules      Kind = "invalid_rules"
	KindInvalidPrice      Kind = "invalid_price"
	KindUnknownSport      Kind = "unknown_sport"
	KindInvalidPlayers    Kind = "invalid_players"
)

// Rejection is a recoverable, user-facing refusal. A rejected operation never
// mutates engine state.
type Rejection struct {
	Kind   Kind
	Reason string

	// Set for KindInsufficientFunds.
	MaxBid int
	// Set for KindQuotaViolation.
	Sport Sport
	Grade Grade
	Limit int
}

func (r *Rejection) Error() string {
	if r.Reason == "" {
		return string(r.Kind)
	}
	return r.Reason
}

// Is matches rejections by kind so callers can use errors.Is with the sentinels below.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Kind == r.Kind
}

var (
	ErrStaleSelection    = &Rejection{Kind: KindStaleSelection}
	ErrSquadFull         = &Rejection{Kind: KindSquadFull}
	ErrInsufficientFunds = &Rejection{Kind: KindInsufficientFunds}
	ErrBelowBasePrice    = &Rejection{Kind: KindBelowBasePrice}
	ErrQuotaViolation    = &Rejection{Kind: KindQuotaViolation}
	ErrEmptyPool         = &Rejection{Kind: KindEmptyPool}
	ErrAuctionComplete   = &Rejection{Kind: KindAuctionComplete}
	ErrUnauthorized      = &Rejection{Kind: KindUnauthorized}
	ErrUnknownPlayer     = &Rejection{Kind: KindUnknownPlayer}
	ErrUnknownTeam       = &Rejection{Kind: KindUnknownTeam}
	ErrNotSold           = &Rejection{Kind: KindNotSold}
	ErrInvalidRules      = &Rejection{Kind: KindInvalidRules}
	ErrInvalidPrice      = &Rejection{Kind: KindInvalidPrice}
	ErrUnknownSport      = &Rejection{Kind: KindUnknownSport}
	ErrInvalidPlayers    = &Rejection{Kind: KindInvalidPlayers}
)

func reject(sentinel *Rejection, format string, args ...any) *Rejection {
	return &Rejection{Kind: sentinel.Kind, Reason: fmt.Sprintf(format, args...)}
}
