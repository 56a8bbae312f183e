package registry

import "github.com/mauv0809/player-auction/internal/auction"

// Store persists the player registry, the tournament rules and the activity log.
type Store interface {
	auction.Store
	// Stats counts sold and unsold players without loading the registry.
	Stats() (sold int, unsold int, err error)
}
