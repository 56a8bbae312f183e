package registry

import (
	"database/sql"
	"sync"
)

// store handles all database operations for the auction registry.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Keys of the auction_config table.
const (
	keyPurseLimit     = "purse_limit"
	keyMaxSquadSize   = "max_squad_size"
	keyBasePrice      = "base_price"
	keyCategoryLimits = "category_limits"
)
