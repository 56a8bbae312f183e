package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"players", "auction_config", "activity_log"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec("INSERT INTO players (id, name) VALUES (1, 'Asha')")
	require.NoError(t, err)

	require.NoError(t, migrate(db), "running migrations twice must be a no-op")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM players").Scan(&count))
	assert.Equal(t, 1, count)
}
