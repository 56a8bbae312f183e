package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/player-auction/internal/auction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"DB_NAME":          "auction.db",
		"ADMIN_PASSPHRASE": "hammer",
		"JWT_SECRET":       "s3cret",
		"ALLOWED_ORIGINS":  "http://projector.local, http://localhost:3000",
		"SLACK_BOT_TOKEN":  "xoxb-1",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := fromEnv(lookup)
	assert.Equal(t, "auction.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "auction-events", cfg.PubSub.Topic)
	assert.False(t, cfg.PubSub.Enabled())
	assert.False(t, cfg.Slack.Enabled(), "a token without a channel is not enough")
	assert.Equal(t, []string{"http://projector.local", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestParseRules(t *testing.T) {
	t.Run("json document with mixed-case sports", func(t *testing.T) {
		rules, err := ParseRules([]byte(`{
			"purse_limit": 1000,
			"max_squad_size": 5,
			"category_limits": {"cricket": {"A": 2, "B": 3, "C": 4}, "TT": {"A": 1, "B": 1, "C": 1}}
		}`))
		require.NoError(t, err)
		assert.Equal(t, 1000, rules.PurseLimit)
		assert.Equal(t, 5, rules.MaxSquadSize)
		assert.Equal(t, 10, rules.BasePrice, "missing fields keep their defaults")
		assert.Equal(t, 2, rules.Limit(auction.SportCricket, auction.GradeA))
		assert.Equal(t, 5, rules.Limit(auction.SportBadminton, auction.GradeA))
	})

	t.Run("yaml document", func(t *testing.T) {
		rules, err := ParseRules([]byte("base_price: 25\ncategory_limits:\n  Badminton:\n    A: 0\n    B: 2\n    C: 2\n"))
		require.NoError(t, err)
		assert.Equal(t, 25, rules.BasePrice)
		assert.Equal(t, 0, rules.Limit(auction.SportBadminton, auction.GradeA))
	})

	t.Run("rejects unknown sports and negative values", func(t *testing.T) {
		_, err := ParseRules([]byte(`category_limits: {chess: {A: 1}}`))
		assert.Error(t, err)
		_, err = ParseRules([]byte(`purse_limit: -5`))
		assert.ErrorIs(t, err, auction.ErrInvalidRules)
	})
}

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, auction.DefaultRules(), rules)

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("purse_limit: 7500\n"), 0o600))
	rules, err = LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 7500, rules.PurseLimit)

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
