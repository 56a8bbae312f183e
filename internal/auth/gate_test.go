package auth_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/player-auction/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGate_LoginAndVerify(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gate, err := auth.NewGate("gavel", "secret", time.Hour, clock)
	require.NoError(t, err)

	_, _, err = gate.Login("hammer")
	assert.ErrorIs(t, err, auth.ErrInvalidPassphrase)

	token, expires, err := gate.Login("gavel")
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(time.Hour), expires)
	assert.True(t, gate.Authorized(token))

	clock.Advance(59 * time.Minute)
	assert.NoError(t, gate.Verify(token))

	clock.Advance(2 * time.Minute)
	assert.ErrorIs(t, gate.Verify(token), auth.ErrInvalidToken, "token expires on the gate's clock")
	assert.False(t, gate.Authorized(token))
}

func TestGate_RejectsForeignTokens(t *testing.T) {
	clock := clockwork.NewFakeClock()
	gate, err := auth.NewGate("gavel", "secret", time.Hour, clock)
	require.NoError(t, err)
	other, err := auth.NewGate("gavel", "another-secret", time.Hour, clock)
	require.NoError(t, err)

	token, _, err := other.Login("gavel")
	require.NoError(t, err)
	assert.ErrorIs(t, gate.Verify(token), auth.ErrInvalidToken)
	assert.False(t, gate.Authorized(""))
	assert.False(t, gate.Authorized("not.a.token"))
}

func TestNewGate_AcceptsBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("gavel"), bcrypt.MinCost)
	require.NoError(t, err)

	gate, err := auth.NewGate(string(hash), "secret", 0, nil)
	require.NoError(t, err)
	_, _, err = gate.Login("gavel")
	assert.NoError(t, err)

	_, err = auth.NewGate("", "secret", 0, nil)
	assert.Error(t, err)
	_, err = auth.NewGate("gavel", "", 0, nil)
	assert.Error(t, err)
	_, err = auth.NewGate("$2a$broken", "secret", 0, nil)
	assert.Error(t, err)
}
