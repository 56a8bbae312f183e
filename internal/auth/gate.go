// Package auth guards admin-only auction operations behind a shared passphrase.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer  = "player-auction"
	subject = "admin"

	// DefaultTTL is how long an admin session lasts.
	DefaultTTL = 12 * time.Hour
)

var (
	ErrInvalidPassphrase = errors.New("invalid passphrase")
	ErrInvalidToken      = errors.New("invalid or expired token")
)

// Gate checks the admin passphrase and issues signed session tokens.
type Gate struct {
	hash   []byte
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewGate creates a gate. passphrase may be plain text or an existing bcrypt
// hash. A zero ttl uses DefaultTTL.
func NewGate(passphrase, secret string, ttl time.Duration, clock clockwork.Clock) (*Gate, error) {
	if passphrase == "" {
		return nil, errors.New("admin passphrase must not be empty")
	}
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	var hash []byte
	if strings.HasPrefix(passphrase, "$2") {
		if _, err := bcrypt.Cost([]byte(passphrase)); err != nil {
			return nil, fmt.Errorf("admin passphrase looks like a bcrypt hash but is invalid: %w", err)
		}
		hash = []byte(passphrase)
	} else {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin passphrase: %w", err)
		}
	}
	return &Gate{hash: hash, secret: []byte(secret), ttl: ttl, clock: clock}, nil
}

// Login exchanges the passphrase for a token.
func (g *Gate) Login(passphrase string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(passphrase)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Warn("Admin login failed")
			return "", time.Time{}, ErrInvalidPassphrase
		}
		return "", time.Time{}, fmt.Errorf("failed to check passphrase: %w", err)
	}

	now := g.clock.Now()
	expires := now.Add(g.ttl)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	log.Info("Admin logged in", "expires", expires)
	return token, expires, nil
}

// Verify checks a token's signature and expiry against the gate's clock.
func (g *Gate) Verify(token string) error {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(g.clock.Now(), true) || !claims.VerifyIssuer(issuer, true) || claims.Subject != subject {
		return ErrInvalidToken
	}
	return nil
}

// Authorized reports whether a bearer token grants admin rights.
func (g *Gate) Authorized(token string) bool {
	return token != "" && g.Verify(token) == nil
}
