// Package jwtx signs and verifies the Ed25519 session tokens issued at
// login. Tokens are only half of the authentication story: the sid claim
// must still resolve to a live session row, so logout revokes immediately.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the default lifetime of a session token.
const DefaultSessionTTL = 7 * 24 * time.Hour

var (
	ErrIssuer  = errors.New("jwtx: unexpected issuer")
	ErrExpired = errors.New("jwtx: token expired")
)

// Claims are the session-token claims. Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims

	// SID is the server-side session identifier the token is bound to.
	SID string `json:"sid"`

	// Username of the authenticated user, for logging and display.
	Username string `json:"username,omitempty"`

	// Admin mirrors the user's administrator flag at login time. Handlers
	// treat it as a hint; admin-only services re-check the stored user.
	Admin bool `json:"admin,omitempty"`
}

// NewSessionClaims builds claims for a freshly created session.
func NewSessionClaims(
	userID, sid, username string,
	admin bool,
	issuer string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        sid,
		},
		SID:      sid,
		Username: username,
		Admin:    admin,
	}
}

// ValidateIssuer checks the issuer claim when an expected value is set.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry rejects tokens whose exp claim has passed. The parser
// already enforces this; handlers call it again before trusting cached
// claims that crossed a goroutine boundary.
func (c *Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil || time.Now().After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
