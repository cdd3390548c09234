package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// Signer turns claims into signed token strings.
type Signer interface {
	Sign(claims Claims) (string, error)
}

// EdDSASigner signs session tokens with Ed25519.
type EdDSASigner struct {
	keys Keypair
}

func NewSigner(keys Keypair) (*EdDSASigner, error) {
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	return &EdDSASigner{keys: keys}, nil
}

func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return t.SignedString(s.keys.Private)
}
