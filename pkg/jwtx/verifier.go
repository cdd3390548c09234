package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates token strings and returns their parsed claims.
type Verifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// EdDSAVerifier validates tokens signed by the matching EdDSASigner.
type EdDSAVerifier struct {
	keys   Keypair
	issuer string
}

func NewVerifier(keys Keypair, issuer string) (*EdDSAVerifier, error) {
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	return &EdDSAVerifier{keys: keys, issuer: issuer}, nil
}

// Verify parses and validates the token signature, expiry and issuer.
func (v *EdDSAVerifier) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.keys.Public, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return nil, err
	}
	if claims.SID == "" {
		return nil, errors.New("jwtx: missing sid claim")
	}

	return claims, nil
}
