package jwtx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	keys, err := GenerateKeypair()
	require.NoError(t, err)

	signer, err := NewSigner(keys)
	require.NoError(t, err)
	verifier, err := NewVerifier(keys, "doorman")
	require.NoError(t, err)

	claims := NewSessionClaims(
		"user-1", "session-1", "alice", true,
		"doorman", time.Hour, time.Now(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", parsed.Subject)
	require.Equal(t, "session-1", parsed.SID)
	require.Equal(t, "alice", parsed.Username)
	require.True(t, parsed.Admin)
	require.NoError(t, parsed.ValidateExpiry())
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	t.Parallel()

	keysA, err := GenerateKeypair()
	require.NoError(t, err)
	keysB, err := GenerateKeypair()
	require.NoError(t, err)

	signer, err := NewSigner(keysA)
	require.NoError(t, err)
	verifier, err := NewVerifier(keysB, "doorman")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims(
		"user-1", "session-1", "alice", false,
		"doorman", time.Hour, time.Now(),
	))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	keys, err := GenerateKeypair()
	require.NoError(t, err)

	signer, err := NewSigner(keys)
	require.NoError(t, err)
	verifier, err := NewVerifier(keys, "doorman")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims(
		"user-1", "session-1", "alice", false,
		"doorman", time.Hour, time.Now().Add(-2*time.Hour),
	))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	keys, err := GenerateKeypair()
	require.NoError(t, err)

	signer, err := NewSigner(keys)
	require.NoError(t, err)
	verifier, err := NewVerifier(keys, "doorman")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims(
		"user-1", "session-1", "alice", false,
		"somebody-else", time.Hour, time.Now(),
	))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestKeypairPEMRoundTrip(t *testing.T) {
	t.Parallel()

	keys, err := GenerateKeypair()
	require.NoError(t, err)

	pemBytes, err := keys.EncodePEM()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "session.key")
	require.NoError(t, os.WriteFile(path, pemBytes, 0o600))

	loaded, err := LoadKeypair(path)
	require.NoError(t, err)
	require.Equal(t, keys.Private, loaded.Private)
	require.Equal(t, keys.Public, loaded.Public)
}

func TestLoadKeypairRejectsGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.key")
	require.NoError(t, os.WriteFile(path, []byte("not a pem"), 0o600))

	_, err := LoadKeypair(path)
	require.Error(t, err)
}
