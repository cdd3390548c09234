package service

import (
	"context"
	"testing"
	"time"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/internal/gate/provision"
	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/internal/gate/store/drivers/sqlite"
	"github.com/nightowlmedia/doorman/pkg/cryptox"
	"github.com/nightowlmedia/doorman/pkg/idx"
	"github.com/nightowlmedia/doorman/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// stubProvisioner records calls and returns whatever error it is told to.
type stubProvisioner struct {
	err   error
	calls []string
}

func (p *stubProvisioner) CreateUser(_ context.Context, username, _ string) error {
	p.calls = append(p.calls, username)
	return p.err
}

var _ provision.Provisioner = (*stubProvisioner)(nil)

func newAuthService(t *testing.T, st store.Store, prov provision.Provisioner) (*AuthService, jwtx.Verifier) {
	t.Helper()

	keys, err := jwtx.GenerateKeypair()
	require.NoError(t, err)
	signer, err := jwtx.NewSigner(keys)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifier(keys, "doorman-test")
	require.NoError(t, err)

	return &AuthService{
		Store:       st,
		Provisioner: prov,
		Signer:      signer,
		Issuer:      "doorman-test",
		SessionTTL:  time.Hour,
	}, verifier
}

// sessionID extracts the server-side session ID a token references.
func sessionID(t *testing.T, v jwtx.Verifier, token string) string {
	t.Helper()

	claims, err := v.Verify(token)
	require.NoError(t, err)
	return claims.SID
}

func seedUser(t *testing.T, st store.Store, username, password string, admin bool, inviteCount int) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      admin,
		InviteCount:  inviteCount,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func seedInvite(t *testing.T, st store.Store, createdBy string) domain.Invite {
	t.Helper()

	code, err := cryptox.NewInviteCode()
	require.NoError(t, err)

	inv := domain.Invite{Code: code, CreatedBy: createdBy}
	require.NoError(t, st.Invites().CreateInvite(context.Background(), inv))
	return inv
}
