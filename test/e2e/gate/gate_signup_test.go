package gate_test

import (
	"net/http"
	"testing"

	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/stretchr/testify/require"
)

func TestSignupFlow(t *testing.T) {
	baseURL, stub := setupGateContainer(t)
	client := gatesdk.NewSDKClient(baseURL)

	admin := loginAdmin(t, client)

	t.Run("admin mints and invitee registers", func(t *testing.T) {
		invite, err := admin.CreateInvite(t.Context())
		require.NoError(t, err)
		require.NotEmpty(t, invite.Code)

		// The code is publicly checkable before registration.
		preview, err := client.InviteByCode(t.Context(), invite.Code)
		require.NoError(t, err)
		require.False(t, preview.Used)

		session, err := client.Register(t.Context(), "alice", "Password1!", invite.Code)
		require.NoError(t, err)
		require.Equal(t, "alice", session.User().Username)
		require.False(t, session.User().IsAdmin)
		require.Equal(t, 5, session.User().InviteCount)

		// The account landed on the media server.
		stub.mu.Lock()
		require.True(t, stub.users["alice"])
		stub.mu.Unlock()

		// And the code is spent.
		spent, err := client.InviteByCode(t.Context(), invite.Code)
		require.NoError(t, err)
		require.True(t, spent.Used)
	})

	t.Run("an invite is single-use", func(t *testing.T) {
		invite, err := admin.CreateInvite(t.Context())
		require.NoError(t, err)

		_, err = client.Register(t.Context(), "bob", "Password1!", invite.Code)
		require.NoError(t, err)

		_, err = client.Register(t.Context(), "mallory", "Password1!", invite.Code)
		assertAPIError(t, err, http.StatusBadRequest, gatesdk.ErrorCodeInvalidInvite)
	})

	t.Run("unknown invite code is rejected", func(t *testing.T) {
		_, err := client.Register(t.Context(), "carol", "Password1!", "NOPE1234")
		assertAPIError(t, err, http.StatusBadRequest, gatesdk.ErrorCodeInvalidInvite)
	})

	t.Run("duplicate usernames are rejected", func(t *testing.T) {
		invite, err := admin.CreateInvite(t.Context())
		require.NoError(t, err)

		_, err = client.Register(t.Context(), "alice", "Password1!", invite.Code)
		assertAPIError(t, err, http.StatusBadRequest, gatesdk.ErrorCodeUsernameTaken)

		// The failed attempt must not burn the invite.
		preview, err := client.InviteByCode(t.Context(), invite.Code)
		require.NoError(t, err)
		require.False(t, preview.Used)
	})

	t.Run("allowance shrinks down the invite chain", func(t *testing.T) {
		alice, err := client.Login(t.Context(), "alice", "Password1!")
		require.NoError(t, err)

		invite, err := alice.CreateInvite(t.Context())
		require.NoError(t, err)

		dave, err := client.Register(t.Context(), "dave", "Password1!", invite.Code)
		require.NoError(t, err)
		require.Equal(t, 4, dave.User().InviteCount)

		// Alice's own allowance dropped by one, visible on userinfo.
		info, err := alice.UserInfo(t.Context())
		require.NoError(t, err)
		require.Equal(t, 4, info.InviteCount)
		require.Contains(t, info.InvitedUsers, dave.User().ID)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := client.Login(t.Context(), "alice", "wrong")
		assertAPIError(t, err, http.StatusUnauthorized, gatesdk.ErrorCodeInvalidCredentials)
	})

	t.Run("logout revokes the token immediately", func(t *testing.T) {
		session, err := client.Login(t.Context(), "alice", "Password1!")
		require.NoError(t, err)

		_, err = session.UserInfo(t.Context())
		require.NoError(t, err)

		require.NoError(t, session.Logout(t.Context()))

		_, err = session.UserInfo(t.Context())
		require.Error(t, err)
		apiErr, ok := err.(*gatesdk.APIError)
		require.True(t, ok)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}

func TestInviteAllowanceExhaustion(t *testing.T) {
	baseURL, _ := setupGateContainer(t)
	client := gatesdk.NewSDKClient(baseURL)

	admin := loginAdmin(t, client)

	// Walk an invite chain down to zero: 5 -> 4 -> ... users at the end
	// of the chain cannot invite at all.
	session := registerViaAdminInvite(t, client, admin, "chain0", "Password1!")
	require.Equal(t, 5, session.User().InviteCount)

	invite, err := session.CreateInvite(t.Context())
	require.NoError(t, err)
	next, err := client.Register(t.Context(), "chain1", "Password1!", invite.Code)
	require.NoError(t, err)
	require.Equal(t, 4, next.User().InviteCount)

	// Spend chain1's full allowance.
	for range 4 {
		_, err := next.CreateInvite(t.Context())
		require.NoError(t, err)
	}
	_, err = next.CreateInvite(t.Context())
	assertAPIError(t, err, 403, gatesdk.ErrorCodeNoInvites)

	// The mints are all listed, unused.
	invites, err := next.MyInvites(t.Context())
	require.NoError(t, err)
	require.Len(t, invites, 4)
	for _, inv := range invites {
		require.False(t, inv.Used)
	}
}
