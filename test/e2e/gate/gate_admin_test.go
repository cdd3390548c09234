package gate_test

import (
	"net/http"
	"testing"

	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/stretchr/testify/require"
)

func TestAdminUserManagement(t *testing.T) {
	baseURL, _ := setupGateContainer(t)
	client := gatesdk.NewSDKClient(baseURL)

	admin := loginAdmin(t, client)
	alice := registerViaAdminInvite(t, client, admin, "alice", "Password1!")

	t.Run("admin lists every account", func(t *testing.T) {
		users, err := admin.Users(t.Context())
		require.NoError(t, err)
		require.Len(t, users, 2)

		names := map[string]bool{}
		for _, u := range users {
			names[u.Username] = true
		}
		require.True(t, names[adminUsername])
		require.True(t, names["alice"])
	})

	t.Run("non-admin cannot list accounts", func(t *testing.T) {
		_, err := alice.Users(t.Context())
		assertAPIError(t, err, http.StatusForbidden, gatesdk.ErrorCodeForbidden)
	})

	t.Run("promotion grants admin rights", func(t *testing.T) {
		promoted, err := admin.Promote(t.Context(), alice.User().ID)
		require.NoError(t, err)
		require.True(t, promoted.IsAdmin)

		// The admin flag is read at authentication, so alice logs in
		// again to pick it up.
		alice2, err := client.Login(t.Context(), "alice", "Password1!")
		require.NoError(t, err)

		users, err := alice2.Users(t.Context())
		require.NoError(t, err)
		require.Len(t, users, 2)

		// Admins mint without an allowance.
		for range 10 {
			_, err := alice2.CreateInvite(t.Context())
			require.NoError(t, err)
		}
	})

	t.Run("promoting an unknown user", func(t *testing.T) {
		_, err := admin.Promote(t.Context(), "01XXXXXXXXXXXXXXXXXXXXXXXX")
		assertAPIError(t, err, http.StatusNotFound, gatesdk.ErrorCodeNotFound)
	})
}
