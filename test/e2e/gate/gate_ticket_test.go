package gate_test

import (
	"net/http"
	"testing"

	"github.com/nightowlmedia/doorman/pkg/gatesdk"
	"github.com/stretchr/testify/require"
)

func TestTicketFlow(t *testing.T) {
	baseURL, _ := setupGateContainer(t)
	client := gatesdk.NewSDKClient(baseURL)

	admin := loginAdmin(t, client)
	alice := registerViaAdminInvite(t, client, admin, "alice", "Password1!")
	bob := registerViaAdminInvite(t, client, admin, "bob", "Password1!")

	t.Run("user submits and sees own tickets only", func(t *testing.T) {
		ticket, err := alice.CreateTicket(t.Context(), "The Thing (1982)", "the Carpenter one")
		require.NoError(t, err)
		require.Equal(t, "pending", ticket.Status)

		_, err = bob.CreateTicket(t.Context(), "Stalker (1979)", "")
		require.NoError(t, err)

		mine, err := alice.MyTickets(t.Context())
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, "The Thing (1982)", mine[0].Title)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		_, err := alice.CreateTicket(t.Context(), "", "no title")
		assertAPIError(t, err, http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest)
	})

	t.Run("admin sees every ticket", func(t *testing.T) {
		all, err := admin.AllTickets(t.Context())
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("non-admin cannot list all tickets", func(t *testing.T) {
		_, err := alice.AllTickets(t.Context())
		assertAPIError(t, err, http.StatusForbidden, gatesdk.ErrorCodeForbidden)
	})

	t.Run("admin resolves a ticket exactly once", func(t *testing.T) {
		ticket, err := alice.CreateTicket(t.Context(), "Solaris", "")
		require.NoError(t, err)

		resolved, err := admin.RespondTicket(t.Context(), ticket.ID, "approved", "added")
		require.NoError(t, err)
		require.Equal(t, "approved", resolved.Status)
		require.Equal(t, "added", resolved.Response)
		require.NotNil(t, resolved.ResolvedAt)

		// The resolution is visible to the requester.
		mine, err := alice.MyTickets(t.Context())
		require.NoError(t, err)
		var found bool
		for _, tk := range mine {
			if tk.ID == ticket.ID {
				found = true
				require.Equal(t, "approved", tk.Status)
			}
		}
		require.True(t, found)

		// A second response fails with 409 whatever it says.
		_, err = admin.RespondTicket(t.Context(), ticket.ID, "rejected", "changed my mind")
		assertAPIError(t, err, http.StatusConflict, gatesdk.ErrorCodeTicketResolved)
	})

	t.Run("non-admin cannot respond", func(t *testing.T) {
		ticket, err := alice.CreateTicket(t.Context(), "Annihilation", "")
		require.NoError(t, err)

		_, err = bob.RespondTicket(t.Context(), ticket.ID, "approved", "sure")
		assertAPIError(t, err, http.StatusForbidden, gatesdk.ErrorCodeForbidden)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		ticket, err := alice.CreateTicket(t.Context(), "Arrival", "")
		require.NoError(t, err)

		_, err = admin.RespondTicket(t.Context(), ticket.ID, "pending", "")
		assertAPIError(t, err, http.StatusBadRequest, gatesdk.ErrorCodeInvalidRequest)
	})

	t.Run("responding to an unknown ticket", func(t *testing.T) {
		_, err := admin.RespondTicket(t.Context(), "01XXXXXXXXXXXXXXXXXXXXXXXX", "approved", "")
		assertAPIError(t, err, http.StatusNotFound, gatesdk.ErrorCodeNotFound)
	})
}
