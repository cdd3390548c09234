package service

import (
	"context"
	"testing"

	"github.com/nightowlmedia/doorman/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestInviteService_Mint(t *testing.T) {
	ctx := context.Background()

	t.Run("spends one unit of the allowance", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}

		user := seedUser(t, st, "alice", "pw", false, 2)

		inv, err := svc.Mint(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, inv.Code, cryptox.InviteCodeLength)
		require.Equal(t, user.ID, inv.CreatedBy)
		require.False(t, inv.Used)

		after, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, 1, after.InviteCount)
	})

	t.Run("allowance runs out", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}

		user := seedUser(t, st, "alice", "pw", false, 1)

		_, err := svc.Mint(ctx, user.ID)
		require.NoError(t, err)

		_, err = svc.Mint(ctx, user.ID)
		require.ErrorIs(t, err, ErrNoInvitesRemaining)
	})

	t.Run("zero allowance cannot mint", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}

		user := seedUser(t, st, "alice", "pw", false, 0)

		_, err := svc.Mint(ctx, user.ID)
		require.ErrorIs(t, err, ErrNoInvitesRemaining)
	})

	t.Run("admins mint without spending", func(t *testing.T) {
		st := newTestStore(t)
		svc := &InviteService{Store: st}

		admin := seedUser(t, st, "root", "pw", true, 0)

		for range 3 {
			_, err := svc.Mint(ctx, admin.ID)
			require.NoError(t, err)
		}

		after, err := st.Users().GetUserByID(ctx, admin.ID)
		require.NoError(t, err)
		require.Equal(t, 0, after.InviteCount)
	})
}

func TestInviteService_ListMine(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InviteService{Store: st}

	alice := seedUser(t, st, "alice", "pw", false, 5)
	bob := seedUser(t, st, "bob", "pw", false, 5)

	a1, err := svc.Mint(ctx, alice.ID)
	require.NoError(t, err)
	a2, err := svc.Mint(ctx, alice.ID)
	require.NoError(t, err)
	_, err = svc.Mint(ctx, bob.ID)
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, inv := range mine {
		require.Equal(t, alice.ID, inv.CreatedBy)
		require.Contains(t, []string{a1.Code, a2.Code}, inv.Code)
	}
}

func TestInviteService_GetByCode(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InviteService{Store: st}

	alice := seedUser(t, st, "alice", "pw", false, 5)
	inv := seedInvite(t, st, alice.ID)

	t.Run("known code", func(t *testing.T) {
		got, err := svc.GetByCode(ctx, inv.Code)
		require.NoError(t, err)
		require.Equal(t, inv.Code, got.Code)
		require.False(t, got.Used)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.GetByCode(ctx, "ZZZZZZZZ")
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("used codes are still visible", func(t *testing.T) {
		require.NoError(t, st.Invites().ConsumeInvite(ctx, inv.Code, alice.ID))

		got, err := svc.GetByCode(ctx, inv.Code)
		require.NoError(t, err)
		require.True(t, got.Used)
	})
}
