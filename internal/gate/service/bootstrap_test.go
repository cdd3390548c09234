package service

import (
	"context"
	"testing"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrapService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds an empty store", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st}

		err := svc.EnsureAdmin(ctx, domain.BootstrapData{
			AdminUsername: "root",
			AdminPassword: "changeme",
		})
		require.NoError(t, err)

		admin, err := st.Users().GetUserByUsername(ctx, "root")
		require.NoError(t, err)
		require.True(t, admin.IsAdmin)
		require.Empty(t, admin.InvitedBy)

		auth, _ := newAuthService(t, st, &stubProvisioner{})
		_, _, err = auth.Login(ctx, "root", "changeme")
		require.NoError(t, err)
	})

	t.Run("does nothing on a populated store", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st}

		seedUser(t, st, "alice", "pw", false, 0)

		err := svc.EnsureAdmin(ctx, domain.BootstrapData{
			AdminUsername: "root",
			AdminPassword: "changeme",
		})
		require.NoError(t, err)

		users, err := st.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, "alice", users[0].Username)
	})

	t.Run("generates a password when none configured", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st}

		err := svc.EnsureAdmin(ctx, domain.BootstrapData{AdminUsername: "root"})
		require.NoError(t, err)

		admin, err := st.Users().GetUserByUsername(ctx, "root")
		require.NoError(t, err)
		require.NotEmpty(t, admin.PasswordHash)
	})
}
