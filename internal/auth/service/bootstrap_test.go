package service

import (
	"context"
	"testing"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds an empty store", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, AdminEmail: "admin@example.com", AdminPassword: "hunter22"}

		created, err := svc.EnsureAdmin(ctx)
		require.NoError(t, err)
		require.True(t, created)

		account, err := st.Accounts().GetByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.Equal(t, []int{domain.PermSuperAdmin}, account.Permissions)
		require.True(t, account.Active)
		require.False(t, account.Pending)
		require.NoError(t, cryptox.VerifyPassword("hunter22", account.PasswordHash))
	})

	t.Run("no-op when accounts exist", func(t *testing.T) {
		st := newTestStore(t)
		accounts := &AccountService{Store: st, Policy: SignupOpen}
		_, err := accounts.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
		require.NoError(t, err)

		svc := &BootstrapService{Store: st, AdminEmail: "admin@example.com", AdminPassword: "hunter22"}
		created, err := svc.EnsureAdmin(ctx)
		require.NoError(t, err)
		require.False(t, created)

		all, err := st.Accounts().List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("generates a password when none configured", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st, AdminEmail: "admin@example.com"}

		created, err := svc.EnsureAdmin(ctx)
		require.NoError(t, err)
		require.True(t, created)

		account, err := st.Accounts().GetByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.NotEmpty(t, account.PasswordHash)
	})

	t.Run("missing email is a configuration error", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BootstrapService{Store: st}

		_, err := svc.EnsureAdmin(ctx)
		require.ErrorIs(t, err, ErrBootstrapMissingEmail)
	})
}
