package service

import (
	"context"
	"testing"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSignupFirstAccountBecomesSuperAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st, Policy: SignupInviteOnly}

	account, err := svc.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, []int{domain.PermSuperAdmin}, account.Permissions)
	require.True(t, account.Active)
	require.False(t, account.Pending)

	stored, err := st.Accounts().GetByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.Equal(t, []int{domain.PermSuperAdmin}, stored.Permissions)
	require.NoError(t, cryptox.VerifyPassword("hunter22", stored.PasswordHash))
}

func TestSignupConsumesInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st, Policy: SignupInviteOnly}

	_, err := svc.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, st.Invites().Upsert(ctx, domain.Invite{
		Email:       "bob@example.com",
		Permissions: []int{domain.PermInvite, domain.PermAddNode},
		CreatedBy:   "root@example.com",
	}))

	account, err := svc.Signup(ctx, SignupParams{Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, []int{domain.PermInvite, domain.PermAddNode}, account.Permissions)
	require.True(t, account.Pending)
	require.True(t, account.Active)

	// Invite is gone; a second signup with the same email is a duplicate.
	_, err = st.Invites().GetByEmail(ctx, "bob@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.Signup(ctx, SignupParams{Email: "bob@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignupInviteGrantIsFiltered(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st, Policy: SignupInviteOnly}

	_, err := svc.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
	require.NoError(t, err)

	// Invite rows written outside the service could carry anything;
	// the super admin code and unknown codes must not survive signup.
	require.NoError(t, st.Invites().Upsert(ctx, domain.Invite{
		Email:       "eve@example.com",
		Permissions: []int{domain.PermSuperAdmin, domain.PermInvite, 42},
	}))

	account, err := svc.Signup(ctx, SignupParams{Email: "eve@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, []int{domain.PermInvite}, account.Permissions)
}

func TestSignupPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("invite only rejects uninvited", func(t *testing.T) {
		st := newTestStore(t)
		svc := &AccountService{Store: st, Policy: SignupInviteOnly}

		_, err := svc.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
		require.NoError(t, err)

		_, err = svc.Signup(ctx, SignupParams{Email: "stranger@example.com", Password: "secret123"})
		require.ErrorIs(t, err, ErrSignupClosed)

		// The failed signup must not leave an account behind.
		_, err = st.Accounts().GetByEmail(ctx, "stranger@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("open policy admits uninvited with no permissions", func(t *testing.T) {
		st := newTestStore(t)
		svc := &AccountService{Store: st, Policy: SignupOpen}

		_, err := svc.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
		require.NoError(t, err)

		account, err := svc.Signup(ctx, SignupParams{Email: "stranger@example.com", Password: "secret123"})
		require.NoError(t, err)
		require.Empty(t, account.Permissions)
		require.True(t, account.Active)
	})
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	boolPtr := func(b bool) *bool { return &b }

	setup := func(t *testing.T) (*AccountService, domain.Account) {
		st := newTestStore(t)
		svc := &AccountService{Store: st, Policy: SignupOpen}

		_, err := svc.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
		require.NoError(t, err)

		target, err := svc.Signup(ctx, SignupParams{Email: "bob@example.com", Password: "secret123"})
		require.NoError(t, err)
		return svc, target
	}

	t.Run("empty password keeps the current hash", func(t *testing.T) {
		svc, target := setup(t)

		before, err := svc.Get(ctx, target.Email)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, target.Email, UpdateParams{Active: boolPtr(false)})
		require.NoError(t, err)
		require.False(t, updated.Active)
		require.Equal(t, before.PasswordHash, updated.PasswordHash)
	})

	t.Run("password change rehashes", func(t *testing.T) {
		svc, target := setup(t)

		updated, err := svc.Update(ctx, target.Email, UpdateParams{Password: "newpass99"})
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("newpass99", updated.PasswordHash))
		require.Error(t, cryptox.VerifyPassword("secret123", updated.PasswordHash))
	})

	t.Run("nil permissions keep, empty slice clears", func(t *testing.T) {
		svc, target := setup(t)

		_, err := svc.Update(ctx, target.Email, UpdateParams{
			Permissions:          []int{domain.PermInvite},
			CanModifyPermissions: true,
		})
		require.NoError(t, err)

		kept, err := svc.Update(ctx, target.Email, UpdateParams{Active: boolPtr(true)})
		require.NoError(t, err)
		require.Equal(t, []int{domain.PermInvite}, kept.Permissions)

		cleared, err := svc.Update(ctx, target.Email, UpdateParams{
			Permissions:          []int{},
			CanModifyPermissions: true,
		})
		require.NoError(t, err)
		require.Empty(t, cleared.Permissions)
	})

	t.Run("permission change dropped without the capability", func(t *testing.T) {
		svc, target := setup(t)

		updated, err := svc.Update(ctx, target.Email, UpdateParams{
			Permissions: []int{domain.PermAdmin},
			Active:      boolPtr(true),
		})
		require.NoError(t, err)
		require.Empty(t, updated.Permissions)
	})

	t.Run("grant is filtered against the catalog", func(t *testing.T) {
		svc, target := setup(t)

		updated, err := svc.Update(ctx, target.Email, UpdateParams{
			Permissions:          []int{domain.PermSuperAdmin, domain.PermModifyUsers, 99},
			CanModifyPermissions: true,
		})
		require.NoError(t, err)
		require.Equal(t, []int{domain.PermModifyUsers}, updated.Permissions)
	})

	t.Run("super admin accounts are protected", func(t *testing.T) {
		svc, _ := setup(t)

		// Protected fields are dropped, not rejected: the update
		// succeeds but active and permissions stay untouched.
		updated, err := svc.Update(ctx, "root@example.com", UpdateParams{
			Active:               boolPtr(false),
			Permissions:          []int{},
			CanModifyPermissions: true,
			Password:             "rotated11",
		})
		require.NoError(t, err)
		require.True(t, updated.Active)
		require.Equal(t, []int{domain.PermSuperAdmin}, updated.Permissions)
		require.NoError(t, cryptox.VerifyPassword("rotated11", updated.PasswordHash))
	})

	t.Run("unknown account", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Update(ctx, "ghost@example.com", UpdateParams{Active: boolPtr(false)})
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestUpdateMetadata(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st, Policy: SignupOpen}

	_, err := svc.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateMetadata(ctx, "root@example.com", `{"theme":"dark"}`))

	account, err := svc.Get(ctx, "root@example.com")
	require.NoError(t, err)
	require.Equal(t, `{"theme":"dark"}`, account.Metadata)

	require.ErrorIs(t, svc.UpdateMetadata(ctx, "ghost@example.com", "x"), ErrAccountNotFound)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &AccountService{Store: st, Policy: SignupOpen}

	_, err := svc.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
	require.NoError(t, err)
	_, err = svc.Signup(ctx, SignupParams{Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "bob@example.com"))
	require.ErrorIs(t, svc.Delete(ctx, "bob@example.com"), ErrAccountNotFound)

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, "root@example.com", accounts[0].Email)
}
