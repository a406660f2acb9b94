package service

import (
	"context"
	"testing"
	"time"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	accounts := &AccountService{Store: st, Policy: SignupOpen}
	sessions := newTestSessions(t, st)
	gate := &AuthorizeService{Store: st, Codec: sessions.Codec}

	_, err := accounts.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
	require.NoError(t, err)
	_, err = accounts.Signup(ctx, SignupParams{Email: "bob@example.com", Password: "secret123"})
	require.NoError(t, err)

	rootToken, _, err := sessions.Login(ctx, "root@example.com", "hunter22", false)
	require.NoError(t, err)
	bobToken, _, err := sessions.Login(ctx, "bob@example.com", "secret123", false)
	require.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		_, err := gate.Authorize(ctx, "", nil)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := gate.Authorize(ctx, "not.a.token", nil)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := newTestCodec(t)
		forged, err := other.Issue("root@example.com", time.Now().Add(time.Hour))
		require.NoError(t, err)

		_, err = gate.Authorize(ctx, forged, nil)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("valid token for deleted account", func(t *testing.T) {
		ghost, _, err := sessions.Login(ctx, "bob@example.com", "secret123", false)
		require.NoError(t, err)
		require.NoError(t, accounts.Delete(ctx, "bob@example.com"))
		t.Cleanup(func() {
			_, err := accounts.Signup(ctx, SignupParams{Email: "bob@example.com", Password: "secret123"})
			require.NoError(t, err)
			bobToken, _, err = sessions.Login(ctx, "bob@example.com", "secret123", false)
			require.NoError(t, err)
		})

		_, err = gate.Authorize(ctx, ghost, nil)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("empty requirement admits any active account", func(t *testing.T) {
		account, err := gate.Authorize(ctx, bobToken, nil)
		require.NoError(t, err)
		require.Equal(t, "bob@example.com", account.Email)
	})

	t.Run("missing permission is forbidden", func(t *testing.T) {
		_, err := gate.Authorize(ctx, bobToken, []int{domain.PermInvite})
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("any overlap authorizes", func(t *testing.T) {
		account, err := gate.Authorize(ctx, rootToken, domain.AdminPermissions)
		require.NoError(t, err)
		require.Equal(t, "root@example.com", account.Email)
	})

	t.Run("deactivated account is unauthenticated even with no requirement", func(t *testing.T) {
		inactive := false
		_, err := accounts.Update(ctx, "bob@example.com", UpdateParams{Active: &inactive})
		require.NoError(t, err)

		_, err = gate.Authorize(ctx, bobToken, nil)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})
}
