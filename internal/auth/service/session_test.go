package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	accounts := &AccountService{Store: st, Policy: SignupOpen}
	sessions := newTestSessions(t, st)

	_, err := accounts.Signup(ctx, SignupParams{Email: "root@example.com", Password: "hunter22"})
	require.NoError(t, err)

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, _, err := sessions.Login(ctx, "ghost@example.com", "hunter22", false)
		require.ErrorIs(t, err, ErrBadCredentials)

		_, _, err = sessions.Login(ctx, "root@example.com", "wrong", false)
		require.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("success issues a verifiable token", func(t *testing.T) {
		token, expiresAt, err := sessions.Login(ctx, "root@example.com", "hunter22", false)
		require.NoError(t, err)
		require.True(t, sessions.Codec.Verify(token))
		require.Equal(t, "root@example.com", sessions.Codec.Identity(token))
		require.WithinDuration(t, time.Now().Add(sessions.SessionTTL), expiresAt, 5*time.Second)
	})

	t.Run("remember extends the lifetime", func(t *testing.T) {
		_, expiresAt, err := sessions.Login(ctx, "root@example.com", "hunter22", true)
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(sessions.RememberTTL), expiresAt, 5*time.Second)
	})

	t.Run("deactivated accounts cannot sign in", func(t *testing.T) {
		_, err := accounts.Signup(ctx, SignupParams{Email: "bob@example.com", Password: "secret123"})
		require.NoError(t, err)

		inactive := false
		_, err = accounts.Update(ctx, "bob@example.com", UpdateParams{Active: &inactive})
		require.NoError(t, err)

		_, _, err = sessions.Login(ctx, "bob@example.com", "secret123", false)
		require.ErrorIs(t, err, ErrAccountInactive)
	})
}
