package service

import (
	"testing"
	"time"

	"github.com/gatekeephq/gatekeep/internal/auth/store/drivers/sqlite"
	"github.com/gatekeephq/gatekeep/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()

	secret, err := jwtx.NewRandomSecret()
	require.NoError(t, err)
	return jwtx.NewCodec(secret)
}

func newTestSessions(t *testing.T, s *sqlite.Store) *SessionService {
	t.Helper()

	return &SessionService{
		Store:       s,
		Codec:       newTestCodec(t),
		SessionTTL:  time.Hour,
		RememberTTL: 30 * 24 * time.Hour,
	}
}
