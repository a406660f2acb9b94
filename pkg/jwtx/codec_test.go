package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()

	secret, err := SecretFromHex("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	require.NoError(t, err)
	return NewCodec(secret)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	token, err := c.Issue("alice@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.True(t, c.Verify(token))
	require.Equal(t, "alice@example.com", c.Identity(token))
}

func TestExpiredTokenFailsVerification(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	token, err := c.Issue("alice@example.com", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	require.False(t, c.Verify(token))
	require.Empty(t, c.Identity(token))
}

func TestWrongSecretFailsVerification(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	token, err := c.Issue("alice@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	other, err := NewRandomSecret()
	require.NoError(t, err)
	require.False(t, NewCodec(other).Verify(token))
	require.Empty(t, NewCodec(other).Identity(token))
}

func TestEmptyAndGarbageTokensFail(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		require.False(t, c.Verify(token))
		require.Empty(t, c.Identity(token))
	}
}

func TestTamperedTokenFailsVerification(t *testing.T) {
	t.Parallel()

	c := testCodec(t)
	token, err := c.Issue("alice@example.com", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	require.False(t, c.Verify(tampered))
	require.Empty(t, c.Identity(tampered))
}

func TestSecretFromHex(t *testing.T) {
	t.Parallel()

	t.Run("accepts full hex strings", func(t *testing.T) {
		secret, err := SecretFromHex("deadbeef")
		require.NoError(t, err)
		require.Len(t, secret, 4)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		for _, s := range []string{"", "abc", "zz", "deadbeeg"} {
			_, err := SecretFromHex(s)
			require.ErrorIs(t, err, ErrInvalidSecret)
		}
	})
}

func TestNewCodecPanicsOnEmptySecret(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { NewCodec(nil) })
}
