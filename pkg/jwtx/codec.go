package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the identity of an authenticated account. The
// subject is the account email; everything else is registered claims.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with a fixed symmetric
// secret. It is safe for concurrent use; nothing is mutated after
// construction.
type Codec struct {
	secret Secret
}

// NewCodec builds a Codec. Panics on an empty secret, which is a
// programming error rather than a runtime condition.
func NewCodec(secret Secret) *Codec {
	if len(secret) == 0 {
		panic("jwtx: codec constructed with empty secret")
	}
	return &Codec{secret: secret}
}

// Issue signs a token for the identity expiring at the given instant.
// The expiry is caller-supplied so session and remember-me durations
// stay under the caller's control.
func (c *Codec) Issue(identity string, expiresAt time.Time) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.secret))
}

// Verify reports whether the token carries a valid signature and has
// not expired. Absent, malformed, tampered and expired tokens all fail
// identically; no detail is surfaced to the caller.
func (c *Codec) Verify(token string) bool {
	_, ok := c.parse(token)
	return ok
}

// Identity returns the identity claim, or "" when the token fails
// verification for any reason. The signature and expiry are always
// re-checked; there is no way to extract a claim from an unverified
// token through this type.
func (c *Codec) Identity(token string) string {
	claims, ok := c.parse(token)
	if !ok {
		return ""
	}
	return claims.Subject
}

func (c *Codec) parse(token string) (*SessionClaims, bool) {
	if token == "" {
		return nil, false
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(c.secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, false
	}
	return claims, true
}
