// Package jwtx issues and verifies the signed session tokens that back
// authentication cookies. Tokens are HS256 JWTs signed with a single
// process-wide symmetric secret; the only claim that matters is the
// account identity in the subject, plus the expiry.
package jwtx

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// Secret is the symmetric signing secret shared by every token issued
// by this process.
type Secret []byte

const randomSecretLength = 32

var ErrInvalidSecret = errors.New("jwtx: signing secret must be a non-empty even-length hex string")

// SecretFromHex decodes a hex-encoded signing secret. The whole string
// must be valid hex; a partial or odd-length value is rejected rather
// than silently truncated.
func SecretFromHex(s string) (Secret, error) {
	if s == "" || len(s)%2 != 0 {
		return nil, ErrInvalidSecret
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidSecret
	}
	return Secret(raw), nil
}

// NewRandomSecret generates a fresh random secret. Every token issued
// before a restart becomes invalid when this is used, which is the
// documented trade-off of not configuring a fixed secret.
func NewRandomSecret() (Secret, error) {
	raw := make([]byte, randomSecretLength)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	return Secret(raw), nil
}
