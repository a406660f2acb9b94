package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/pkg/cryptox"
	"github.com/gatekeephq/gatekeep/pkg/jwtx"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

var (
	ErrBadCredentials  = errors.New("bad credentials")
	ErrAccountInactive = errors.New("account is deactivated")
)

// SessionService authenticates credentials and mints signed session
// tokens for the cookie/bearer surface.
type SessionService struct {
	Store store.Store
	Codec *jwtx.Codec

	// SessionTTL is the default token lifetime; RememberTTL is used
	// when the caller asked to stay signed in.
	SessionTTL  time.Duration
	RememberTTL time.Duration
}

// Login verifies the email/password pair and returns a signed session
// token. A missing account and a wrong password both come back as
// ErrBadCredentials so callers cannot probe which emails exist.
func (s *SessionService) Login(ctx context.Context, email, password string, remember bool) (string, time.Time, error) {
	log := slogx.FromContext(ctx)

	// 1. Look up the account
	account, err := s.Store.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", time.Time{}, ErrBadCredentials
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return "", time.Time{}, err
	}

	// 2. Verify the password
	if cryptox.VerifyPassword(password, account.PasswordHash) != nil {
		log.Warn("login attempt with wrong password", slog.String("email", email))
		return "", time.Time{}, ErrBadCredentials
	}

	// 3. Deactivated accounts keep their password but cannot sign in
	if !account.Active {
		log.Warn("login attempt on deactivated account", slog.String("email", email))
		return "", time.Time{}, ErrAccountInactive
	}

	// 4. Issue the token
	token, expiresAt, err := s.IssueSession(account.Email, remember)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return "", time.Time{}, err
	}

	log.Info("session issued",
		slog.String("email", account.Email),
		slog.Bool("remember", remember),
		slog.Time("expires_at", expiresAt),
	)
	return token, expiresAt, nil
}

// IssueSession signs a token for an already verified identity. The
// remember flag stretches the lifetime for stay-signed-in sessions.
func (s *SessionService) IssueSession(identity string, remember bool) (string, time.Time, error) {
	ttl := s.SessionTTL
	if remember {
		ttl = s.RememberTTL
	}
	expiresAt := time.Now().Add(ttl)

	token, err := s.Codec.Issue(identity, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
