package service

import (
	"context"
	"errors"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/pkg/jwtx"
)

var (
	// ErrUnauthenticated covers every identity failure: missing token,
	// bad signature, expiry, and tokens whose subject no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the caller is known but lacks the required
	// permissions for the operation.
	ErrForbidden = errors.New("forbidden")
)

// AuthorizeService is the single decision point for protected
// operations. Every guarded request funnels through Authorize.
type AuthorizeService struct {
	Store store.Store
	Codec *jwtx.Codec
}

// Authorize resolves a session token against the required permission
// codes and returns the caller's account on success.
//
// The distinction between the two failures is deliberate:
//   - ErrUnauthenticated: we do not know who the caller is. All token
//     problems collapse into this one error so the response leaks
//     nothing about why the token was rejected. Deactivated accounts
//     land here too; a dead account is not a caller.
//   - ErrForbidden: we know who the caller is, they just cannot do
//     this.
//
// An empty required set means any authenticated active account passes.
func (s *AuthorizeService) Authorize(ctx context.Context, token string, required []int) (domain.Account, error) {
	// 1. Validate the token signature and expiry
	if token == "" || !s.Codec.Verify(token) {
		return domain.Account{}, ErrUnauthenticated
	}

	// 2. Resolve the subject to a live account. A valid token for a
	// deleted account is treated the same as no token.
	email := s.Codec.Identity(token)
	account, err := s.Store.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrUnauthenticated
		}
		return domain.Account{}, err
	}

	// 3. A deactivated account is not a known caller, no matter what
	// permissions it holds.
	if !account.Active {
		return domain.Account{}, ErrUnauthenticated
	}

	// 4. Check permissions
	if !account.HasAny(required) {
		return domain.Account{}, ErrForbidden
	}

	return account, nil
}
