package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/pkg/cryptox"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

var (
	ErrSignupClosed    = errors.New("signups are invite only")
	ErrEmailTaken      = errors.New("email already registered")
	ErrAccountNotFound = errors.New("account not found")
)

// SignupPolicy controls who may create an account.
type SignupPolicy string

const (
	// SignupInviteOnly rejects signups without a standing invite,
	// except for the very first account.
	SignupInviteOnly SignupPolicy = "invite"

	// SignupOpen lets anyone register; uninvited accounts start with
	// no permissions.
	SignupOpen SignupPolicy = "open"
)

type AccountService struct {
	Store  store.Store
	Policy SignupPolicy
}

// SignupParams are the caller-supplied fields for a new account.
type SignupParams struct {
	Email    string
	Password string
	Metadata string
}

// Signup registers a new account.
//
// The first account in an empty store is special: it gets the super
// admin permission so a fresh deployment is never locked out. Every
// later signup is matched against the invites table; the invite's
// permission grant is consumed and the invite removed in the same
// transaction, so a crash cannot leave a used invite behind.
func (s *AccountService) Signup(ctx context.Context, p SignupParams) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	// 1. Hash the password up front, outside the transaction.
	passwordHash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	var account domain.Account
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 2. An empty store promotes the first registrant.
		count, err := tx.Accounts().Count(ctx)
		if err != nil {
			return err
		}

		account = domain.Account{
			Email:        p.Email,
			PasswordHash: passwordHash,
			Active:       true,
			Metadata:     p.Metadata,
		}

		if count == 0 {
			account.Permissions = []int{domain.PermSuperAdmin}
		} else {
			// 3. Match against a standing invite.
			invite, err := tx.Invites().GetByEmail(ctx, p.Email)
			switch {
			case err == nil:
				account.Permissions = domain.FilterValid(invite.Permissions)
				account.Pending = true
			case errors.Is(err, store.ErrNotFound):
				if s.Policy == SignupInviteOnly {
					return ErrSignupClosed
				}
			default:
				return err
			}

			// 4. Consume the invite so it cannot be reused.
			if err == nil {
				if err := tx.Invites().Delete(ctx, p.Email); err != nil {
					return err
				}
			}
		}

		// 5. Create the account.
		if err := tx.Accounts().Create(ctx, account); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	log.Info("account created",
		slog.String("email", account.Email),
		slog.Bool("pending", account.Pending),
		slog.Any("permissions", account.Permissions),
	)
	return account, nil
}

// Get fetches a single account by email.
func (s *AccountService) Get(ctx context.Context, email string) (domain.Account, error) {
	account, err := s.Store.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrAccountNotFound
		}
		return domain.Account{}, err
	}
	return account, nil
}

// List returns every account.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.Store.Accounts().List(ctx)
}

// UpdateParams describes a partial account update. Zero values mean
// "leave unchanged": an empty Password keeps the current hash and a
// nil Permissions slice keeps the current grant, while an empty
// non-nil slice clears it.
type UpdateParams struct {
	Password    string
	Active      *bool
	Pending     *bool
	Permissions []int

	// CanModifyPermissions reflects whether the caller holds the
	// permission-editing grant; without it any Permissions field in
	// the request is ignored rather than rejected.
	CanModifyPermissions bool
}

// Update applies a partial update to the target account. All requested
// changes land in a single write inside one transaction, so a failed
// update leaves the account exactly as it was.
//
// Accounts holding the super admin permission are protected: changes
// to their active flag and permission set are dropped silently while
// the rest of the update still applies. Self-service password changes
// on a super admin keep working; demoting or locking one out does not.
func (s *AccountService) Update(ctx context.Context, email string, p UpdateParams) (domain.Account, error) {
	log := slogx.FromContext(ctx)

	if !p.CanModifyPermissions {
		p.Permissions = nil
	}

	var updated domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// 1. Fetch the target inside the transaction so the guard and
		// the write see the same state.
		account, err := tx.Accounts().GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		// 2. Super admin guard.
		if slices.Contains(account.Permissions, domain.PermSuperAdmin) &&
			(p.Active != nil || p.Pending != nil || p.Permissions != nil) {
			log.Warn("dropped protected fields on super admin update", slog.String("email", email))
			p.Active = nil
			p.Pending = nil
			p.Permissions = nil
		}

		// 3. Assemble the single write.
		upd := store.AccountUpdate{
			Active:  p.Active,
			Pending: p.Pending,
		}
		if p.Password != "" {
			hash, err := cryptox.HashPassword(p.Password)
			if err != nil {
				return err
			}
			upd.PasswordHash = &hash
		}
		if p.Permissions != nil {
			upd.Permissions = domain.FilterValid(p.Permissions)
			if upd.Permissions == nil {
				upd.Permissions = []int{}
			}
		}

		if err := tx.Accounts().Update(ctx, email, upd); err != nil {
			return err
		}

		updated, err = tx.Accounts().GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		return domain.Account{}, err
	}

	log.Info("account updated", slog.String("email", email))
	return updated, nil
}

// UpdateMetadata replaces the free-form metadata blob on an account.
// Callers may only write their own metadata; the HTTP layer enforces
// that the target matches the authenticated identity.
func (s *AccountService) UpdateMetadata(ctx context.Context, email, metadata string) error {
	err := s.Store.Accounts().UpdateMetadata(ctx, email, metadata)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Accounts().Delete(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	log.Info("account deleted", slog.String("email", email))
	return nil
}
