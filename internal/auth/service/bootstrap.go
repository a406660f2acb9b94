package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/pkg/cryptox"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

var ErrBootstrapMissingEmail = errors.New("bootstrap admin email not configured")

// BootstrapService seeds the first super admin account on an empty
// store so a non-interactive deployment never boots into a locked-out
// state. Interactive deployments can skip it; the first signup gets
// the same promotion.
type BootstrapService struct {
	Store store.Store

	// AdminEmail/AdminPassword come from configuration. A configured
	// email with an empty password means "generate one and log it".
	AdminEmail    string
	AdminPassword string
}

// EnsureAdmin creates the configured admin account if, and only if,
// the store holds no accounts. It reports whether an account was
// created.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) (bool, error) {
	log := slogx.FromContext(ctx)

	if s.AdminEmail == "" {
		return false, ErrBootstrapMissingEmail
	}

	// 1. Generate a password if none was configured. Done before the
	// transaction so we can log it only after a successful commit.
	password := s.AdminPassword
	generated := false
	if password == "" {
		var err error
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return false, err
		}
		generated = true
	}

	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash bootstrap password", slog.Any("error", err))
		return false, err
	}

	// 2. Check-and-create in one transaction so two racing instances
	// cannot both seed an admin.
	created := false
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		count, err := tx.Accounts().Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		account := domain.Account{
			Email:        s.AdminEmail,
			PasswordHash: passwordHash,
			Active:       true,
			Permissions:  []int{domain.PermSuperAdmin},
		}
		if err := tx.Accounts().Create(ctx, account); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		if generated {
			// Logged once at startup; rotate it after first login.
			log.Warn("bootstrap admin created with generated password",
				slog.String("email", s.AdminEmail),
				slog.String("password", password),
			)
		} else {
			log.Info("bootstrap admin created", slog.String("email", s.AdminEmail))
		}
	}
	return created, nil
}
