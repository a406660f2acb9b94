package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
	"github.com/gatekeephq/gatekeep/pkg/slogx"
)

var ErrInviteNotFound = errors.New("no invite for that email")

type InviteService struct {
	Store store.Store
}

// Create records an invite for an email address. Inviting the same
// address again overwrites the earlier invite's permission grant, so
// "re-invite with different permissions" is a single call.
//
// The grant is filtered against the assignable catalog before it is
// stored; unknown codes and the super admin code are dropped silently.
func (s *InviteService) Create(ctx context.Context, email string, permissions []int, createdBy string) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	invite := domain.Invite{
		Email:       email,
		Permissions: domain.FilterValid(permissions),
		CreatedBy:   createdBy,
	}

	if err := s.Store.Invites().Upsert(ctx, invite); err != nil {
		log.Error("failed to store invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	log.Info("invite created",
		slog.String("email", email),
		slog.String("created_by", createdBy),
		slog.Any("permissions", invite.Permissions),
	)
	return invite, nil
}

// UpdatePermissions replaces the permission grant on a standing invite.
func (s *InviteService) UpdatePermissions(ctx context.Context, email string, permissions []int) error {
	filtered := domain.FilterValid(permissions)
	if filtered == nil {
		filtered = []int{}
	}

	err := s.Store.Invites().UpdatePermissions(ctx, email, filtered)
	if errors.Is(err, store.ErrNotFound) {
		return ErrInviteNotFound
	}
	return err
}

// Delete revokes a standing invite.
func (s *InviteService) Delete(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Invites().Delete(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		return err
	}

	log.Info("invite revoked", slog.String("email", email))
	return nil
}

// List returns every standing invite.
func (s *InviteService) List(ctx context.Context) ([]domain.Invite, error) {
	return s.Store.Invites().List(ctx)
}
