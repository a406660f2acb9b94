package sqlite

import (
	"context"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) GetByEmail(ctx context.Context, email string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT email, permissions, created_by, created_at, updated_at FROM invites WHERE email = ?`, email)

	var inv domain.Invite
	var permissions string
	err := row.Scan(&inv.Email, &permissions, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.Permissions = splitPermissions(permissions)
	return inv, nil
}

func (r *invitesRepo) Upsert(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (email, permissions, created_by)
		 VALUES (?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET
		   permissions = excluded.permissions,
		   created_by = excluded.created_by,
		   updated_at = CURRENT_TIMESTAMP`,
		inv.Email, joinPermissions(inv.Permissions), inv.CreatedBy)
	return err
}

func (r *invitesRepo) UpdatePermissions(ctx context.Context, email string, permissions []int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET permissions = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
		joinPermissions(permissions), email)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) Delete(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE email = ?`, email)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) List(ctx context.Context) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT email, permissions, created_by, created_at, updated_at FROM invites ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		var inv domain.Invite
		var permissions string
		if err := rows.Scan(&inv.Email, &permissions, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		inv.Permissions = splitPermissions(permissions)
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}
