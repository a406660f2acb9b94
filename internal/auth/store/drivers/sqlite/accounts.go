package sqlite

import (
	"context"
	"strings"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
)

type accountsRepo struct {
	db dbtx
}

const accountColumns = `email, password_hash, active, pending, permissions, metadata, created_at, updated_at`

func (r *accountsRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)

	var a domain.Account
	var permissions string
	err := row.Scan(&a.Email, &a.PasswordHash, &a.Active, &a.Pending, &permissions, &a.Metadata, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.Permissions = splitPermissions(permissions)
	return a, nil
}

func (r *accountsRepo) Create(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (email, password_hash, active, pending, permissions, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Email, a.PasswordHash, a.Active, a.Pending, joinPermissions(a.Permissions), a.Metadata)
	return mapConstraint(err)
}

func (r *accountsRepo) Update(ctx context.Context, email string, upd store.AccountUpdate) error {
	sets := []string{"updated_at = CURRENT_TIMESTAMP"}
	args := []any{}

	if upd.PasswordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *upd.PasswordHash)
	}
	if upd.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *upd.Active)
	}
	if upd.Pending != nil {
		sets = append(sets, "pending = ?")
		args = append(args, *upd.Pending)
	}
	if upd.Permissions != nil {
		sets = append(sets, "permissions = ?")
		args = append(args, joinPermissions(upd.Permissions))
	}

	args = append(args, email)
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET `+strings.Join(sets, ", ")+` WHERE email = ?`, args...)
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

func (r *accountsRepo) UpdateMetadata(ctx context.Context, email string, metadata string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET metadata = ?, updated_at = CURRENT_TIMESTAMP WHERE email = ?`,
		metadata, email)
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

func (r *accountsRepo) Delete(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE email = ?`, email)
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

func (r *accountsRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}

func (r *accountsRepo) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		var permissions string
		if err := rows.Scan(&a.Email, &a.PasswordHash, &a.Active, &a.Pending, &permissions, &a.Metadata, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Permissions = splitPermissions(permissions)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
