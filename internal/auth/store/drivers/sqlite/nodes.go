package sqlite

import (
	"context"

	"github.com/gatekeephq/gatekeep/internal/auth/domain"
	"github.com/gatekeephq/gatekeep/internal/auth/store"
)

type nodesRepo struct {
	db dbtx
}

func (r *nodesRepo) GetByID(ctx context.Context, id string) (domain.Node, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, default_text, created_at, updated_at FROM nodes WHERE id = ?`, id)

	var n domain.Node
	err := row.Scan(&n.ID, &n.DefaultText, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return domain.Node{}, mapNotFound(err)
	}
	return n, nil
}

func (r *nodesRepo) Create(ctx context.Context, n domain.Node) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO nodes (id, default_text) VALUES (?, ?)`,
		n.ID, n.DefaultText)
	return mapConstraint(err)
}

func (r *nodesRepo) UpdateText(ctx context.Context, id string, defaultText string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE nodes SET default_text = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		defaultText, id)
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

func (r *nodesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id)
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

func (r *nodesRepo) List(ctx context.Context) ([]domain.Node, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, default_text, created_at, updated_at FROM nodes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []domain.Node
	for rows.Next() {
		var n domain.Node
		if err := rows.Scan(&n.ID, &n.DefaultText, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}
