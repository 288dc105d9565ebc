package store

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Store) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO stores (name, image_url)
		VALUES ($1,$2)
		RETURNING id, created_at, updated_at`,
		s.Name, s.ImageURL,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Store, error) {
	s := &Store{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, image_url, created_at, updated_at
		FROM stores WHERE id=$1`, id,
	).Scan(&s.ID, &s.Name, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.image_url, s.created_at, s.updated_at
		FROM stores s JOIN store_members m ON m.store_id = s.id
		WHERE m.user_id=$1 ORDER BY s.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*Store
	for rows.Next() {
		s := &Store{}
		if err := rows.Scan(&s.ID, &s.Name, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

func (r *postgresRepo) List(ctx context.Context, page, limit int) ([]*Store, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, image_url, created_at, updated_at
		FROM stores ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var stores []*Store
	for rows.Next() {
		s := &Store{}
		if err := rows.Scan(&s.ID, &s.Name, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		stores = append(stores, s)
	}
	return stores, total, rows.Err()
}
