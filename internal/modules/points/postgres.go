package points

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Balance(ctx context.Context, storeID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM store_points WHERE store_id=$1`, storeID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return balance, err
}

func (r *postgresRepo) Move(ctx context.Context, e *Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO store_points (store_id, balance) VALUES ($1,$2)
		ON CONFLICT (store_id) DO UPDATE SET balance = store_points.balance + $2`,
		e.StoreID, e.Amount)
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO point_histories (store_id, amount, type, note)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		e.StoreID, e.Amount, e.Type, e.Note,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepo) History(ctx context.Context, storeID int64, page, limit int) ([]*Entry, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM point_histories WHERE store_id=$1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, amount, type, note, created_at
		FROM point_histories WHERE store_id=$1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		storeID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.StoreID, &e.Amount, &e.Type, &e.Note, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
