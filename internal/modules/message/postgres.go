package message

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context, storeID int64) (*Template, error) {
	t := &Template{}
	err := r.db.QueryRowContext(ctx, `
		SELECT store_id, greeting, order_info, closing, updated_at
		FROM message_templates WHERE store_id=$1`, storeID,
	).Scan(&t.StoreID, &t.Greeting, &t.OrderInfo, &t.Closing, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, t *Template) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO message_templates (store_id, greeting, order_info, closing)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (store_id) DO UPDATE
		SET greeting=$2, order_info=$3, closing=$4, updated_at=NOW()
		RETURNING updated_at`,
		t.StoreID, t.Greeting, t.OrderInfo, t.Closing,
	).Scan(&t.UpdatedAt)
}
