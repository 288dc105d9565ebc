package order

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO orders (store_id, order_number, customer_name, customer_phone, status, total, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id, created_at, updated_at`,
		o.StoreID, o.OrderNumber, o.CustomerName, o.CustomerPhone, o.Status, o.Total, o.Note,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

const orderColumns = `id, store_id, order_number, customer_name, customer_phone, status, total, note, created_at, updated_at`

func scanOrder(scan func(...interface{}) error) (*Order, error) {
	o := &Order{}
	err := scan(&o.ID, &o.StoreID, &o.OrderNumber, &o.CustomerName, &o.CustomerPhone,
		&o.Status, &o.Total, &o.Note, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id int64) (*Order, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1 AND store_id=$2`, id, storeID)
	return scanOrder(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, storeID int64, status Status, page, limit int) ([]*Order, int, error) {
	where := `WHERE store_id=$1`
	args := []interface{}{storeID}
	if status != "" {
		where += ` AND status=$2`
		args = append(args, status)
	}

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT `+orderColumns+` FROM orders %s
		ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, storeID, id int64, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2 AND store_id=$3`,
		status, id, storeID)
	return err
}
