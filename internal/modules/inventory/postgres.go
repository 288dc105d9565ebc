package inventory

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetStock(ctx context.Context, storeID, productID int64) (*Stock, error) {
	s := &Stock{StoreID: storeID, ProductID: productID}
	err := r.db.QueryRowContext(ctx, `
		SELECT i.quantity, i.updated_at, p.name
		FROM inventory i JOIN products p ON p.id = i.product_id
		WHERE i.store_id=$1 AND i.product_id=$2`,
		storeID, productID,
	).Scan(&s.Quantity, &s.UpdatedAt, &s.ProductName)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) ListStock(ctx context.Context, storeID int64, page, limit int) ([]*Stock, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory WHERE store_id=$1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT i.product_id, p.name, i.store_id, i.quantity, i.updated_at
		FROM inventory i JOIN products p ON p.id = i.product_id
		WHERE i.store_id=$1 ORDER BY p.name LIMIT $2 OFFSET $3`,
		storeID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var stocks []*Stock
	for rows.Next() {
		s := &Stock{}
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.StoreID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		stocks = append(stocks, s)
	}
	return stocks, total, rows.Err()
}

func (r *postgresRepo) Apply(ctx context.Context, log *AdjustmentLog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var quantity int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO inventory (store_id, product_id, quantity) VALUES ($1,$2,0)
		ON CONFLICT (store_id, product_id) DO UPDATE SET quantity = inventory.quantity
		RETURNING quantity`,
		log.StoreID, log.ProductID,
	).Scan(&quantity)
	if err != nil {
		return err
	}
	if quantity+log.Delta < 0 {
		return ErrStockBelowZero
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE inventory SET quantity = quantity + $1, updated_at=NOW()
		WHERE store_id=$2 AND product_id=$3`,
		log.Delta, log.StoreID, log.ProductID)
	if err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO inventory_logs (store_id, product_id, delta, note, user_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at`,
		log.StoreID, log.ProductID, log.Delta, log.Note, log.UserID,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepo) SetQuantity(ctx context.Context, storeID, productID, quantity, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var previous int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO inventory (store_id, product_id, quantity) VALUES ($1,$2,0)
		ON CONFLICT (store_id, product_id) DO UPDATE SET quantity = inventory.quantity
		RETURNING quantity`,
		storeID, productID,
	).Scan(&previous)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE inventory SET quantity=$1, updated_at=NOW()
		WHERE store_id=$2 AND product_id=$3`,
		quantity, storeID, productID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO inventory_logs (store_id, product_id, delta, note, user_id)
		VALUES ($1,$2,$3,'bulk quantity import',$4)`,
		storeID, productID, quantity-previous, userID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresRepo) ListLogs(ctx context.Context, storeID, productID int64, page, limit int) ([]*AdjustmentLog, int, error) {
	where := `WHERE store_id=$1`
	args := []interface{}{storeID}
	if productID != 0 {
		where += ` AND product_id=$2`
		args = append(args, productID)
	}

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_logs `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT id, store_id, product_id, delta, note, user_id, created_at
		FROM inventory_logs ` + where + ` ORDER BY created_at DESC`
	switch len(args) {
	case 1:
		query += ` LIMIT $2 OFFSET $3`
	case 2:
		query += ` LIMIT $3 OFFSET $4`
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []*AdjustmentLog
	for rows.Next() {
		l := &AdjustmentLog{}
		if err := rows.Scan(&l.ID, &l.StoreID, &l.ProductID, &l.Delta, &l.Note,
			&l.UserID, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, l)
	}
	return logs, total, rows.Err()
}
