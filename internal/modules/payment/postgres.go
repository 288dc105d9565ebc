package payment

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO payment_transactions
		  (id, store_id, order_id, amount, points, status, class, snap_token, redirect_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		t.ID, t.StoreID, t.OrderID, t.Amount, t.Points, t.Status, t.Class,
		t.SnapToken, t.RedirectURL,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

const txColumns = `id, store_id, order_id, amount, points, status, class,
	snap_token, redirect_url, settled, settled_at, created_at, updated_at`

func scanTransaction(scan func(...interface{}) error) (*Transaction, error) {
	t := &Transaction{}
	err := scan(&t.ID, &t.StoreID, &t.OrderID, &t.Amount, &t.Points, &t.Status,
		&t.Class, &t.SnapToken, &t.RedirectURL, &t.Settled, &t.SettledAt,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *postgresRepo) GetByOrderID(ctx context.Context, orderID string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+txColumns+` FROM payment_transactions WHERE order_id=$1`, orderID)
	return scanTransaction(row.Scan)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID, status string, class Classification) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET status=$1, class=$2, updated_at=NOW() WHERE order_id=$3`,
		status, class, orderID)
	return err
}

func (r *postgresRepo) MarkSettled(ctx context.Context, orderID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET settled=true, settled_at=NOW(), updated_at=NOW()
		WHERE order_id=$1 AND settled=false`, orderID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID int64, page, limit int) ([]*Transaction, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payment_transactions WHERE store_id=$1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+txColumns+` FROM payment_transactions
		WHERE store_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		storeID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectTransactions(rows, total)
}

func (r *postgresRepo) ListAll(ctx context.Context, page, limit int) ([]*Transaction, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payment_transactions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+txColumns+` FROM payment_transactions
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectTransactions(rows, total)
}

func collectTransactions(rows *sql.Rows, total int) ([]*Transaction, int, error) {
	var txs []*Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	return txs, total, rows.Err()
}
