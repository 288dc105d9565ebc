package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	var attrs interface{}
	if p.Attributes != nil {
		attrs = []byte(p.Attributes)
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (store_id, name, description, sku, price, image_url, attributes, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`,
		p.StoreID, p.Name, p.Description, p.SKU, p.Price, p.ImageURL, attrs, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

const productColumns = `id, store_id, name, description, sku, price, image_url, attributes, is_active, created_at, updated_at`

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var attrs []byte
	err := scan(&p.ID, &p.StoreID, &p.Name, &p.Description, &p.SKU, &p.Price,
		&p.ImageURL, &attrs, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if attrs != nil {
		p.Attributes = json.RawMessage(attrs)
	}
	return p, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, storeID, id int64) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1 AND store_id=$2`, id, storeID)
	return scanProduct(row.Scan)
}

func (r *postgresRepo) ListProducts(ctx context.Context, storeID int64, search string, page, limit int) ([]*Product, int, error) {
	where := `WHERE store_id=$1`
	args := []interface{}{storeID}
	if search != "" {
		where += ` AND name ILIKE '%' || $2 || '%'`
		args = append(args, search)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products ` + where + ` ORDER BY created_at DESC`
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

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	var attrs interface{}
	if p.Attributes != nil {
		attrs = []byte(p.Attributes)
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, sku=$3, price=$4, image_url=$5, attributes=$6,
		    is_active=$7, updated_at=NOW()
		WHERE id=$8 AND store_id=$9`,
		p.Name, p.Description, p.SKU, p.Price, p.ImageURL, attrs, p.IsActive,
		p.ID, p.StoreID)
	return err
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, storeID, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id=$1 AND store_id=$2`, id, storeID)
	return err
}

func (r *postgresRepo) CreateAttribute(ctx context.Context, a *Attribute) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO attributes (store_id, name, option_values)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at`,
		a.StoreID, a.Name, pq.Array(a.Values),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *postgresRepo) ListAttributes(ctx context.Context, storeID int64) ([]*Attribute, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, name, option_values, created_at, updated_at
		FROM attributes WHERE store_id=$1 ORDER BY name`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attrs []*Attribute
	for rows.Next() {
		a := &Attribute{}
		if err := rows.Scan(&a.ID, &a.StoreID, &a.Name, pq.Array(&a.Values),
			&a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, rows.Err()
}

func (r *postgresRepo) UpdateAttribute(ctx context.Context, a *Attribute) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE attributes SET name=$1, option_values=$2, updated_at=NOW()
		WHERE id=$3 AND store_id=$4`,
		a.Name, pq.Array(a.Values), a.ID, a.StoreID)
	return err
}

func (r *postgresRepo) DeleteAttribute(ctx context.Context, storeID, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM attributes WHERE id=$1 AND store_id=$2`, id, storeID)
	return err
}

func (r *postgresRepo) CreateImportBatch(ctx context.Context, b *ImportBatch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO import_batches (id, store_id, filename, total, succeeded, failed)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		b.ID, b.StoreID, b.Filename, b.Total, b.Succeeded, b.Failed,
	).Scan(&b.CreatedAt)
}

func (r *postgresRepo) ListImportBatches(ctx context.Context, storeID int64) ([]*ImportBatch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, filename, total, succeeded, failed, created_at
		FROM import_batches WHERE store_id=$1 ORDER BY created_at DESC`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []*ImportBatch
	for rows.Next() {
		b := &ImportBatch{}
		if err := rows.Scan(&b.ID, &b.StoreID, &b.Filename, &b.Total,
			&b.Succeeded, &b.Failed, &b.CreatedAt); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
