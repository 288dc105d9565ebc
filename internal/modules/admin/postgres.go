package admin

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Totals(ctx context.Context) (*Totals, error) {
	t := &Totals{}
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM stores),
			(SELECT COALESCE(SUM(balance), 0) FROM store_points)`,
	).Scan(&t.Users, &t.Stores, &t.PointsOutstanding)
	if err != nil {
		return nil, err
	}
	return t, nil
}
