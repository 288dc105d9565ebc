package settings

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) UpsertSMTP(ctx context.Context, s *SMTPSettings) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO smtp_settings (store_id, host, port, username, password, sender)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (store_id) DO UPDATE
		SET host=$2, port=$3, username=$4, password=$5, sender=$6, updated_at=NOW()
		RETURNING created_at, updated_at`,
		s.StoreID, s.Host, s.Port, s.Username, s.Password, s.Sender,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *postgresRepo) GetSMTP(ctx context.Context, storeID int64) (*SMTPSettings, error) {
	s := &SMTPSettings{}
	err := r.db.QueryRowContext(ctx, `
		SELECT store_id, host, port, username, password, sender, created_at, updated_at
		FROM smtp_settings WHERE store_id=$1`, storeID,
	).Scan(&s.StoreID, &s.Host, &s.Port, &s.Username, &s.Password, &s.Sender,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

const emailColumns = `id, store_id, recipient, subject, status, error, created_at`

func scanEmail(scan func(...interface{}) error) (*EmailHistory, error) {
	e := &EmailHistory{}
	err := scan(&e.ID, &e.StoreID, &e.Recipient, &e.Subject, &e.Status, &e.Error, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *postgresRepo) ListEmailHistory(ctx context.Context, storeID int64, page, limit int) ([]*EmailHistory, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM email_histories WHERE store_id=$1`, storeID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+emailColumns+` FROM email_histories
		WHERE store_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		storeID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectEmails(rows, total)
}

func (r *postgresRepo) ListAllEmailHistory(ctx context.Context, page, limit int) ([]*EmailHistory, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM email_histories`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+emailColumns+` FROM email_histories
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectEmails(rows, total)
}

func collectEmails(rows *sql.Rows, total int) ([]*EmailHistory, int, error) {
	var entries []*EmailHistory
	for rows.Next() {
		e, err := scanEmail(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

func (r *postgresRepo) GetEmailHistory(ctx context.Context, storeID, id int64) (*EmailHistory, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+emailColumns+` FROM email_histories WHERE id=$1 AND store_id=$2`, id, storeID)
	return scanEmail(row.Scan)
}

func (r *postgresRepo) RequeueEmail(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE email_histories SET status='queued', error='' WHERE id=$1`, id)
	return err
}

func (r *postgresRepo) GetAppSettings(ctx context.Context) (*AppSettings, error) {
	s := &AppSettings{}
	err := r.db.QueryRowContext(ctx, `
		SELECT midtrans_client_key, midtrans_production
		FROM app_settings WHERE id=1`,
	).Scan(&s.MidtransClientKey, &s.MidtransProduction)
	if err == sql.ErrNoRows {
		return &AppSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *postgresRepo) UpsertAppSettings(ctx context.Context, s *AppSettings) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_settings (id, midtrans_client_key, midtrans_production)
		VALUES (1,$1,$2)
		ON CONFLICT (id) DO UPDATE
		SET midtrans_client_key=$1, midtrans_production=$2`,
		s.MidtransClientKey, s.MidtransProduction)
	return err
}
