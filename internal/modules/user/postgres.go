package user

import (
	"context"
	"database/sql"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, u *User) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, full_name, password_hash, role, status)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.FullName, u.PasswordHash, u.Role, u.Status,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func scanUser(scan func(...interface{}) error) (*User, error) {
	u := &User{}
	err := scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash,
		&u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

const userColumns = `id, username, email, full_name, password_hash, role, status, created_at, updated_at`

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	return scanUser(row.Scan)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	return scanUser(row.Scan)
}

func (r *postgresRepo) List(ctx context.Context, page, limit int) ([]*User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
	return err
}

func (r *postgresRepo) ListMembers(ctx context.Context, storeID int64) ([]*Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.store_id, m.user_id, u.username, u.full_name, m.role, m.created_at, m.updated_at
		FROM store_members m JOIN users u ON u.id = m.user_id
		WHERE m.store_id=$1 ORDER BY m.created_at`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.ID, &m.StoreID, &m.UserID, &m.Username, &m.FullName,
			&m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *postgresRepo) CreateMember(ctx context.Context, m *Member) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO store_members (store_id, user_id, role)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at`,
		m.StoreID, m.UserID, m.Role,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *postgresRepo) UpdateMember(ctx context.Context, m *Member) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE store_members SET role=$1, updated_at=NOW()
		WHERE id=$2 AND store_id=$3`, m.Role, m.ID, m.StoreID)
	return err
}

func (r *postgresRepo) DeleteMember(ctx context.Context, storeID, memberID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM store_members WHERE id=$1 AND store_id=$2`, memberID, storeID)
	return err
}

func (r *postgresRepo) IsMember(ctx context.Context, storeID, userID int64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM store_members WHERE store_id=$1 AND user_id=$2`,
		storeID, userID).Scan(&n)
	return n > 0, err
}
