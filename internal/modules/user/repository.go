package user

import "context"

// Repository defines data access for users and store members.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page, limit int) ([]*User, int, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error

	ListMembers(ctx context.Context, storeID int64) ([]*Member, error)
	CreateMember(ctx context.Context, m *Member) error
	UpdateMember(ctx context.Context, m *Member) error
	DeleteMember(ctx context.Context, storeID, memberID int64) error
	IsMember(ctx context.Context, storeID, userID int64) (bool, error)
}
