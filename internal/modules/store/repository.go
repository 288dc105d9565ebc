package store

import "context"

// Repository defines data access for stores.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id int64) (*Store, error)
	ListByUser(ctx context.Context, userID int64) ([]*Store, error)
	List(ctx context.Context, page, limit int) ([]*Store, int, error)
}
