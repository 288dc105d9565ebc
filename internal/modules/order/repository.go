package order

import "context"

// Repository defines data access for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, storeID, id int64) (*Order, error)
	List(ctx context.Context, storeID int64, status Status, page, limit int) ([]*Order, int, error)
	UpdateStatus(ctx context.Context, storeID, id int64, status Status) error
}
