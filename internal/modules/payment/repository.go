package payment

import "context"

// Repository defines data access for payment transactions.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByOrderID(ctx context.Context, orderID string) (*Transaction, error)
	UpdateStatus(ctx context.Context, orderID, status string, class Classification) error
	// MarkSettled flips the settled flag and reports whether this call did
	// the transition. At most one caller ever sees true for a given order,
	// which is what keeps the point credit idempotent.
	MarkSettled(ctx context.Context, orderID string) (bool, error)
	ListByStore(ctx context.Context, storeID int64, page, limit int) ([]*Transaction, int, error)
	ListAll(ctx context.Context, page, limit int) ([]*Transaction, int, error)
}
