package points

import "context"

// Repository defines data access for the point wallet. Move must apply the
// balance change and append the ledger row in one transaction.
type Repository interface {
	Balance(ctx context.Context, storeID int64) (int64, error)
	Move(ctx context.Context, e *Entry) error
	History(ctx context.Context, storeID int64, page, limit int) ([]*Entry, int, error)
}
