package inventory

import "context"

// Repository defines data access for stock levels and adjustment logs.
type Repository interface {
	GetStock(ctx context.Context, storeID, productID int64) (*Stock, error)
	ListStock(ctx context.Context, storeID int64, page, limit int) ([]*Stock, int, error)
	// Apply adds delta to the product's stock and writes the log row in one
	// transaction; it fails with ErrStockBelowZero when the result would be
	// negative.
	Apply(ctx context.Context, log *AdjustmentLog) error
	SetQuantity(ctx context.Context, storeID, productID, quantity, userID int64) error
	ListLogs(ctx context.Context, storeID int64, productID int64, page, limit int) ([]*AdjustmentLog, int, error)
}
