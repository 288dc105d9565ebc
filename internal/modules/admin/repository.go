package admin

import "context"

// Repository defines the aggregate queries the admin dashboard needs.
type Repository interface {
	Totals(ctx context.Context) (*Totals, error)
}
