package message

import "context"

// Repository defines data access for reply templates.
type Repository interface {
	Get(ctx context.Context, storeID int64) (*Template, error)
	Upsert(ctx context.Context, t *Template) error
}
