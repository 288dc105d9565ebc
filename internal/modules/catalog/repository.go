package catalog

import "context"

// Repository defines data access for the catalog.
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, storeID, id int64) (*Product, error)
	ListProducts(ctx context.Context, storeID int64, search string, page, limit int) ([]*Product, int, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, storeID, id int64) error

	CreateAttribute(ctx context.Context, a *Attribute) error
	ListAttributes(ctx context.Context, storeID int64) ([]*Attribute, error)
	UpdateAttribute(ctx context.Context, a *Attribute) error
	DeleteAttribute(ctx context.Context, storeID, id int64) error

	CreateImportBatch(ctx context.Context, b *ImportBatch) error
	ListImportBatches(ctx context.Context, storeID int64) ([]*ImportBatch, error)
}
