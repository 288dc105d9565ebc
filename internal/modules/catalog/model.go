package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Product is a sellable item in a store's catalog.
type Product struct {
	ID          int64           `json:"id"`
	StoreID     int64           `json:"store_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Price       int64           `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Attribute is a named option set (e.g. Size: S/M/L) reusable across
// products in a store.
type Attribute struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"store_id"`
	Name      string    `json:"name"`
	Values    []string  `json:"values"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductRequest is the create/update payload for a product.
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	Price       int64           `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Attributes  json.RawMessage `json:"attributes,omitempty"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// AttributeRequest is the create/update payload for an attribute.
type AttributeRequest struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ImportRow is one already-parsed spreadsheet row. Parsing the uploaded
// workbook happens client-side; the API only sees tabular data.
type ImportRow struct {
	Name  string `json:"name"`
	SKU   string `json:"sku,omitempty"`
	Price int64  `json:"price"`
}

// ImportBatch records the outcome of one bulk product import.
type ImportBatch struct {
	ID        uuid.UUID `json:"id"`
	StoreID   int64     `json:"store_id"`
	Filename  string    `json:"filename,omitempty"`
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductPage is one page of products.
type ProductPage struct {
	Data        []*Product `json:"data"`
	Total       int        `json:"total"`
	CurrentPage int        `json:"current_page"`
	TotalPages  int        `json:"total_pages"`
}
