package inventory

import (
	"errors"
	"time"
)

// ErrStockBelowZero is returned when an adjustment would leave negative
// stock.
var ErrStockBelowZero = errors.New("adjustment would take stock below zero")

// Stock is the on-hand quantity of one product at one store.
type Stock struct {
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	StoreID     int64     `json:"store_id"`
	Quantity    int64     `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AdjustmentLog records one stock mutation, who did it and why.
type AdjustmentLog struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"store_id"`
	ProductID int64     `json:"product_id"`
	Delta     int64     `json:"delta"`
	Note      string    `json:"note,omitempty"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AdjustRequest changes a product's stock by a signed delta.
type AdjustRequest struct {
	ProductID int64  `json:"product_id"`
	Delta     int64  `json:"delta"`
	Note      string `json:"note,omitempty"`
}

// QuantityRow is one row of a bulk quantity import.
type QuantityRow struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// StockPage is one page of stock rows.
type StockPage struct {
	Data        []*Stock `json:"data"`
	Total       int      `json:"total"`
	CurrentPage int      `json:"current_page"`
	TotalPages  int      `json:"total_pages"`
}
