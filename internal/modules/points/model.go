package points

import (
	"errors"
	"time"
)

// EntryType classifies a ledger row.
type EntryType string

const (
	TypeTopup      EntryType = "topup"
	TypeOrder      EntryType = "order"
	TypeAdjustment EntryType = "adjustment"
)

// ErrInsufficientPoints is returned when a debit would take the balance
// below zero.
var ErrInsufficientPoints = errors.New("insufficient points")

// Entry is one append-only point ledger row. Amount is signed: positive for
// credits, negative for burns.
type Entry struct {
	ID        int64     `json:"id"`
	StoreID   int64     `json:"store_id"`
	Amount    int64     `json:"amount"`
	Type      EntryType `json:"type"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Pagination mirrors the shape the dashboard's history tables page through.
type Pagination struct {
	Total       int `json:"total"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// HistoryPage is one page of ledger entries.
type HistoryPage struct {
	Data       []*Entry   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
