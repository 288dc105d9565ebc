package payment

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Classification buckets gateway status strings for display and for the
// credit-once guard. The gateway vocabulary is open-ended, so anything
// unrecognised lands in ClassUnknown instead of failing.
type Classification string

const (
	ClassSettled Classification = "settled"
	ClassPending Classification = "pending"
	ClassFailed  Classification = "failed"
	ClassUnknown Classification = "unknown"
)

// Classify maps a raw Midtrans transaction status onto our buckets.
func Classify(status string) Classification {
	switch strings.ToLower(status) {
	case "settlement", "capture", "success":
		return ClassSettled
	case "pending", "authorize":
		return ClassPending
	case "expire", "cancel", "deny", "failure":
		return ClassFailed
	default:
		return ClassUnknown
	}
}

// Transaction records one top-up attempt against the gateway.
type Transaction struct {
	ID          uuid.UUID      `json:"id"`
	StoreID     int64          `json:"store_id"`
	OrderID     string         `json:"order_id"`
	Amount      int64          `json:"amount"` // rupiah
	Points      int64          `json:"points"`
	Status      string         `json:"status"` // raw gateway status, verbatim
	Class       Classification `json:"class"`
	SnapToken   string         `json:"-"`
	RedirectURL string         `json:"redirect_url,omitempty"`
	Settled     bool           `json:"settled"`
	SettledAt   *time.Time     `json:"settled_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewOrderID mints the external order id handed to the gateway.
func NewOrderID() string {
	return "TOPUP-" + uuid.NewString()
}

// PointsForAmount converts a rupiah top-up amount into wallet points
// (Rp 10.000 buys 100 points).
func PointsForAmount(amount int64) int64 {
	return amount / 100
}

// TopupResponse is what the dashboard needs to open the hosted widget.
type TopupResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	OrderID     string `json:"order_id"`
}

// SyncResponse is the reconciliation result.
type SyncResponse struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// HistoryPage is one page of payment history rows.
type HistoryPage struct {
	Data        []*Transaction `json:"data"`
	Total       int            `json:"total"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
}
