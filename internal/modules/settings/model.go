package settings

import "time"

// SMTPSettings is the per-store mail configuration used by the bot side to
// send order notifications. The password is write-only over the API.
type SMTPSettings struct {
	StoreID   int64     `json:"store_id"`
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpsertRequest creates or replaces a store's SMTP settings.
type UpsertRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Sender   string `json:"sender"`
}

// EmailStatus of a history entry.
type EmailStatus string

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
	EmailQueued EmailStatus = "queued"
)

// EmailHistory is one recorded outbound email attempt. Delivery itself
// happens in the bot service; the dashboard only reads and re-queues.
type EmailHistory struct {
	ID        int64       `json:"id"`
	StoreID   int64       `json:"store_id"`
	Recipient string      `json:"recipient"`
	Subject   string      `json:"subject"`
	Status    EmailStatus `json:"status"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// AppSettings is platform-wide configuration served to dashboards. The
// widget client key lives here so it is never hardcoded client-side; the
// server key never leaves the backend.
type AppSettings struct {
	MidtransClientKey  string `json:"midtrans_client_key"`
	MidtransProduction bool   `json:"midtrans_production"`
}
