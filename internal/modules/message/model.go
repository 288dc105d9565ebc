package message

import "time"

// Template is the per-store bot reply template. Placeholders like
// {{customer_name}} and {{order_id}} are substituted by the bot service.
type Template struct {
	StoreID   int64     `json:"store_id"`
	Greeting  string    `json:"greeting"`
	OrderInfo string    `json:"order_info"`
	Closing   string    `json:"closing"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateRequest replaces a store's template.
type UpdateRequest struct {
	Greeting  string `json:"greeting"`
	OrderInfo string `json:"order_info"`
	Closing   string `json:"closing"`
}

// DefaultTemplate is served when a store has not customised its replies.
func DefaultTemplate(storeID int64) *Template {
	return &Template{
		StoreID:   storeID,
		Greeting:  "Halo {{customer_name}}, terima kasih sudah menghubungi kami!",
		OrderInfo: "Pesanan {{order_id}} saat ini berstatus {{status}}.",
		Closing:   "Ada yang bisa kami bantu lagi?",
	}
}
