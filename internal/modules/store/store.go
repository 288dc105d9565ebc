package store

import "time"

// Store is a merchant outlet (the tenant unit of the platform).
type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the minimal projection used by the store picker.
type Summary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateRequest is the payload for opening a new store.
type CreateRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}
