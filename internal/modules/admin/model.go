package admin

// Totals is the platform-wide dashboard summary.
type Totals struct {
	Users             int   `json:"users"`
	Stores            int   `json:"stores"`
	PointsOutstanding int64 `json:"points_outstanding"`
}

// CreateUserRequest lets an admin provision an account with an explicit role.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// StatusRequest changes a user's account status.
type StatusRequest struct {
	Status string `json:"status"`
}

// AssignRequest attaches a user to a store.
type AssignRequest struct {
	StoreID int64  `json:"store_id"`
	Role    string `json:"role"`
}

// AdjustBalanceRequest moves points on a store's wallet. Amount is signed:
// positive credits, negative debits.
type AdjustBalanceRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

// CreateStoreRequest opens a store on behalf of an owner.
type CreateStoreRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	OwnerID  int64  `json:"owner_id"`
}

// UserPage is one page of the platform user list.
type UserPage struct {
	Data        interface{} `json:"data"`
	Total       int         `json:"total"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
}
