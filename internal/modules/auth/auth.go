package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued to dashboards. StoreID is absent until
// the principal picks a store; choose-store re-issues the token with it set.
type Claims struct {
	UserID  int64  `json:"user_id"`
	Role    string `json:"role"`
	StoreID int64  `json:"store_id,omitempty"`
	jwt.RegisteredClaims
}

// UserSummary is the principal projection returned with every token.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// TokenResponse is the credential envelope returned by login and
// choose-store.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"` // seconds
	User        UserSummary `json:"user"`
}

// Profile resolves the display fields the dashboard header needs plus the
// token's remaining lifetime.
type Profile struct {
	User struct {
		ID          int64  `json:"id"`
		Username    string `json:"username"`
		FullName    string `json:"full_name"`
		Role        string `json:"role"`
		StoreID     int64  `json:"store_id,omitempty"`
		StoreName   string `json:"store_name,omitempty"`
		StoreImage  string `json:"store_image,omitempty"`
		StorePoints int64  `json:"store_points"`
	} `json:"user"`
	ExpiresIn     int64 `json:"expires_in"` // seconds until the token dies
	ExpiredStatus bool  `json:"expired_status"`
}

// Service defines authentication business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	// ChooseStore exchanges the caller's claims plus a store id for a new
	// store-scoped credential. The old token stays valid until it expires;
	// the client is expected to replace it atomically on its side.
	ChooseStore(ctx context.Context, claims Claims, storeID int64) (*TokenResponse, error)
	Profile(ctx context.Context, claims Claims) (*Profile, error)
	// Verify checks signature and expiry and returns the parsed claims.
	Verify(token string) (*Claims, error)
}
