package dashclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Session is the credential envelope returned by login and store switches.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	} `json:"user"`
}

// Profile is the header projection the dashboard renders after load.
type Profile struct {
	User struct {
		ID          int64  `json:"id"`
		Username    string `json:"username"`
		FullName    string `json:"full_name"`
		Role        string `json:"role"`
		StoreID     int64  `json:"store_id"`
		StoreName   string `json:"store_name"`
		StoreImage  string `json:"store_image"`
		StorePoints int64  `json:"store_points"`
	} `json:"user"`
	ExpiresIn     int64 `json:"expires_in"`
	ExpiredStatus bool  `json:"expired_status"`
}

// StoreSummary is one entry in the store picker.
type StoreSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// TopupSession is what the checkout needs to open the payment widget.
type TopupSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	OrderID     string `json:"order_id"`
}

// SyncResult is the reconciled gateway status for one order.
type SyncResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// APIError carries a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is the dashboard's API client. All store scoping rides on the bearer
// token; the client never sends a store id except when switching.
type Client struct {
	baseURL string
	http    *http.Client
	store   TokenStore
	log     zerolog.Logger

	// OnSessionRefresh runs after a successful store switch, once the new
	// credential is persisted. Dashboards re-fetch everything scoped.
	OnSessionRefresh func()
}

func NewClient(baseURL string, store TokenStore, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
		log:     log,
	}
}

// Token returns the stored credential, or empty when logged out.
func (c *Client) Token() string {
	token, err := c.store.Load()
	if err != nil {
		return ""
	}
	return token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.store.Load(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{Status: resp.StatusCode, Message: string(bytes.TrimSpace(snippet))}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Login exchanges credentials for a token and persists it.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var sess Session
	payload := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &sess); err != nil {
		return nil, err
	}
	if err := c.store.Save(sess.AccessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return &sess, nil
}

// Logout clears the stored credential. The server call is best-effort since
// tokens are stateless.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		c.log.Debug().Err(err).Msg("logout call failed, clearing locally anyway")
	}
	return c.store.Clear()
}

func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) MyStores(ctx context.Context) ([]StoreSummary, error) {
	var stores []StoreSummary
	if err := c.do(ctx, http.MethodGet, "/stores/mine", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// SwitchStore exchanges the current credential for one scoped to storeID. The
// stored token is replaced only after the server accepts the switch, so a
// rejected switch leaves the session exactly as it was.
func (c *Client) SwitchStore(ctx context.Context, storeID int64) (*Session, error) {
	var sess Session
	payload := map[string]int64{"store_id": storeID}
	if err := c.do(ctx, http.MethodPost, "/auth/choose-store", payload, &sess); err != nil {
		return nil, err
	}
	if err := c.store.Save(sess.AccessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	if c.OnSessionRefresh != nil {
		c.OnSessionRefresh()
	}
	return &sess, nil
}

func (c *Client) Balance(ctx context.Context) (int64, error) {
	var out struct {
		Balance int64 `json:"balance"`
	}
	if err := c.do(ctx, http.MethodGet, "/points/balance", nil, &out); err != nil {
		return 0, err
	}
	return out.Balance, nil
}

// PointHistories returns one raw page of the ledger. The dashboard renders it
// as-is, so the client does not re-model the rows.
func (c *Client) PointHistories(ctx context.Context, page, limit int) (json.RawMessage, error) {
	var out json.RawMessage
	path := fmt.Sprintf("/points/histories?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PaymentHistories(ctx context.Context, page, limit int) (json.RawMessage, error) {
	var out json.RawMessage
	path := fmt.Sprintf("/payments/histories?page=%d&limit=%d", page, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Topup opens a payment session for the current store scope.
func (c *Client) Topup(ctx context.Context, amount int64) (*TopupSession, error) {
	var out TopupSession
	payload := map[string]int64{"amount": amount}
	if err := c.do(ctx, http.MethodPost, "/points/topup", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SyncPayment asks the backend to re-read the gateway status for an order.
func (c *Client) SyncPayment(ctx context.Context, orderID string) (*SyncResult, error) {
	var out SyncResult
	payload := map[string]string{"order_id": orderID}
	if err := c.do(ctx, http.MethodPost, "/payments/sync", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
