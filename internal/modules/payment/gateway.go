package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway is the interface to the hosted payment provider. The production
// implementation talks to Midtrans; tests substitute a fake.
type Gateway interface {
	// CreateSnapTransaction opens a payment session and returns the widget
	// token for the given external order id and gross amount.
	CreateSnapTransaction(ctx context.Context, orderID string, amount int64) (*SnapSession, error)
	// TransactionStatus queries the provider for the current status of an
	// external order id.
	TransactionStatus(ctx context.Context, orderID string) (*StatusResponse, error)
}

// SnapSession is a short-lived, single-use widget session.
type SnapSession struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// StatusResponse is the provider's view of a transaction.
type StatusResponse struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusMessage     string `json:"status_message,omitempty"`
	GrossAmount       string `json:"gross_amount,omitempty"`
}

// ── Midtrans Snap adapter ─────────────────────────────────────────────────────
// Snap API: POST {snapBase}/snap/v1/transactions creates a session,
// GET {apiBase}/v2/{order_id}/status reads transaction state. Both authorise
// with HTTP basic auth, server key as username and empty password.

type midtransGateway struct {
	snapBase  string
	apiBase   string
	serverKey string
	client    *http.Client
}

func NewMidtransGateway(snapBase, apiBase, serverKey string) Gateway {
	return &midtransGateway{
		snapBase:  snapBase,
		apiBase:   apiBase,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *midtransGateway) CreateSnapTransaction(ctx context.Context, orderID string, amount int64) (*SnapSession, error) {
	body, err := json.Marshal(map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     orderID,
			"gross_amount": amount,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		g.snapBase+"/snap/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	g.prepare(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("midtrans snap request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, gatewayError("snap transaction", resp)
	}

	session := &SnapSession{}
	if err := json.NewDecoder(resp.Body).Decode(session); err != nil {
		return nil, fmt.Errorf("invalid snap response: %w", err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("snap response carried no token")
	}
	return session, nil
}

func (g *midtransGateway) TransactionStatus(ctx context.Context, orderID string) (*StatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		g.apiBase+"/v2/"+orderID+"/status", nil)
	if err != nil {
		return nil, err
	}
	g.prepare(req)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("midtrans status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("transaction %s not found at gateway", orderID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, gatewayError("transaction status", resp)
	}

	status := &StatusResponse{}
	if err := json.NewDecoder(resp.Body).Decode(status); err != nil {
		return nil, fmt.Errorf("invalid status response: %w", err)
	}
	return status, nil
}

func (g *midtransGateway) prepare(req *http.Request) {
	req.SetBasicAuth(g.serverKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func gatewayError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("midtrans %s returned %d: %s", op, resp.StatusCode, string(snippet))
}
