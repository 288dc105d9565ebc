package dashclient

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// CheckoutState is where a top-up flow currently stands.
type CheckoutState string

const (
	StateIdle             CheckoutState = "idle"
	StateRequestingToken  CheckoutState = "requesting_token"
	StateWidgetOpen       CheckoutState = "widget_open"
	StateSuccess          CheckoutState = "success"
	StatePending          CheckoutState = "pending"
	StateError            CheckoutState = "error"
	StateClosedUnresolved CheckoutState = "closed_unresolved"
	StateReconciling      CheckoutState = "reconciling"
)

// ErrCheckoutInFlight is returned when Start is called while a previous
// top-up has not come back to idle yet.
var ErrCheckoutInFlight = errors.New("a checkout is already in progress")

// PaymentResult is what the payment widget reports back for a transaction.
type PaymentResult struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusMessage     string `json:"status_message"`
}

// WidgetCallbacks is the contract the widget fires events through.
type WidgetCallbacks struct {
	OnSuccess func(ctx context.Context, result PaymentResult)
	OnPending func(ctx context.Context, result PaymentResult)
	OnError   func(ctx context.Context, result PaymentResult)
	OnClose   func(ctx context.Context)
}

// Widget abstracts the hosted payment popup. The real implementation wraps
// the Snap embed; tests drive the callbacks directly.
type Widget interface {
	Open(ctx context.Context, token string, cb WidgetCallbacks) error
	Close()
}

// Checkout runs one top-up at a time: request a widget token, open the
// widget, then reconcile whatever the widget reports against the backend.
// The widget's word is never final; only a sync round-trip settles anything.
type Checkout struct {
	client *Client
	widget Widget
	log    zerolog.Logger

	// onRefresh runs after every reconciliation so the dashboard re-reads
	// the balance.
	onRefresh func()

	mu      sync.Mutex
	state   CheckoutState
	orderID string
}

func NewCheckout(client *Client, widget Widget, onRefresh func(), log zerolog.Logger) *Checkout {
	return &Checkout{
		client:    client,
		widget:    widget,
		onRefresh: onRefresh,
		log:       log,
		state:     StateIdle,
	}
}

// State reports the current flow position.
func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OrderID is the external order id of the current (or last) top-up.
func (c *Checkout) OrderID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderID
}

// Start begins a top-up for amount rupiah. It returns once the widget is
// open; the rest of the flow arrives through widget callbacks.
func (c *Checkout) Start(ctx context.Context, amount int64) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrCheckoutInFlight
	}
	c.state = StateRequestingToken
	c.orderID = ""
	c.mu.Unlock()

	session, err := c.client.Topup(ctx, amount)
	if err != nil {
		c.setState(StateIdle)
		return err
	}

	c.mu.Lock()
	c.orderID = session.OrderID
	c.state = StateWidgetOpen
	c.mu.Unlock()

	err = c.widget.Open(ctx, session.Token, WidgetCallbacks{
		OnSuccess: c.handleSuccess,
		OnPending: c.handlePending,
		OnError:   c.handleError,
		OnClose:   c.handleClose,
	})
	if err != nil {
		c.setState(StateIdle)
		return err
	}
	return nil
}

func (c *Checkout) handleSuccess(ctx context.Context, result PaymentResult) {
	c.setState(StateSuccess)
	c.reconcile(ctx, c.resultOrderID(result))
	c.widget.Close()
	c.refresh()
	c.setState(StateIdle)
}

func (c *Checkout) handlePending(ctx context.Context, result PaymentResult) {
	c.setState(StatePending)
	c.reconcile(ctx, c.resultOrderID(result))
	c.widget.Close()
	c.refresh()
	c.setState(StateIdle)
}

// handleError only records the failure. The widget stays up so the user can
// retry another payment method; a close will still reconcile.
func (c *Checkout) handleError(ctx context.Context, result PaymentResult) {
	c.setState(StateError)
	c.log.Warn().
		Str("order_id", c.resultOrderID(result)).
		Str("status", result.TransactionStatus).
		Str("message", result.StatusMessage).
		Msg("payment widget reported an error")
}

// handleClose fires when the user dismisses the widget. If a top-up was
// actually opened we cannot know from here whether they paid, so the order is
// reconciled against the backend. A close before any order exists is a plain
// abandon and touches nothing.
func (c *Checkout) handleClose(ctx context.Context) {
	c.mu.Lock()
	orderID := c.orderID
	c.state = StateClosedUnresolved
	c.mu.Unlock()

	if orderID == "" {
		c.log.Debug().Msg("widget closed before a payment session existed")
		c.setState(StateIdle)
		return
	}

	c.reconcile(ctx, orderID)
	c.refresh()
	c.setState(StateIdle)
}

// reconcile settles the order's true status with the backend. Sync failures
// are logged, not surfaced: the server re-syncs on the next history view and
// the credit guard makes retries safe.
func (c *Checkout) reconcile(ctx context.Context, orderID string) {
	c.setState(StateReconciling)
	result, err := c.client.SyncPayment(ctx, orderID)
	if err != nil {
		c.log.Error().Err(err).Str("order_id", orderID).Msg("payment sync failed")
		return
	}
	c.log.Info().Str("order_id", orderID).Str("status", result.Status).Msg("payment reconciled")
}

func (c *Checkout) resultOrderID(result PaymentResult) string {
	if result.OrderID != "" {
		return result.OrderID
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderID
}

func (c *Checkout) setState(s CheckoutState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Checkout) refresh() {
	if c.onRefresh != nil {
		c.onRefresh()
	}
}
