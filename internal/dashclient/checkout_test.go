package dashclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// fakeWidget records the open call and lets tests drive the callbacks the
// way the hosted popup would.
type fakeWidget struct {
	opened    bool
	token     string
	callbacks WidgetCallbacks
	closed    int
}

func (w *fakeWidget) Open(ctx context.Context, token string, cb WidgetCallbacks) error {
	w.opened = true
	w.token = token
	w.callbacks = cb
	return nil
}

func (w *fakeWidget) Close() { w.closed++ }

// paymentBackend counts sync calls per order id.
type paymentBackend struct {
	mu    sync.Mutex
	syncs map[string]int
}

func (b *paymentBackend) syncCount(orderID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.syncs[orderID]
}

func newPaymentBackend(t *testing.T, topupFail bool) (*httptest.Server, *paymentBackend) {
	t.Helper()
	backend := &paymentBackend{syncs: map[string]int{}}
	mux := http.NewServeMux()

	mux.HandleFunc("/points/topup", func(w http.ResponseWriter, r *http.Request) {
		if topupFail {
			http.Error(w, "gateway unavailable", http.StatusBadGateway)
			return
		}
		var req struct {
			Amount int64 `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"token":        "T1",
			"redirect_url": "https://pay.example/T1",
			"order_id":     "ORD-1",
		})
	})

	mux.HandleFunc("/payments/sync", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OrderID string `json:"order_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.OrderID == "" {
			http.Error(w, "order_id is required", http.StatusBadRequest)
			return
		}
		backend.mu.Lock()
		backend.syncs[req.OrderID]++
		backend.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"id": "tx-1", "status": "settlement"})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, backend
}

func newCheckout(t *testing.T, topupFail bool) (*Checkout, *fakeWidget, *paymentBackend, *int) {
	t.Helper()
	server, backend := newPaymentBackend(t, topupFail)
	client := NewClient(server.URL, NewMemoryStore(), zerolog.Nop())
	widget := &fakeWidget{}
	refreshes := 0
	checkout := NewCheckout(client, widget, func() { refreshes++ }, zerolog.Nop())
	return checkout, widget, backend, &refreshes
}

func TestCheckoutHappyPath(t *testing.T) {
	checkout, widget, backend, refreshes := newCheckout(t, false)
	ctx := context.Background()

	if err := checkout.Start(ctx, 50000); err != nil {
		t.Fatal(err)
	}
	if !widget.opened || widget.token != "T1" {
		t.Fatalf("widget opened=%v token=%q, want open with T1", widget.opened, widget.token)
	}
	if got := checkout.State(); got != StateWidgetOpen {
		t.Fatalf("state = %s, want %s", got, StateWidgetOpen)
	}
	if got := checkout.OrderID(); got != "ORD-1" {
		t.Fatalf("order id = %q, want ORD-1", got)
	}

	widget.callbacks.OnSuccess(ctx, PaymentResult{OrderID: "ORD-1", TransactionStatus: "settlement"})

	if got := backend.syncCount("ORD-1"); got != 1 {
		t.Fatalf("synced %d times, want exactly 1", got)
	}
	if *refreshes != 1 {
		t.Fatalf("refreshed %d times, want exactly 1", *refreshes)
	}
	if widget.closed != 1 {
		t.Fatalf("widget closed %d times, want 1", widget.closed)
	}
	if got := checkout.State(); got != StateIdle {
		t.Fatalf("state = %s, want back to idle", got)
	}
}

func TestCheckoutInFlightGuard(t *testing.T) {
	checkout, _, _, _ := newCheckout(t, false)
	ctx := context.Background()

	if err := checkout.Start(ctx, 50000); err != nil {
		t.Fatal(err)
	}
	if err := checkout.Start(ctx, 50000); err != ErrCheckoutInFlight {
		t.Fatalf("second start = %v, want ErrCheckoutInFlight", err)
	}
}

func TestCheckoutTopupFailureReturnsToIdle(t *testing.T) {
	checkout, widget, _, refreshes := newCheckout(t, true)
	ctx := context.Background()

	if err := checkout.Start(ctx, 50000); err == nil {
		t.Fatal("expected the topup to fail")
	}
	if widget.opened {
		t.Fatal("widget must not open without a token")
	}
	if *refreshes != 0 {
		t.Fatal("nothing to refresh after a failed topup")
	}
	if got := checkout.State(); got != StateIdle {
		t.Fatalf("state = %s, want idle so a retry can start", got)
	}
	if err := checkout.Start(ctx, 50000); err == nil {
		t.Fatal("backend still failing, start should error, not deadlock")
	}
}

func TestCheckoutCloseReconcilesOpenOrder(t *testing.T) {
	checkout, widget, backend, refreshes := newCheckout(t, false)
	ctx := context.Background()

	if err := checkout.Start(ctx, 50000); err != nil {
		t.Fatal(err)
	}

	// User dismisses the popup without the widget reporting a result. The
	// backend is the only place that knows whether they paid first.
	widget.callbacks.OnClose(ctx)

	if got := backend.syncCount("ORD-1"); got != 1 {
		t.Fatalf("synced %d times, want 1", got)
	}
	if *refreshes != 1 {
		t.Fatalf("refreshed %d times, want 1", *refreshes)
	}
	if got := checkout.State(); got != StateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
}

func TestCheckoutPendingThenCloseSyncsTwice(t *testing.T) {
	checkout, widget, backend, refreshes := newCheckout(t, false)
	ctx := context.Background()

	if err := checkout.Start(ctx, 50000); err != nil {
		t.Fatal(err)
	}

	widget.callbacks.OnPending(ctx, PaymentResult{OrderID: "ORD-1", TransactionStatus: "pending"})
	widget.callbacks.OnClose(ctx)

	if got := backend.syncCount("ORD-1"); got != 2 {
		t.Fatalf("synced %d times, want 2 (pending then close)", got)
	}
	if *refreshes != 2 {
		t.Fatalf("refreshed %d times, want 2", *refreshes)
	}
}

func TestCheckoutErrorOnlyLogs(t *testing.T) {
	checkout, widget, backend, refreshes := newCheckout(t, false)
	ctx := context.Background()

	if err := checkout.Start(ctx, 50000); err != nil {
		t.Fatal(err)
	}

	widget.callbacks.OnError(ctx, PaymentResult{OrderID: "ORD-1", TransactionStatus: "deny"})

	if got := backend.syncCount("ORD-1"); got != 0 {
		t.Fatalf("synced %d times on error, want 0", got)
	}
	if *refreshes != 0 {
		t.Fatal("refresh fired on widget error")
	}
	if got := checkout.State(); got != StateError {
		t.Fatalf("state = %s, want %s", got, StateError)
	}

	// The widget stays up after an error; closing it still reconciles.
	widget.callbacks.OnClose(ctx)
	if got := backend.syncCount("ORD-1"); got != 1 {
		t.Fatalf("synced %d times after close, want 1", got)
	}
}

func TestCheckoutAbandonedBeforeOrderNoSync(t *testing.T) {
	server, backend := newPaymentBackend(t, false)
	client := NewClient(server.URL, NewMemoryStore(), zerolog.Nop())
	widget := &fakeWidget{}
	refreshes := 0
	checkout := NewCheckout(client, widget, func() { refreshes++ }, zerolog.Nop())

	// Simulate a close event with no top-up ever started.
	checkout.handleClose(context.Background())

	if len(backend.syncs) != 0 {
		t.Fatalf("synced %v with no order id", backend.syncs)
	}
	if refreshes != 0 {
		t.Fatal("refresh fired with no order")
	}
	if got := checkout.State(); got != StateIdle {
		t.Fatalf("state = %s, want idle", got)
	}
}
