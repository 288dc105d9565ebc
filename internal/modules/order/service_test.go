package order

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/bramantyo/ombot-backend/internal/modules/points"
)

type fakeRepo struct {
	orders map[int64]*Order
	nextID int64
}

func newFakeRepo() *fakeRepo { return &fakeRepo{orders: map[int64]*Order{}, nextID: 1} }

func (r *fakeRepo) Create(ctx context.Context, o *Order) error {
	o.ID = r.nextID
	r.nextID++
	r.orders[o.ID] = o
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, storeID, id int64) (*Order, error) {
	o, ok := r.orders[id]
	if !ok || o.StoreID != storeID {
		return nil, fmt.Errorf("no order %d for store %d", id, storeID)
	}
	copied := *o
	return &copied, nil
}

func (r *fakeRepo) List(ctx context.Context, storeID int64, status Status, page, limit int) ([]*Order, int, error) {
	var matched []*Order
	for id := int64(1); id < r.nextID; id++ {
		o, ok := r.orders[id]
		if !ok || o.StoreID != storeID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		matched = append(matched, o)
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, len(matched), nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], len(matched), nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, storeID, id int64, status Status) error {
	o, ok := r.orders[id]
	if !ok || o.StoreID != storeID {
		return fmt.Errorf("no order %d for store %d", id, storeID)
	}
	o.Status = status
	return nil
}

// fakeWallet holds a balance and counts debits, refusing below zero like the
// real service.
type fakeWallet struct {
	balance int64
	debits  int
}

func (w *fakeWallet) Balance(ctx context.Context, storeID int64) (int64, error) {
	return w.balance, nil
}
func (w *fakeWallet) History(ctx context.Context, storeID int64, page, limit int) (*points.HistoryPage, error) {
	return nil, nil
}
func (w *fakeWallet) Credit(ctx context.Context, storeID, amount int64, typ points.EntryType, note string) error {
	w.balance += amount
	return nil
}
func (w *fakeWallet) Debit(ctx context.Context, storeID, amount int64, typ points.EntryType, note string) error {
	if w.balance < amount {
		return points.ErrInsufficientPoints
	}
	w.balance -= amount
	w.debits++
	return nil
}

func TestCompleteOrderBurnsOnePoint(t *testing.T) {
	repo := newFakeRepo()
	wallet := &fakeWallet{balance: 5}
	svc := NewService(repo, wallet)
	ctx := context.Background()

	o, err := svc.Create(ctx, 42, CreateRequest{CustomerName: "Budi", Total: 150000})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateStatus(ctx, 42, o.ID, StatusCompleted)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != StatusCompleted {
		t.Fatalf("status = %s, want completed", updated.Status)
	}
	if wallet.balance != 4 {
		t.Fatalf("balance = %d, want 4", wallet.balance)
	}
	if wallet.debits != 1 {
		t.Fatalf("debited %d times, want 1", wallet.debits)
	}
}

func TestCompleteOrderRefusedAtZeroBalance(t *testing.T) {
	repo := newFakeRepo()
	wallet := &fakeWallet{balance: 0}
	svc := NewService(repo, wallet)
	ctx := context.Background()

	o, err := svc.Create(ctx, 42, CreateRequest{CustomerName: "Budi", Total: 150000})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.UpdateStatus(ctx, 42, o.ID, StatusCompleted)
	if err != points.ErrInsufficientPoints {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}

	// The order must not have moved.
	got, err := svc.Get(ctx, 42, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusPending {
		t.Fatalf("status = %s, want still pending", got.Status)
	}
}

func TestCancelDoesNotBurnPoints(t *testing.T) {
	repo := newFakeRepo()
	wallet := &fakeWallet{balance: 3}
	svc := NewService(repo, wallet)
	ctx := context.Background()

	o, err := svc.Create(ctx, 42, CreateRequest{CustomerName: "Sari", Total: 20000})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, 42, o.ID, StatusCancelled); err != nil {
		t.Fatal(err)
	}
	if wallet.balance != 3 {
		t.Fatalf("balance = %d, cancellation must not burn points", wallet.balance)
	}
}

func TestInvalidTransitionRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeWallet{balance: 10})
	ctx := context.Background()

	o, err := svc.Create(ctx, 42, CreateRequest{CustomerName: "Budi", Total: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, 42, o.ID, StatusCancelled); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateStatus(ctx, 42, o.ID, StatusCompleted); err == nil {
		t.Fatal("a cancelled order must not complete")
	}
}

func TestOrdersAreStoreScoped(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeWallet{balance: 10})
	ctx := context.Background()

	o, err := svc.Create(ctx, 42, CreateRequest{CustomerName: "Budi", Total: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, 99, o.ID); err == nil {
		t.Fatal("another store must not see the order")
	}
	if _, err := svc.UpdateStatus(ctx, 99, o.ID, StatusProcessing); err == nil {
		t.Fatal("another store must not move the order")
	}
}

func TestExportCSV(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeWallet{balance: 10})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, 42, CreateRequest{
			CustomerName: fmt.Sprintf("Customer %d", i),
			Total:        int64(1000 * (i + 1)),
		}); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, &buf, 42, ""); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3 orders", len(rows))
	}
	if rows[0][0] != "order_number" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][1] != "Customer 0" {
		t.Fatalf("unexpected first row %v", rows[1])
	}
}
