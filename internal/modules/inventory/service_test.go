package inventory

import (
	"context"
	"fmt"
	"testing"
)

type fakeRepo struct {
	stock map[int64]int64 // productID -> quantity, single store
	logs  []*AdjustmentLog
}

func newFakeRepo() *fakeRepo { return &fakeRepo{stock: map[int64]int64{}} }

func (r *fakeRepo) GetStock(ctx context.Context, storeID, productID int64) (*Stock, error) {
	q, ok := r.stock[productID]
	if !ok {
		return nil, fmt.Errorf("no stock row for product %d", productID)
	}
	return &Stock{StoreID: storeID, ProductID: productID, Quantity: q}, nil
}

func (r *fakeRepo) ListStock(ctx context.Context, storeID int64, page, limit int) ([]*Stock, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) Apply(ctx context.Context, log *AdjustmentLog) error {
	next := r.stock[log.ProductID] + log.Delta
	if next < 0 {
		return ErrStockBelowZero
	}
	r.stock[log.ProductID] = next
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeRepo) SetQuantity(ctx context.Context, storeID, productID, quantity, userID int64) error {
	r.stock[productID] = quantity
	return nil
}

func (r *fakeRepo) ListLogs(ctx context.Context, storeID, productID int64, page, limit int) ([]*AdjustmentLog, int, error) {
	return r.logs, len(r.logs), nil
}

func TestAdjustStock(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Adjust(ctx, 42, 1, AdjustRequest{ProductID: 7, Delta: 10, Note: "restock"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Adjust(ctx, 42, 1, AdjustRequest{ProductID: 7, Delta: -3}); err != nil {
		t.Fatal(err)
	}

	stock, err := svc.GetStock(ctx, 42, 7)
	if err != nil {
		t.Fatal(err)
	}
	if stock.Quantity != 7 {
		t.Fatalf("quantity = %d, want 7", stock.Quantity)
	}
	if len(repo.logs) != 2 {
		t.Fatalf("logged %d adjustments, want 2", len(repo.logs))
	}
}

func TestAdjustBelowZeroRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Adjust(ctx, 42, 1, AdjustRequest{ProductID: 7, Delta: 5}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Adjust(ctx, 42, 1, AdjustRequest{ProductID: 7, Delta: -6}); err != ErrStockBelowZero {
		t.Fatalf("err = %v, want ErrStockBelowZero", err)
	}
	if repo.stock[7] != 5 {
		t.Fatalf("quantity = %d after a refused adjustment, want 5", repo.stock[7])
	}
}

func TestAdjustValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if err := svc.Adjust(ctx, 42, 1, AdjustRequest{Delta: 5}); err == nil {
		t.Fatal("missing product id accepted")
	}
	if err := svc.Adjust(ctx, 42, 1, AdjustRequest{ProductID: 7}); err == nil {
		t.Fatal("zero delta accepted")
	}
}

func TestImportQuantitiesCountsFailures(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	ok, failed, err := svc.ImportQuantities(ctx, 42, 1, []QuantityRow{
		{ProductID: 1, Quantity: 10},
		{ProductID: 0, Quantity: 5},  // no product id
		{ProductID: 2, Quantity: -1}, // negative quantity
		{ProductID: 3, Quantity: 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if ok != 2 || failed != 2 {
		t.Fatalf("ok=%d failed=%d, want 2/2", ok, failed)
	}
	if repo.stock[1] != 10 || repo.stock[3] != 0 {
		t.Fatalf("stock %v", repo.stock)
	}

	if _, _, err := svc.ImportQuantities(ctx, 42, 1, nil); err == nil {
		t.Fatal("empty import accepted")
	}
}
