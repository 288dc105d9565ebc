package points

import (
	"context"
	"testing"
)

type fakeRepo struct {
	balances map[int64]int64
	entries  []*Entry
}

func newFakeRepo() *fakeRepo { return &fakeRepo{balances: map[int64]int64{}} }

func (r *fakeRepo) Balance(ctx context.Context, storeID int64) (int64, error) {
	return r.balances[storeID], nil
}

func (r *fakeRepo) Move(ctx context.Context, e *Entry) error {
	r.balances[e.StoreID] += e.Amount
	e.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeRepo) History(ctx context.Context, storeID int64, page, limit int) ([]*Entry, int, error) {
	var matched []*Entry
	for _, e := range r.entries {
		if e.StoreID == storeID {
			matched = append(matched, e)
		}
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

func TestCreditAndDebit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Credit(ctx, 42, 500, TypeTopup, "top-up"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Debit(ctx, 42, 1, TypeOrder, "order completed"); err != nil {
		t.Fatal(err)
	}

	balance, err := svc.Balance(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if balance != 499 {
		t.Fatalf("balance = %d, want 499", balance)
	}

	// Every move left a ledger row with the right sign.
	if len(repo.entries) != 2 {
		t.Fatalf("ledger has %d rows, want 2", len(repo.entries))
	}
	if repo.entries[0].Amount != 500 || repo.entries[1].Amount != -1 {
		t.Fatalf("ledger amounts %d, %d", repo.entries[0].Amount, repo.entries[1].Amount)
	}
}

func TestDebitBelowBalance(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.Credit(ctx, 42, 10, TypeAdjustment, "seed"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Debit(ctx, 42, 11, TypeOrder, "too much"); err != ErrInsufficientPoints {
		t.Fatalf("err = %v, want ErrInsufficientPoints", err)
	}

	balance, _ := svc.Balance(ctx, 42)
	if balance != 10 {
		t.Fatalf("balance = %d after a refused debit, want 10", balance)
	}
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if err := svc.Credit(ctx, 42, 0, TypeTopup, ""); err == nil {
		t.Fatal("zero credit accepted")
	}
	if err := svc.Credit(ctx, 42, -5, TypeTopup, ""); err == nil {
		t.Fatal("negative credit accepted")
	}
	if err := svc.Debit(ctx, 42, 0, TypeOrder, ""); err == nil {
		t.Fatal("zero debit accepted")
	}
}

func TestHistoryPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		if err := svc.Credit(ctx, 42, 1, TypeAdjustment, "seed"); err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.History(ctx, 42, 2, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Data) != 10 {
		t.Fatalf("page 2 has %d rows, want 10", len(page.Data))
	}
	if page.Pagination.Total != 25 || page.Pagination.TotalPages != 3 {
		t.Fatalf("pagination %+v", page.Pagination)
	}

	// Out-of-range pages return an empty slice, never nil.
	page, err = svc.History(ctx, 42, 9, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Data == nil || len(page.Data) != 0 {
		t.Fatalf("expected an empty page, got %v", page.Data)
	}
}
