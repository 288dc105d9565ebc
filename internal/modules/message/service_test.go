package message

import (
	"context"
	"database/sql"
	"testing"
)

type fakeRepo struct {
	templates map[int64]*Template
}

func (r *fakeRepo) Get(ctx context.Context, storeID int64) (*Template, error) {
	t, ok := r.templates[storeID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}

func (r *fakeRepo) Upsert(ctx context.Context, t *Template) error {
	r.templates[t.StoreID] = t
	return nil
}

func TestGetFallsBackToDefault(t *testing.T) {
	svc := NewService(&fakeRepo{templates: map[int64]*Template{}})

	got, err := svc.Get(context.Background(), 42)
	if err != nil {
		t.Fatal(err)
	}
	if got.StoreID != 42 {
		t.Fatalf("store id = %d", got.StoreID)
	}
	if got.Greeting == "" || got.OrderInfo == "" {
		t.Fatalf("default template is incomplete: %+v", got)
	}
}

func TestUpdateThenGet(t *testing.T) {
	repo := &fakeRepo{templates: map[int64]*Template{}}
	svc := NewService(repo)
	ctx := context.Background()

	updated, err := svc.Update(ctx, 42, UpdateRequest{
		Greeting:  "Halo {{customer_name}}!",
		OrderInfo: "Status: {{status}}",
		Closing:   "Terima kasih.",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.StoreID != 42 {
		t.Fatalf("store id = %d", updated.StoreID)
	}

	got, err := svc.Get(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if got.Greeting != "Halo {{customer_name}}!" {
		t.Fatalf("greeting = %q", got.Greeting)
	}
}

func TestUpdateRequiresGreeting(t *testing.T) {
	svc := NewService(&fakeRepo{templates: map[int64]*Template{}})
	if _, err := svc.Update(context.Background(), 42, UpdateRequest{Greeting: "   "}); err == nil {
		t.Fatal("blank greeting accepted")
	}
}
