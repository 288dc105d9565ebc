package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/bramantyo/ombot-backend/internal/modules/user"
)

type fakeRepo struct {
	stores map[int64]*Store
	nextID int64
}

func newFakeRepo() *fakeRepo { return &fakeRepo{stores: map[int64]*Store{}, nextID: 1} }

func (r *fakeRepo) Create(ctx context.Context, s *Store) error {
	s.ID = r.nextID
	r.nextID++
	r.stores[s.ID] = s
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, fmt.Errorf("no store %d", id)
	}
	return s, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID int64) ([]*Store, error) {
	return nil, nil
}

func (r *fakeRepo) List(ctx context.Context, page, limit int) ([]*Store, int, error) {
	return nil, 0, nil
}

type fakeMembers struct {
	user.Repository
	members   []*user.Member
	createErr error
}

func (r *fakeMembers) CreateMember(ctx context.Context, m *user.Member) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.members = append(r.members, m)
	return nil
}

func (r *fakeMembers) IsMember(ctx context.Context, storeID, userID int64) (bool, error) {
	for _, m := range r.members {
		if m.StoreID == storeID && m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateStoreMakesOwnerMember(t *testing.T) {
	members := &fakeMembers{}
	svc := NewService(newFakeRepo(), members)
	ctx := context.Background()

	st, err := svc.Create(ctx, 7, CreateRequest{Name: "  Toko Berkah  "})
	if err != nil {
		t.Fatal(err)
	}
	if st.Name != "Toko Berkah" {
		t.Fatalf("name = %q, want trimmed", st.Name)
	}

	if len(members.members) != 1 {
		t.Fatalf("got %d members, want 1", len(members.members))
	}
	m := members.members[0]
	if m.StoreID != st.ID || m.UserID != 7 || m.Role != "owner" {
		t.Fatalf("member = %+v", m)
	}

	ok, err := svc.CanAccess(ctx, st.ID, 7)
	if err != nil || !ok {
		t.Fatalf("creator cannot access the store: %v %v", ok, err)
	}
	ok, err = svc.CanAccess(ctx, st.ID, 99)
	if err != nil || ok {
		t.Fatalf("stranger can access the store: %v %v", ok, err)
	}
}

func TestCreateStoreValidation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeMembers{})

	if _, err := svc.Create(context.Background(), 7, CreateRequest{Name: "   "}); err == nil {
		t.Fatal("blank name accepted")
	}
	if len(repo.stores) != 0 {
		t.Fatal("store written despite invalid request")
	}
}

func TestCreateStoreMembershipFailure(t *testing.T) {
	members := &fakeMembers{createErr: fmt.Errorf("boom")}
	svc := NewService(newFakeRepo(), members)

	if _, err := svc.Create(context.Background(), 7, CreateRequest{Name: "Toko Berkah"}); err == nil {
		t.Fatal("expected the owner membership failure to surface")
	}
}

func TestGetUnknownStore(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeMembers{})

	if _, err := svc.Get(context.Background(), 404); err == nil {
		t.Fatal("expected an error for an unknown store")
	}
}
