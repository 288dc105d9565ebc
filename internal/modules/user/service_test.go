package user

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	users   map[int64]*User
	members map[int64][]*Member
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]*User{}, members: map[int64][]*Member{}, nextID: 1}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("duplicate key violates unique constraint")
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("no user %d", id)
	}
	return u, nil
}

func (r *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("no user %s", email)
}

func (r *fakeRepo) List(ctx context.Context, page, limit int) ([]*User, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("no user %d", id)
	}
	u.Status = status
	return nil
}

func (r *fakeRepo) ListMembers(ctx context.Context, storeID int64) ([]*Member, error) {
	return r.members[storeID], nil
}

func (r *fakeRepo) CreateMember(ctx context.Context, m *Member) error {
	for _, existing := range r.members[m.StoreID] {
		if existing.UserID == m.UserID {
			return fmt.Errorf("duplicate key violates unique constraint")
		}
	}
	r.members[m.StoreID] = append(r.members[m.StoreID], m)
	return nil
}

func (r *fakeRepo) UpdateMember(ctx context.Context, m *Member) error { return nil }
func (r *fakeRepo) DeleteMember(ctx context.Context, storeID, memberID int64) error {
	return nil
}
func (r *fakeRepo) IsMember(ctx context.Context, storeID, userID int64) (bool, error) {
	for _, m := range r.members[storeID] {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func TestRegister(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterRequest{
		Email:    "Owner@Example.com",
		FullName: "Owner",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "owner@example.com" {
		t.Fatalf("email = %q, want lowercased", u.Email)
	}
	if u.Username != "owner@example.com" {
		t.Fatalf("username = %q, want defaulted to email", u.Username)
	}
	if u.Role != RoleMerchant || u.Status != StatusActive {
		t.Fatalf("role=%s status=%s", u.Role, u.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct-horse")); err != nil {
		t.Fatal("password not hashed with bcrypt")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Password: "correct-horse"}); err == nil {
		t.Fatal("missing email accepted")
	}
	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "short"}); err == nil {
		t.Fatal("short password accepted")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "correct-horse"}); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "correct-horse"})
	if err == nil || err.Error() != "email already registered" {
		t.Fatalf("err = %v", err)
	}
}

func TestMembers(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	owner, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}

	m, err := svc.AddMember(ctx, 42, MemberRequest{UserID: owner.ID})
	if err != nil {
		t.Fatal(err)
	}
	if m.Role != "staff" {
		t.Fatalf("role = %q, want defaulted to staff", m.Role)
	}

	if _, err := svc.AddMember(ctx, 42, MemberRequest{UserID: owner.ID}); err == nil {
		t.Fatal("duplicate membership accepted")
	}
	if _, err := svc.AddMember(ctx, 42, MemberRequest{UserID: 999}); err == nil {
		t.Fatal("unknown user accepted")
	}
	if _, err := svc.AddMember(ctx, 42, MemberRequest{}); err == nil {
		t.Fatal("missing user_id accepted")
	}
}
