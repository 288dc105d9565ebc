package admin

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/bramantyo/ombot-backend/internal/modules/payment"
	"github.com/bramantyo/ombot-backend/internal/modules/points"
	"github.com/bramantyo/ombot-backend/internal/modules/settings"
	"github.com/bramantyo/ombot-backend/internal/modules/store"
	"github.com/bramantyo/ombot-backend/internal/modules/user"
)

// Service defines the platform administration surface. Everything here is
// admin-role only; the handler enforces that before calling in.
type Service interface {
	Totals(ctx context.Context) (*Totals, error)

	ListUsers(ctx context.Context, page, limit int) (*UserPage, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*user.User, error)
	UpdateUserStatus(ctx context.Context, userID int64, status string) error
	AssignUserToStore(ctx context.Context, userID int64, req AssignRequest) error

	ListStores(ctx context.Context, page, limit int) (*UserPage, error)
	CreateStore(ctx context.Context, req CreateStoreRequest) (*store.Store, error)
	AdjustBalance(ctx context.Context, storeID int64, req AdjustBalanceRequest) error

	PaymentHistory(ctx context.Context, page, limit int) (*payment.HistoryPage, error)
	EmailHistory(ctx context.Context, page, limit int) ([]*settings.EmailHistory, error)
}

type service struct {
	repo     Repository
	users    user.Repository
	stores   store.Service
	storesDB store.Repository
	wallet   points.Service
	payments payment.Service
	emails   settings.Repository
}

func NewService(
	repo Repository,
	users user.Repository,
	stores store.Service,
	storesDB store.Repository,
	wallet points.Service,
	payments payment.Service,
	emails settings.Repository,
) Service {
	return &service{
		repo:     repo,
		users:    users,
		stores:   stores,
		storesDB: storesDB,
		wallet:   wallet,
		payments: payments,
		emails:   emails,
	}
}

func (s *service) Totals(ctx context.Context) (*Totals, error) {
	return s.repo.Totals(ctx)
}

func (s *service) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit = clampPage(page, limit)
	list, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*user.User{}
	}
	return &UserPage{
		Data:        list,
		Total:       total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*user.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if req.Username == "" {
		req.Username = req.Email
	}

	role := user.Role(req.Role)
	switch role {
	case "":
		role = user.RoleMerchant
	case user.RoleAdmin, user.RoleMerchant:
	default:
		return nil, fmt.Errorf("invalid role: %s", req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &user.User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         role,
		Status:       user.StatusActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, fmt.Errorf("email already registered")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) UpdateUserStatus(ctx context.Context, userID int64, status string) error {
	st := user.Status(status)
	if st != user.StatusActive && st != user.StatusSuspended {
		return fmt.Errorf("invalid status: %s", status)
	}
	return s.users.UpdateStatus(ctx, userID, st)
}

func (s *service) AssignUserToStore(ctx context.Context, userID int64, req AssignRequest) error {
	if req.StoreID == 0 {
		return fmt.Errorf("store_id is required")
	}
	if _, err := s.stores.Get(ctx, req.StoreID); err != nil {
		return err
	}
	role := req.Role
	if role == "" {
		role = "staff"
	}
	m := &user.Member{StoreID: req.StoreID, UserID: userID, Role: role}
	if err := s.users.CreateMember(ctx, m); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return fmt.Errorf("user is already a member of this store")
		}
		return err
	}
	return nil
}

func (s *service) ListStores(ctx context.Context, page, limit int) (*UserPage, error) {
	page, limit = clampPage(page, limit)
	list, total, err := s.storesDB.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*store.Store{}
	}
	return &UserPage{
		Data:        list,
		Total:       total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

func (s *service) CreateStore(ctx context.Context, req CreateStoreRequest) (*store.Store, error) {
	if req.OwnerID == 0 {
		return nil, fmt.Errorf("owner_id is required")
	}
	if _, err := s.users.GetByID(ctx, req.OwnerID); err != nil {
		return nil, fmt.Errorf("owner not found: %w", err)
	}
	return s.stores.Create(ctx, req.OwnerID, store.CreateRequest{Name: req.Name, ImageURL: req.ImageURL})
}

func (s *service) AdjustBalance(ctx context.Context, storeID int64, req AdjustBalanceRequest) error {
	if req.Amount == 0 {
		return fmt.Errorf("amount must not be zero")
	}
	note := req.Note
	if note == "" {
		note = "Manual adjustment"
	}
	if req.Amount > 0 {
		return s.wallet.Credit(ctx, storeID, req.Amount, points.TypeAdjustment, note)
	}
	return s.wallet.Debit(ctx, storeID, -req.Amount, points.TypeAdjustment, note)
}

func (s *service) PaymentHistory(ctx context.Context, page, limit int) (*payment.HistoryPage, error) {
	return s.payments.AllHistory(ctx, page, limit)
}

func (s *service) EmailHistory(ctx context.Context, page, limit int) ([]*settings.EmailHistory, error) {
	page, limit = clampPage(page, limit)
	entries, _, err := s.emails.ListAllEmailHistory(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*settings.EmailHistory{}
	}
	return entries, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
