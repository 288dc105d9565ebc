package user

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Service defines user business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	ListMembers(ctx context.Context, storeID int64) ([]*Member, error)
	AddMember(ctx context.Context, storeID int64, req MemberRequest) (*Member, error)
	UpdateMember(ctx context.Context, storeID, memberID int64, role string) error
	RemoveMember(ctx context.Context, storeID, memberID int64) error
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// MemberRequest adds an existing user to a store.
type MemberRequest struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if req.Username == "" {
		req.Username = req.Email
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         RoleMerchant,
		Status:       StatusActive,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, fmt.Errorf("email already registered")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return u, nil
}

func (s *service) ListMembers(ctx context.Context, storeID int64) ([]*Member, error) {
	return s.repo.ListMembers(ctx, storeID)
}

func (s *service) AddMember(ctx context.Context, storeID int64, req MemberRequest) (*Member, error) {
	if req.UserID == 0 {
		return nil, fmt.Errorf("user_id is required")
	}
	if _, err := s.repo.GetByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	role := req.Role
	if role == "" {
		role = "staff"
	}
	m := &Member{StoreID: storeID, UserID: req.UserID, Role: role}
	if err := s.repo.CreateMember(ctx, m); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, fmt.Errorf("user is already a member of this store")
		}
		return nil, err
	}
	return m, nil
}

func (s *service) UpdateMember(ctx context.Context, storeID, memberID int64, role string) error {
	if role == "" {
		return fmt.Errorf("role is required")
	}
	return s.repo.UpdateMember(ctx, &Member{ID: memberID, StoreID: storeID, Role: role})
}

func (s *service) RemoveMember(ctx context.Context, storeID, memberID int64) error {
	return s.repo.DeleteMember(ctx, storeID, memberID)
}
