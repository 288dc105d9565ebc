package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/bramantyo/ombot-backend/internal/modules/user"
)

// Service defines store business logic.
type Service interface {
	Create(ctx context.Context, ownerID int64, req CreateRequest) (*Store, error)
	Get(ctx context.Context, id int64) (*Store, error)
	MyStores(ctx context.Context, userID int64) ([]*Store, error)
	CanAccess(ctx context.Context, storeID, userID int64) (bool, error)
}

type service struct {
	repo    Repository
	members user.Repository
}

func NewService(repo Repository, members user.Repository) Service {
	return &service{repo: repo, members: members}
}

func (s *service) Create(ctx context.Context, ownerID int64, req CreateRequest) (*Store, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	st := &Store{Name: req.Name, ImageURL: req.ImageURL}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}

	// The creator manages the store from day one.
	m := &user.Member{StoreID: st.ID, UserID: ownerID, Role: "owner"}
	if err := s.members.CreateMember(ctx, m); err != nil {
		return nil, fmt.Errorf("store created but owner membership failed: %w", err)
	}
	return st, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Store, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}
	return st, nil
}

func (s *service) MyStores(ctx context.Context, userID int64) ([]*Store, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) CanAccess(ctx context.Context, storeID, userID int64) (bool, error) {
	return s.members.IsMember(ctx, storeID, userID)
}
