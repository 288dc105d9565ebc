package message

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Service defines reply-template business logic.
type Service interface {
	Get(ctx context.Context, storeID int64) (*Template, error)
	Update(ctx context.Context, storeID int64, req UpdateRequest) (*Template, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Get(ctx context.Context, storeID int64) (*Template, error) {
	t, err := s.repo.Get(ctx, storeID)
	if err == sql.ErrNoRows {
		return DefaultTemplate(storeID), nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Update(ctx context.Context, storeID int64, req UpdateRequest) (*Template, error) {
	if strings.TrimSpace(req.Greeting) == "" {
		return nil, fmt.Errorf("greeting is required")
	}
	t := &Template{
		StoreID:   storeID,
		Greeting:  req.Greeting,
		OrderInfo: req.OrderInfo,
		Closing:   req.Closing,
	}
	if err := s.repo.Upsert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
