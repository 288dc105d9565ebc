package points

import (
	"context"
	"fmt"
)

// Service defines wallet business logic. Credit and Debit are the only
// mutation entry points; payment top-ups, order burns and admin adjustments
// all go through them so every balance move leaves a ledger row.
type Service interface {
	Balance(ctx context.Context, storeID int64) (int64, error)
	History(ctx context.Context, storeID int64, page, limit int) (*HistoryPage, error)
	Credit(ctx context.Context, storeID, amount int64, typ EntryType, note string) error
	Debit(ctx context.Context, storeID, amount int64, typ EntryType, note string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Balance(ctx context.Context, storeID int64) (int64, error) {
	return s.repo.Balance(ctx, storeID)
}

func (s *service) History(ctx context.Context, storeID int64, page, limit int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	entries, total, err := s.repo.History(ctx, storeID, page, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*Entry{}
	}
	totalPages := (total + limit - 1) / limit
	return &HistoryPage{
		Data:       entries,
		Pagination: Pagination{Total: total, CurrentPage: page, TotalPages: totalPages},
	}, nil
}

func (s *service) Credit(ctx context.Context, storeID, amount int64, typ EntryType, note string) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}
	return s.repo.Move(ctx, &Entry{StoreID: storeID, Amount: amount, Type: typ, Note: note})
}

func (s *service) Debit(ctx context.Context, storeID, amount int64, typ EntryType, note string) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive")
	}
	balance, err := s.repo.Balance(ctx, storeID)
	if err != nil {
		return err
	}
	if balance < amount {
		return ErrInsufficientPoints
	}
	return s.repo.Move(ctx, &Entry{StoreID: storeID, Amount: -amount, Type: typ, Note: note})
}
