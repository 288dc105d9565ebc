package inventory

import (
	"context"
	"fmt"
)

// Service defines inventory business logic.
type Service interface {
	GetStock(ctx context.Context, storeID, productID int64) (*Stock, error)
	ListStock(ctx context.Context, storeID int64, page, limit int) (*StockPage, error)
	Adjust(ctx context.Context, storeID, userID int64, req AdjustRequest) error
	// ImportQuantities overwrites quantities from parsed rows; bad rows are
	// skipped and counted in the returned failure count.
	ImportQuantities(ctx context.Context, storeID, userID int64, rows []QuantityRow) (ok, failed int, err error)
	Logs(ctx context.Context, storeID, productID int64, page, limit int) ([]*AdjustmentLog, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetStock(ctx context.Context, storeID, productID int64) (*Stock, error) {
	return s.repo.GetStock(ctx, storeID, productID)
}

func (s *service) ListStock(ctx context.Context, storeID int64, page, limit int) (*StockPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	stocks, total, err := s.repo.ListStock(ctx, storeID, page, limit)
	if err != nil {
		return nil, err
	}
	if stocks == nil {
		stocks = []*Stock{}
	}
	return &StockPage{
		Data:        stocks,
		Total:       total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

func (s *service) Adjust(ctx context.Context, storeID, userID int64, req AdjustRequest) error {
	if req.ProductID == 0 {
		return fmt.Errorf("product_id is required")
	}
	if req.Delta == 0 {
		return fmt.Errorf("delta cannot be zero")
	}
	return s.repo.Apply(ctx, &AdjustmentLog{
		StoreID:   storeID,
		ProductID: req.ProductID,
		Delta:     req.Delta,
		Note:      req.Note,
		UserID:    userID,
	})
}

func (s *service) ImportQuantities(ctx context.Context, storeID, userID int64, rows []QuantityRow) (int, int, error) {
	if len(rows) == 0 {
		return 0, 0, fmt.Errorf("no rows to import")
	}
	ok, failed := 0, 0
	for _, row := range rows {
		if row.ProductID == 0 || row.Quantity < 0 {
			failed++
			continue
		}
		if err := s.repo.SetQuantity(ctx, storeID, row.ProductID, row.Quantity, userID); err != nil {
			failed++
			continue
		}
		ok++
	}
	return ok, failed, nil
}

func (s *service) Logs(ctx context.Context, storeID, productID int64, page, limit int) ([]*AdjustmentLog, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	logs, _, err := s.repo.ListLogs(ctx, storeID, productID, page, limit)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []*AdjustmentLog{}
	}
	return logs, nil
}
