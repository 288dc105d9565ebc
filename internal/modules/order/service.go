package order

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/bramantyo/ombot-backend/internal/modules/points"
	"github.com/google/uuid"
)

// Service defines order business logic.
type Service interface {
	Create(ctx context.Context, storeID int64, req CreateRequest) (*Order, error)
	Get(ctx context.Context, storeID, id int64) (*Order, error)
	List(ctx context.Context, storeID int64, status Status, page, limit int) (*Page, error)
	// UpdateStatus advances an order. Completing an order burns one wallet
	// point; at zero balance the completion is refused.
	UpdateStatus(ctx context.Context, storeID, id int64, next Status) (*Order, error)
	// ExportCSV streams every order matching the filter as CSV rows.
	ExportCSV(ctx context.Context, w io.Writer, storeID int64, status Status) error
}

type service struct {
	repo   Repository
	wallet points.Service
}

func NewService(repo Repository, wallet points.Service) Service {
	return &service{repo: repo, wallet: wallet}
}

func (s *service) Create(ctx context.Context, storeID int64, req CreateRequest) (*Order, error) {
	if req.CustomerName == "" {
		return nil, fmt.Errorf("customer_name is required")
	}
	if req.Total < 0 {
		return nil, fmt.Errorf("total cannot be negative")
	}
	o := &Order{
		StoreID:       storeID,
		OrderNumber:   "ORD-" + uuid.NewString()[:8],
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Status:        StatusPending,
		Total:         req.Total,
		Note:          req.Note,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) Get(ctx context.Context, storeID, id int64) (*Order, error) {
	o, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	return o, nil
}

func (s *service) List(ctx context.Context, storeID int64, status Status, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	orders, total, err := s.repo.List(ctx, storeID, status, page, limit)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return &Page{
		Data:        orders,
		Total:       total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

func (s *service) UpdateStatus(ctx context.Context, storeID, id int64, next Status) (*Order, error) {
	o, err := s.repo.GetByID(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if !CanTransition(o.Status, next) {
		return nil, fmt.Errorf("cannot move order from %s to %s", o.Status, next)
	}

	// One point per completed order. Burn before flipping the status so a
	// store at zero balance cannot complete orders.
	if next == StatusCompleted {
		note := fmt.Sprintf("Order %s completed", o.OrderNumber)
		if err := s.wallet.Debit(ctx, storeID, 1, points.TypeOrder, note); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateStatus(ctx, storeID, id, next); err != nil {
		return nil, err
	}
	o.Status = next
	return o, nil
}

func (s *service) ExportCSV(ctx context.Context, w io.Writer, storeID int64, status Status) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"order_number", "customer", "phone", "status", "total", "created_at"}); err != nil {
		return err
	}

	const batch = 200
	for page := 1; ; page++ {
		orders, _, err := s.repo.List(ctx, storeID, status, page, batch)
		if err != nil {
			return err
		}
		for _, o := range orders {
			row := []string{
				o.OrderNumber,
				o.CustomerName,
				o.CustomerPhone,
				string(o.Status),
				strconv.FormatInt(o.Total, 10),
				o.CreatedAt.Format(time.RFC3339),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		if len(orders) < batch {
			break
		}
	}

	cw.Flush()
	return cw.Error()
}
