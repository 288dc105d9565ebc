package payment

import (
	"context"
	"fmt"

	"github.com/bramantyo/ombot-backend/internal/modules/points"
	"github.com/rs/zerolog"
)

// Service defines top-up and reconciliation business logic.
type Service interface {
	// Topup opens a payment session for (store, amount) and returns the
	// widget token plus the external order id.
	Topup(ctx context.Context, storeID, amount int64) (*TopupResponse, error)
	// Sync re-reads the gateway's status for an order id and applies it.
	// Safe to call any number of times for the same order.
	Sync(ctx context.Context, orderID string) (*SyncResponse, error)
	History(ctx context.Context, storeID int64, page, limit int) (*HistoryPage, error)
	AllHistory(ctx context.Context, page, limit int) (*HistoryPage, error)
}

type service struct {
	repo    Repository
	gateway Gateway
	wallet  points.Service
	log     zerolog.Logger
}

func NewService(repo Repository, gateway Gateway, wallet points.Service, log zerolog.Logger) Service {
	return &service{repo: repo, gateway: gateway, wallet: wallet, log: log}
}

func (s *service) Topup(ctx context.Context, storeID, amount int64) (*TopupResponse, error) {
	if storeID == 0 {
		return nil, fmt.Errorf("store scope is required")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	t := &Transaction{
		StoreID: storeID,
		OrderID: NewOrderID(),
		Amount:  amount,
		Points:  PointsForAmount(amount),
		Status:  "pending",
		Class:   ClassPending,
	}

	// Persist before the gateway call so an order id always has a row to
	// reconcile against, even if the process dies mid-flight.
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateSnapTransaction(ctx, t.OrderID, t.Amount)
	if err != nil {
		if uerr := s.repo.UpdateStatus(ctx, t.OrderID, "failure", ClassFailed); uerr != nil {
			s.log.Error().Err(uerr).Str("order_id", t.OrderID).Msg("mark failed after gateway error")
		}
		return nil, fmt.Errorf("payment session: %w", err)
	}

	return &TopupResponse{
		Token:       session.Token,
		RedirectURL: session.RedirectURL,
		OrderID:     t.OrderID,
	}, nil
}

func (s *service) Sync(ctx context.Context, orderID string) (*SyncResponse, error) {
	if orderID == "" {
		return nil, fmt.Errorf("order_id is required")
	}

	t, err := s.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("payment not found: %w", err)
	}

	status, err := s.gateway.TransactionStatus(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("status sync: %w", err)
	}

	class := Classify(status.TransactionStatus)
	if err := s.repo.UpdateStatus(ctx, orderID, status.TransactionStatus, class); err != nil {
		return nil, err
	}

	if class == ClassSettled {
		settledNow, err := s.repo.MarkSettled(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if settledNow {
			note := fmt.Sprintf("Top-up via Midtrans (%s)", orderID)
			if err := s.wallet.Credit(ctx, t.StoreID, t.Points, points.TypeTopup, note); err != nil {
				// The settled flag is already set; a failed credit here
				// needs operator attention rather than a silent retry that
				// could double-pay.
				s.log.Error().Err(err).Str("order_id", orderID).
					Int64("points", t.Points).Msg("settled but point credit failed")
				return nil, fmt.Errorf("credit points: %w", err)
			}
			s.log.Info().Str("order_id", orderID).Int64("points", t.Points).
				Int64("store_id", t.StoreID).Msg("top-up settled")
		}
	}

	return &SyncResponse{ID: t.ID, Status: status.TransactionStatus}, nil
}

func (s *service) History(ctx context.Context, storeID int64, page, limit int) (*HistoryPage, error) {
	page, limit = clampPage(page, limit)
	txs, total, err := s.repo.ListByStore(ctx, storeID, page, limit)
	if err != nil {
		return nil, err
	}
	return newHistoryPage(txs, total, page, limit), nil
}

func (s *service) AllHistory(ctx context.Context, page, limit int) (*HistoryPage, error) {
	page, limit = clampPage(page, limit)
	txs, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return newHistoryPage(txs, total, page, limit), nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func newHistoryPage(txs []*Transaction, total, page, limit int) *HistoryPage {
	if txs == nil {
		txs = []*Transaction{}
	}
	return &HistoryPage{
		Data:        txs,
		Total:       total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}
}
