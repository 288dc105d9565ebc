package catalog

import (
	"context"
	"fmt"
	"strings"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, storeID int64, req ProductRequest) (*Product, error)
	GetProduct(ctx context.Context, storeID, id int64) (*Product, error)
	ListProducts(ctx context.Context, storeID int64, search string, page, limit int) (*ProductPage, error)
	UpdateProduct(ctx context.Context, storeID, id int64, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, storeID, id int64) error

	CreateAttribute(ctx context.Context, storeID int64, req AttributeRequest) (*Attribute, error)
	ListAttributes(ctx context.Context, storeID int64) ([]*Attribute, error)
	UpdateAttribute(ctx context.Context, storeID, id int64, req AttributeRequest) (*Attribute, error)
	DeleteAttribute(ctx context.Context, storeID, id int64) error

	// ImportProducts creates products from parsed rows; bad rows are
	// counted, not fatal. The batch outcome is recorded either way.
	ImportProducts(ctx context.Context, storeID int64, filename string, rows []ImportRow) (*ImportBatch, error)
	ImportHistory(ctx context.Context, storeID int64) ([]*ImportBatch, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, storeID int64, req ProductRequest) (*Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	p := &Product{
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Attributes:  req.Attributes,
		IsActive:    active,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, storeID, id int64) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, storeID int64, search string, page, limit int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	products, total, err := s.repo.ListProducts(ctx, storeID, search, page, limit)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*Product{}
	}
	return &ProductPage{
		Data:        products,
		Total:       total,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

func (s *service) UpdateProduct(ctx context.Context, storeID, id int64, req ProductRequest) (*Product, error) {
	p, err := s.repo.GetProduct(ctx, storeID, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.SKU != "" {
		p.SKU = req.SKU
	}
	if req.Price > 0 {
		p.Price = req.Price
	}
	if req.ImageURL != "" {
		p.ImageURL = req.ImageURL
	}
	if req.Attributes != nil {
		p.Attributes = req.Attributes
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, storeID, id int64) error {
	return s.repo.DeleteProduct(ctx, storeID, id)
}

func (s *service) CreateAttribute(ctx context.Context, storeID int64, req AttributeRequest) (*Attribute, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	a := &Attribute{StoreID: storeID, Name: req.Name, Values: req.Values}
	if err := s.repo.CreateAttribute(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListAttributes(ctx context.Context, storeID int64) ([]*Attribute, error) {
	return s.repo.ListAttributes(ctx, storeID)
}

func (s *service) UpdateAttribute(ctx context.Context, storeID, id int64, req AttributeRequest) (*Attribute, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	a := &Attribute{ID: id, StoreID: storeID, Name: req.Name, Values: req.Values}
	if err := s.repo.UpdateAttribute(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) DeleteAttribute(ctx context.Context, storeID, id int64) error {
	return s.repo.DeleteAttribute(ctx, storeID, id)
}

func (s *service) ImportProducts(ctx context.Context, storeID int64, filename string, rows []ImportRow) (*ImportBatch, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to import")
	}

	batch := &ImportBatch{StoreID: storeID, Filename: filename, Total: len(rows)}
	for _, row := range rows {
		if strings.TrimSpace(row.Name) == "" || row.Price < 0 {
			batch.Failed++
			continue
		}
		p := &Product{
			StoreID:  storeID,
			Name:     row.Name,
			SKU:      row.SKU,
			Price:    row.Price,
			IsActive: true,
		}
		if err := s.repo.CreateProduct(ctx, p); err != nil {
			batch.Failed++
			continue
		}
		batch.Succeeded++
	}

	if err := s.repo.CreateImportBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func (s *service) ImportHistory(ctx context.Context, storeID int64) ([]*ImportBatch, error) {
	return s.repo.ListImportBatches(ctx, storeID)
}
