package services

import (
	"context"
	"fmt"

	"dairy-backend/internal/cache"
	"dairy-backend/internal/models"
)

type ProductStore interface {
	Create(ctx context.Context, p *models.Product) error
	Get(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
}

type ProductService struct {
	store ProductStore
}

func NewProductService(store ProductStore) *ProductService {
	return &ProductService{store: store}
}

func (s *ProductService) Create(ctx context.Context, p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", models.ErrValidation)
	}
	if err := s.store.Create(ctx, p); err != nil {
		return err
	}
	cache.InvalidateProductList(ctx)
	return nil
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	return s.store.Get(ctx, id)
}

// List serves the active product catalog, cache first.
func (s *ProductService) List(ctx context.Context) ([]*models.Product, error) {
	if products, ok := cache.GetProductList(ctx); ok {
		return products, nil
	}
	products, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetProductList(ctx, products)
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("name is required: %w", models.ErrValidation)
	}
	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", models.ErrValidation)
	}
	if err := s.store.Update(ctx, p); err != nil {
		return err
	}
	cache.InvalidateProductList(ctx)
	return nil
}
