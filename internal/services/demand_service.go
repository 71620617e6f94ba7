package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"
)

type DemandSubscriptionStore interface {
	SumActiveByProduct(ctx context.Context, productID int) (float64, error)
}

type DemandProductStore interface {
	List(ctx context.Context) ([]*models.Product, error)
}

type DemandInventoryStore interface {
	UpsertOrdered(ctx context.Context, productID int, day time.Time, orderedQty float64, updatedBy string) (*models.InventoryRecord, error)
}

// DemandService computes each product's ordered quantity for a day as the
// sum of its active subscription quantities.
type DemandService struct {
	subscriptions DemandSubscriptionStore
	products      DemandProductStore
	inventory     DemandInventoryStore
}

func NewDemandService(subscriptions DemandSubscriptionStore, products DemandProductStore, inventory DemandInventoryStore) *DemandService {
	return &DemandService{subscriptions: subscriptions, products: products, inventory: inventory}
}

// RecalculateProduct recomputes one product's demand for today and upserts
// the ordered quantity. Called after a subscription mutation.
func (s *DemandService) RecalculateProduct(ctx context.Context, productID int, updatedBy string) (*models.InventoryRecord, error) {
	demand, err := s.subscriptions.SumActiveByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("demand for product %d: %w", productID, err)
	}
	return s.inventory.UpsertOrdered(ctx, productID, timeutil.DateOf(timeutil.Now()), demand, updatedBy)
}

// Recalculate recomputes demand for every active product and upserts the
// day's ordered quantities. Re-running converges to the same figures.
func (s *DemandService) Recalculate(ctx context.Context, date string, updatedBy string) ([]*models.InventoryRecord, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	var records []*models.InventoryRecord
	for _, p := range products {
		demand, err := s.subscriptions.SumActiveByProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("demand for product %d: %w", p.ID, err)
		}
		rec, err := s.inventory.UpsertOrdered(ctx, p.ID, day, demand, updatedBy)
		if err != nil {
			return nil, fmt.Errorf("ordered qty for product %d: %w", p.ID, err)
		}
		rec.ProductName = p.Name
		records = append(records, rec)
	}
	log.Printf("demand: recalculated %d products for %s", len(records), day.Format(timeutil.DateLayout))
	return records, nil
}
