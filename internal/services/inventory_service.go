package services

import (
	"context"
	"fmt"
	"time"

	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"
)

type InventoryStore interface {
	UpsertOrdered(ctx context.Context, productID int, day time.Time, orderedQty float64, updatedBy string) (*models.InventoryRecord, error)
	SetReceived(ctx context.Context, productID int, day time.Time, qty float64, updatedBy string) error
	SetRemaining(ctx context.Context, productID int, day time.Time, qty float64, updatedBy string) error
	GetForDay(ctx context.Context, productID int, day time.Time) (*models.InventoryRecord, error)
	ListForDay(ctx context.Context, day time.Time) ([]*models.InventoryRecord, error)
}

type InventoryService struct {
	store InventoryStore
}

func NewInventoryService(store InventoryStore) *InventoryService {
	return &InventoryService{store: store}
}

// SetOrdered overrides the day's ordered quantity for one product, for when
// the admin adjusts the calculated demand by hand.
func (s *InventoryService) SetOrdered(ctx context.Context, req *models.SetInventoryQtyRequest, updatedBy string) (*models.InventoryRecord, error) {
	day, err := validateInventoryReq(req)
	if err != nil {
		return nil, err
	}
	return s.store.UpsertOrdered(ctx, req.ProductID, day, req.Quantity, updatedBy)
}

func (s *InventoryService) SetReceived(ctx context.Context, req *models.SetInventoryQtyRequest, updatedBy string) error {
	day, err := validateInventoryReq(req)
	if err != nil {
		return err
	}
	return s.store.SetReceived(ctx, req.ProductID, day, req.Quantity, updatedBy)
}

// SetRemaining records the depot's end-of-day leftover. The store rejects a
// remaining figure exceeding what the workers picked.
func (s *InventoryService) SetRemaining(ctx context.Context, req *models.SetInventoryQtyRequest, updatedBy string) error {
	day, err := validateInventoryReq(req)
	if err != nil {
		return err
	}
	return s.store.SetRemaining(ctx, req.ProductID, day, req.Quantity, updatedBy)
}

func (s *InventoryService) ListDay(ctx context.Context, date string) ([]*models.InventoryRecord, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	return s.store.ListForDay(ctx, day)
}

func validateInventoryReq(req *models.SetInventoryQtyRequest) (time.Time, error) {
	if req.ProductID <= 0 {
		return time.Time{}, fmt.Errorf("product is required: %w", models.ErrValidation)
	}
	if req.Quantity < 0 {
		return time.Time{}, fmt.Errorf("quantity cannot be negative: %w", models.ErrValidation)
	}
	if req.Date == "" {
		return timeutil.DateOf(timeutil.Now()), nil
	}
	day, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	return day, nil
}
