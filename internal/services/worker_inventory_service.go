package services

import (
	"context"
	"fmt"
	"time"

	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"
)

type WorkerInventoryStore interface {
	UpsertPickedBatch(ctx context.Context, workerID int, day time.Time, items []models.WorkerStockItem) ([]*models.WorkerInventoryRecord, error)
	SetRemainingBatch(ctx context.Context, workerID int, day time.Time, items []models.WorkerStockItem) ([]*models.WorkerInventoryRecord, error)
	ListForWorkerDay(ctx context.Context, workerID int, day time.Time) ([]*models.WorkerInventoryRecord, error)
}

type WorkerInventoryService struct {
	store WorkerInventoryStore
}

func NewWorkerInventoryService(store WorkerInventoryStore) *WorkerInventoryService {
	return &WorkerInventoryService{store: store}
}

// RecordPicked stores the morning pick-up batch for today. Re-submitting a
// product overwrites its picked quantity.
func (s *WorkerInventoryService) RecordPicked(ctx context.Context, req *models.WorkerStockRequest) ([]*models.WorkerInventoryRecord, error) {
	if err := validateStockBatch(req); err != nil {
		return nil, err
	}
	return s.store.UpsertPickedBatch(ctx, req.WorkerID, timeutil.DateOf(timeutil.Now()), req.Items)
}

// RecordRemaining stores the evening leftovers. Every product in the batch
// must already have a pick for today and remaining may not exceed it; one bad
// item rejects the whole batch.
func (s *WorkerInventoryService) RecordRemaining(ctx context.Context, req *models.WorkerStockRequest) ([]*models.WorkerInventoryRecord, error) {
	if err := validateStockBatch(req); err != nil {
		return nil, err
	}
	return s.store.SetRemainingBatch(ctx, req.WorkerID, timeutil.DateOf(timeutil.Now()), req.Items)
}

func (s *WorkerInventoryService) ListDay(ctx context.Context, workerID int, date string) ([]*models.WorkerInventoryRecord, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	return s.store.ListForWorkerDay(ctx, workerID, day)
}

func validateStockBatch(req *models.WorkerStockRequest) error {
	if req.WorkerID <= 0 {
		return fmt.Errorf("worker is required: %w", models.ErrValidation)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("at least one item is required: %w", models.ErrValidation)
	}
	seen := make(map[int]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("product is required on every item: %w", models.ErrValidation)
		}
		if item.Quantity < 0 {
			return fmt.Errorf("product %d: quantity cannot be negative: %w", item.ProductID, models.ErrValidation)
		}
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("product %d appears twice in the batch: %w", item.ProductID, models.ErrValidation)
		}
		seen[item.ProductID] = struct{}{}
	}
	return nil
}
