package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dairy-backend/internal/models"
)

type fakeWorkerInventoryStore struct {
	picked    map[int]float64
	remaining map[int]float64
}

func newFakeWorkerInventoryStore() *fakeWorkerInventoryStore {
	return &fakeWorkerInventoryStore{
		picked:    make(map[int]float64),
		remaining: make(map[int]float64),
	}
}

func (f *fakeWorkerInventoryStore) UpsertPickedBatch(ctx context.Context, workerID int, day time.Time, items []models.WorkerStockItem) ([]*models.WorkerInventoryRecord, error) {
	var records []*models.WorkerInventoryRecord
	for _, item := range items {
		f.picked[item.ProductID] = item.Quantity
		qty := item.Quantity
		records = append(records, &models.WorkerInventoryRecord{
			WorkerID:  workerID,
			ProductID: item.ProductID,
			PickedQty: &qty,
		})
	}
	return records, nil
}

func (f *fakeWorkerInventoryStore) SetRemainingBatch(ctx context.Context, workerID int, day time.Time, items []models.WorkerStockItem) ([]*models.WorkerInventoryRecord, error) {
	for _, item := range items {
		picked, ok := f.picked[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d has no pick-up today: %w", item.ProductID, models.ErrNotFound)
		}
		if item.Quantity > picked {
			return nil, fmt.Errorf("product %d: remaining %v exceeds picked %v: %w",
				item.ProductID, item.Quantity, picked, models.ErrValidation)
		}
	}
	var records []*models.WorkerInventoryRecord
	for _, item := range items {
		f.remaining[item.ProductID] = item.Quantity
		qty := item.Quantity
		records = append(records, &models.WorkerInventoryRecord{
			WorkerID:     workerID,
			ProductID:    item.ProductID,
			RemainingQty: &qty,
		})
	}
	return records, nil
}

func (f *fakeWorkerInventoryStore) ListForWorkerDay(ctx context.Context, workerID int, day time.Time) ([]*models.WorkerInventoryRecord, error) {
	return nil, nil
}

func TestRecordPickedOverwrites(t *testing.T) {
	store := newFakeWorkerInventoryStore()
	svc := NewWorkerInventoryService(store)
	ctx := context.Background()

	if _, err := svc.RecordPicked(ctx, &models.WorkerStockRequest{
		WorkerID: 1,
		Items:    []models.WorkerStockItem{{ProductID: 3, Quantity: 10}},
	}); err != nil {
		t.Fatalf("first pick: %v", err)
	}
	if _, err := svc.RecordPicked(ctx, &models.WorkerStockRequest{
		WorkerID: 1,
		Items:    []models.WorkerStockItem{{ProductID: 3, Quantity: 12}},
	}); err != nil {
		t.Fatalf("second pick: %v", err)
	}
	if store.picked[3] != 12 {
		t.Errorf("picked = %v, want re-submission to overwrite", store.picked[3])
	}
}

func TestRecordRemainingRequiresPick(t *testing.T) {
	store := newFakeWorkerInventoryStore()
	svc := NewWorkerInventoryService(store)

	_, err := svc.RecordRemaining(context.Background(), &models.WorkerStockRequest{
		WorkerID: 1,
		Items:    []models.WorkerStockItem{{ProductID: 7, Quantity: 1}},
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want not-found when no pick exists", err)
	}
}

func TestRecordRemainingBoundedByPick(t *testing.T) {
	store := newFakeWorkerInventoryStore()
	svc := NewWorkerInventoryService(store)
	ctx := context.Background()

	if _, err := svc.RecordPicked(ctx, &models.WorkerStockRequest{
		WorkerID: 1,
		Items:    []models.WorkerStockItem{{ProductID: 3, Quantity: 5}},
	}); err != nil {
		t.Fatalf("pick: %v", err)
	}
	_, err := svc.RecordRemaining(ctx, &models.WorkerStockRequest{
		WorkerID: 1,
		Items:    []models.WorkerStockItem{{ProductID: 3, Quantity: 6}},
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("err = %v, want validation error when remaining exceeds picked", err)
	}
	if _, err := svc.RecordRemaining(ctx, &models.WorkerStockRequest{
		WorkerID: 1,
		Items:    []models.WorkerStockItem{{ProductID: 3, Quantity: 5}},
	}); err != nil {
		t.Errorf("remaining equal to picked should pass: %v", err)
	}
}

func TestStockBatchValidation(t *testing.T) {
	svc := NewWorkerInventoryService(newFakeWorkerInventoryStore())
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.WorkerStockRequest
	}{
		{"missing worker", models.WorkerStockRequest{Items: []models.WorkerStockItem{{ProductID: 1, Quantity: 1}}}},
		{"empty batch", models.WorkerStockRequest{WorkerID: 1}},
		{"negative quantity", models.WorkerStockRequest{WorkerID: 1, Items: []models.WorkerStockItem{{ProductID: 1, Quantity: -1}}}},
		{"duplicate product", models.WorkerStockRequest{WorkerID: 1, Items: []models.WorkerStockItem{
			{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 2},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.RecordPicked(ctx, &tc.req); !errors.Is(err, models.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}
