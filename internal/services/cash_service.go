package services

import (
	"context"
	"fmt"
	"time"

	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"
)

type CashStore interface {
	UpsertReported(ctx context.Context, workerID int, day time.Time, amount float64) (*models.CashInHandRecord, error)
	GetForWorkerDay(ctx context.Context, workerID int, day time.Time) (*models.CashInHandRecord, error)
	ListForDay(ctx context.Context, day time.Time) ([]*models.CashInHandRecord, error)
}

type CashService struct {
	store CashStore
}

func NewCashService(store CashStore) *CashService {
	return &CashService{store: store}
}

// Report stores the worker's self-reported cash for today. Re-reporting
// overwrites; the admin-verified figure is untouched until reconciliation.
func (s *CashService) Report(ctx context.Context, req *models.ReportCashRequest) (*models.CashInHandRecord, error) {
	if req.WorkerID <= 0 {
		return nil, fmt.Errorf("worker is required: %w", models.ErrValidation)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative: %w", models.ErrValidation)
	}
	return s.store.UpsertReported(ctx, req.WorkerID, timeutil.DateOf(timeutil.Now()), req.Amount)
}

func (s *CashService) GetWorkerDay(ctx context.Context, workerID int, date string) (*models.CashInHandRecord, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	return s.store.GetForWorkerDay(ctx, workerID, day)
}

func (s *CashService) ListDay(ctx context.Context, date string) ([]*models.CashInHandRecord, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	return s.store.ListForDay(ctx, day)
}
