package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"dairy-backend/internal/metrics"
	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"
)

type VerificationStore interface {
	SubmitVerification(ctx context.Context, day time.Time, req *models.SubmitVerificationRequest) (*models.VerificationResult, error)
	ListForDay(ctx context.Context, day time.Time) ([]*models.VerifiedDelivery, error)
}

type VerificationService struct {
	store VerificationStore
}

func NewVerificationService(store VerificationStore) *VerificationService {
	return &VerificationService{store: store}
}

// Submit runs one end-of-day reconciliation for today. Invalid delivery
// lines are rejected up front and counted as failed, invalid cash lines as
// skipped, rather than aborting the run; the valid remainder is applied
// atomically.
func (s *VerificationService) Submit(ctx context.Context, req *models.SubmitVerificationRequest) (*models.VerificationResult, error) {
	if len(req.Deliveries) == 0 && len(req.CashData) == 0 {
		return nil, fmt.Errorf("nothing to verify: %w", models.ErrValidation)
	}
	if req.VerifiedBy == "" {
		return nil, fmt.Errorf("verified_by is required: %w", models.ErrValidation)
	}

	valid := make([]models.VerificationLine, 0, len(req.Deliveries))
	rejected := 0
	for _, line := range req.Deliveries {
		if err := validateVerificationLine(line); err != nil {
			log.Printf("verification: rejecting line worker=%d customer=%d product=%d: %v",
				line.WorkerID, line.CustomerID, line.ProductID, err)
			rejected++
			continue
		}
		valid = append(valid, line)
	}

	validCash := make([]models.VerificationCashLine, 0, len(req.CashData))
	rejectedCash := 0
	for _, cash := range req.CashData {
		if err := validateCashLine(cash); err != nil {
			log.Printf("verification: rejecting cash line worker=%d: %v", cash.WorkerID, err)
			rejectedCash++
			continue
		}
		validCash = append(validCash, cash)
	}

	day := timeutil.DateOf(timeutil.Now())
	result, err := s.store.SubmitVerification(ctx, day, &models.SubmitVerificationRequest{
		Deliveries: valid,
		CashData:   validCash,
		VerifiedBy: req.VerifiedBy,
	})
	if err != nil {
		return nil, err
	}
	result.FailedDeliveries += rejected
	result.SkippedCashRecords += rejectedCash

	metrics.ReconciliationRuns.Inc()
	metrics.ReconciliationLineFailures.Add(float64(result.FailedDeliveries))
	log.Printf("verification %s: processed=%d failed=%d deliveries_stamped=%d cash_updated=%d cash_skipped=%d",
		result.VerificationID, result.ProcessedDeliveries, result.FailedDeliveries,
		result.UpdatedDeliveryRecords, result.UpdatedCashRecords, result.SkippedCashRecords)
	return result, nil
}

func (s *VerificationService) ListDay(ctx context.Context, date string) ([]*models.VerifiedDelivery, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	return s.store.ListForDay(ctx, day)
}

func validateVerificationLine(line models.VerificationLine) error {
	if line.WorkerID <= 0 || line.CustomerID <= 0 || line.ProductID <= 0 {
		return fmt.Errorf("worker, customer and product are required: %w", models.ErrValidation)
	}
	if line.DeliveredQty <= 0 {
		return fmt.Errorf("delivered quantity must be positive: %w", models.ErrValidation)
	}
	if line.Bill < 0 {
		return fmt.Errorf("bill cannot be negative: %w", models.ErrValidation)
	}
	return nil
}

func validateCashLine(cash models.VerificationCashLine) error {
	if cash.WorkerID <= 0 {
		return fmt.Errorf("worker is required: %w", models.ErrValidation)
	}
	if cash.ActualAmount < 0 {
		return fmt.Errorf("actual amount cannot be negative: %w", models.ErrValidation)
	}
	return nil
}
