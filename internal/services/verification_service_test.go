package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"dairy-backend/internal/models"
)

type fakeVerificationStore struct {
	verificationID string
	submitted      []*models.SubmitVerificationRequest
}

func (f *fakeVerificationStore) SubmitVerification(ctx context.Context, day time.Time, req *models.SubmitVerificationRequest) (*models.VerificationResult, error) {
	f.submitted = append(f.submitted, req)
	return &models.VerificationResult{
		VerificationID:      f.verificationID,
		ProcessedDeliveries: len(req.Deliveries),
		UpdatedCashRecords:  len(req.CashData),
	}, nil
}

func (f *fakeVerificationStore) ListForDay(ctx context.Context, day time.Time) ([]*models.VerifiedDelivery, error) {
	return nil, nil
}

func line(worker, customer, product int, qty float64) models.VerificationLine {
	return models.VerificationLine{
		WorkerID:     worker,
		CustomerID:   customer,
		ProductID:    product,
		ProductName:  "Milk 500ml",
		DeliveredQty: qty,
		Bill:         qty * 30,
	}
}

func TestSubmitVerification(t *testing.T) {
	store := &fakeVerificationStore{verificationID: "ver-1"}
	svc := NewVerificationService(store)

	result, err := svc.Submit(context.Background(), &models.SubmitVerificationRequest{
		Deliveries: []models.VerificationLine{
			line(1, 10, 3, 2),
			line(1, 11, 3, 1),
		},
		VerifiedBy: "admin@dairy.test",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.ProcessedDeliveries != 2 {
		t.Errorf("processed = %d, want 2", result.ProcessedDeliveries)
	}
	if result.FailedDeliveries != 0 {
		t.Errorf("failed = %d, want 0", result.FailedDeliveries)
	}
	if result.VerificationID != "ver-1" {
		t.Errorf("verification id = %q", result.VerificationID)
	}
}

func TestSubmitVerificationRejectsBadLines(t *testing.T) {
	store := &fakeVerificationStore{verificationID: "ver-2"}
	svc := NewVerificationService(store)

	result, err := svc.Submit(context.Background(), &models.SubmitVerificationRequest{
		Deliveries: []models.VerificationLine{
			line(1, 10, 3, 2),
			line(1, 11, 3, 0),  // zero quantity
			line(0, 12, 3, 1),  // missing worker
			line(1, 13, 3, -4), // negative quantity
		},
		VerifiedBy: "admin@dairy.test",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.ProcessedDeliveries != 1 {
		t.Errorf("processed = %d, want 1", result.ProcessedDeliveries)
	}
	if result.FailedDeliveries != 3 {
		t.Errorf("failed = %d, want 3 rejected lines counted", result.FailedDeliveries)
	}
	// Bad lines never reach the store.
	if got := len(store.submitted[0].Deliveries); got != 1 {
		t.Errorf("store received %d lines, want 1", got)
	}
}

func TestSubmitVerificationRejectsBadCashLines(t *testing.T) {
	store := &fakeVerificationStore{verificationID: "ver-3"}
	svc := NewVerificationService(store)

	result, err := svc.Submit(context.Background(), &models.SubmitVerificationRequest{
		Deliveries: []models.VerificationLine{line(1, 10, 3, 2)},
		CashData: []models.VerificationCashLine{
			{WorkerID: 1, ActualAmount: 120},
			{WorkerID: 0, ActualAmount: 80},  // missing worker
			{WorkerID: 2, ActualAmount: -50}, // negative cash
		},
		VerifiedBy: "admin@dairy.test",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.UpdatedCashRecords != 1 {
		t.Errorf("cash updated = %d, want 1", result.UpdatedCashRecords)
	}
	if result.SkippedCashRecords != 2 {
		t.Errorf("cash skipped = %d, want 2 rejected lines counted", result.SkippedCashRecords)
	}
	// Bad cash lines never reach the store.
	if got := len(store.submitted[0].CashData); got != 1 {
		t.Errorf("store received %d cash lines, want 1", got)
	}
}

func TestSubmitVerificationEmpty(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{})
	_, err := svc.Submit(context.Background(), &models.SubmitVerificationRequest{VerifiedBy: "a"})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestSubmitVerificationRequiresVerifier(t *testing.T) {
	svc := NewVerificationService(&fakeVerificationStore{})
	_, err := svc.Submit(context.Background(), &models.SubmitVerificationRequest{
		Deliveries: []models.VerificationLine{line(1, 10, 3, 1)},
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}
