package services

import (
	"context"
	"fmt"
	"time"

	"dairy-backend/internal/metrics"
	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"
)

// DeliveryStore is the persistence surface the delivery service needs.
type DeliveryStore interface {
	InsertIdempotent(ctx context.Context, d *models.Delivery, p *models.Payment) (bool, error)
	ListForDay(ctx context.Context, day time.Time) ([]*models.Delivery, error)
	ListForWorkerDay(ctx context.Context, workerID int, day time.Time) ([]*models.Delivery, error)
}

type DeliveryService struct {
	store DeliveryStore
}

func NewDeliveryService(store DeliveryStore) *DeliveryService {
	return &DeliveryService{store: store}
}

// Record persists one delivery and its payment for today. A repeated
// submission for the same (customer, product, day) returns the duplicate
// outcome without writing anything.
func (s *DeliveryService) Record(ctx context.Context, req *models.RecordDeliveryRequest, actorLogin string) (*models.DeliveryOutcome, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", models.ErrValidation)
	}
	if req.BillAmount <= 0 {
		return nil, fmt.Errorf("bill amount must be positive: %w", models.ErrValidation)
	}
	if req.WorkerID <= 0 || req.CustomerID <= 0 || req.ProductID <= 0 {
		return nil, fmt.Errorf("worker, customer and product are required: %w", models.ErrValidation)
	}

	now := timeutil.Now()
	delivery := &models.Delivery{
		WorkerID:     req.WorkerID,
		CustomerID:   req.CustomerID,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		DeliveredAt:  now,
		DeliveryDate: timeutil.DateOf(now),
		ActorLogin:   actorLogin,
	}
	// A manually overridden price means cash changed hands at the door.
	payment := &models.Payment{
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		BillAmount:  req.BillAmount,
		IsCollected: req.IsPriceCustomized,
		PaymentDate: delivery.DeliveryDate,
	}

	created, err := s.store.InsertIdempotent(ctx, delivery, payment)
	if err != nil {
		return nil, err
	}
	if !created {
		metrics.DuplicateDeliveries.Inc()
		return &models.DeliveryOutcome{IsDuplicate: true}, nil
	}

	metrics.DeliveriesRecorded.Inc()
	status := "pending collection"
	if payment.IsCollected {
		status = "collected on delivery"
	}
	return &models.DeliveryOutcome{
		CollectionStatus: status,
		Delivery:         delivery,
		Payment:          payment,
	}, nil
}

func (s *DeliveryService) ListToday(ctx context.Context) ([]*models.Delivery, error) {
	return s.store.ListForDay(ctx, timeutil.DateOf(timeutil.Now()))
}

func (s *DeliveryService) ListWorkerDay(ctx context.Context, workerID int, date string) ([]*models.Delivery, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	return s.store.ListForWorkerDay(ctx, workerID, day)
}
