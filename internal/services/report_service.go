package services

import (
	"context"
	"fmt"
	"time"

	"dairy-backend/internal/models"
	"dairy-backend/internal/timeutil"
)

// DailySummary is the one-day operations rollup.
type DailySummary struct {
	Date               string  `json:"date"`
	Deliveries         int     `json:"deliveries"`
	DeliveredQty       float64 `json:"delivered_qty"`
	VerifiedDeliveries int     `json:"verified_deliveries"`
	VerifiedAmount     float64 `json:"verified_amount"`
	CollectedAmount    float64 `json:"collected_amount"`
	CashReported       float64 `json:"cash_reported"`
	CashVerified       float64 `json:"cash_verified"`
	WorkersReported    int     `json:"workers_reported"`
}

type ReportDeliveryStore interface {
	ListForDay(ctx context.Context, day time.Time) ([]*models.Delivery, error)
}

type ReportVerificationStore interface {
	ListForDay(ctx context.Context, day time.Time) ([]*models.VerifiedDelivery, error)
}

type ReportCashStore interface {
	ListForDay(ctx context.Context, day time.Time) ([]*models.CashInHandRecord, error)
}

type ReportService struct {
	deliveries    ReportDeliveryStore
	verifications ReportVerificationStore
	cash          ReportCashStore
}

func NewReportService(deliveries ReportDeliveryStore, verifications ReportVerificationStore, cash ReportCashStore) *ReportService {
	return &ReportService{deliveries: deliveries, verifications: verifications, cash: cash}
}

func (s *ReportService) DailySummary(ctx context.Context, date string) (*DailySummary, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", models.ErrValidation)
	}

	summary := &DailySummary{Date: day.Format(timeutil.DateLayout)}

	deliveries, err := s.deliveries.ListForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	summary.Deliveries = len(deliveries)
	for _, d := range deliveries {
		summary.DeliveredQty += d.Quantity
	}

	verified, err := s.verifications.ListForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	summary.VerifiedDeliveries = len(verified)
	for _, v := range verified {
		summary.VerifiedAmount += v.Bill
		if v.IsCollected {
			summary.CollectedAmount += v.Bill
		}
	}

	cash, err := s.cash.ListForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	summary.WorkersReported = len(cash)
	for _, c := range cash {
		summary.CashReported += c.ReportedAmount
		if c.ActualAmount != nil {
			summary.CashVerified += *c.ActualAmount
		}
	}

	return summary, nil
}
