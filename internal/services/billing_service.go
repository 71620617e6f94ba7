package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"dairy-backend/internal/metrics"
	"dairy-backend/internal/models"
	"dairy-backend/internal/storage"
	"dairy-backend/internal/timeutil"
)

type BillStore interface {
	GenerateBill(ctx context.Context, bill *models.Bill) ([]*models.VerifiedDelivery, error)
	SelectUnbilled(ctx context.Context, customerID int, start, end time.Time) ([]*models.VerifiedDelivery, error)
	Get(ctx context.Context, id int) (*models.Bill, error)
	List(ctx context.Context) ([]*models.Bill, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*models.Bill, error)
	MarkPaid(ctx context.Context, billID int) error
	UpdateFilePath(ctx context.Context, billID int, path string) error
}

type BillCustomerStore interface {
	Get(ctx context.Context, id int) (*models.Customer, error)
}

type BillingService struct {
	bills          BillStore
	customers      BillCustomerStore
	files          *storage.BillStore
	deliveryCharge float64
}

func NewBillingService(bills BillStore, customers BillCustomerStore, files *storage.BillStore, deliveryCharge float64) *BillingService {
	return &BillingService{
		bills:          bills,
		customers:      customers,
		files:          files,
		deliveryCharge: deliveryCharge,
	}
}

// Generate bills all of a customer's verified, unbilled deliveries in the
// range and renders the PDF artifact. The PDF is best effort: a render or
// save failure leaves the bill valid with an empty file path.
func (s *BillingService) Generate(ctx context.Context, req *models.GenerateBillRequest) (*models.GenerateBillResponse, error) {
	start, end, err := parseBillRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", req.CustomerID, err)
	}

	bill := &models.Bill{
		CustomerID: req.CustomerID,
		StartDate:  start,
		EndDate:    end,
		CreatedBy:  req.CreatedBy,
	}
	if req.IncludeDeliveryCharges {
		bill.DeliveryCharges = s.deliveryCharge
	}

	deliveries, err := s.bills.GenerateBill(ctx, bill)
	if err != nil {
		return nil, err
	}
	bill.CustomerName = customer.Name
	metrics.BillsGenerated.Inc()

	if s.files != nil {
		s.renderArtifact(ctx, bill, customer, deliveries)
	}

	return &models.GenerateBillResponse{
		Bill:            bill,
		DeliveriesCount: len(deliveries),
		TotalAmount:     bill.TotalAmount,
		DeliveryCharges: bill.DeliveryCharges,
		GrandTotal:      bill.GrandTotal,
	}, nil
}

func (s *BillingService) renderArtifact(ctx context.Context, bill *models.Bill, customer *models.Customer, deliveries []*models.VerifiedDelivery) {
	data := &models.BillDocumentData{
		Bill:       bill,
		Customer:   customer,
		Deliveries: deliveries,
		Summary:    GroupByProduct(deliveries),
	}
	pdf, err := RenderBillPDF(data)
	if err != nil {
		log.Printf("bill %s: pdf render failed: %v", bill.BillNumber, err)
		return
	}
	filename := storage.BillFilename(customer.Name, bill.StartDate, bill.EndDate)
	path, err := s.files.Save(filename, pdf)
	if err != nil {
		log.Printf("bill %s: pdf save failed: %v", bill.BillNumber, err)
		return
	}
	if err := s.bills.UpdateFilePath(ctx, bill.ID, path); err != nil {
		log.Printf("bill %s: file path update failed: %v", bill.BillNumber, err)
		return
	}
	bill.FilePath = path
}

// Preview shows what Generate would bill, without consuming anything.
func (s *BillingService) Preview(ctx context.Context, customerID int, startDate, endDate string) ([]*models.VerifiedDelivery, []models.BillProductSummary, error) {
	start, end, err := parseBillRange(startDate, endDate)
	if err != nil {
		return nil, nil, err
	}
	deliveries, err := s.bills.SelectUnbilled(ctx, customerID, start, end)
	if err != nil {
		return nil, nil, err
	}
	return deliveries, GroupByProduct(deliveries), nil
}

func (s *BillingService) Get(ctx context.Context, id int) (*models.Bill, error) {
	return s.bills.Get(ctx, id)
}

func (s *BillingService) List(ctx context.Context) ([]*models.Bill, error) {
	return s.bills.List(ctx)
}

func (s *BillingService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Bill, error) {
	return s.bills.ListByCustomer(ctx, customerID)
}

func (s *BillingService) MarkPaid(ctx context.Context, id int) error {
	return s.bills.MarkPaid(ctx, id)
}

// OpenArtifact returns the stored PDF bytes for a bill.
func (s *BillingService) OpenArtifact(ctx context.Context, id int) ([]byte, string, error) {
	bill, err := s.bills.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if bill.FilePath == "" {
		return nil, "", fmt.Errorf("bill %s has no document: %w", bill.BillNumber, models.ErrNotFound)
	}
	data, err := s.files.Open(bill.FilePath)
	if err != nil {
		return nil, "", err
	}
	return data, bill.FilePath, nil
}

// GroupByProduct collapses delivery lines into one summary per product,
// ordered by first appearance. The unit price is taken from the group's
// first row; pricing is uniform within a billing period.
func GroupByProduct(deliveries []*models.VerifiedDelivery) []models.BillProductSummary {
	index := make(map[string]int, len(deliveries))
	var summary []models.BillProductSummary
	for _, d := range deliveries {
		i, ok := index[d.ProductName]
		if !ok {
			i = len(summary)
			index[d.ProductName] = i
			unit := 0.0
			if d.DeliveredQty > 0 {
				unit = d.Bill / d.DeliveredQty
			}
			summary = append(summary, models.BillProductSummary{
				ProductName: d.ProductName,
				UnitPrice:   unit,
			})
		}
		summary[i].TotalQuantity += d.DeliveredQty
		summary[i].TotalAmount += d.Bill
	}
	return summary
}

func parseBillRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := timeutil.ParseDate(startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	end, err := timeutil.ParseDate(endDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date must be YYYY-MM-DD: %w", models.ErrValidation)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date is before start_date: %w", models.ErrValidation)
	}
	return start, end, nil
}
