package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"dairy-backend/internal/models"
)

func vd(product string, qty, bill float64) *models.VerifiedDelivery {
	return &models.VerifiedDelivery{ProductName: product, DeliveredQty: qty, Bill: bill}
}

func TestGroupByProduct(t *testing.T) {
	deliveries := []*models.VerifiedDelivery{
		vd("Milk 500ml", 2, 60),
		vd("Curd 200g", 1, 25),
		vd("Milk 500ml", 3, 90),
		vd("Milk 500ml", 1, 30),
	}
	summary := GroupByProduct(deliveries)
	if len(summary) != 2 {
		t.Fatalf("got %d groups, want 2", len(summary))
	}
	milk := summary[0]
	if milk.ProductName != "Milk 500ml" {
		t.Fatalf("first group = %q, want first-appearance order", milk.ProductName)
	}
	if milk.TotalQuantity != 6 {
		t.Errorf("milk quantity = %v, want 6", milk.TotalQuantity)
	}
	if milk.TotalAmount != 180 {
		t.Errorf("milk amount = %v, want 180", milk.TotalAmount)
	}
	if milk.UnitPrice != 30 {
		t.Errorf("milk unit price = %v, want 30 (from first row)", milk.UnitPrice)
	}
	curd := summary[1]
	if curd.TotalQuantity != 1 || curd.TotalAmount != 25 {
		t.Errorf("curd totals = %v/%v, want 1/25", curd.TotalQuantity, curd.TotalAmount)
	}
}

func TestGroupByProductEmpty(t *testing.T) {
	if got := GroupByProduct(nil); len(got) != 0 {
		t.Errorf("grouping nil deliveries yielded %d groups", len(got))
	}
}

func TestParseBillRange(t *testing.T) {
	start, end, err := parseBillRange("2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("parseBillRange: %v", err)
	}
	if !end.After(start) {
		t.Error("end should follow start")
	}

	if _, _, err := parseBillRange("2026-08-31", "2026-08-01"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("inverted range err = %v, want validation error", err)
	}
	if _, _, err := parseBillRange("31-08-2026", "2026-08-31"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("bad format err = %v, want validation error", err)
	}
}

type fakeBillStore struct {
	unbilled  []*models.VerifiedDelivery
	generated []*models.Bill
	paths     map[int]string
}

func (f *fakeBillStore) GenerateBill(ctx context.Context, bill *models.Bill) ([]*models.VerifiedDelivery, error) {
	if len(f.unbilled) == 0 {
		return nil, models.ErrNoUnbilledDeliveries
	}
	var total float64
	for _, d := range f.unbilled {
		total += d.Bill
		d.Billed = true
	}
	bill.ID = len(f.generated) + 1
	bill.BillNumber = "BILL-2026-1"
	bill.TotalAmount = total
	bill.GrandTotal = total + bill.DeliveryCharges
	f.generated = append(f.generated, bill)
	consumed := f.unbilled
	f.unbilled = nil
	return consumed, nil
}

func (f *fakeBillStore) SelectUnbilled(ctx context.Context, customerID int, start, end time.Time) ([]*models.VerifiedDelivery, error) {
	return f.unbilled, nil
}

func (f *fakeBillStore) Get(ctx context.Context, id int) (*models.Bill, error) {
	for _, b := range f.generated {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeBillStore) List(ctx context.Context) ([]*models.Bill, error) { return f.generated, nil }

func (f *fakeBillStore) ListByCustomer(ctx context.Context, customerID int) ([]*models.Bill, error) {
	return f.generated, nil
}

func (f *fakeBillStore) MarkPaid(ctx context.Context, billID int) error {
	b, err := f.Get(ctx, billID)
	if err != nil {
		return err
	}
	b.IsPaid = true
	return nil
}

func (f *fakeBillStore) UpdateFilePath(ctx context.Context, billID int, path string) error {
	if f.paths == nil {
		f.paths = make(map[int]string)
	}
	f.paths[billID] = path
	return nil
}

type fakeCustomerGetter struct{ customer *models.Customer }

func (f *fakeCustomerGetter) Get(ctx context.Context, id int) (*models.Customer, error) {
	if f.customer == nil || f.customer.ID != id {
		return nil, models.ErrNotFound
	}
	return f.customer, nil
}

func TestGenerateBill(t *testing.T) {
	store := &fakeBillStore{unbilled: []*models.VerifiedDelivery{
		vd("Milk 500ml", 2, 60),
		vd("Milk 500ml", 2, 60),
	}}
	customers := &fakeCustomerGetter{customer: &models.Customer{ID: 5, Name: "Asha Stores"}}
	svc := NewBillingService(store, customers, nil, 20)

	resp, err := svc.Generate(context.Background(), &models.GenerateBillRequest{
		CustomerID:             5,
		StartDate:              "2026-08-01",
		EndDate:                "2026-08-31",
		IncludeDeliveryCharges: true,
		CreatedBy:              "admin@dairy.test",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.DeliveriesCount != 2 {
		t.Errorf("deliveries count = %d, want 2", resp.DeliveriesCount)
	}
	if resp.TotalAmount != 120 {
		t.Errorf("total = %v, want 120", resp.TotalAmount)
	}
	if resp.GrandTotal != 140 {
		t.Errorf("grand total = %v, want 140 with delivery charges", resp.GrandTotal)
	}

	// Everything consumed: a second generation over the same range fails.
	_, err = svc.Generate(context.Background(), &models.GenerateBillRequest{
		CustomerID: 5,
		StartDate:  "2026-08-01",
		EndDate:    "2026-08-31",
	})
	if !errors.Is(err, models.ErrNoUnbilledDeliveries) {
		t.Errorf("second generation err = %v, want no-unbilled error", err)
	}
}

func TestGenerateBillUnknownCustomer(t *testing.T) {
	svc := NewBillingService(&fakeBillStore{}, &fakeCustomerGetter{}, nil, 0)
	_, err := svc.Generate(context.Background(), &models.GenerateBillRequest{
		CustomerID: 99,
		StartDate:  "2026-08-01",
		EndDate:    "2026-08-31",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestRenderBillPDF(t *testing.T) {
	bill := &models.Bill{
		BillNumber:  "BILL-2026-7",
		TotalAmount: 120,
		GrandTotal:  140,
		StartDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	deliveries := []*models.VerifiedDelivery{vd("Milk 500ml", 2, 60)}
	data, err := RenderBillPDF(&models.BillDocumentData{
		Bill:       bill,
		Customer:   &models.Customer{Name: "Asha Stores", Phone: "9876500000"},
		Deliveries: deliveries,
		Summary:    GroupByProduct(deliveries),
	})
	if err != nil {
		t.Fatalf("RenderBillPDF: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty pdf output")
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("output does not start with PDF header: %q", data[:5])
	}
}
