package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dairy-backend/internal/models"
)

type fakeDeliveryStore struct {
	inserted []*models.Delivery
	payments []*models.Payment
	seen     map[string]bool
}

func newFakeDeliveryStore() *fakeDeliveryStore {
	return &fakeDeliveryStore{seen: make(map[string]bool)}
}

func (f *fakeDeliveryStore) key(d *models.Delivery) string {
	return fmt.Sprintf("%s/%d/%d", d.DeliveryDate.Format("2006-01-02"), d.CustomerID, d.ProductID)
}

func (f *fakeDeliveryStore) InsertIdempotent(ctx context.Context, d *models.Delivery, p *models.Payment) (bool, error) {
	k := f.key(d)
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	d.ID = len(f.inserted) + 1
	p.ID = d.ID
	p.DeliveryID = d.ID
	f.inserted = append(f.inserted, d)
	f.payments = append(f.payments, p)
	return true, nil
}

func (f *fakeDeliveryStore) ListForDay(ctx context.Context, day time.Time) ([]*models.Delivery, error) {
	return f.inserted, nil
}

func (f *fakeDeliveryStore) ListForWorkerDay(ctx context.Context, workerID int, day time.Time) ([]*models.Delivery, error) {
	return f.inserted, nil
}

func TestRecordDelivery(t *testing.T) {
	store := newFakeDeliveryStore()
	svc := NewDeliveryService(store)

	req := &models.RecordDeliveryRequest{
		WorkerID:   1,
		CustomerID: 10,
		ProductID:  3,
		Quantity:   2,
		BillAmount: 90,
	}
	outcome, err := svc.Record(context.Background(), req, "worker@dairy.test")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if outcome.IsDuplicate {
		t.Fatal("first record flagged duplicate")
	}
	if outcome.Delivery == nil || outcome.Payment == nil {
		t.Fatal("expected delivery and payment in outcome")
	}
	if outcome.Payment.IsCollected {
		t.Error("default-price delivery should not be marked collected")
	}
	if outcome.CollectionStatus != "pending collection" {
		t.Errorf("collection status = %q", outcome.CollectionStatus)
	}
	if got := outcome.Delivery.ActorLogin; got != "worker@dairy.test" {
		t.Errorf("actor login = %q", got)
	}
}

func TestRecordDeliveryDuplicate(t *testing.T) {
	store := newFakeDeliveryStore()
	svc := NewDeliveryService(store)

	req := &models.RecordDeliveryRequest{
		WorkerID:   1,
		CustomerID: 10,
		ProductID:  3,
		Quantity:   2,
		BillAmount: 90,
	}
	if _, err := svc.Record(context.Background(), req, "a"); err != nil {
		t.Fatalf("first record: %v", err)
	}
	outcome, err := svc.Record(context.Background(), req, "a")
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if !outcome.IsDuplicate {
		t.Fatal("second record for same customer/product/day must be duplicate")
	}
	if outcome.Delivery != nil || outcome.Payment != nil {
		t.Error("duplicate outcome must not carry new records")
	}
	if len(store.inserted) != 1 {
		t.Errorf("store has %d deliveries, want 1", len(store.inserted))
	}
}

func TestRecordDeliveryCustomizedPriceCollected(t *testing.T) {
	store := newFakeDeliveryStore()
	svc := NewDeliveryService(store)

	outcome, err := svc.Record(context.Background(), &models.RecordDeliveryRequest{
		WorkerID:          1,
		CustomerID:        11,
		ProductID:         3,
		Quantity:          1,
		BillAmount:        50,
		IsPriceCustomized: true,
	}, "a")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !outcome.Payment.IsCollected {
		t.Error("customized price must mark payment collected")
	}
	if outcome.CollectionStatus != "collected on delivery" {
		t.Errorf("collection status = %q", outcome.CollectionStatus)
	}
}

func TestRecordDeliveryValidation(t *testing.T) {
	svc := NewDeliveryService(newFakeDeliveryStore())

	cases := []struct {
		name string
		req  models.RecordDeliveryRequest
	}{
		{"zero quantity", models.RecordDeliveryRequest{WorkerID: 1, CustomerID: 1, ProductID: 1, Quantity: 0, BillAmount: 10}},
		{"negative quantity", models.RecordDeliveryRequest{WorkerID: 1, CustomerID: 1, ProductID: 1, Quantity: -2, BillAmount: 10}},
		{"zero bill", models.RecordDeliveryRequest{WorkerID: 1, CustomerID: 1, ProductID: 1, Quantity: 1, BillAmount: 0}},
		{"missing customer", models.RecordDeliveryRequest{WorkerID: 1, ProductID: 1, Quantity: 1, BillAmount: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), &tc.req, "a")
			if !errors.Is(err, models.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}
