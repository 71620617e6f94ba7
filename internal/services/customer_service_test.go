package services

import (
	"context"
	"errors"
	"testing"

	"dairy-backend/internal/models"
)

type fakeCustomerStore struct{ customers map[int]*models.Customer }

func (f *fakeCustomerStore) Create(ctx context.Context, c *models.Customer) error { return nil }

func (f *fakeCustomerStore) Get(ctx context.Context, id int) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return c, nil
}

func (f *fakeCustomerStore) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return nil, models.ErrNotFound
}

func (f *fakeCustomerStore) List(ctx context.Context) ([]*models.Customer, error) { return nil, nil }

func (f *fakeCustomerStore) Update(ctx context.Context, c *models.Customer) error { return nil }

type fakeSubscriptionStore struct{ upserted []*models.Subscription }

func (f *fakeSubscriptionStore) Upsert(ctx context.Context, s *models.Subscription) error {
	f.upserted = append(f.upserted, s)
	return nil
}

func (f *fakeSubscriptionStore) ListByCustomer(ctx context.Context, customerID int) ([]*models.Subscription, error) {
	return f.upserted, nil
}

type fakeRecalculator struct{ productIDs []int }

func (f *fakeRecalculator) RecalculateProduct(ctx context.Context, productID int, updatedBy string) (*models.InventoryRecord, error) {
	f.productIDs = append(f.productIDs, productID)
	return &models.InventoryRecord{ProductID: productID}, nil
}

func TestUpsertSubscriptionTriggersDemand(t *testing.T) {
	customers := &fakeCustomerStore{customers: map[int]*models.Customer{5: {ID: 5, Name: "Asha"}}}
	subs := &fakeSubscriptionStore{}
	recalc := &fakeRecalculator{}
	svc := NewCustomerService(customers, subs, recalc)

	_, err := svc.UpsertSubscription(context.Background(), &models.UpsertSubscriptionRequest{
		CustomerID: 5,
		ProductID:  3,
		Quantity:   2,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("UpsertSubscription: %v", err)
	}
	if len(subs.upserted) != 1 {
		t.Fatalf("upserted %d subscriptions, want 1", len(subs.upserted))
	}
	if len(recalc.productIDs) != 1 || recalc.productIDs[0] != 3 {
		t.Errorf("demand recalculated for %v, want [3]", recalc.productIDs)
	}
}

func TestUpsertSubscriptionUnknownCustomer(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerStore{}, &fakeSubscriptionStore{}, &fakeRecalculator{})
	_, err := svc.UpsertSubscription(context.Background(), &models.UpsertSubscriptionRequest{
		CustomerID: 99,
		ProductID:  3,
		Quantity:   1,
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestUpsertSubscriptionValidation(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerStore{}, &fakeSubscriptionStore{}, &fakeRecalculator{})
	_, err := svc.UpsertSubscription(context.Background(), &models.UpsertSubscriptionRequest{
		CustomerID: 5,
		ProductID:  3,
		Quantity:   0,
	})
	if !errors.Is(err, models.ErrValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}
