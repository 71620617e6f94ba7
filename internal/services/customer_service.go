package services

import (
	"context"
	"fmt"
	"log"

	"dairy-backend/internal/models"
)

type CustomerStore interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id int) (*models.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
}

type SubscriptionStore interface {
	Upsert(ctx context.Context, s *models.Subscription) error
	ListByCustomer(ctx context.Context, customerID int) ([]*models.Subscription, error)
}

// DemandRecalculator re-derives a product's ordered quantity after its
// subscriptions change.
type DemandRecalculator interface {
	RecalculateProduct(ctx context.Context, productID int, updatedBy string) (*models.InventoryRecord, error)
}

type CustomerService struct {
	customers     CustomerStore
	subscriptions SubscriptionStore
	demand        DemandRecalculator
}

func NewCustomerService(customers CustomerStore, subscriptions SubscriptionStore, demand DemandRecalculator) *CustomerService {
	return &CustomerService{customers: customers, subscriptions: subscriptions, demand: demand}
}

func (s *CustomerService) Create(ctx context.Context, c *models.Customer) error {
	if c.Name == "" || c.Phone == "" {
		return fmt.Errorf("name and phone are required: %w", models.ErrValidation)
	}
	return s.customers.Create(ctx, c)
}

func (s *CustomerService) Get(ctx context.Context, id int) (*models.Customer, error) {
	return s.customers.Get(ctx, id)
}

func (s *CustomerService) List(ctx context.Context) ([]*models.Customer, error) {
	return s.customers.List(ctx)
}

func (s *CustomerService) Update(ctx context.Context, c *models.Customer) error {
	if c.Name == "" || c.Phone == "" {
		return fmt.Errorf("name and phone are required: %w", models.ErrValidation)
	}
	return s.customers.Update(ctx, c)
}

// UpsertSubscription creates or replaces the customer's standing order for a
// product. The customer must exist; demand picks the change up on its next
// recalculation.
func (s *CustomerService) UpsertSubscription(ctx context.Context, req *models.UpsertSubscriptionRequest) (*models.Subscription, error) {
	if req.CustomerID <= 0 || req.ProductID <= 0 {
		return nil, fmt.Errorf("customer and product are required: %w", models.ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", models.ErrValidation)
	}
	if _, err := s.customers.Get(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("customer %d: %w", req.CustomerID, err)
	}

	sub := &models.Subscription{
		CustomerID: req.CustomerID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		IsActive:   req.IsActive,
	}
	if err := s.subscriptions.Upsert(ctx, sub); err != nil {
		return nil, err
	}

	// Subscription changes drive today's demand figure immediately.
	if s.demand != nil {
		if _, err := s.demand.RecalculateProduct(ctx, req.ProductID, "subscription-change"); err != nil {
			log.Printf("demand recalculation after subscription change failed for product %d: %v", req.ProductID, err)
		}
	}
	return sub, nil
}

func (s *CustomerService) ListSubscriptions(ctx context.Context, customerID int) ([]*models.Subscription, error) {
	return s.subscriptions.ListByCustomer(ctx, customerID)
}
