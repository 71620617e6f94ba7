package models

import "time"

// Subscription is a standing daily order of one product for one customer.
// Active subscriptions drive the demand calculation for the day's inventory.
type Subscription struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	ProductID  int       `json:"product_id"`
	Quantity   float64   `json:"quantity"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UpsertSubscriptionRequest struct {
	CustomerID int     `json:"customer_id"`
	ProductID  int     `json:"product_id"`
	Quantity   float64 `json:"quantity"`
	IsActive   bool    `json:"is_active"`
}
