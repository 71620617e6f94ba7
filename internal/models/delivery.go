package models

import "time"

// Delivery is one raw delivery event. At most one exists per
// (customer, product, calendar day); duplicate submissions are absorbed by
// the recorder, never inserted twice.
type Delivery struct {
	ID             int       `json:"id"`
	WorkerID       int       `json:"worker_id"`
	CustomerID     int       `json:"customer_id"`
	ProductID      int       `json:"product_id"`
	Quantity       float64   `json:"quantity"`
	DeliveredAt    time.Time `json:"delivered_at"`
	DeliveryDate   time.Time `json:"delivery_date"`
	ActorLogin     string    `json:"actor_login"`
	VerificationID *string   `json:"verification_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Payment is created 1:1 with a Delivery in the same transaction.
// is_collected derives from whether the price was manually overridden:
// a customized price is assumed paid on the spot.
type Payment struct {
	ID          int       `json:"id"`
	DeliveryID  int       `json:"delivery_id"`
	CustomerID  int       `json:"customer_id"`
	ProductID   int       `json:"product_id"`
	BillAmount  float64   `json:"bill_amount"`
	IsCollected bool      `json:"is_collected"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type RecordDeliveryRequest struct {
	WorkerID          int     `json:"worker_id"`
	CustomerID        int     `json:"customer_id"`
	ProductID         int     `json:"product_id"`
	Quantity          float64 `json:"quantity"`
	BillAmount        float64 `json:"bill_amount"`
	IsPriceCustomized bool    `json:"is_price_customized"`
}

// DeliveryOutcome is what the recorder reports back. A duplicate submission
// is a successful no-op, not an error.
type DeliveryOutcome struct {
	IsDuplicate      bool      `json:"is_duplicate"`
	CollectionStatus string    `json:"collection_status,omitempty"`
	Delivery         *Delivery `json:"delivery,omitempty"`
	Payment          *Payment  `json:"payment,omitempty"`
}
