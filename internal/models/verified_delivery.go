package models

import "time"

// VerifiedDelivery is a delivery line certified by the daily reconciliation
// run. Uniqueness key is (verification_id, worker_id, customer_id,
// product_id); re-verifying the same tuple updates the row in place.
// All rows produced for one calendar day share one verification ID.
type VerifiedDelivery struct {
	ID             int       `json:"id"`
	VerificationID string    `json:"verification_id"`
	WorkerID       int       `json:"worker_id"`
	CustomerID     int       `json:"customer_id"`
	ProductID      int       `json:"product_id"`
	ProductName    string    `json:"product_name"`
	DeliveredQty   float64   `json:"delivered_qty"`
	Bill           float64   `json:"bill"`
	IsCollected    bool      `json:"is_collected"`
	Billed         bool      `json:"billed"`
	BillID         *int      `json:"bill_id"`
	DeliveredOn    time.Time `json:"delivered_on"`
	VerifiedBy     string    `json:"verified_by"`
	VerifiedAt     time.Time `json:"verified_at"`
}

// VerificationLine is one delivery correction submitted by the admin at
// end of day.
type VerificationLine struct {
	WorkerID     int     `json:"worker_id"`
	CustomerID   int     `json:"customer_id"`
	ProductID    int     `json:"product_id"`
	ProductName  string  `json:"product_name"`
	DeliveredQty float64 `json:"delivered_qty"`
	Bill         float64 `json:"bill"`
	IsCollected  bool    `json:"is_collected"`
}

// VerificationCashLine carries the admin-counted cash for one worker.
type VerificationCashLine struct {
	WorkerID     int     `json:"worker_id"`
	ActualAmount float64 `json:"actual_amount"`
}

type SubmitVerificationRequest struct {
	Deliveries []VerificationLine     `json:"deliveries"`
	CashData   []VerificationCashLine `json:"cash_data"`
	VerifiedBy string                 `json:"verified_by"`
}

// VerificationResult reports what one reconciliation submission did.
// Failed lines are counted, never silently dropped.
type VerificationResult struct {
	VerificationID         string `json:"verification_id"`
	ProcessedDeliveries    int    `json:"processed_deliveries"`
	FailedDeliveries       int    `json:"failed_deliveries"`
	UpdatedDeliveryRecords int    `json:"updated_delivery_records"`
	UpdatedCashRecords     int    `json:"updated_cash_records"`
	SkippedCashRecords     int    `json:"skipped_cash_records"`
}
