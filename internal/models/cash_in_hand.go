package models

import "time"

// CashInHandRecord holds one worker's cash position for one day:
// reported_amount is the worker's own running claim, actual_amount is the
// admin-verified figure set only during reconciliation.
type CashInHandRecord struct {
	ID             int       `json:"id"`
	WorkerID       int       `json:"worker_id"`
	RecordDate     time.Time `json:"record_date"`
	ReportedAmount float64   `json:"reported_amount"`
	ActualAmount   *float64  `json:"actual_amount"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ReportCashRequest struct {
	WorkerID int     `json:"worker_id"`
	Amount   float64 `json:"amount"`
}
