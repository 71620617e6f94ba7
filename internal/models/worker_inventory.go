package models

import "time"

// WorkerInventoryRecord tracks what one worker carried for one product on one
// day: picked_qty in the morning, remaining_qty at night. remaining can only
// be set after picked exists and never exceeds it.
type WorkerInventoryRecord struct {
	ID           int       `json:"id"`
	WorkerID     int       `json:"worker_id"`
	ProductID    int       `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	RecordDate   time.Time `json:"record_date"`
	PickedQty    *float64  `json:"picked_qty"`
	RemainingQty *float64  `json:"remaining_qty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WorkerStockItem is one (product, quantity) pair in a pick or remaining
// batch. The whole batch applies atomically.
type WorkerStockItem struct {
	ProductID int     `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

type WorkerStockRequest struct {
	WorkerID int               `json:"worker_id"`
	Items    []WorkerStockItem `json:"items"`
}
