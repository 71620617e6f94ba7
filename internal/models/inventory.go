package models

import "time"

// InventoryRecord is the per-product per-day stock ledger row.
// ordered_qty is written by the demand calculator at day start,
// received_qty by admin when stock arrives, remaining_qty once at day end.
type InventoryRecord struct {
	ID            int       `json:"id"`
	ProductID     int       `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	RecordDate    time.Time `json:"record_date"`
	OrderedQty    float64   `json:"ordered_qty"`
	ReceivedQty   *float64  `json:"received_qty"`
	RemainingQty  *float64  `json:"remaining_qty"`
	LastUpdatedBy string    `json:"last_updated_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SetInventoryQtyRequest struct {
	ProductID int     `json:"product_id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Quantity  float64 `json:"quantity"`
}
