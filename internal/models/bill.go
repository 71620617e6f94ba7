package models

import "time"

// Bill aggregates a customer's verified, previously unbilled deliveries over
// a date range. Once generated, every consumed delivery row is flagged billed
// and excluded from future bills for that customer.
type Bill struct {
	ID              int       `json:"id"`
	BillNumber      string    `json:"bill_number"`
	CustomerID      int       `json:"customer_id"`
	CustomerName    string    `json:"customer_name,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalAmount     float64   `json:"total_amount"`
	DeliveryCharges float64   `json:"delivery_charges"`
	GrandTotal      float64   `json:"grand_total"`
	IsPaid          bool      `json:"is_paid"`
	FilePath        string    `json:"file_path,omitempty"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type GenerateBillRequest struct {
	CustomerID             int    `json:"customer_id"`
	StartDate              string `json:"start_date"` // YYYY-MM-DD
	EndDate                string `json:"end_date"`   // YYYY-MM-DD
	IncludeDeliveryCharges bool   `json:"include_delivery_charges"`
	CreatedBy              string `json:"created_by"`
}

// BillProductSummary is one grouped line on a bill: all deliveries of one
// product collapsed into quantity and amount totals. The unit price comes
// from the group's first row, assuming uniform pricing within the period.
type BillProductSummary struct {
	ProductName   string  `json:"product_name"`
	UnitPrice     float64 `json:"unit_price"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
}

// BillDocumentData is the shape handed to the document renderer.
type BillDocumentData struct {
	Bill       *Bill                `json:"bill"`
	Customer   *Customer            `json:"customer"`
	Deliveries []*VerifiedDelivery  `json:"deliveries"`
	Summary    []BillProductSummary `json:"summary"`
}

type GenerateBillResponse struct {
	Bill            *Bill   `json:"bill"`
	DeliveriesCount int     `json:"deliveries_count"`
	TotalAmount     float64 `json:"total_amount"`
	DeliveryCharges float64 `json:"delivery_charges"`
	GrandTotal      float64 `json:"grand_total"`
}
