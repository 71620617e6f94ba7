package models

import "time"

// Product is a perishable SKU (e.g. "Milk 500ml"). Delivery, inventory and
// verification records all key on the product ID.
type Product struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	Price     float64   `json:"price"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
