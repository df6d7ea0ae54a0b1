package entity

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem represents a tracked household product for data transfer
// between layers.
type InventoryItem struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	StoreName          *string    `json:"store_name,omitempty"`
	PurchaseDate       *time.Time `json:"purchase_date,omitempty"`
	PurchasePrice      *float64   `json:"purchase_price,omitempty"`
	WarrantyYears      int        `json:"warranty_years"`
	WarrantyExpiration *time.Time `json:"warranty_expiration,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
