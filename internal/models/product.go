package models

import "time"

// Product represents a catalog item tracked by SKU.
type Product struct {
	SKU               string    `json:"sku" bson:"sku"`
	Name              string    `json:"name" bson:"name"`
	Stock             int       `json:"stock" bson:"stock"`
	LowStockThreshold int       `json:"lowStockThreshold" bson:"lowStockThreshold"`
	Price             float64   `json:"price" bson:"price"`
	Category          string    `json:"category" bson:"category"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsLowStock reports whether the stock is under the configured threshold.
func (p Product) IsLowStock() bool {
	return p.Stock < p.LowStockThreshold
}
