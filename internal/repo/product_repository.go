package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

// ProductRepository defines the interface for product data operations.
// Products are addressed by SKU.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetBySKU(ctx context.Context, sku string) (models.Product, error)
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
	// Update writes only the fields set in u and returns the stored product
	// with the stock change the write made.
	Update(ctx context.Context, sku string, u ProductUpdate) (models.Product, int, error)
	Delete(ctx context.Context, sku string) (models.Product, error)
	// AdjustStock adds delta to the stock, refusing any change that would
	// leave it negative.
	AdjustStock(ctx context.Context, sku string, delta int) (models.Product, error)
}

// ProductUpdate holds the fields to change. Nil fields keep their stored value.
type ProductUpdate struct {
	Name              *string
	Stock             *int
	LowStockThreshold *int
	Price             *float64
	Category          *string
}

// FullProductUpdate sets every mutable field from p.
func FullProductUpdate(p models.Product) ProductUpdate {
	return ProductUpdate{
		Name:              &p.Name,
		Stock:             &p.Stock,
		LowStockThreshold: &p.LowStockThreshold,
		Price:             &p.Price,
		Category:          &p.Category,
	}
}

func (u ProductUpdate) apply(p *models.Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.LowStockThreshold != nil {
		p.LowStockThreshold = *u.LowStockThreshold
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
}
