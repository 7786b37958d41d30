package repo

import (
	"context"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

// BillRepository persists bills together with the stock they consume.
// Implementations keep a bill and its product stock consistent: a bill is
// never stored without its decrement, and a deleted bill always returns its
// quantity to stock.
type BillRepository interface {
	// CreateWithStock decrements the product stock by the bill quantity only
	// when enough stock is available, and stores the bill. On
	// ErrInsufficientStock the returned product carries the current stock.
	CreateWithStock(ctx context.Context, bill models.Bill) (models.Bill, models.Product, error)
	// DeleteAndRestock removes the bill and returns its quantity to stock.
	// The product is nil when it no longer exists.
	DeleteAndRestock(ctx context.Context, billNumber string) (models.Bill, *models.Product, error)
	MarkPaid(ctx context.Context, billNumber string) (models.Bill, error)
	GetByNumber(ctx context.Context, billNumber string) (models.Bill, error)
	Filter(ctx context.Context, bf BillFilter) ([]models.Bill, int, error)
}

type BillFilter struct {
	VendorName  string
	PaymentType models.PaymentType
	ProductSKU  string
	MinAmount   *float64
	MaxAmount   *float64
	Since       *time.Time
	Until       *time.Time
	Offset      *int
	Limit       *int
}
