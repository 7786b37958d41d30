package billing

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/inventory-billing/internal/repo"
)

var (
	ErrInvalidQuantity    = errors.New("invalid-quantity")
	ErrInvalidPaymentType = errors.New("payment type must be paid or due")
	ErrMissingField       = errors.New("missing required field")
)

// InsufficientStockError reports the stock available when a bill asked
// for more.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient-stock: only %d left for %s, requested %d", e.Available, e.SKU, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == repo.ErrInsufficientStock
}
