package repo

import (
	"context"
	"sort"
	"strings"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

// InMemoryBillRepository stores bills next to an InMemoryProductRepository
// and uses the product mutex so that bill and stock change together.
type InMemoryBillRepository struct {
	products *InMemoryProductRepository
	bills    map[string]models.Bill
}

func NewInMemoryBillRepository(products *InMemoryProductRepository) *InMemoryBillRepository {
	return &InMemoryBillRepository{
		products: products,
		bills:    map[string]models.Bill{},
	}
}

func (r *InMemoryBillRepository) CreateWithStock(_ context.Context, bill models.Bill) (models.Bill, models.Product, error) {
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	if _, exists := r.bills[bill.BillNumber]; exists {
		return models.Bill{}, models.Product{}, ErrDuplicateBill
	}
	p, err := r.products.adjustLocked(bill.ProductSKU, -bill.Quantity)
	if err != nil {
		if err == ErrInvalidQuantityChange {
			return models.Bill{}, p, ErrInsufficientStock
		}
		return models.Bill{}, models.Product{}, err
	}
	r.bills[bill.BillNumber] = bill
	return bill, p, nil
}

func (r *InMemoryBillRepository) DeleteAndRestock(_ context.Context, billNumber string) (models.Bill, *models.Product, error) {
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	bill, ok := r.bills[billNumber]
	if !ok {
		return models.Bill{}, nil, ErrBillNotFound
	}
	delete(r.bills, billNumber)

	p, err := r.products.adjustLocked(bill.ProductSKU, bill.Quantity)
	if err == ErrProductNotFound {
		return bill, nil, nil
	}
	if err != nil {
		return bill, nil, err
	}
	return bill, &p, nil
}

func (r *InMemoryBillRepository) MarkPaid(_ context.Context, billNumber string) (models.Bill, error) {
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	bill, ok := r.bills[billNumber]
	if !ok {
		return models.Bill{}, ErrBillNotFound
	}
	bill.PaymentType = models.PaymentPaid
	r.bills[billNumber] = bill
	return bill, nil
}

func (r *InMemoryBillRepository) GetByNumber(_ context.Context, billNumber string) (models.Bill, error) {
	r.products.mu.RLock()
	defer r.products.mu.RUnlock()

	bill, ok := r.bills[billNumber]
	if !ok {
		return models.Bill{}, ErrBillNotFound
	}
	return bill, nil
}

func matchesBillFilter(b models.Bill, bf BillFilter) bool {
	if bf.VendorName != "" && !strings.Contains(strings.ToLower(b.VendorName), strings.ToLower(bf.VendorName)) {
		return false
	}
	if bf.PaymentType != "" && b.PaymentType != bf.PaymentType {
		return false
	}
	if bf.ProductSKU != "" && b.ProductSKU != bf.ProductSKU {
		return false
	}
	if bf.MinAmount != nil && b.TotalAmount < *bf.MinAmount {
		return false
	}
	if bf.MaxAmount != nil && b.TotalAmount > *bf.MaxAmount {
		return false
	}
	if bf.Since != nil && b.CreatedAt.Before(*bf.Since) {
		return false
	}
	if bf.Until != nil && b.CreatedAt.After(*bf.Until) {
		return false
	}
	return true
}

// Filter returns matching bills, newest first.
func (r *InMemoryBillRepository) Filter(_ context.Context, bf BillFilter) ([]models.Bill, int, error) {
	r.products.mu.RLock()
	defer r.products.mu.RUnlock()

	filtered := []models.Bill{}
	for _, b := range r.bills {
		if matchesBillFilter(b, bf) {
			filtered = append(filtered, b)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].CreatedAt.Equal(filtered[j].CreatedAt) {
			return filtered[i].BillNumber < filtered[j].BillNumber
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	start, end := paginate(len(filtered), bf.Offset, bf.Limit)
	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryBillRepository) Clear() {
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	r.bills = map[string]models.Bill{}
}
