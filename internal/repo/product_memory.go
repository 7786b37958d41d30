package repo

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// Its mutex also guards the bills of an InMemoryBillRepository built on top of it.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
	order    []string
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: map[string]models.Product{},
	}
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Name)) {
		return false
	}
	if pf.Category != "" && !strings.EqualFold(p.Category, pf.Category) {
		return false
	}
	if pf.LowStock && !p.IsLowStock() {
		return false
	}
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	if pf.MinStock != nil && p.Stock < *pf.MinStock {
		return false
	}
	if pf.MaxStock != nil && p.Stock > *pf.MaxStock {
		return false
	}
	return true
}

func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, sku := range r.order {
		if p := r.products[sku]; matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}

	if pf.Offset != nil && *pf.Offset > len(filtered) {
		return []models.Product{}, len(filtered), nil
	}

	start, end := paginate(len(filtered), pf.Offset, pf.Limit)
	return filtered[start:end], len(filtered), nil
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.SKU]; exists {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.SKU] = product
	r.order = append(r.order, product.SKU)
	return product, nil
}

// GetAll retrieves all products in insertion order.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.order))
	for _, sku := range r.order {
		products = append(products, r.products[sku])
	}
	return products, nil
}

func (r *InMemoryProductRepository) GetBySKU(_ context.Context, sku string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[sku]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Update merges the set fields into the stored product under the lock.
func (r *InMemoryProductRepository) Update(_ context.Context, sku string, u ProductUpdate) (models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[sku]
	if !ok {
		return models.Product{}, 0, ErrProductNotFound
	}
	before := p.Stock
	u.apply(&p)
	p.UpdatedAt = time.Now().UTC()
	r.products[sku] = p
	return p, p.Stock - before, nil
}

func (r *InMemoryProductRepository) Delete(_ context.Context, sku string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[sku]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	delete(r.products, sku)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == sku })
	return p, nil
}

func (r *InMemoryProductRepository) AdjustStock(_ context.Context, sku string, delta int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.adjustLocked(sku, delta)
}

// adjustLocked must be called with r.mu held.
func (r *InMemoryProductRepository) adjustLocked(sku string, delta int) (models.Product, error) {
	p, ok := r.products[sku]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return p, ErrInvalidQuantityChange
	}
	p.Stock += delta
	p.UpdatedAt = time.Now().UTC()
	r.products[sku] = p
	return p, nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = map[string]models.Product{}
	r.order = nil
}
