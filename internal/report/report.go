package report

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
)

type MostSoldProduct struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Dashboard struct {
	TotalProducts   int              `json:"totalProducts"`
	CategoryCount   int              `json:"categoryCount"`
	TotalStock      int              `json:"totalStock"`
	AverageStock    float64          `json:"averageStock"`
	InventoryValue  float64          `json:"inventoryValue"`
	LowStockCount   int              `json:"lowStockCount"`
	TotalBills      int              `json:"totalBills"`
	DueBills        int              `json:"dueBills"`
	DueAmount       float64          `json:"dueAmount"`
	PaidAmount      float64          `json:"paidAmount"`
	TotalRevenue    float64          `json:"totalRevenue"`
	MostSoldProduct *MostSoldProduct `json:"mostSoldProduct,omitempty"`
}

type ProductSales struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
	SalesVolume int     `json:"salesVolume"`
	StockValue  float64 `json:"stockValue"`
}

type Risk string

const (
	RiskHigh   Risk = "HIGH"
	RiskMedium Risk = "MEDIUM"
	RiskLow    Risk = "LOW"
)

func (r Risk) rank() int {
	switch r {
	case RiskHigh:
		return 0
	case RiskMedium:
		return 1
	}
	return 2
}

type RestockItem struct {
	SKU              string  `json:"sku"`
	Name             string  `json:"name"`
	Stock            int     `json:"stock"`
	Sold             int     `json:"sold"`
	RecommendedStock int     `json:"recommendedStock"`
	StockRatio       float64 `json:"stockRatio"`
	Risk             Risk    `json:"risk"`
}

// Service derives reports from products and bills. It keeps no state.
type Service struct {
	products repo.ProductRepository
	bills    repo.BillRepository
}

func NewService(products repo.ProductRepository, bills repo.BillRepository) *Service {
	return &Service{products: products, bills: bills}
}

func (s *Service) load(ctx context.Context) ([]models.Product, []models.Bill, error) {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}
	bills, _, err := s.bills.Filter(ctx, repo.BillFilter{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bills: %w", err)
	}
	return products, bills, nil
}

func soldBySKU(bills []models.Bill) map[string]int {
	sold := make(map[string]int)
	for _, b := range bills {
		sold[b.ProductSKU] += b.Quantity
	}
	return sold
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	products, bills, err := s.load(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{TotalProducts: len(products), TotalBills: len(bills)}
	categories := make(map[string]struct{})
	for _, p := range products {
		if c := strings.TrimSpace(p.Category); c != "" {
			categories[strings.ToLower(c)] = struct{}{}
		}
		d.TotalStock += p.Stock
		d.InventoryValue += float64(p.Stock) * p.Price
		if p.IsLowStock() {
			d.LowStockCount++
		}
	}
	d.CategoryCount = len(categories)
	if len(products) > 0 {
		d.AverageStock = float64(d.TotalStock) / float64(len(products))
	}

	for _, b := range bills {
		d.TotalRevenue += b.TotalAmount
		if b.PaymentType == models.PaymentDue {
			d.DueBills++
			d.DueAmount += b.TotalAmount
		} else {
			d.PaidAmount += b.TotalAmount
		}
	}

	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.SKU] = p.Name
	}
	for sku, q := range soldBySKU(bills) {
		best := d.MostSoldProduct
		if best == nil || q > best.Quantity || (q == best.Quantity && sku < best.SKU) {
			d.MostSoldProduct = &MostSoldProduct{SKU: sku, Name: names[sku], Quantity: q}
		}
	}
	return d, nil
}

// SalesByProduct lists every product with the quantity billed for it.
func (s *Service) SalesByProduct(ctx context.Context) ([]ProductSales, error) {
	products, bills, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sold := soldBySKU(bills)

	out := make([]ProductSales, 0, len(products))
	for _, p := range products {
		out = append(out, ProductSales{
			SKU:         p.SKU,
			Name:        p.Name,
			Stock:       p.Stock,
			Price:       p.Price,
			SalesVolume: sold[p.SKU],
			StockValue:  float64(p.Stock) * p.Price,
		})
	}
	return out, nil
}

// LowStock returns the products under their threshold, lowest stock first.
func (s *Service) LowStock(ctx context.Context) ([]models.Product, error) {
	products, _, err := s.products.Filter(ctx, repo.ProductFilter{LowStock: true})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(products, func(a, b models.Product) int {
		return a.Stock - b.Stock
	})
	return products, nil
}

func recommendedStock(threshold, sold int) int {
	return max(threshold*3, int(math.Ceil(float64(sold)*1.5)))
}

func riskFor(ratio float64) Risk {
	switch {
	case ratio < 0.3:
		return RiskHigh
	case ratio < 0.6:
		return RiskMedium
	}
	return RiskLow
}

// Restock recommends stock levels for products that have sales.
func (s *Service) Restock(ctx context.Context) ([]RestockItem, error) {
	products, bills, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sold := soldBySKU(bills)

	items := []RestockItem{}
	for _, p := range products {
		q := sold[p.SKU]
		if q == 0 {
			continue
		}
		rec := recommendedStock(p.LowStockThreshold, q)
		ratio := float64(p.Stock) / float64(rec)
		items = append(items, RestockItem{
			SKU:              p.SKU,
			Name:             p.Name,
			Stock:            p.Stock,
			Sold:             q,
			RecommendedStock: rec,
			StockRatio:       math.Round(ratio*100) / 100,
			Risk:             riskFor(ratio),
		})
	}
	slices.SortStableFunc(items, func(a, b RestockItem) int {
		if d := a.Risk.rank() - b.Risk.rank(); d != 0 {
			return d
		}
		return strings.Compare(a.SKU, b.SKU)
	})
	return items, nil
}
