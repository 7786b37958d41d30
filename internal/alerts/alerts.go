package alerts

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

// LowStockAlert is recorded whenever a product drops below its threshold.
type LowStockAlert struct {
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Stock     int       `json:"stock"`
	Threshold int       `json:"threshold"`
	Time      time.Time `json:"time"`
}

func NewLowStockAlert(p models.Product) LowStockAlert {
	return LowStockAlert{
		SKU:       p.SKU,
		Name:      p.Name,
		Stock:     p.Stock,
		Threshold: p.LowStockThreshold,
		Time:      time.Now().UTC(),
	}
}

type Notifier interface {
	LowStock(ctx context.Context, p models.Product) error
	// Recent returns up to n alerts, newest first.
	Recent(ctx context.Context, n int) ([]LowStockAlert, error)
}

// alertSubject and alertBody are the plain-text notice sent per alert.
func alertSubject(a LowStockAlert) string {
	return fmt.Sprintf("⚠️ LOW STOCK: %s (%s)", a.Name, a.SKU)
}

func alertBody(a LowStockAlert) string {
	return fmt.Sprintf("Product: %s\nSKU: %s\nStock: %d\nThreshold: %d\nTime: %s",
		a.Name, a.SKU, a.Stock, a.Threshold, a.Time.Format(time.RFC3339))
}

// composeSummary renders the daily HTML digest of the given alerts.
func composeSummary(entries []LowStockAlert) string {
	counts := make(map[string]int)
	latest := make(map[string]LowStockAlert)
	for _, e := range entries {
		counts[e.SKU]++
		if prev, ok := latest[e.SKU]; !ok || e.Time.After(prev.Time) {
			latest[e.SKU] = e
		}
	}
	skus := make([]string, 0, len(counts))
	for sku := range counts {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	var sb strings.Builder
	sb.WriteString("<h2>📊 Daily Low Stock Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total alerts: <strong>%d</strong></p>", len(entries)))

	sb.WriteString("<h3>📦 By Product</h3><ul>")
	for _, sku := range skus {
		l := latest[sku]
		sb.WriteString(fmt.Sprintf("<li><code>%s</code> %s: %d alerts, last stock %d (threshold %d)</li>",
			sku, l.Name, counts[sku], l.Stock, l.Threshold))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>📋 Full Log</h3><ul>")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> stock %d at %s</li>", e.SKU, e.Stock, e.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")
	return sb.String()
}
