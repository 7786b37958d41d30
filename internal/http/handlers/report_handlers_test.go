package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/rogerio-castellano/inventory-billing/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-billing/internal/http/router"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSales(t *testing.T, r http.Handler) {
	t.Helper()
	seedCatalog(t, r)
	for _, b := range []handler.CreateBillRequest{
		{ProductSKU: "PEN-1", Quantity: 10, VendorName: "Acme", PaymentType: models.PaymentPaid},
		{ProductSKU: "MUG-1", Quantity: 6, VendorName: "Globex", PaymentType: models.PaymentDue},
	} {
		w := createBill(r, b)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
}

func TestGetDashboardHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()
	seedSales(t, r)

	w := doJSON(r, http.MethodGet, "/report/dashboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var d report.Dashboard
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))
	assert.Equal(t, 3, d.TotalProducts)
	assert.Equal(t, 2, d.CategoryCount)
	assert.Equal(t, 41, d.TotalStock)
	assert.Equal(t, 1, d.LowStockCount)
	assert.Equal(t, 2, d.TotalBills)
	assert.Equal(t, 1, d.DueBills)
	assert.InDelta(t, 48.0, d.DueAmount, 1e-9)
	assert.InDelta(t, 12.0, d.PaidAmount, 1e-9)
	assert.InDelta(t, 60.0, d.TotalRevenue, 1e-9)
	assert.InDelta(t, 30*1.2+5*1.5+6*8.0, d.InventoryValue, 1e-9)
	require.NotNil(t, d.MostSoldProduct)
	assert.Equal(t, "PEN-1", d.MostSoldProduct.SKU)
	assert.Equal(t, 10, d.MostSoldProduct.Quantity)
}

func TestGetSalesReportHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()
	seedSales(t, r)

	w := doJSON(r, http.MethodGet, "/report/sales", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sales []report.ProductSales
	require.NoError(t, json.NewDecoder(w.Body).Decode(&sales))
	require.Len(t, sales, 3)

	volume := map[string]int{}
	for _, s := range sales {
		volume[s.SKU] = s.SalesVolume
	}
	assert.Equal(t, map[string]int{"PEN-1": 10, "PEN-2": 0, "MUG-1": 6}, volume)
}

func TestGetLowStockReportHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()
	seedSales(t, r)

	w := doJSON(r, http.MethodGet, "/report/low-stock", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products []models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&products))
	require.Len(t, products, 1)
	assert.Equal(t, "PEN-2", products[0].SKU)
}

func TestGetRestockReportHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()
	seedSales(t, r)

	w := doJSON(r, http.MethodGet, "/report/restock", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []report.RestockItem
	require.NoError(t, json.NewDecoder(w.Body).Decode(&items))
	require.Len(t, items, 2)

	assert.Equal(t, "MUG-1", items[0].SKU)
	assert.Equal(t, report.RiskMedium, items[0].Risk)
	assert.Equal(t, 12, items[0].RecommendedStock)
	assert.InDelta(t, 0.5, items[0].StockRatio, 1e-9)

	assert.Equal(t, "PEN-1", items[1].SKU)
	assert.Equal(t, report.RiskLow, items[1].Risk)
	assert.Equal(t, 30, items[1].RecommendedStock)
}
