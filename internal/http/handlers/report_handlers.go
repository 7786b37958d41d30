package handlers

import (
	"net/http"
)

// GetDashboardHandler godoc
// @Summary Dashboard figures for products and bills
// @Tags reports
// @Produce json
// @Success 200 {object} report.Dashboard
// @Failure 500 {string} string "Internal error"
// @Router /report/dashboard [get]
func GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	d, err := reportService.Dashboard(r.Context())
	if err != nil {
		internalError(w, "failed to fetch dashboard", err)
		return
	}
	respond(w, http.StatusOK, d)
}

// GetSalesReportHandler godoc
// @Summary Sales volume and stock value per product
// @Tags reports
// @Produce json
// @Success 200 {array} report.ProductSales
// @Failure 500 {string} string "Internal error"
// @Router /report/sales [get]
func GetSalesReportHandler(w http.ResponseWriter, r *http.Request) {
	sales, err := reportService.SalesByProduct(r.Context())
	if err != nil {
		internalError(w, "failed to fetch sales report", err)
		return
	}
	respond(w, http.StatusOK, sales)
}

// GetLowStockReportHandler godoc
// @Summary Products under their threshold, lowest stock first
// @Tags reports
// @Produce json
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /report/low-stock [get]
func GetLowStockReportHandler(w http.ResponseWriter, r *http.Request) {
	products, err := reportService.LowStock(r.Context())
	if err != nil {
		internalError(w, "failed to fetch low stock report", err)
		return
	}
	respond(w, http.StatusOK, toProductResponses(products))
}

// GetRestockReportHandler godoc
// @Summary Restock recommendations, highest risk first
// @Tags reports
// @Produce json
// @Success 200 {array} report.RestockItem
// @Failure 500 {string} string "Internal error"
// @Router /report/restock [get]
func GetRestockReportHandler(w http.ResponseWriter, r *http.Request) {
	items, err := reportService.Restock(r.Context())
	if err != nil {
		internalError(w, "failed to fetch restock report", err)
		return
	}
	respond(w, http.StatusOK, items)
}
