package handlers

import (
	"net/http"
)

const defaultAlertLimit = 50

// GetLowStockAlertsHandler godoc
// @Summary Recent low stock alerts, newest first
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of alerts (default 50)"
// @Success 200 {array} alerts.LowStockAlert
// @Failure 400 {string} string "Invalid limit"
// @Failure 500 {string} string "Internal error"
// @Router /alerts/low-stock [get]
func GetLowStockAlertsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r.URL.Query(), "limit")
	if err != nil || (limit != nil && *limit <= 0) {
		http.Error(w, "limit must be greater than zero", http.StatusBadRequest)
		return
	}
	n := defaultAlertLimit
	if limit != nil {
		n = *limit
	}

	entries, err := notifier.Recent(r.Context(), n)
	if err != nil {
		internalError(w, "could not fetch alerts", err)
		return
	}
	respond(w, http.StatusOK, entries)
}
