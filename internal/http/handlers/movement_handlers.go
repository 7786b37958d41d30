package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"go.uber.org/zap"
)

// AdjustStockHandler godoc
// @Summary Adjust the stock of a product
// @Tags inventory
// @Accept json
// @Produce json
// @Param sku path string true "Product SKU"
// @Param adjustment body QuantityAdjustmentRequest true "Stock change"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid adjustment"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Stock would become negative"
// @Failure 500 {string} string "Internal error"
// @Router /product/adjust/{sku} [post]
// @Security BearerAuth
func AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	var req QuantityAdjustmentRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Delta == 0 {
		http.Error(w, "delta must not be zero", http.StatusBadRequest)
		return
	}

	product, err := billingService.AdjustStock(r.Context(), sku, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrInvalidQuantityChange):
			http.Error(w, "stock cannot be negative", http.StatusConflict)
		default:
			internalError(w, "could not update stock", err)
		}
		return
	}

	respond(w, http.StatusOK, toProductResponse(product))
}

func movementFilter(r *http.Request) (repo.MovementFilter, error) {
	q := r.URL.Query()

	since, err := parseTimeParam(q, "since")
	if err != nil {
		return repo.MovementFilter{}, err
	}
	until, err := parseTimeParam(q, "until")
	if err != nil {
		return repo.MovementFilter{}, err
	}
	offset, limit, err := parsePage(q)
	if err != nil {
		return repo.MovementFilter{}, err
	}
	return repo.MovementFilter{Since: since, Until: until, Offset: offset, Limit: limit}, nil
}

// GetMovementsHandler godoc
// @Summary Get product movement logs
// @Tags movements
// @Produce json
// @Param sku path string true "Product SKU"
// @Param since query string false "Filter movements from this timestamp (RFC3339)"
// @Param until query string false "Filter movements until this timestamp (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /product/{sku}/movements [get]
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	if _, err := productRepo.GetBySKU(r.Context(), sku); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		internalError(w, "could not retrieve movements", err)
		return
	}

	filter, err := movementFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	movements, total, err := movementRepo.GetBySKU(r.Context(), sku, filter)
	if err != nil {
		zap.L().Error("could not retrieve movements", zap.String("sku", sku), zap.Error(err))
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, MovementsSearchResult{Data: movements, Meta: Meta{TotalCount: total}})
}
