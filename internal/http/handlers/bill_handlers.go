package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-billing/internal/billing"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
)

// billError maps billing and store errors to a status code.
func billError(w http.ResponseWriter, err error, fallback string) {
	var stockErr *billing.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		http.Error(w, stockErr.Error(), http.StatusBadRequest)
	case errors.Is(err, billing.ErrInvalidQuantity),
		errors.Is(err, billing.ErrInvalidPaymentType),
		errors.Is(err, billing.ErrMissingField):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repo.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrBillNotFound):
		http.Error(w, "bill not found", http.StatusNotFound)
	case errors.Is(err, repo.ErrDuplicateBill):
		http.Error(w, "bill number already exists", http.StatusConflict)
	default:
		internalError(w, fallback, err)
	}
}

// CreateBillHandler godoc
// @Summary Create a bill
// @Description Decrements the product stock by the billed quantity. The bill number is generated when omitted.
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bill body CreateBillRequest true "Bill to create"
// @Success 201 {object} CreateBillResult
// @Failure 400 {string} string "Invalid quantity, insufficient stock or missing field"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Bill number already exists"
// @Failure 500 {string} string "Internal error"
// @Router /bill/create [post]
func CreateBillHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	res, err := billingService.Create(r.Context(), billing.CreateBillInput{
		BillNumber:  req.BillNumber,
		ProductSKU:  req.ProductSKU,
		Quantity:    req.Quantity,
		TotalAmount: req.TotalAmount,
		VendorName:  req.VendorName,
		PaymentType: req.PaymentType,
	})
	if err != nil {
		billError(w, err, "could not create bill")
		return
	}

	resp := CreateBillResult{Bill: res.Bill}
	if res.Product != nil {
		p := toProductResponse(*res.Product)
		resp.UpdatedProduct = &p
	}
	respond(w, http.StatusCreated, resp)
}

// GetBillsHandler godoc
// @Summary List bills
// @Description Newest first.
// @Tags bills
// @Produce json
// @Param vendorName query string false "Vendor name contains"
// @Param paymentType query string false "paid or due"
// @Param productSku query string false "Product SKU"
// @Param minAmount query number false "Minimum total amount"
// @Param maxAmount query number false "Maximum total amount"
// @Param since query string false "Created from (RFC3339)"
// @Param until query string false "Created until (RFC3339)"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {array} models.Bill
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /bill/ [get]
func GetBillsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.BillFilter{
		VendorName:  q.Get("vendorName"),
		PaymentType: models.PaymentType(q.Get("paymentType")),
		ProductSKU:  q.Get("productSku"),
	}
	if filter.PaymentType != "" && !filter.PaymentType.Valid() {
		http.Error(w, billing.ErrInvalidPaymentType.Error(), http.StatusBadRequest)
		return
	}

	var err error
	if filter.MinAmount, err = parseFloatParam(q, "minAmount"); err == nil {
		filter.MaxAmount, err = parseFloatParam(q, "maxAmount")
	}
	if err == nil {
		filter.Since, err = parseTimeParam(q, "since")
	}
	if err == nil {
		filter.Until, err = parseTimeParam(q, "until")
	}
	if err == nil {
		filter.Offset, filter.Limit, err = parsePage(q)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bills, _, err := billingService.List(r.Context(), filter)
	if err != nil {
		internalError(w, "could not fetch bills", err)
		return
	}
	respond(w, http.StatusOK, bills)
}

// GetBillHandler godoc
// @Summary Get bill by number
// @Tags bills
// @Produce json
// @Param billNumber path string true "Bill number"
// @Success 200 {object} models.Bill
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /bill/{billNumber} [get]
func GetBillHandler(w http.ResponseWriter, r *http.Request) {
	bill, err := billingService.Get(r.Context(), chi.URLParam(r, "billNumber"))
	if err != nil {
		billError(w, err, "could not fetch bill")
		return
	}
	respond(w, http.StatusOK, bill)
}

// DeleteBillHandler godoc
// @Summary Delete a bill
// @Description Returns the billed quantity to the product stock.
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param billNumber path string true "Bill number"
// @Success 200 {object} models.Bill
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /bill/delete/{billNumber} [delete]
func DeleteBillHandler(w http.ResponseWriter, r *http.Request) {
	res, err := billingService.Delete(r.Context(), chi.URLParam(r, "billNumber"))
	if err != nil {
		billError(w, err, "could not delete bill")
		return
	}
	respond(w, http.StatusOK, res.Bill)
}

// MarkBillPaidHandler godoc
// @Summary Mark a bill as paid
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param billNumber path string true "Bill number"
// @Success 200 {object} models.Bill
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /bill/mark-paid/{billNumber} [put]
func MarkBillPaidHandler(w http.ResponseWriter, r *http.Request) {
	bill, err := billingService.MarkPaid(r.Context(), chi.URLParam(r, "billNumber"))
	if err != nil {
		billError(w, err, "could not update bill")
		return
	}
	respond(w, http.StatusOK, bill)
}
