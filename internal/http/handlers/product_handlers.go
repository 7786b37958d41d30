package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"go.uber.org/zap"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 409 {string} string "SKU already exists"
// @Router /product/add [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if validationErrors := validateProduct(&req); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := productRepo.Create(r.Context(), models.Product{
		SKU:               req.SKU,
		Name:              req.Name,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Price:             req.Price,
		Category:          req.Category,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create product: sku already exists", http.StatusConflict)
			return
		}
		internalError(w, "could not create product", err)
		return
	}

	respond(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List and filter products
// @Tags products
// @Produce json
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param lowStock query bool false "Only products under their threshold"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minStock query int false "Minimum stock"
// @Param maxStock query int false "Maximum stock"
// @Param offset query int false "Offset for pagination"
// @Param limit query int false "Limit for pagination"
// @Success 200 {object} ProductsSearchResult
// @Failure 400 {string} string "Invalid query"
// @Failure 500 {string} string "Internal error"
// @Router /product/ [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.ProductFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
	}
	if s := q.Get("lowStock"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid lowStock format", http.StatusBadRequest)
			return
		}
		filter.LowStock = v
	}

	var err error
	for key, dst := range map[string]**float64{"minPrice": &filter.MinPrice, "maxPrice": &filter.MaxPrice} {
		if *dst, err = parseFloatParam(q, key); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	for key, dst := range map[string]**int{"minStock": &filter.MinStock, "maxStock": &filter.MaxStock} {
		if *dst, err = parseIntParam(q, key); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if filter.Offset, filter.Limit, err = parsePage(q); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, total, err := productRepo.Filter(r.Context(), filter)
	if err != nil {
		internalError(w, "could not fetch products", err)
		return
	}

	respond(w, http.StatusOK, ProductsSearchResult{Success: true, Count: total, Data: toProductResponses(products)})
}

// GetProductHandler godoc
// @Summary Get product by SKU
// @Tags products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /product/{sku} [get]
func GetProductHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetBySKU(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		internalError(w, "could not fetch product", err)
		return
	}
	respond(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Only the fields present in the body are changed.
// @Tags products
// @Accept json
// @Produce json
// @Param sku path string true "Product SKU"
// @Param product body ProductUpdateRequest true "Fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {array} ProductValidationError
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /product/update/{sku} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	var req ProductUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	existing, err := productRepo.GetBySKU(r.Context(), sku)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		internalError(w, "could not update product", err)
		return
	}

	merged := ProductRequest{
		SKU:               existing.SKU,
		Name:              existing.Name,
		Stock:             existing.Stock,
		LowStockThreshold: existing.LowStockThreshold,
		Price:             existing.Price,
		Category:          existing.Category,
	}
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Stock != nil {
		merged.Stock = *req.Stock
	}
	if req.LowStockThreshold != nil {
		merged.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Price != nil {
		merged.Price = *req.Price
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if validationErrors := validateProduct(&merged); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, validationErrors)
		return
	}

	// Only the fields from the body are written, so concurrent stock changes survive.
	var u repo.ProductUpdate
	if req.Name != nil {
		u.Name = &merged.Name
	}
	if req.Stock != nil {
		u.Stock = &merged.Stock
	}
	if req.LowStockThreshold != nil {
		u.LowStockThreshold = &merged.LowStockThreshold
	}
	if req.Price != nil {
		u.Price = &merged.Price
	}
	if req.Category != nil {
		u.Category = &merged.Category
	}

	updated, delta, err := productRepo.Update(r.Context(), sku, u)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		internalError(w, "could not update product", err)
		return
	}

	if delta != 0 {
		m := models.Movement{ProductSKU: sku, Delta: delta, Reason: models.MovementAdjust, Reference: "update"}
		if err := movementRepo.Log(r.Context(), m); err != nil {
			zap.L().Error("failed to log movement", zap.String("sku", sku), zap.Error(err))
		}
	}

	respond(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} ProductResponse
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /product/delete/{sku} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := productRepo.Delete(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		internalError(w, "could not delete product", err)
		return
	}
	respond(w, http.StatusOK, toProductResponse(deleted))
}
