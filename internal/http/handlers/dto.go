package handlers

import (
	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

type ProductRequest struct {
	SKU               string  `json:"sku" validate:"required,max=64"`
	Name              string  `json:"name" validate:"required,max=100"`
	Stock             int     `json:"stock" validate:"gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold" validate:"gte=0"`
	Price             float64 `json:"price" validate:"gt=0"`
	Category          string  `json:"category" validate:"max=50"`
}

// ProductUpdateRequest only changes the fields that are present.
type ProductUpdateRequest struct {
	Name              *string  `json:"name,omitempty"`
	Stock             *int     `json:"stock,omitempty"`
	LowStockThreshold *int     `json:"lowStockThreshold,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	Category          *string  `json:"category,omitempty"`
}

type ProductResponse struct {
	models.Product
	LowStock bool `json:"lowStock"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{Product: p, LowStock: p.IsLowStock()}
}

func toProductResponses(products []models.Product) []ProductResponse {
	resp := make([]ProductResponse, len(products))
	for i, p := range products {
		resp[i] = toProductResponse(p)
	}
	return resp
}

type ProductsSearchResult struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []ProductResponse `json:"data"`
}

type QuantityAdjustmentRequest struct {
	Delta int `json:"delta"` // can be positive or negative
}

type Meta struct {
	TotalCount int `json:"totalCount"`
}

type MovementsSearchResult struct {
	Data []models.Movement `json:"data"`
	Meta Meta              `json:"meta"`
}

type CreateBillRequest struct {
	BillNumber  string             `json:"billNumber,omitempty"`
	ProductSKU  string             `json:"productSku"`
	Quantity    int                `json:"quantity"`
	TotalAmount float64            `json:"totalAmount,omitempty"`
	VendorName  string             `json:"vendorName"`
	PaymentType models.PaymentType `json:"paymentType"`
}

// CreateBillResult is the created bill with the product after the decrement.
type CreateBillResult struct {
	Bill           models.Bill      `json:"bill"`
	UpdatedProduct *ProductResponse `json:"updatedProduct"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterResult struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Email   string `json:"email"`
}

type UserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

type UserUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

type AccessRequestInput struct {
	BusinessName string `json:"businessName" validate:"required,max=100"`
	Industry     string `json:"industry" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,max=20"`
	Description  string `json:"description" validate:"max=500"`
}

type RequestStatusUpdate struct {
	Status models.RequestStatus `json:"status"`
}

type AccessRequestResult struct {
	Message string               `json:"message"`
	Request models.AccessRequest `json:"request"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResult struct {
	Status string            `json:"status"`
	Data   map[string]string `json:"data"`
}
