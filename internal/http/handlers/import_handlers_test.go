package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/rogerio-castellano/inventory-billing/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-billing/internal/http/router"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importCSV(r http.Handler, content, mode string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(content, "products.csv")
	path := "/product/import"
	if mode != "" {
		path += "?mode=" + mode
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()
	seedCatalog(t, r)

	csvContent := `sku,name,stock,threshold,price,category
NEW-1,Eraser,30,5,0.5,Stationery
PEN-1,Blue Pen,99,10,1.2,Stationery
BAD-1,Broken,lots,5,1,Misc
NEG-1,Negative,-4,1,1,Misc
`
	w := importCSV(r, csvContent, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res handler.ImportProductsResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 1, res.ImportedProductsCount)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, "row 3", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Description, "already exists")
	assert.Equal(t, "row 4", res.Errors[1].Field)
	assert.Equal(t, "invalid stock", res.Errors[1].Description)
	assert.Equal(t, "row 5", res.Errors[2].Field)
	assert.Equal(t, "stock cannot be negative", res.Errors[2].Description)

	assert.Equal(t, 30, getProduct(r, "NEW-1").Stock)
	assert.Equal(t, 40, getProduct(r, "PEN-1").Stock)

	w = doJSON(r, http.MethodGet, "/product/NEW-1/movements", "", nil)
	var movements handler.MovementsSearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&movements))
	require.Len(t, movements.Data, 1)
	assert.Equal(t, models.MovementImport, movements.Data[0].Reason)
	assert.Equal(t, 30, movements.Data[0].Delta)
}

func TestImportProductsHandler_UpdateMode(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()
	seedCatalog(t, r)

	w := importCSV(r, "sku,name,stock,threshold,price,category\nPEN-1,Blue Pen XL,55,10,1.4,Stationery\n", "update")
	require.Equal(t, http.StatusOK, w.Code)

	var res handler.ImportProductsResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 1, res.ImportedProductsCount)
	assert.Empty(t, res.Errors)

	p := getProduct(r, "PEN-1")
	assert.Equal(t, "Blue Pen XL", p.Name)
	assert.Equal(t, 55, p.Stock)
	assert.InDelta(t, 1.4, p.Price, 1e-9)
}

func TestImportProductsHandler_BadFile(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	w := importCSV(r, "sku,name,stock\nA,B,1\n", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing CSV column")

	w = doJSON(r, http.MethodPost, "/product/import", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
