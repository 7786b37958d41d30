package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	handler "github.com/rogerio-castellano/inventory-billing/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-billing/internal/http/router"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStockHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()
	seedCatalog(t, r)

	tests := []struct {
		name        string
		sku         string
		delta       int
		expectCode  int
		expectStock int
	}{
		{name: "restock", sku: "PEN-2", delta: 15, expectCode: http.StatusOK, expectStock: 20},
		{name: "write off", sku: "PEN-2", delta: -20, expectCode: http.StatusOK, expectStock: 0},
		{name: "below zero", sku: "PEN-2", delta: -1, expectCode: http.StatusConflict, expectStock: 0},
		{name: "zero delta", sku: "PEN-2", delta: 0, expectCode: http.StatusBadRequest, expectStock: 0},
		{name: "unknown sku", sku: "NOPE", delta: 1, expectCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/product/adjust/"+tt.sku, token, handler.QuantityAdjustmentRequest{Delta: tt.delta})
			require.Equal(t, tt.expectCode, w.Code, w.Body.String())
			if tt.expectCode == http.StatusNotFound {
				return
			}
			assert.Equal(t, tt.expectStock, getProduct(r, tt.sku).Stock)
		})
	}

	w := doJSON(r, http.MethodGet, "/product/PEN-2/movements", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res handler.MovementsSearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 2, res.Meta.TotalCount)
}

func TestGetMovementsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()
	seedCatalog(t, r)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, delta := range []int{5, -2, 7} {
		movementRepo.AddMovement(models.Movement{
			ID:         string(rune('a' + i)),
			ProductSKU: "PEN-1",
			Delta:      delta,
			Reason:     models.MovementAdjust,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
	}

	tests := []struct {
		name        string
		path        string
		expectCode  int
		expectTotal int
		expectDelta []int
	}{
		{name: "newest first", path: "/product/PEN-1/movements", expectCode: http.StatusOK, expectTotal: 3, expectDelta: []int{7, -2, 5}},
		{name: "since", path: "/product/PEN-1/movements?since=2025-06-01T13:00:00Z", expectCode: http.StatusOK, expectTotal: 2, expectDelta: []int{7, -2}},
		{name: "until", path: "/product/PEN-1/movements?until=2025-06-01T12:30:00Z", expectCode: http.StatusOK, expectTotal: 1, expectDelta: []int{5}},
		{name: "page", path: "/product/PEN-1/movements?offset=1&limit=1", expectCode: http.StatusOK, expectTotal: 3, expectDelta: []int{-2}},
		{name: "bad since", path: "/product/PEN-1/movements?since=yesterday", expectCode: http.StatusBadRequest},
		{name: "unknown product", path: "/product/NOPE/movements", expectCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, tt.path, "", nil)
			require.Equal(t, tt.expectCode, w.Code, w.Body.String())
			if tt.expectCode != http.StatusOK {
				return
			}
			var res handler.MovementsSearchResult
			require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
			assert.Equal(t, tt.expectTotal, res.Meta.TotalCount)

			deltas := make([]int, 0, len(res.Data))
			for _, m := range res.Data {
				deltas = append(deltas, m.Delta)
			}
			assert.Equal(t, tt.expectDelta, deltas)
		})
	}
}
