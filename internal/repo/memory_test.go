package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(*testing.T) stores {
	products := repo.NewInMemoryProductRepository()
	return stores{
		products:  products,
		bills:     repo.NewInMemoryBillRepository(products),
		movements: repo.NewInMemoryMovementRepository(),
		users:     repo.NewInMemoryUserRepository(),
		requests:  repo.NewInMemoryAccessRequestRepository(),
	}
}

func TestInMemoryRepositories(t *testing.T) {
	runContract(t, openMemory)
}

func TestInMemoryProductRepository_InsertionOrder(t *testing.T) {
	r := repo.NewInMemoryProductRepository()
	ctx := context.Background()
	for _, sku := range []string{"C", "A", "B"} {
		_, err := r.Create(ctx, models.Product{SKU: sku, Name: sku, Price: 1})
		require.NoError(t, err)
	}
	_, err := r.Delete(ctx, "A")
	require.NoError(t, err)

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "C", all[0].SKU)
	assert.Equal(t, "B", all[1].SKU)

	r.Clear()
	all, err = r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInMemoryMovementRepository_Pagination(t *testing.T) {
	r := repo.NewInMemoryMovementRepository()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 5 {
		r.AddMovement(models.Movement{ProductSKU: "SKU1", Delta: i + 1, Reason: models.MovementAdjust, CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	offset, limit := 1, 2
	page, total, err := r.GetBySKU(context.Background(), "SKU1", repo.MovementFilter{Offset: &offset, Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, 4, page[0].Delta)
	assert.Equal(t, 3, page[1].Delta)

	offset = 10
	page, total, err = r.GetBySKU(context.Background(), "SKU1", repo.MovementFilter{Offset: &offset})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, page)
}
