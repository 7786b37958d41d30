package repo_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stores bundles the repositories of one backend for the shared contract.
type stores struct {
	products  repo.ProductRepository
	bills     repo.BillRepository
	movements repo.MovementRepository
	users     repo.UserRepository
	requests  repo.AccessRequestRepository
}

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func seedProduct(t *testing.T, s stores, sku string, stock int) models.Product {
	t.Helper()
	p, err := s.products.Create(context.Background(), models.Product{
		SKU:               sku,
		Name:              "Product " + sku,
		Stock:             stock,
		LowStockThreshold: 3,
		Price:             2.5,
		Category:          "General",
	})
	require.NoError(t, err)
	return p
}

func newBill(number, sku string, qty int, offset time.Duration) models.Bill {
	return models.Bill{
		BillNumber:  number,
		ProductSKU:  sku,
		Quantity:    qty,
		TotalAmount: float64(qty) * 2.5,
		VendorName:  "Acme",
		PaymentType: models.PaymentDue,
		CreatedAt:   baseTime.Add(offset),
	}
}

// runContract runs every case against a fresh set of stores from open.
func runContract(t *testing.T, open func(t *testing.T) stores) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s stores)
	}{
		{"products/crud", testProductCRUD},
		{"products/filter", testProductFilter},
		{"products/adjust", testProductAdjust},
		{"products/update keeps billed stock", testProductUpdateAfterBill},
		{"bills/create within stock", testBillCreateWithinStock},
		{"bills/create over stock", testBillCreateOverStock},
		{"bills/duplicate number", testBillDuplicate},
		{"bills/unknown product", testBillUnknownProduct},
		{"bills/delete restocks", testBillDelete},
		{"bills/mark paid", testBillMarkPaid},
		{"bills/filter", testBillFilter},
		{"bills/concurrent", testBillConcurrent},
		{"movements", testMovements},
		{"users", testUsers},
		{"access requests", testAccessRequests},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

func testProductUpdateAfterBill(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 10)

	// a bill lands between a client's read and its rename
	_, err := s.products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	_, _, err = s.bills.CreateWithStock(ctx, newBill("RACE", "SKU1", 4, 0))
	require.NoError(t, err)

	name := "Renamed"
	updated, delta, err := s.products.Update(ctx, "SKU1", repo.ProductUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 6, updated.Stock)
	assert.Zero(t, delta)

	stored, err := s.products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, 6, stored.Stock)
}

func testProductCRUD(t *testing.T, s stores) {
	ctx := context.Background()
	created := seedProduct(t, s, "SKU1", 10)
	assert.False(t, created.CreatedAt.IsZero())

	_, err := s.products.Create(ctx, models.Product{SKU: "SKU1", Name: "Again", Price: 1})
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	got, err := s.products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "Product SKU1", got.Name)

	name, price := "Renamed", 4.0
	updated, delta, err := s.products.Update(ctx, "SKU1", repo.ProductUpdate{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.InDelta(t, 4.0, updated.Price, 1e-9)
	assert.Equal(t, 10, updated.Stock)
	assert.Equal(t, got.LowStockThreshold, updated.LowStockThreshold)
	assert.Zero(t, delta)

	stock := 25
	updated, delta, err = s.products.Update(ctx, "SKU1", repo.ProductUpdate{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Stock)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 15, delta)

	_, _, err = s.products.Update(ctx, "NOPE", repo.ProductUpdate{Name: &name})
	assert.ErrorIs(t, err, repo.ErrProductNotFound)

	all, err := s.products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	deleted, err := s.products.Delete(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, "SKU1", deleted.SKU)

	_, err = s.products.GetBySKU(ctx, "SKU1")
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
	_, err = s.products.Delete(ctx, "SKU1")
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func testProductFilter(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "A", 1)
	seedProduct(t, s, "B", 8)
	seedProduct(t, s, "C", 2)

	low, total, err := s.products.Filter(ctx, repo.ProductFilter{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, low, 2)

	minStock := 2
	ranged, total, err := s.products.Filter(ctx, repo.ProductFilter{MinStock: &minStock})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, ranged, 2)

	offset, limit := 1, 1
	page, total, err := s.products.Filter(ctx, repo.ProductFilter{Offset: &offset, Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 1)

	named, _, err := s.products.Filter(ctx, repo.ProductFilter{Name: "product b"})
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "B", named[0].SKU)
}

func testProductAdjust(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 5)

	p, err := s.products.AdjustStock(ctx, "SKU1", 3)
	require.NoError(t, err)
	assert.Equal(t, 8, p.Stock)

	_, err = s.products.AdjustStock(ctx, "SKU1", -9)
	assert.ErrorIs(t, err, repo.ErrInvalidQuantityChange)

	p, err = s.products.AdjustStock(ctx, "SKU1", -8)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)

	_, err = s.products.AdjustStock(ctx, "NOPE", 1)
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func testBillCreateWithinStock(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 10)

	bill, p, err := s.bills.CreateWithStock(ctx, newBill("B-1", "SKU1", 4, 0))
	require.NoError(t, err)
	assert.Equal(t, "B-1", bill.BillNumber)
	assert.Equal(t, 6, p.Stock)

	stored, err := s.bills.GetByNumber(ctx, "B-1")
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Quantity)
	assert.Equal(t, models.PaymentDue, stored.PaymentType)

	current, err := s.products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, 6, current.Stock)
}

func testBillCreateOverStock(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 6)

	_, p, err := s.bills.CreateWithStock(ctx, newBill("B-1", "SKU1", 10, 0))
	require.ErrorIs(t, err, repo.ErrInsufficientStock)
	assert.Equal(t, 6, p.Stock)

	_, err = s.bills.GetByNumber(ctx, "B-1")
	assert.ErrorIs(t, err, repo.ErrBillNotFound)

	current, err := s.products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, 6, current.Stock)
}

func testBillDuplicate(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 10)

	_, _, err := s.bills.CreateWithStock(ctx, newBill("B-1", "SKU1", 2, 0))
	require.NoError(t, err)
	_, _, err = s.bills.CreateWithStock(ctx, newBill("B-1", "SKU1", 3, time.Minute))
	assert.ErrorIs(t, err, repo.ErrDuplicateBill)

	current, err := s.products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, 8, current.Stock)
}

func testBillUnknownProduct(t *testing.T, s stores) {
	_, _, err := s.bills.CreateWithStock(context.Background(), newBill("B-1", "NOPE", 1, 0))
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func testBillDelete(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 10)
	seedProduct(t, s, "SKU2", 10)

	_, _, err := s.bills.CreateWithStock(ctx, newBill("B-1", "SKU1", 4, 0))
	require.NoError(t, err)

	bill, p, err := s.bills.DeleteAndRestock(ctx, "B-1")
	require.NoError(t, err)
	assert.Equal(t, "B-1", bill.BillNumber)
	require.NotNil(t, p)
	assert.Equal(t, 10, p.Stock)

	_, _, err = s.bills.DeleteAndRestock(ctx, "B-1")
	assert.ErrorIs(t, err, repo.ErrBillNotFound)

	_, _, err = s.bills.CreateWithStock(ctx, newBill("B-2", "SKU2", 3, 0))
	require.NoError(t, err)
	_, err = s.products.Delete(ctx, "SKU2")
	require.NoError(t, err)

	bill, p, err = s.bills.DeleteAndRestock(ctx, "B-2")
	require.NoError(t, err)
	assert.Equal(t, "B-2", bill.BillNumber)
	assert.Nil(t, p)
}

func testBillMarkPaid(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 10)

	created, _, err := s.bills.CreateWithStock(ctx, newBill("B-1", "SKU1", 4, 0))
	require.NoError(t, err)

	paid, err := s.bills.MarkPaid(ctx, "B-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, paid.PaymentType)
	assert.Equal(t, created.Quantity, paid.Quantity)
	assert.Equal(t, created.VendorName, paid.VendorName)
	assert.InDelta(t, created.TotalAmount, paid.TotalAmount, 1e-9)

	again, err := s.bills.MarkPaid(ctx, "B-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, again.PaymentType)

	_, err = s.bills.MarkPaid(ctx, "NOPE")
	assert.ErrorIs(t, err, repo.ErrBillNotFound)

	current, err := s.products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, 6, current.Stock)
}

func testBillFilter(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 100)

	for i, vendor := range []string{"Acme", "Globex", "Acme Ltd"} {
		b := newBill(fmt.Sprintf("B-%d", i+1), "SKU1", i+1, time.Duration(i)*time.Hour)
		b.VendorName = vendor
		_, _, err := s.bills.CreateWithStock(ctx, b)
		require.NoError(t, err)
	}
	_, err := s.bills.MarkPaid(ctx, "B-2")
	require.NoError(t, err)

	all, total, err := s.bills.Filter(ctx, repo.BillFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, "B-3", all[0].BillNumber)
	assert.Equal(t, "B-1", all[2].BillNumber)

	acme, total, err := s.bills.Filter(ctx, repo.BillFilter{VendorName: "acme"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, acme, 2)

	paid, _, err := s.bills.Filter(ctx, repo.BillFilter{PaymentType: models.PaymentPaid})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "B-2", paid[0].BillNumber)

	minAmount := 5.0
	large, _, err := s.bills.Filter(ctx, repo.BillFilter{MinAmount: &minAmount})
	require.NoError(t, err)
	assert.Len(t, large, 2)

	since := baseTime.Add(90 * time.Minute)
	recent, _, err := s.bills.Filter(ctx, repo.BillFilter{Since: &since})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "B-3", recent[0].BillNumber)
}

func testBillConcurrent(t *testing.T, s stores) {
	ctx := context.Background()
	seedProduct(t, s, "SKU1", 10)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.bills.CreateWithStock(ctx, newBill(fmt.Sprintf("C-%d", i), "SKU1", 1, time.Duration(i)*time.Second))
			if err == nil {
				succeeded.Add(1)
				return
			}
			assert.ErrorIs(t, err, repo.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), succeeded.Load())
	current, err := s.products.GetBySKU(ctx, "SKU1")
	require.NoError(t, err)
	assert.Equal(t, 0, current.Stock)

	_, total, err := s.bills.Filter(ctx, repo.BillFilter{})
	require.NoError(t, err)
	assert.Equal(t, 10, total)
}

func testMovements(t *testing.T, s stores) {
	ctx := context.Background()
	for _, delta := range []int{5, -2, 7} {
		require.NoError(t, s.movements.Log(ctx, models.Movement{ProductSKU: "SKU1", Delta: delta, Reason: models.MovementAdjust}))
		time.Sleep(5 * time.Millisecond)
	}
	require.NoError(t, s.movements.Log(ctx, models.Movement{ProductSKU: "SKU2", Delta: 1, Reason: models.MovementImport}))

	list, total, err := s.movements.GetBySKU(ctx, "SKU1", repo.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 3)
	assert.Equal(t, 7, list[0].Delta)
	assert.Equal(t, 5, list[2].Delta)
	assert.NotEmpty(t, list[0].ID)

	limit := 0
	counted, total, err := s.movements.GetBySKU(ctx, "SKU1", repo.MovementFilter{Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, counted)

	future := time.Now().Add(time.Hour)
	none, total, err := s.movements.GetBySKU(ctx, "SKU1", repo.MovementFilter{Since: &future})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, none)
}

func testUsers(t *testing.T, s stores) {
	ctx := context.Background()
	u := models.User{Email: "clerk@example.com", Name: "Clerk", PasswordHash: "hash", Role: models.RoleUser}

	created, err := s.users.Create(ctx, u)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = s.users.Create(ctx, u)
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	updated, err := s.users.Update(ctx, models.User{Email: u.Email, Name: "Head Clerk", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Head Clerk", updated.Name)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	got, err := s.users.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)

	all, err := s.users.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.users.Delete(ctx, u.Email))
	assert.ErrorIs(t, s.users.Delete(ctx, u.Email), repo.ErrUserNotFound)
	_, err = s.users.GetByEmail(ctx, u.Email)
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
	_, err = s.users.Update(ctx, u)
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}

func testAccessRequests(t *testing.T, s stores) {
	ctx := context.Background()
	req := models.AccessRequest{
		BusinessName: "Corner Shop",
		Industry:     "Retail",
		Email:        "owner@shop.example",
		Phone:        "555-0100",
		Status:       models.RequestPending,
	}

	created, err := s.requests.Create(ctx, req)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, models.RequestPending, created.Status)

	_, err = s.requests.Create(ctx, req)
	assert.ErrorIs(t, err, repo.ErrDuplicatedValueUnique)

	updated, err := s.requests.UpdateStatus(ctx, created.ID, models.RequestRejected)
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, updated.Status)
	assert.Equal(t, created.Email, updated.Email)

	_, err = s.requests.UpdateStatus(ctx, "unknown", models.RequestApproved)
	assert.ErrorIs(t, err, repo.ErrRequestNotFound)

	all, err := s.requests.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
