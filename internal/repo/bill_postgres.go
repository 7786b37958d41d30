package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

const billColumns = `bill_number, product_sku, quantity, total_amount, vendor_name, payment_type, created_at`

func scanBill(row rowScanner) (models.Bill, error) {
	var b models.Bill
	err := row.Scan(&b.BillNumber, &b.ProductSKU, &b.Quantity, &b.TotalAmount, &b.VendorName, &b.PaymentType, &b.CreatedAt)
	return b, err
}

type PostgresBillRepository struct {
	db *sql.DB
}

func NewPostgresBillRepository(db *sql.DB) *PostgresBillRepository {
	return &PostgresBillRepository{db: db}
}

// CreateWithStock runs the conditional decrement and the insert in one
// transaction.
func (r *PostgresBillRepository) CreateWithStock(ctx context.Context, bill models.Bill) (models.Bill, models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Bill{}, models.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	decrement := `
		UPDATE products
		SET stock = stock - $1, updated_at = $2
		WHERE sku = $3 AND stock >= $1
		RETURNING ` + productColumns
	p, err := scanProduct(tx.QueryRowContext(ctx, decrement, bill.Quantity, time.Now().UTC(), bill.ProductSKU))
	if errors.Is(err, sql.ErrNoRows) {
		current, getErr := scanProduct(tx.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, bill.ProductSKU))
		if errors.Is(getErr, sql.ErrNoRows) {
			return models.Bill{}, models.Product{}, ErrProductNotFound
		}
		if getErr != nil {
			return models.Bill{}, models.Product{}, getErr
		}
		return models.Bill{}, current, ErrInsufficientStock
	}
	if err != nil {
		return models.Bill{}, models.Product{}, err
	}

	insert := `INSERT INTO bills (` + billColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + billColumns
	created, err := scanBill(tx.QueryRowContext(ctx, insert,
		bill.BillNumber, bill.ProductSKU, bill.Quantity, bill.TotalAmount, bill.VendorName, string(bill.PaymentType), bill.CreatedAt))
	if isUniqueViolation(err) {
		return models.Bill{}, models.Product{}, ErrDuplicateBill
	}
	if err != nil {
		return models.Bill{}, models.Product{}, fmt.Errorf("failed to insert bill: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Bill{}, models.Product{}, fmt.Errorf("failed to commit bill: %w", err)
	}
	return created, p, nil
}

func (r *PostgresBillRepository) DeleteAndRestock(ctx context.Context, billNumber string) (models.Bill, *models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Bill{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	bill, err := scanBill(tx.QueryRowContext(ctx, `DELETE FROM bills WHERE bill_number = $1 RETURNING `+billColumns, billNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bill{}, nil, ErrBillNotFound
	}
	if err != nil {
		return models.Bill{}, nil, err
	}

	restock := `UPDATE products SET stock = stock + $1, updated_at = $2 WHERE sku = $3 RETURNING ` + productColumns
	var product *models.Product
	p, err := scanProduct(tx.QueryRowContext(ctx, restock, bill.Quantity, time.Now().UTC(), bill.ProductSKU))
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return models.Bill{}, nil, err
	default:
		product = &p
	}

	if err := tx.Commit(); err != nil {
		return models.Bill{}, nil, fmt.Errorf("failed to commit bill deletion: %w", err)
	}
	return bill, product, nil
}

func (r *PostgresBillRepository) MarkPaid(ctx context.Context, billNumber string) (models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `UPDATE bills SET payment_type = $1 WHERE bill_number = $2 RETURNING ` + billColumns
	b, err := scanBill(r.db.QueryRowContext(ctx, query, string(models.PaymentPaid), billNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bill{}, ErrBillNotFound
	}
	return b, err
}

func (r *PostgresBillRepository) GetByNumber(ctx context.Context, billNumber string) (models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	b, err := scanBill(r.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE bill_number = $1`, billNumber))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bill{}, ErrBillNotFound
	}
	return b, err
}

func billConditions(bf BillFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if bf.VendorName != "" {
		query += fmt.Sprintf(" AND vendor_name ILIKE $%d", argIdx)
		args = append(args, "%"+bf.VendorName+"%")
		argIdx++
	}
	if bf.PaymentType != "" {
		query += fmt.Sprintf(" AND payment_type = $%d", argIdx)
		args = append(args, string(bf.PaymentType))
		argIdx++
	}
	if bf.ProductSKU != "" {
		query += fmt.Sprintf(" AND product_sku = $%d", argIdx)
		args = append(args, bf.ProductSKU)
		argIdx++
	}
	if bf.MinAmount != nil {
		query += fmt.Sprintf(" AND total_amount >= $%d", argIdx)
		args = append(args, *bf.MinAmount)
		argIdx++
	}
	if bf.MaxAmount != nil {
		query += fmt.Sprintf(" AND total_amount <= $%d", argIdx)
		args = append(args, *bf.MaxAmount)
		argIdx++
	}
	if bf.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *bf.Since)
		argIdx++
	}
	if bf.Until != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *bf.Until)
		argIdx++
	}
	return query, args, argIdx
}

func (r *PostgresBillRepository) Filter(ctx context.Context, bf BillFilter) ([]models.Bill, int, error) {
	conditions, args, argIdx := billConditions(bf)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bills WHERE 1=1"+conditions, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + billColumns + ` FROM bills WHERE 1=1` + conditions + " ORDER BY created_at DESC, bill_number"
	if bf.Limit != nil && *bf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *bf.Limit)
		argIdx++
	}
	if bf.Offset != nil && *bf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *bf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bills := []models.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, 0, err
		}
		bills = append(bills, b)
	}
	return bills, total, rows.Err()
}
