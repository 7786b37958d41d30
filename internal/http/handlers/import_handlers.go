package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"go.uber.org/zap"
)

var importColumns = []string{"sku", "name", "stock", "threshold", "price", "category"}

type csvRow struct {
	Line    int
	Product ProductRequest
	Err     error
}

func parseCSV(file io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range importColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", col)
		}
	}

	var rows []csvRow
	for line := 2; ; line++ { // header is row 1
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		field := func(col string) string {
			if i := index[col]; i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		row := csvRow{Line: line, Product: ProductRequest{
			SKU:      field("sku"),
			Name:     field("name"),
			Category: field("category"),
		}}
		if row.Product.Stock, err = strconv.Atoi(field("stock")); err != nil {
			row.Err = errors.New("invalid stock")
		} else if row.Product.LowStockThreshold, err = strconv.Atoi(field("threshold")); err != nil {
			row.Err = errors.New("invalid threshold")
		} else if row.Product.Price, err = strconv.ParseFloat(field("price"), 64); err != nil {
			row.Err = errors.New("invalid price")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func logImportMovement(ctx context.Context, sku string, delta int) {
	if delta == 0 {
		return
	}
	m := models.Movement{ProductSKU: sku, Delta: delta, Reason: models.MovementImport, Reference: "csv"}
	if err := movementRepo.Log(ctx, m); err != nil {
		zap.L().Error("failed to log movement", zap.String("sku", sku), zap.Error(err))
	}
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: sku,name,stock,threshold,price,category
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Param mode query string false "Import mode (skip|update)"
// @Success 200 {object} ImportProductsResult
// @Failure 400 {string} string "Invalid file"
// @Failure 500 {string} string "Internal error"
// @Router /product/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	mode := strings.ToLower(r.URL.Query().Get("mode"))
	if mode != "update" {
		mode = "skip" // default
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	records, err := parseCSV(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	imported := 0
	errorsList := []ProductValidationError{}
	rowError := func(line int, format string, args ...any) {
		errorsList = append(errorsList, ProductValidationError{
			Field:       fmt.Sprintf("row %d", line),
			Description: fmt.Sprintf(format, args...),
		})
	}

	for _, rec := range records {
		if rec.Err != nil {
			rowError(rec.Line, "%v", rec.Err)
			continue
		}
		if errs := validateProduct(&rec.Product); len(errs) > 0 {
			rowError(rec.Line, "%s", errs[0].Description)
			continue
		}
		p := models.Product{
			SKU:               rec.Product.SKU,
			Name:              rec.Product.Name,
			Stock:             rec.Product.Stock,
			LowStockThreshold: rec.Product.LowStockThreshold,
			Price:             rec.Product.Price,
			Category:          rec.Product.Category,
		}

		_, err := productRepo.GetBySKU(ctx, p.SKU)
		if err == nil {
			if mode == "skip" {
				rowError(rec.Line, "product '%s' already exists", p.SKU)
				continue
			}
			_, delta, err := productRepo.Update(ctx, p.SKU, repo.FullProductUpdate(p))
			if err != nil {
				rowError(rec.Line, "failed to update '%s'", p.SKU)
				continue
			}
			logImportMovement(ctx, p.SKU, delta)
			imported++
			continue
		}
		if !errors.Is(err, repo.ErrProductNotFound) {
			rowError(rec.Line, "failed to look up '%s'", p.SKU)
			continue
		}

		if _, err := productRepo.Create(ctx, p); err != nil {
			rowError(rec.Line, "%v", err)
			continue
		}
		logImportMovement(ctx, p.SKU, p.Stock)
		imported++
	}

	err = writeJSON(w, http.StatusOK, ImportProductsResult{
		ImportedProductsCount: imported,
		Errors:                errorsList,
	})

	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
