package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-billing/internal/alerts"
	"github.com/rogerio-castellano/inventory-billing/internal/events"
	"github.com/rogerio-castellano/inventory-billing/internal/metrics"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/rogerio-castellano/inventory-billing/internal/billing")

type CreateBillInput struct {
	BillNumber  string
	ProductSKU  string
	Quantity    int
	TotalAmount float64
	VendorName  string
	PaymentType models.PaymentType
}

// BillResult is a bill together with the product state after the stock change.
type BillResult struct {
	Bill    models.Bill     `json:"bill"`
	Product *models.Product `json:"updatedProduct"`
}

// Service keeps bills and product stock consistent.
type Service struct {
	products  repo.ProductRepository
	bills     repo.BillRepository
	movements repo.MovementRepository
	notifier  alerts.Notifier
	publisher events.Publisher
	now       func() time.Time
}

func NewService(products repo.ProductRepository, bills repo.BillRepository, movements repo.MovementRepository,
	notifier alerts.Notifier, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		products:  products,
		bills:     bills,
		movements: movements,
		notifier:  notifier,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func NewBillNumber() string {
	return "BILL-" + uuid.NewString()
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func validate(in CreateBillInput) error {
	if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if strings.TrimSpace(in.ProductSKU) == "" {
		return fmt.Errorf("%w: productSku", ErrMissingField)
	}
	if strings.TrimSpace(in.VendorName) == "" {
		return fmt.Errorf("%w: vendorName", ErrMissingField)
	}
	if !in.PaymentType.Valid() {
		return ErrInvalidPaymentType
	}
	if in.TotalAmount < 0 {
		return fmt.Errorf("%w: totalAmount cannot be negative", ErrMissingField)
	}
	return nil
}

// Create records a bill and decrements the product stock by its quantity.
// Nothing is written when the stock is insufficient.
func (s *Service) Create(ctx context.Context, in CreateBillInput) (res BillResult, err error) {
	ctx, span := tracer.Start(ctx, "billing.Create", trace.WithAttributes(
		attribute.String("product.sku", in.ProductSKU),
		attribute.Int("bill.quantity", in.Quantity),
	))
	defer func() { endSpan(span, err) }()

	if err := validate(in); err != nil {
		metrics.BillRejections.WithLabelValues("validation").Inc()
		return BillResult{}, err
	}

	product, err := s.products.GetBySKU(ctx, in.ProductSKU)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			metrics.BillRejections.WithLabelValues("product_not_found").Inc()
		}
		return BillResult{}, err
	}
	if product.Stock < in.Quantity {
		metrics.BillRejections.WithLabelValues("insufficient_stock").Inc()
		return BillResult{}, &InsufficientStockError{SKU: product.SKU, Requested: in.Quantity, Available: product.Stock}
	}

	bill := models.Bill{
		BillNumber:  strings.TrimSpace(in.BillNumber),
		ProductSKU:  product.SKU,
		Quantity:    in.Quantity,
		TotalAmount: in.TotalAmount,
		VendorName:  strings.TrimSpace(in.VendorName),
		PaymentType: in.PaymentType,
		CreatedAt:   s.now(),
	}
	if bill.BillNumber == "" {
		bill.BillNumber = NewBillNumber()
	}
	if bill.TotalAmount == 0 {
		bill.TotalAmount = product.Price * float64(in.Quantity)
	}

	created, updated, err := s.bills.CreateWithStock(ctx, bill)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrInsufficientStock):
			metrics.BillRejections.WithLabelValues("insufficient_stock").Inc()
			return BillResult{}, &InsufficientStockError{SKU: product.SKU, Requested: in.Quantity, Available: updated.Stock}
		case errors.Is(err, repo.ErrDuplicateBill):
			metrics.BillRejections.WithLabelValues("duplicate").Inc()
			return BillResult{}, err
		case errors.Is(err, repo.ErrProductNotFound):
			return BillResult{}, err
		}
		return BillResult{}, fmt.Errorf("s.bills.CreateWithStock -> %w", err)
	}
	span.SetAttributes(attribute.String("bill.number", created.BillNumber))

	s.logMovement(ctx, created.ProductSKU, -created.Quantity, models.MovementBill, created.BillNumber)
	s.checkLowStock(ctx, updated)
	s.publish(ctx, events.NewBillEvent(events.BillCreated, created))
	metrics.BillsCreated.WithLabelValues(string(created.PaymentType)).Inc()

	return BillResult{Bill: created, Product: &updated}, nil
}

// Delete removes a bill and gives its quantity back to the product.
func (s *Service) Delete(ctx context.Context, billNumber string) (res BillResult, err error) {
	ctx, span := tracer.Start(ctx, "billing.Delete", trace.WithAttributes(attribute.String("bill.number", billNumber)))
	defer func() { endSpan(span, err) }()

	bill, product, err := s.bills.DeleteAndRestock(ctx, billNumber)
	if err != nil {
		return BillResult{}, err
	}
	if product != nil {
		s.logMovement(ctx, bill.ProductSKU, bill.Quantity, models.MovementBillDelete, bill.BillNumber)
	} else {
		zap.L().Warn("deleted bill references a missing product",
			zap.String("bill", bill.BillNumber), zap.String("sku", bill.ProductSKU))
	}
	s.publish(ctx, events.NewBillEvent(events.BillDeleted, bill))
	metrics.BillsDeleted.Inc()

	return BillResult{Bill: bill, Product: product}, nil
}

// MarkPaid sets the payment type to paid. Marking a paid bill again is a
// no-op that still succeeds.
func (s *Service) MarkPaid(ctx context.Context, billNumber string) (bill models.Bill, err error) {
	ctx, span := tracer.Start(ctx, "billing.MarkPaid", trace.WithAttributes(attribute.String("bill.number", billNumber)))
	defer func() { endSpan(span, err) }()

	bill, err = s.bills.MarkPaid(ctx, billNumber)
	if err != nil {
		return models.Bill{}, err
	}
	s.publish(ctx, events.NewBillEvent(events.BillPaid, bill))
	metrics.BillsPaid.Inc()
	return bill, nil
}

func (s *Service) Get(ctx context.Context, billNumber string) (models.Bill, error) {
	return s.bills.GetByNumber(ctx, billNumber)
}

func (s *Service) List(ctx context.Context, bf repo.BillFilter) ([]models.Bill, int, error) {
	return s.bills.Filter(ctx, bf)
}

// AdjustStock applies a manual stock correction and logs it.
func (s *Service) AdjustStock(ctx context.Context, sku string, delta int) (p models.Product, err error) {
	ctx, span := tracer.Start(ctx, "billing.AdjustStock", trace.WithAttributes(
		attribute.String("product.sku", sku),
		attribute.Int("delta", delta),
	))
	defer func() { endSpan(span, err) }()

	p, err = s.products.AdjustStock(ctx, sku, delta)
	if err != nil {
		return p, err
	}
	s.logMovement(ctx, sku, delta, models.MovementAdjust, "")
	s.checkLowStock(ctx, p)
	return p, nil
}

func (s *Service) logMovement(ctx context.Context, sku string, delta int, reason models.MovementReason, ref string) {
	if s.movements == nil || delta == 0 {
		return
	}
	m := models.Movement{ProductSKU: sku, Delta: delta, Reason: reason, Reference: ref}
	if err := s.movements.Log(ctx, m); err != nil {
		zap.L().Error("failed to log movement", zap.String("sku", sku), zap.Int("delta", delta), zap.Error(err))
	}
}

func (s *Service) checkLowStock(ctx context.Context, p models.Product) {
	if !p.IsLowStock() {
		return
	}
	zap.L().Warn("⚠️ product is below threshold",
		zap.String("sku", p.SKU), zap.String("name", p.Name),
		zap.Int("stock", p.Stock), zap.Int("threshold", p.LowStockThreshold))
	metrics.LowStockAlerts.Inc()
	if s.notifier == nil {
		return
	}
	if err := s.notifier.LowStock(ctx, p); err != nil {
		zap.L().Error("failed to record low stock alert", zap.String("sku", p.SKU), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, ev events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		zap.L().Error("failed to publish event", zap.String("subject", ev.Subject()), zap.Error(err))
	}
}
