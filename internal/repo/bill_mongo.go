package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoBillRepository relies on a conditional $inc for the stock check. A
// failed bill insert is compensated by giving the quantity back.
type MongoBillRepository struct {
	bills    *mongo.Collection
	products *mongo.Collection
}

func NewMongoBillRepository(db *mongo.Database) *MongoBillRepository {
	return &MongoBillRepository{
		bills:    db.Collection(BillsCollection),
		products: db.Collection(ProductsCollection),
	}
}

func (r *MongoBillRepository) incStock(ctx context.Context, filter bson.M, delta int) (models.Product, error) {
	update := bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(withoutID)

	var p models.Product
	err := r.products.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	return p, err
}

func (r *MongoBillRepository) CreateWithStock(ctx context.Context, bill models.Bill) (models.Bill, models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"sku": bill.ProductSKU, "stock": bson.M{"$gte": bill.Quantity}}
	p, err := r.incStock(ctx, filter, -bill.Quantity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		var current models.Product
		getErr := r.products.FindOne(ctx, bson.M{"sku": bill.ProductSKU}, options.FindOne().SetProjection(withoutID)).Decode(&current)
		if errors.Is(getErr, mongo.ErrNoDocuments) {
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

	if _, insertErr := r.bills.InsertOne(ctx, bill); insertErr != nil {
		if _, err := r.incStock(context.WithoutCancel(ctx), bson.M{"sku": bill.ProductSKU}, bill.Quantity); err != nil {
			zap.L().Error("failed to restore stock after bill insert failure",
				zap.String("sku", bill.ProductSKU), zap.Int("quantity", bill.Quantity), zap.Error(err))
		}
		if mongo.IsDuplicateKeyError(insertErr) {
			return models.Bill{}, models.Product{}, ErrDuplicateBill
		}
		return models.Bill{}, models.Product{}, fmt.Errorf("failed to insert bill: %w", insertErr)
	}
	return bill, p, nil
}

func (r *MongoBillRepository) DeleteAndRestock(ctx context.Context, billNumber string) (models.Bill, *models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var bill models.Bill
	err := r.bills.FindOneAndDelete(ctx, bson.M{"billNumber": billNumber}, options.FindOneAndDelete().SetProjection(withoutID)).Decode(&bill)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Bill{}, nil, ErrBillNotFound
	}
	if err != nil {
		return models.Bill{}, nil, err
	}

	p, err := r.incStock(ctx, bson.M{"sku": bill.ProductSKU}, bill.Quantity)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bill, nil, nil
	}
	if err != nil {
		return bill, nil, fmt.Errorf("bill %s deleted but stock not restored: %w", billNumber, err)
	}
	return bill, &p, nil
}

func (r *MongoBillRepository) MarkPaid(ctx context.Context, billNumber string) (models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(withoutID)
	var b models.Bill
	err := r.bills.FindOneAndUpdate(ctx,
		bson.M{"billNumber": billNumber},
		bson.M{"$set": bson.M{"paymentType": models.PaymentPaid}},
		opts,
	).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Bill{}, ErrBillNotFound
	}
	return b, err
}

func (r *MongoBillRepository) GetByNumber(ctx context.Context, billNumber string) (models.Bill, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var b models.Bill
	err := r.bills.FindOne(ctx, bson.M{"billNumber": billNumber}, options.FindOne().SetProjection(withoutID)).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Bill{}, ErrBillNotFound
	}
	return b, err
}

func billQuery(bf BillFilter) bson.M {
	q := bson.M{}
	if bf.VendorName != "" {
		q["vendorName"] = bson.M{"$regex": regexp.QuoteMeta(bf.VendorName), "$options": "i"}
	}
	if bf.PaymentType != "" {
		q["paymentType"] = bf.PaymentType
	}
	if bf.ProductSKU != "" {
		q["productSku"] = bf.ProductSKU
	}
	amount := bson.M{}
	if bf.MinAmount != nil {
		amount["$gte"] = *bf.MinAmount
	}
	if bf.MaxAmount != nil {
		amount["$lte"] = *bf.MaxAmount
	}
	if len(amount) > 0 {
		q["totalAmount"] = amount
	}
	created := bson.M{}
	if bf.Since != nil {
		created["$gte"] = *bf.Since
	}
	if bf.Until != nil {
		created["$lte"] = *bf.Until
	}
	if len(created) > 0 {
		q["createdAt"] = created
	}
	return q
}

func (r *MongoBillRepository) Filter(ctx context.Context, bf BillFilter) ([]models.Bill, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := billQuery(bf)
	total, err := r.bills.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetProjection(withoutID).
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "billNumber", Value: 1}})
	if bf.Offset != nil && *bf.Offset > 0 {
		opts.SetSkip(int64(*bf.Offset))
	}
	if bf.Limit != nil && *bf.Limit > 0 {
		opts.SetLimit(int64(*bf.Limit))
	}

	cur, err := r.bills.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	bills := []models.Bill{}
	if err := cur.All(ctx, &bills); err != nil {
		return nil, 0, err
	}
	return bills, int(total), nil
}
