package repo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProductsCollection       = "products"
	BillsCollection          = "bills"
	MovementsCollection      = "movements"
	UsersCollection          = "users"
	AccessRequestsCollection = "access_requests"
)

// withoutID keeps the driver-assigned _id out of decoded documents.
var withoutID = bson.M{"_id": 0}

type MongoProductRepository struct {
	coll *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{coll: db.Collection(ProductsCollection)}
}

func (r *MongoProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products, _, err := r.Filter(ctx, ProductFilter{})
	return products, err
}

func (r *MongoProductRepository) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var p models.Product
	err := r.coll.FindOne(ctx, bson.M{"sku": sku}, options.FindOne().SetProjection(withoutID)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

// Update sets only the present keys. The document is read back as it was
// before the write so the stock change comes from the same atomic operation.
func (r *MongoProductRepository) Update(ctx context.Context, sku string, u ProductUpdate) (models.Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	set := bson.M{"updatedAt": now}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	if u.LowStockThreshold != nil {
		set["lowStockThreshold"] = *u.LowStockThreshold
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before).SetProjection(withoutID)

	var p models.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"sku": sku}, bson.M{"$set": set}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, 0, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, 0, err
	}
	before := p.Stock
	u.apply(&p)
	p.UpdatedAt = now
	return p, p.Stock - before, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, sku string) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var deleted models.Product
	err := r.coll.FindOneAndDelete(ctx, bson.M{"sku": sku}, options.FindOneAndDelete().SetProjection(withoutID)).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrProductNotFound
	}
	return deleted, err
}

func productQuery(pf ProductFilter) bson.M {
	q := bson.M{}
	if pf.Name != "" {
		q["name"] = bson.M{"$regex": regexp.QuoteMeta(pf.Name), "$options": "i"}
	}
	if pf.Category != "" {
		q["category"] = bson.M{"$regex": "^" + regexp.QuoteMeta(pf.Category) + "$", "$options": "i"}
	}
	if pf.LowStock {
		q["$expr"] = bson.M{"$lt": bson.A{"$stock", "$lowStockThreshold"}}
	}
	price := bson.M{}
	if pf.MinPrice != nil {
		price["$gte"] = *pf.MinPrice
	}
	if pf.MaxPrice != nil {
		price["$lte"] = *pf.MaxPrice
	}
	if len(price) > 0 {
		q["price"] = price
	}
	stock := bson.M{}
	if pf.MinStock != nil {
		stock["$gte"] = *pf.MinStock
	}
	if pf.MaxStock != nil {
		stock["$lte"] = *pf.MaxStock
	}
	if len(stock) > 0 {
		q["stock"] = stock
	}
	return q
}

func (r *MongoProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := productQuery(pf)
	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetProjection(withoutID).
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "sku", Value: 1}})
	if pf.Offset != nil && *pf.Offset > 0 {
		opts.SetSkip(int64(*pf.Offset))
	}
	if pf.Limit != nil && *pf.Limit > 0 {
		opts.SetLimit(int64(*pf.Limit))
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

func (r *MongoProductRepository) AdjustStock(ctx context.Context, sku string, delta int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"sku": sku}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(withoutID)

	var p models.Product
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		current, getErr := r.GetBySKU(ctx, sku)
		if getErr != nil {
			return models.Product{}, getErr
		}
		return current, ErrInvalidQuantityChange
	}
	return p, err
}
