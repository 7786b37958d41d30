package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoMovementRepository struct {
	coll *mongo.Collection
}

func NewMongoMovementRepository(db *mongo.Database) *MongoMovementRepository {
	return &MongoMovementRepository{coll: db.Collection(MovementsCollection)}
}

func (r *MongoMovementRepository) Log(ctx context.Context, m models.Movement) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

func (r *MongoMovementRepository) GetBySKU(ctx context.Context, sku string, mf MovementFilter) ([]models.Movement, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	q := bson.M{"productSku": sku}
	created := bson.M{}
	if mf.Since != nil {
		created["$gte"] = *mf.Since
	}
	if mf.Until != nil {
		created["$lte"] = *mf.Until
	}
	if len(created) > 0 {
		q["createdAt"] = created
	}

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}
	if mf.Limit != nil && *mf.Limit == 0 {
		return []models.Movement{}, int(total), nil
	}

	limit := defaultLimit
	if mf.Limit != nil && *mf.Limit > 0 {
		limit = min(*mf.Limit, defaultLimit)
	}
	opts := options.Find().
		SetProjection(withoutID).
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	if mf.Offset != nil && *mf.Offset > 0 {
		opts.SetSkip(int64(*mf.Offset))
	}

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, err
	}
	movements := []models.Movement{}
	if err := cur.All(ctx, &movements); err != nil {
		return nil, 0, err
	}
	return movements, int(total), nil
}
