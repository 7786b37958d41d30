package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAccessRequestRepository struct {
	coll *mongo.Collection
}

func NewMongoAccessRequestRepository(db *mongo.Database) *MongoAccessRequestRepository {
	return &MongoAccessRequestRepository{coll: db.Collection(AccessRequestsCollection)}
}

func (r *MongoAccessRequestRepository) Create(ctx context.Context, req models.AccessRequest) (models.AccessRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	now := time.Now().UTC()
	req.ID = uuid.NewString()
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.AccessRequest{}, ErrDuplicatedValueUnique
		}
		return models.AccessRequest{}, err
	}
	return req, nil
}

func (r *MongoAccessRequestRepository) GetAll(ctx context.Context) ([]models.AccessRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetProjection(withoutID).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	requests := []models.AccessRequest{}
	if err := cur.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *MongoAccessRequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) (models.AccessRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(withoutID)
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}}

	var a models.AccessRequest
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AccessRequest{}, ErrRequestNotFound
	}
	return a, err
}
