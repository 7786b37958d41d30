package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

// ConnectMongo connects with command tracing enabled and pings the server.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}
	return client, nil
}

// uniqueKeys lists the unique key of each collection.
var uniqueKeys = map[string]string{
	repo.ProductsCollection:       "sku",
	repo.BillsCollection:          "billNumber",
	repo.UsersCollection:          "email",
	repo.AccessRequestsCollection: "email",
	repo.MovementsCollection:      "id",
}

// EnsureMongoIndexes creates the unique indexes the repositories rely on
// for duplicate detection.
func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	for coll, key := range uniqueKeys {
		model := mongo.IndexModel{
			Keys:    bson.D{{Key: key, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := database.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s.%s: %w", coll, key, err)
		}
	}

	movementsBySKU := mongo.IndexModel{Keys: bson.D{{Key: "productSku", Value: 1}, {Key: "createdAt", Value: -1}}}
	if _, err := database.Collection(repo.MovementsCollection).Indexes().CreateOne(ctx, movementsBySKU); err != nil {
		return fmt.Errorf("failed to create movements index: %w", err)
	}
	return nil
}
