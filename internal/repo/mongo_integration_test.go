//go:build integration

package repo_test

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/inventory-billing/internal/db"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func startMongo(t *testing.T) *mongo.Database {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "failed to run MongoDB container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate MongoDB container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := db.ConnectMongo(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	database := client.Database("inventory_test")
	require.NoError(t, db.EnsureMongoIndexes(ctx, database))
	return database
}

func TestMongoRepositories(t *testing.T) {
	database := startMongo(t)

	runContract(t, func(t *testing.T) stores {
		for _, coll := range []string{
			repo.ProductsCollection,
			repo.BillsCollection,
			repo.MovementsCollection,
			repo.UsersCollection,
			repo.AccessRequestsCollection,
		} {
			_, err := database.Collection(coll).DeleteMany(context.Background(), bson.M{})
			require.NoError(t, err)
		}

		return stores{
			products:  repo.NewMongoProductRepository(database),
			bills:     repo.NewMongoBillRepository(database),
			movements: repo.NewMongoMovementRepository(database),
			users:     repo.NewMongoUserRepository(database),
			requests:  repo.NewMongoAccessRequestRepository(database),
		}
	})
}
