//go:build integration

package repo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/db"
	"github.com/rogerio-castellano/inventory-billing/internal/repo"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("inventory"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err, "failed to run PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Connect(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.Migrate(conn))
	// a second run is a no-op
	require.NoError(t, db.Migrate(conn))
	return conn
}

func TestPostgresRepositories(t *testing.T) {
	conn := startPostgres(t)

	runContract(t, func(t *testing.T) stores {
		_, err := conn.ExecContext(context.Background(),
			`TRUNCATE products, bills, movements, users, access_requests`)
		require.NoError(t, err)

		return stores{
			products:  repo.NewPostgresProductRepository(conn),
			bills:     repo.NewPostgresBillRepository(conn),
			movements: repo.NewPostgresMovementRepository(conn),
			users:     repo.NewPostgresUserRepository(conn),
			requests:  repo.NewPostgresAccessRequestRepository(conn),
		}
	})
}
