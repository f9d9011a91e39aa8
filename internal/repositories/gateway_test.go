package repositories_test

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/prudhvinik1/estatesync/internal/database"
	"github.com/prudhvinik1/estatesync/internal/repositories"
	"github.com/prudhvinik1/estatesync/internal/repositories/gatewaytest"
)

func TestMemoryGateway(t *testing.T) {
	gatewaytest.Run(t, repositories.NewMemoryGateway())
}

func TestSQLiteGateway(t *testing.T) {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gatewaytest.Run(t, repositories.NewSQLiteGateway(db))
}

func TestInstrumentedGateway(t *testing.T) {
	gatewaytest.Run(t, repositories.NewInstrumentedGateway(repositories.NewMemoryGateway()))
}

func TestPostgresGateway(t *testing.T) {
	url := os.Getenv("ESTATESYNC_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("ESTATESYNC_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, url, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, database.EnsureDocumentSchema(ctx, pool))

	gatewaytest.Run(t, repositories.NewPostgresGateway(pool))
}

func TestMongoGateway(t *testing.T) {
	uri := os.Getenv("ESTATESYNC_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("ESTATESYNC_TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	client, err := database.NewMongoClient(ctx, uri, zerolog.Nop())
	require.NoError(t, err)
	db := client.Database("estatesync_test")
	t.Cleanup(func() {
		db.Drop(context.Background())
		client.Disconnect(context.Background())
	})

	gatewaytest.Run(t, repositories.NewMongoGateway(db))
}
