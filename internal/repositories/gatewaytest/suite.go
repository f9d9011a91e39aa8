// Package gatewaytest checks that a repositories.Gateway honours the
// contract the entity stores rely on.
package gatewaytest

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prudhvinik1/estatesync/internal/repositories"
)

var seq atomic.Int64

// collectionName returns a name no earlier run has used, so suites can share
// a database.
func collectionName(base string) string {
	return fmt.Sprintf("%s_%d_%d", base, time.Now().UnixNano(), seq.Add(1))
}

// Run executes the compliance suite against gw.
func Run(t *testing.T, gw repositories.Gateway) {
	t.Run("InsertThenList", func(t *testing.T) { testInsertThenList(t, gw) })
	t.Run("ListUnknownCollection", func(t *testing.T) { testListUnknown(t, gw) })
	t.Run("InsertIgnoresCallerID", func(t *testing.T) { testInsertIgnoresCallerID(t, gw) })
	t.Run("Query", func(t *testing.T) { testQuery(t, gw) })
	t.Run("UpdateMerges", func(t *testing.T) { testUpdateMerges(t, gw) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, gw) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, gw) })
	t.Run("CollectionsAreIsolated", func(t *testing.T) { testIsolation(t, gw) })
}

func testInsertThenList(t *testing.T, gw repositories.Gateway) {
	ctx := context.Background()
	coll := collectionName("buildings")

	first, err := gw.Insert(ctx, coll, repositories.Document{"name": "Building A", "totalUnits": 10})
	require.NoError(t, err)
	second, err := gw.Insert(ctx, coll, repositories.Document{"name": "Building B", "totalUnits": 8})
	require.NoError(t, err)
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)

	docs, err := gw.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, first, docs[0][repositories.IDField])
	assert.Equal(t, "Building A", docs[0]["name"])
	assert.EqualValues(t, 10, docs[0]["totalUnits"])
	assert.Equal(t, second, docs[1][repositories.IDField])
	assert.Equal(t, "Building B", docs[1]["name"])
}

func testListUnknown(t *testing.T, gw repositories.Gateway) {
	docs, err := gw.List(context.Background(), collectionName("nothing"))

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func testInsertIgnoresCallerID(t *testing.T, gw repositories.Gateway) {
	ctx := context.Background()
	coll := collectionName("tenants")

	id, err := gw.Insert(ctx, coll, repositories.Document{repositories.IDField: "chosen-by-caller", "name": "John Doe"})
	require.NoError(t, err)
	assert.NotEqual(t, "chosen-by-caller", id)

	docs, err := gw.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0][repositories.IDField])
}

func testQuery(t *testing.T, gw repositories.Gateway) {
	ctx := context.Background()
	coll := collectionName("rentPayments")

	for _, tenant := range []string{"t1", "t2", "t1"} {
		_, err := gw.Insert(ctx, coll, repositories.Document{"tenantId": tenant, "paymentMonth": "2024-01"})
		require.NoError(t, err)
	}

	docs, err := gw.Query(ctx, coll, "tenantId", "t1")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, d := range docs {
		assert.Equal(t, "t1", d["tenantId"])
		assert.NotEmpty(t, d[repositories.IDField])
	}

	docs, err = gw.Query(ctx, coll, "tenantId", "t9")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func testUpdateMerges(t *testing.T, gw repositories.Gateway) {
	ctx := context.Background()
	coll := collectionName("properties")

	id, err := gw.Insert(ctx, coll, repositories.Document{"name": "Family House", "status": "available"})
	require.NoError(t, err)

	require.NoError(t, gw.Update(ctx, coll, id, repositories.Document{"status": "sold"}))

	docs, err := gw.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Family House", docs[0]["name"])
	assert.Equal(t, "sold", docs[0]["status"])
	assert.Equal(t, id, docs[0][repositories.IDField])
}

func testUpdateMissing(t *testing.T, gw repositories.Gateway) {
	ctx := context.Background()
	coll := collectionName("contracts")
	_, err := gw.Insert(ctx, coll, repositories.Document{"title": "Lease"})
	require.NoError(t, err)

	err = gw.Update(ctx, coll, uuid.NewString(), repositories.Document{"title": "Other"})

	require.Error(t, err)
	var remote *repositories.RemoteIOError
	assert.True(t, errors.As(err, &remote), "want *RemoteIOError, got %T", err)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func testDelete(t *testing.T, gw repositories.Gateway) {
	ctx := context.Background()
	coll := collectionName("tasks")

	keep, err := gw.Insert(ctx, coll, repositories.Document{"title": "keep"})
	require.NoError(t, err)
	drop, err := gw.Insert(ctx, coll, repositories.Document{"title": "drop"})
	require.NoError(t, err)

	require.NoError(t, gw.Delete(ctx, coll, drop))
	require.NoError(t, gw.Delete(ctx, coll, drop), "deleting a missing document is not an error")

	docs, err := gw.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, keep, docs[0][repositories.IDField])
}

func testIsolation(t *testing.T, gw repositories.Gateway) {
	ctx := context.Background()
	a, b := collectionName("activities"), collectionName("activities")

	_, err := gw.Insert(ctx, a, repositories.Document{"title": "Payment Received"})
	require.NoError(t, err)

	docs, err := gw.List(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
