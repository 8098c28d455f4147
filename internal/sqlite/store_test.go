package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multi-city-planner/internal/database"
	"multi-city-planner/internal/logger"
	"multi-city-planner/internal/models"
	"multi-city-planner/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", DefaultDBFileName), logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreHealthCheck(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))
}

func TestTripSaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := testutil.SampleTrip("trip-1")

	require.NoError(t, store.Trips().Save(ctx, trip))

	got, err := store.Trips().Get(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, trip, got)
}

func TestTripSaveReplacesExisting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := testutil.SampleTrip("trip-1")
	require.NoError(t, store.Trips().Save(ctx, trip))

	updated := trip.Clone()
	updated.Status = models.TripStatusModified
	updated.Stops = updated.Stops[:1]
	updated.LastModifiedAt = trip.LastModifiedAt.Add(time.Hour)
	require.NoError(t, store.Trips().Save(ctx, updated))

	got, err := store.Trips().Get(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, models.TripStatusModified, got.Status)
	assert.Len(t, got.Stops, 1)

	summaries, total, err := store.Trips().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"Paris"}, summaries[0].Cities)
}

func TestTripGetMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Trips().Get(context.Background(), "nope")

	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.Nil(t, got)
}

func TestTripListOrderAndPaging(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		trip := testutil.SampleTrip(id)
		trip.LastModifiedAt = trip.LastModifiedAt.Add(time.Duration(i) * time.Hour)
		require.NoError(t, store.Trips().Save(ctx, trip))
	}

	summaries, total, err := store.Trips().List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, summaries, 2)
	assert.Equal(t, "c", summaries[0].ID)
	assert.Equal(t, "b", summaries[1].ID)
	assert.Equal(t, []string{"Paris", "Rome"}, summaries[0].Cities)
	assert.True(t, summaries[0].StartDate.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))

	summaries, _, err = store.Trips().List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "a", summaries[0].ID)
}

func TestTripListEmpty(t *testing.T) {
	store := newTestStore(t)

	summaries, total, err := store.Trips().List(context.Background(), 10, 0)

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}

func TestTripDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Trips().Save(ctx, testutil.SampleTrip("trip-1")))

	require.NoError(t, store.Trips().Delete(ctx, "trip-1"))
	assert.ErrorIs(t, store.Trips().Delete(ctx, "trip-1"), database.ErrNotFound)

	_, err := store.Trips().Get(ctx, "trip-1")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestStoreReopenKeepsTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDBFileName)
	ctx := context.Background()

	store, err := New(path, logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Trips().Save(ctx, testutil.SampleTrip("trip-1")))
	require.NoError(t, store.Close())

	reopened, err := New(path, logger.NewNop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Trips().Get(ctx, "trip-1")
	require.NoError(t, err)
	assert.Equal(t, "trip-1", got.ID)
}

func TestStoreRejectsUnknownSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultDBFileName)

	store, err := New(path, logger.NewNop())
	require.NoError(t, err)
	_, err = store.db.Exec("UPDATE schema_version SET version = ?", schemaVersion+1)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = New(path, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema version 2")
}
