package vehicle

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tireshop-backend/internal/infrastructure/cache"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestNotifyChangedInvalidatesAndBroadcasts(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	bus := NewMemoryBus()
	svc := &Service{cache: store, bus: bus, logger: testLogger()}

	userID := uint(7)
	stale := VehicleListResponse{Vehicles: []Vehicle{{ID: 3, UserID: userID}}, Count: 1}
	require.NoError(t, store.Set(ctx, cache.VehiclesScope(userID), stale, time.Minute))

	ch, cancel, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	svc.notifyChanged(ctx, userID, "removed", 3)

	var got VehicleListResponse
	found, err := store.Get(ctx, cache.VehiclesScope(userID), &got)
	require.NoError(t, err)
	assert.False(t, found, "cached vehicle list must be stale after a mutation")

	select {
	case event := <-ch:
		assert.Equal(t, Event{UserID: userID, Action: "removed", VehicleID: 3}, event)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for vehicle event")
	}
}

func TestNotifyChangedLeavesOtherUsersCached(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := &Service{cache: store, bus: NewMemoryBus(), logger: testLogger()}

	require.NoError(t, store.Set(ctx, cache.VehiclesScope(1), VehicleListResponse{}, time.Minute))
	require.NoError(t, store.Set(ctx, cache.VehiclesScope(2), VehicleListResponse{}, time.Minute))

	svc.notifyChanged(ctx, 1, "added", 10)

	var got VehicleListResponse
	found, err := store.Get(ctx, cache.VehiclesScope(2), &got)
	require.NoError(t, err)
	assert.True(t, found, "another user's cached list must survive")
}
