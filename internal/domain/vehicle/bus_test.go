package vehicle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	ch1, cancel1, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel1()

	ch2, cancel2, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel2()

	event := Event{UserID: 1, Action: "added", VehicleID: 42}
	require.NoError(t, bus.Publish(ctx, event))

	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, event, got)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestMemoryBusCancelStopsDelivery(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	ch, cancel, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	cancel()

	_, open := <-ch
	assert.False(t, open, "channel should be closed after cancel")

	// Publishing after cancel must not panic
	require.NoError(t, bus.Publish(ctx, Event{UserID: 1, Action: "removed", VehicleID: 7}))
}

func TestMemoryBusCancelIsIdempotent(t *testing.T) {
	bus := NewMemoryBus()

	_, cancel, err := bus.Subscribe(context.Background())
	require.NoError(t, err)

	cancel()
	cancel()
}

func TestMemoryBusSlowSubscriberDoesNotBlock(t *testing.T) {
	bus := NewMemoryBus()
	ctx := context.Background()

	_, cancel, err := bus.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	// Fill past the subscriber buffer; Publish must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = bus.Publish(ctx, Event{UserID: 1, Action: "added", VehicleID: uint(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on slow subscriber")
	}
}

func TestVehicleDisplayName(t *testing.T) {
	v := Vehicle{Year: 2022, Make: "Subaru", Model: "Outback", Trim: "Wilderness"}
	assert.Equal(t, "2022 Subaru Outback Wilderness", v.DisplayName())

	bare := Vehicle{Make: "Honda", Model: "Civic"}
	assert.Equal(t, "Honda Civic", bare.DisplayName())
}
