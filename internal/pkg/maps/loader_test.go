package maps

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadyInitializesOnce(t *testing.T) {
	var calls int32
	loader := NewLoader(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	ctx := context.Background()
	require.NoError(t, loader.Ready(ctx))
	require.NoError(t, loader.Ready(ctx))
	require.NoError(t, loader.Ready(ctx))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, loader.IsReady())
}

func TestReadyConcurrentCallersShareOneAttempt(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	loader := NewLoader(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	})

	ctx := context.Background()
	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = loader.Ready(ctx)
		}(i)
	}

	<-started
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "only one initialization should run")
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestReadyRetriesAfterFailure(t *testing.T) {
	var calls int32
	loader := NewLoader(func(ctx context.Context) error {
		if atomic.AddInt32(&calls, 1) == 1 {
			return errors.New("quota exceeded")
		}
		return nil
	})

	ctx := context.Background()
	err := loader.Ready(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.False(t, loader.IsReady())

	// Next caller gets a fresh attempt
	require.NoError(t, loader.Ready(ctx))
	assert.True(t, loader.IsReady())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestReadyWaiterSeesFailure(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	loader := NewLoader(func(ctx context.Context) error {
		close(started)
		<-release
		return errors.New("bad api key")
	})

	ctx := context.Background()
	firstDone := make(chan error, 1)
	go func() { firstDone <- loader.Ready(ctx) }()

	<-started
	waiterDone := make(chan error, 1)
	go func() { waiterDone <- loader.Ready(ctx) }()

	// Give the waiter a moment to park on the in-flight attempt
	time.Sleep(20 * time.Millisecond)
	close(release)

	for _, ch := range []chan error{firstDone, waiterDone} {
		select {
		case err := <-ch:
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad api key")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for Ready to return")
		}
	}
}

func TestReadyHonorsContextCancellation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	loader := NewLoader(func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})

	go func() { _ = loader.Ready(context.Background()) }()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	waiterDone := make(chan error, 1)
	go func() { waiterDone <- loader.Ready(ctx) }()

	cancel()
	select {
	case err := <-waiterDone:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("waiter did not observe cancellation")
	}
}
