// internal/pkg/maps/loader.go
package maps

import (
	"context"
	"fmt"
	"sync"
)

// InitFunc performs the one-time provider initialization, e.g. verifying
// the API key against the maps service.
type InitFunc func(ctx context.Context) error

// Loader coordinates one-time initialization of the external maps
// provider. Many callers can request it concurrently; only one
// initialization runs at a time, everyone waits on the same attempt,
// and a failed attempt can be retried by the next caller.
type Loader struct {
	init InitFunc

	mu      sync.Mutex
	ready   bool
	pending chan struct{}
	lastErr error
}

// NewLoader creates a loader around the given initialization function
func NewLoader(init InitFunc) *Loader {
	return &Loader{init: init}
}

// Ready blocks until the provider is initialized. The first caller
// triggers initialization; concurrent callers wait on the in-flight
// attempt. After a failure the next caller starts a fresh attempt.
func (l *Loader) Ready(ctx context.Context) error {
	for {
		l.mu.Lock()
		if l.ready {
			l.mu.Unlock()
			return nil
		}

		if l.pending != nil {
			// Someone else is initializing; wait for them
			wait := l.pending
			l.mu.Unlock()

			select {
			case <-wait:
			case <-ctx.Done():
				return ctx.Err()
			}

			l.mu.Lock()
			if l.ready {
				l.mu.Unlock()
				return nil
			}
			err := l.lastErr
			l.mu.Unlock()
			return fmt.Errorf("maps initialization failed: %w", err)
		}

		// We run the attempt
		done := make(chan struct{})
		l.pending = done
		l.mu.Unlock()

		err := l.init(ctx)

		l.mu.Lock()
		l.pending = nil
		if err == nil {
			l.ready = true
		}
		l.lastErr = err
		l.mu.Unlock()
		close(done)

		if err != nil {
			return fmt.Errorf("maps initialization failed: %w", err)
		}
		return nil
	}
}

// IsReady reports whether initialization has completed successfully
// without triggering it
func (l *Loader) IsReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}
