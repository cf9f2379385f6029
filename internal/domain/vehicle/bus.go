// internal/domain/vehicle/bus.go
package vehicle

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// vehiclesChannel is the pub/sub channel vehicle changes are broadcast on
const vehiclesChannel = "vehicles:updated"

// Event describes a change to a user's saved vehicles
type Event struct {
	UserID    uint   `json:"user_id"`
	Action    string `json:"action"` // "added" or "removed"
	VehicleID uint   `json:"vehicle_id"`
}

// Bus broadcasts vehicle change events to interested subscribers
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context) (<-chan Event, func(), error)
}

// RedisBus broadcasts events over a Redis pub/sub channel so every API
// instance sees changes made through any of them
type RedisBus struct {
	client *redis.Client
}

// NewRedisBus creates a Redis-backed event bus
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

// Publish sends an event to all subscribers
func (b *RedisBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle event: %w", err)
	}
	if err := b.client.Publish(ctx, vehiclesChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish vehicle event: %w", err)
	}
	return nil
}

// Subscribe returns a channel of events and a cancel function that stops
// the subscription and closes the channel
func (b *RedisBus) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	sub := b.client.Subscribe(ctx, vehiclesChannel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to subscribe to vehicle events: %w", err)
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		for msg := range sub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() { _ = sub.Close() }
	return events, cancel, nil
}

// MemoryBus is an in-process bus for tests and single-instance deployments
type MemoryBus struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

// NewMemoryBus creates an in-memory event bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]chan Event)}
}

// Publish delivers an event to every active subscriber
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Slow subscribers drop events rather than block publishers
		}
	}
	return nil
}

// Subscribe registers a new subscriber
func (b *MemoryBus) Subscribe(ctx context.Context) (<-chan Event, func(), error) {
	ch := make(chan Event, 16)
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel, nil
}
