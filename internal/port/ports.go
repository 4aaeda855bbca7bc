// Package port defines the interfaces between the service layer and
// its infrastructure.
package port

import "context"

// KV persists whole JSON collections by key. Collections are small
// (small-business bookkeeping scale), so every read and write moves
// the entire collection; there are no partial updates.
type KV interface {
	// Get returns the raw collection payload, or (nil, nil) when the
	// key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the collection payload for key.
	Put(ctx context.Context, key string, data []byte) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// EventPublisher emits domain events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event any) error
	Close() error
}

// Cache is a read-through cache for computed values.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Flush()
}
