// Package db defines the key-value store contract behind the embedding
// cache, plus the shared error surface.
package db

import (
	"context"
	"time"
)

// Store is the connectivity and key-value contract of the cache
// backend. Get reports missing keys as ErrKeyNotFound.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}
