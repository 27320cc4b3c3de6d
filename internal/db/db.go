package db

import (
	"context"
	"time"
)

// Store is the database facade used by the composition root.
// Consumers declare the narrow sub-interfaces they need.
type Store interface {
	Pinger
	HashStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based key-value operations.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
}
