package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
// Consumers depend on narrow sub-interfaces (ISP); only main sees the whole.
type Store interface {
	Pinger
	HashStore
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// ScanHashesFunc receives one stored hash per call, in store scan order.
// Returning false stops the scan without error.
type ScanHashesFunc func(key string, fields map[string]string) bool

// HashStore provides hash write and scan operations for corpus pages.
type HashStore interface {
	HSetMulti(ctx context.Context, items []HashSetItem) error
	// ScanHashes streams every hash whose key matches pattern. Order is
	// store-native and unspecified; the callback is invoked for every
	// matching key, including hashes that turn out empty.
	ScanHashes(ctx context.Context, pattern string, fn ScanHashesFunc) error
	Del(ctx context.Context, key string) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	IncrBy(ctx context.Context, key string, val int64) error
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}
