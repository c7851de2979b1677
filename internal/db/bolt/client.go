// Package bolt implements db.Store on an embedded bbolt file. It exists for
// single-binary deployments where running Redis is not worth it; semantics
// mirror the redis driver closely enough that repositories cannot tell.
package bolt

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/kailas-cloud/actdex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

var (
	bucketPages = []byte("pages") // nested bucket per hash key
	bucketKV    = []byte("kv")    // expiry-prefixed values
)

// Config holds parameters for a bolt store.
type Config struct {
	Path string
}

// Store implements db.Store via bbolt.
type Store struct {
	db *bbolt.DB
}

// NewStore opens (or creates) the bolt database file.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	bdb, err := bbolt.Open(cfg.Path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = bdb.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketPages, bucketKV} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = bdb.Close()
		return nil, err
	}

	return &Store{db: bdb}, nil
}

// Ping checks that the database file is open and readable.
func (s *Store) Ping(_ context.Context) error {
	if err := s.db.View(func(*bbolt.Tx) error { return nil }); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady checks readiness once: a file database is ready as soon as it
// opens, there is nothing to poll for.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("waiting for database: %w", err)
	}
	return nil
}
