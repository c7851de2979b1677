package corpus

import (
	"context"

	"github.com/kailas-cloud/actdex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn  func(ctx context.Context, items []db.HashSetItem) error
	scanHashesFn func(ctx context.Context, pattern string, fn db.ScanHashesFunc) error
	delFn        func(ctx context.Context, key string) error
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) ScanHashes(ctx context.Context, pattern string, fn db.ScanHashesFunc) error {
	if m.scanHashesFn != nil {
		return m.scanHashesFn(ctx, pattern, fn)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}
