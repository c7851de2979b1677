package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/actdex/internal/db"
)

// scanPageSize is the COUNT hint for SCAN; hashes of one SCAN page are
// fetched in a single DoMulti round-trip.
const scanPageSize = 100

// HSetMulti stores multiple hashes in a single DoMulti round-trip.
func (s *Store) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if len(items) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(items))
	for i, item := range items {
		cmd := s.b().Hset().Key(item.Key).FieldValue()
		for k, v := range item.Fields {
			cmd = cmd.FieldValue(k, v)
		}
		cmds[i] = cmd.Build()
	}

	results := s.client.DoMulti(ctx, cmds...)
	for i, res := range results {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpHSet, Err: fmt.Errorf("key %s: %w", items[i].Key, err)}
		}
	}
	return nil
}

// ScanHashes streams hashes matching a key pattern in SCAN order. Keys of
// each SCAN page are HGETALLed together; fn returning false stops the scan.
func (s *Store) ScanHashes(ctx context.Context, pattern string, fn db.ScanHashesFunc) error {
	var cursor uint64

	for {
		cmd := s.b().Scan().Cursor(cursor).Match(pattern).Count(scanPageSize).Build()
		res, err := s.do(ctx, cmd).AsScanEntry()
		if err != nil {
			return &db.Error{Op: db.OpScan, Err: err}
		}

		if len(res.Elements) > 0 {
			cmds := make([]rueidis.Completed, len(res.Elements))
			for i, key := range res.Elements {
				cmds[i] = s.b().Hgetall().Key(key).Build()
			}
			results := s.client.DoMulti(ctx, cmds...)
			for i, r := range results {
				fields, err := r.AsStrMap()
				if err != nil {
					return &db.Error{Op: db.OpHGetAll, Err: fmt.Errorf("key %s: %w", res.Elements[i], err)}
				}
				if !fn(res.Elements[i], fields) {
					return nil
				}
			}
		}

		cursor = res.Cursor
		if cursor == 0 {
			return nil
		}
	}
}

// Del deletes a key.
func (s *Store) Del(ctx context.Context, key string) error {
	cmd := s.b().Del().Key(key).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
