package bolt

import (
	"context"
	"path"

	"go.etcd.io/bbolt"

	"github.com/kailas-cloud/actdex/internal/db"
)

// HSetMulti stores multiple hashes in one write transaction. Fields merge
// into existing hashes, matching HSET.
func (s *Store) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	if len(items) == 0 {
		return nil
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		pages := tx.Bucket(bucketPages)
		for _, item := range items {
			h, err := pages.CreateBucketIfNotExists([]byte(item.Key))
			if err != nil {
				return err
			}
			for k, v := range item.Fields {
				if err := h.Put([]byte(k), []byte(v)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// ScanHashes streams hashes whose key matches pattern, in bolt key order.
// fn returning false stops the scan; a cancelled context aborts it.
func (s *Store) ScanHashes(ctx context.Context, pattern string, fn db.ScanHashesFunc) error {
	err := s.db.View(func(tx *bbolt.Tx) error {
		pages := tx.Bucket(bucketPages)
		c := pages.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if v != nil {
				continue // not a nested bucket
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			ok, err := path.Match(pattern, string(k))
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			fields := make(map[string]string)
			h := pages.Bucket(k)
			if err := h.ForEach(func(fk, fv []byte) error {
				fields[string(fk)] = string(fv)
				return nil
			}); err != nil {
				return err
			}

			if !fn(string(k), fields) {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return &db.Error{Op: db.OpScan, Err: err}
	}
	return nil
}

// Del deletes a key from both the page and kv namespaces. Deleting a missing
// key is not an error, matching DEL.
func (s *Store) Del(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketPages).DeleteBucket([]byte(key)); err != nil && err != bbolt.ErrBucketNotFound {
			return err
		}
		return tx.Bucket(bucketKV).Delete([]byte(key))
	})
	if err != nil {
		return &db.Error{Op: db.OpDel, Err: err}
	}
	return nil
}
