package bolt

import (
	"context"
	"encoding/binary"
	"strconv"
	"time"

	"go.etcd.io/bbolt"

	"github.com/kailas-cloud/actdex/internal/db"
)

// KV values carry an 8-byte big-endian expiry timestamp (unix nanoseconds,
// 0 = no expiry) before the payload. Expired entries are treated as absent
// on read; the space is reclaimed when the key is rewritten.

func encodeValue(deadline int64, payload []byte) []byte {
	buf := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint64(buf, uint64(deadline))
	copy(buf[8:], payload)
	return buf
}

func decodeValue(raw []byte) (int64, []byte) {
	if len(raw) < 8 {
		return 0, nil
	}
	return int64(binary.BigEndian.Uint64(raw)), raw[8:]
}

func expired(deadline int64) bool {
	return deadline > 0 && time.Now().UnixNano() > deadline
}

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var out []byte
	found := false

	err := s.db.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketKV).Get([]byte(key))
		if raw == nil {
			return nil
		}
		deadline, payload := decodeValue(raw)
		if expired(deadline) {
			return nil
		}
		out = append([]byte(nil), payload...)
		found = true
		return nil
	})
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	if !found {
		return nil, db.ErrKeyNotFound
	}
	return out, nil
}

// SetWithTTL stores a value with an expiration.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	deadline := time.Now().Add(ttl).UnixNano()
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketKV).Put([]byte(key), encodeValue(deadline, value))
	})
	if err != nil {
		return &db.Error{Op: db.OpSet, Err: err}
	}
	return nil
}

// IncrBy atomically increments a numeric key by the given amount. Counters
// are stored as decimal strings, matching INCRBY. A missing or expired key
// starts from zero with no expiry.
func (s *Store) IncrBy(_ context.Context, key string, val int64) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketKV)

		var current int64
		var deadline int64
		if raw := b.Get([]byte(key)); raw != nil {
			d, payload := decodeValue(raw)
			if !expired(d) {
				n, err := strconv.ParseInt(string(payload), 10, 64)
				if err != nil {
					return err
				}
				current = n
				deadline = d
			}
		}

		next := strconv.FormatInt(current+val, 10)
		return b.Put([]byte(key), encodeValue(deadline, []byte(next)))
	})
	if err != nil {
		return &db.Error{Op: db.OpIncrBy, Err: err}
	}
	return nil
}

// Expire sets TTL on a key. A missing key is a no-op, matching EXPIRE.
// When nx=true the TTL is set only if the key has no expiry yet.
func (s *Store) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketKV)
		raw := b.Get([]byte(key))
		if raw == nil {
			return nil
		}
		deadline, payload := decodeValue(raw)
		if expired(deadline) {
			return nil
		}
		if nx && deadline != 0 {
			return nil
		}
		newDeadline := time.Now().Add(ttl).UnixNano()
		return b.Put([]byte(key), encodeValue(newDeadline, payload))
	})
	if err != nil {
		return &db.Error{Op: db.OpExpire, Err: err}
	}
	return nil
}
