package bolt

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/kailas-cloud/actdex/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestNewStore_RequiresPath(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestPing_Open(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Immediate(t *testing.T) {
	s := newTestStore(t)
	if err := s.WaitForReady(context.Background(), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- hash.go tests ---

func TestHSetMulti_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.HSetMulti(ctx, []db.HashSetItem{
		{Key: "acts:1", Fields: map[string]string{"title": "IT Act", "page_no": "1"}},
		{Key: "acts:2", Fields: map[string]string{"title": "IT Act", "page_no": "2"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make(map[string]map[string]string)
	err = s.ScanHashes(ctx, "acts:*", func(key string, fields map[string]string) bool {
		got[key] = fields
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hashes, got %d", len(got))
	}
	if got["acts:2"]["page_no"] != "2" {
		t.Errorf("unexpected fields for acts:2: %v", got["acts:2"])
	}
}

func TestHSetMulti_MergesFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.HSetMulti(ctx, []db.HashSetItem{{Key: "k", Fields: map[string]string{"a": "1"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.HSetMulti(ctx, []db.HashSetItem{{Key: "k", Fields: map[string]string{"b": "2"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var fields map[string]string
	err := s.ScanHashes(ctx, "k", func(_ string, f map[string]string) bool {
		fields = f
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields["a"] != "1" || fields["b"] != "2" {
		t.Errorf("expected merged fields, got %v", fields)
	}
}

func TestScanHashes_PatternFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.HSetMulti(ctx, []db.HashSetItem{
		{Key: "acts:1", Fields: map[string]string{"f": "v"}},
		{Key: "cache:1", Fields: map[string]string{"f": "v"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var keys []string
	err = s.ScanHashes(ctx, "acts:*", func(key string, _ map[string]string) bool {
		keys = append(keys, key)
		return true
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 1 || keys[0] != "acts:1" {
		t.Errorf("expected only acts:1, got %v", keys)
	}
}

func TestScanHashes_StopEarly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.HSetMulti(ctx, []db.HashSetItem{
		{Key: "k1", Fields: map[string]string{"f": "v"}},
		{Key: "k2", Fields: map[string]string{"f": "v"}},
		{Key: "k3", Fields: map[string]string{"f": "v"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := 0
	err = s.ScanHashes(ctx, "*", func(string, map[string]string) bool {
		calls++
		return false
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call before stop, got %d", calls)
	}
}

func TestScanHashes_CancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.HSetMulti(ctx, []db.HashSetItem{{Key: "k", Fields: map[string]string{"f": "v"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err := s.ScanHashes(cancelled, "*", func(string, map[string]string) bool { return true })
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDel_RemovesHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.HSetMulti(ctx, []db.HashSetItem{{Key: "k", Fields: map[string]string{"f": "v"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := 0
	if err := s.ScanHashes(ctx, "*", func(string, map[string]string) bool { calls++; return true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no hashes after delete, got %d", calls)
	}
}

func TestDel_MissingKey(t *testing.T) {
	s := newTestStore(t)
	if err := s.Del(context.Background(), "nope"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- kv.go tests ---

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestSetWithTTL_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "k", []byte("value"), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "value" {
		t.Errorf("unexpected data: %s", data)
	}
}

func TestSetWithTTL_Expires(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A deadline already in the past makes the key immediately expired.
	if err := s.SetWithTTL(ctx, "k", []byte("value"), -time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.Get(ctx, "k")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestIncrBy_Accumulates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.IncrBy(ctx, "counter", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.IncrBy(ctx, "counter", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := s.Get(ctx, "counter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "8" {
		t.Errorf("expected 8, got %s", data)
	}
}

func TestIncrBy_NonNumeric(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "k", []byte("abc"), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := s.IncrBy(ctx, "k", 1)
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpIncrBy {
		t.Errorf("expected db.Error with OpIncrBy, got %v", err)
	}
}

func TestExpire_MissingKey(t *testing.T) {
	s := newTestStore(t)
	if err := s.Expire(context.Background(), "nope", time.Hour, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExpire_AppliesDeadline(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.IncrBy(ctx, "counter", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Expire(ctx, "counter", -time.Second, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.Get(ctx, "counter")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after expiry, got %v", err)
	}
}

func TestExpire_NXKeepsExistingDeadline(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SetWithTTL(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// NX must not replace the deadline SetWithTTL already set.
	if err := s.Expire(ctx, "k", -time.Second, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Errorf("expected key to survive, got %v", err)
	}
}

func TestExpire_NXAppliesWhenNoDeadline(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.IncrBy(ctx, "counter", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Expire(ctx, "counter", -time.Second, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := s.Get(ctx, "counter")
	if !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}
