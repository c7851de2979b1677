package corpus

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/actdex/internal/db"
	"github.com/kailas-cloud/actdex/internal/domain"
	"github.com/kailas-cloud/actdex/internal/domain/act"
)

// store is the consumer interface for corpus pages (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	ScanHashes(ctx context.Context, pattern string, fn db.ScanHashesFunc) error
	Del(ctx context.Context, key string) error
}

// Repo persists act pages as flat hashes, one hash per page.
type Repo struct {
	store  store
	corpus string
}

// New creates a corpus repository. corpus names the key namespace pages live
// under (for example "acts").
func New(s store, corpus string) *Repo {
	return &Repo{store: s, corpus: corpus}
}

// SavePages stores a batch of pages in one round-trip. Every page gets a
// fresh random key; re-ingesting an act adds pages, PurgeAct removes the old
// ones.
func (r *Repo) SavePages(ctx context.Context, pages []act.Page) error {
	if len(pages) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(pages))
	for i := range pages {
		items[i] = db.HashSetItem{
			Key:    r.pageKey(uuid.NewString()),
			Fields: buildHashFields(&pages[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("%w: save pages: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// StreamPages walks every stored page in scan order, invoking fn for each.
// fn returning false stops the walk. Pages come back exactly as stored,
// empty-text ones included; callers own the skip policy.
func (r *Repo) StreamPages(ctx context.Context, fn func(p act.Page) bool) error {
	err := r.store.ScanHashes(ctx, r.pagePattern(), func(_ string, fields map[string]string) bool {
		return fn(parseHashFields(fields))
	})
	if err != nil {
		return fmt.Errorf("%w: stream pages: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// PurgeAct deletes every page belonging to the named act and returns how
// many were removed.
func (r *Repo) PurgeAct(ctx context.Context, actName string) (int, error) {
	var keys []string
	err := r.store.ScanHashes(ctx, r.pagePattern(), func(key string, fields map[string]string) bool {
		if fields["act_name"] == actName {
			keys = append(keys, key)
		}
		return true
	})
	if err != nil {
		return 0, fmt.Errorf("%w: purge scan: %w", domain.ErrStoreUnavailable, err)
	}

	deleted := 0
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return deleted, fmt.Errorf("%w: purge del %s: %w", domain.ErrStoreUnavailable, key, err)
		}
		deleted++
	}
	return deleted, nil
}

func (r *Repo) pageKey(id string) string {
	return fmt.Sprintf("%s%s:%s", domain.KeyPrefix, r.corpus, id)
}

func (r *Repo) pagePattern() string {
	return fmt.Sprintf("%s%s:*", domain.KeyPrefix, r.corpus)
}
