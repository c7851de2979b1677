package explcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/db"
	"github.com/kailas-cloud/actdex/internal/domain"
)

// store is the consumer interface for the explanation cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedExplainer caches explanation text in a key-value store. Entries
// expire so corpus re-ingests do not serve stale explanations forever.
type CachedExplainer struct {
	inner      domain.Explainer
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Explainer,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedExplainer {
	return &CachedExplainer{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Explain returns a cached explanation or calls the inner explainer.
// Cache hit: zero token counts (no real tokens consumed).
// Cache miss: full ExplainResult from inner.
func (c *CachedExplainer) Explain(ctx context.Context, input domain.ExplainInput) (domain.ExplainResult, error) {
	key := c.cacheKey(input)

	if text, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return domain.ExplainResult{Explanation: text}, nil
	}

	c.incCache("miss")

	result, err := c.inner.Explain(ctx, input)
	if err != nil {
		return domain.ExplainResult{}, fmt.Errorf("explain: %w", err)
	}

	c.putToCache(ctx, key, result.Explanation)
	return result, nil
}

// HealthCheck delegates to the inner explainer when it supports checks.
func (c *CachedExplainer) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (c *CachedExplainer) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes everything the explanation depends on: the query, the
// answer style, and the exact passages retrieval produced. The prefix is
// read per call because main configures domain.KeyPrefix after init.
func (c *CachedExplainer) cacheKey(input domain.ExplainInput) string {
	h := sha256.New()
	h.Write([]byte(string(input.Style)))
	h.Write([]byte{0})
	h.Write([]byte(input.Query))
	for _, p := range input.Passages {
		h.Write([]byte{0})
		h.Write([]byte(p.ActName))
		h.Write([]byte{0})
		h.Write([]byte(p.Title))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(p.PageNo)))
		h.Write([]byte{0})
		h.Write([]byte(p.Snippet))
	}
	return domain.KeyPrefix + "expl_cache:" + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedExplainer) getFromCache(ctx context.Context, key string) (string, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached explanation", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (c *CachedExplainer) putToCache(ctx context.Context, key, text string) {
	if text == "" {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, []byte(text), c.ttl); err != nil {
		c.logger.Warn("Failed to cache explanation", zap.String("key", key), zap.Error(err))
	}
}
