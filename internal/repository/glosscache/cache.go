// Package glosscache keeps the glossary snapshot used for linking in memory.
package glosscache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	domgloss "github.com/kailas-cloud/gallformers/internal/domain/glossary"
)

const snapshotKey = "glossary:all"

// DefaultTTL is used when New receives a non-positive ttl.
const DefaultTTL = 5 * time.Minute

// source is the consumer interface for the backing glossary (ISP).
type source interface {
	All(ctx context.Context) ([]domgloss.Entry, error)
}

// Cache is a read-through TTL cache over the full glossary.
type Cache struct {
	inner      source
	cache      *gocache.Cache
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(inner source, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		inner:      inner,
		cache:      gocache.New(ttl, 2*ttl),
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// All returns the cached snapshot or loads it from the inner source.
// Callers must not modify the returned slice.
func (c *Cache) All(ctx context.Context) ([]domgloss.Entry, error) {
	if v, ok := c.cache.Get(snapshotKey); ok {
		c.incCache("hit")
		return v.([]domgloss.Entry), nil
	}
	c.incCache("miss")

	entries, err := c.inner.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load glossary: %w", err)
	}

	c.cache.SetDefault(snapshotKey, entries)
	c.logger.Debug("Glossary snapshot cached", zap.Int("entries", len(entries)))
	return entries, nil
}

// Invalidate drops the snapshot so the next All reloads it.
func (c *Cache) Invalidate() {
	c.cache.Delete(snapshotKey)
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
