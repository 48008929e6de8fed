package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"basket-backtest/internal/model"
)

type cacheEntry struct {
	series    model.Series
	expiresAt time.Time
}

// SeriesCache keeps parsed series in memory for a fixed TTL. It is safe for
// concurrent use; a nil cache is a valid no-op.
type SeriesCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewSeriesCache(ttl time.Duration) *SeriesCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SeriesCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns a cached series if present and not expired.
func (c *SeriesCache) Get(key string) (model.Series, bool) {
	if c == nil {
		return model.Series{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		return model.Series{}, false
	}
	return entry.series, true
}

func (c *SeriesCache) Set(key string, s model.Series) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = &cacheEntry{series: s, expiresAt: c.now().Add(c.ttl)}
}

func (c *SeriesCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

func (c *SeriesCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Run removes expired entries every interval until ctx is done.
func (c *SeriesCache) Run(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *SeriesCache) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}

// CacheKey derives a key from a source location and resolution.
func CacheKey(location string, res model.Resolution) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s", res, location)))
	return hex.EncodeToString(hash[:])
}
