package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"rotation-backtest/internal/model"
)

type cacheEntry struct {
	series    model.Series
	expiresAt time.Time
}

// SeriesCache keeps aligned series in memory so repeated API runs over the
// same files skip parsing. Entries are shared read-only; callers must not
// mutate a returned series.
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
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.series, true
}

func (c *SeriesCache) Set(key string, series model.Series) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = &cacheEntry{series: series, expiresAt: c.now().Add(c.ttl)}
}

// Prune drops expired entries and returns how many were removed.
func (c *SeriesCache) Prune() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for k, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, k)
			n++
		}
	}
	return n
}

// Load returns the cached series for the request or loads and caches it.
func (c *SeriesCache) Load(dir string, src Sources, start, end time.Time) (model.Series, error) {
	key := CacheKey(dir, src, start, end)
	if s, ok := c.Get(key); ok {
		return s, nil
	}
	s, err := LoadSeries(dir, src, start, end)
	if err != nil {
		return nil, err
	}
	c.Set(key, s)
	return s, nil
}

// CacheKey hashes everything that determines an aligned series.
func CacheKey(dir string, src Sources, start, end time.Time) string {
	keyStr := fmt.Sprintf("%s|%s:%s|%s:%s|%s:%s|%s|%s",
		dir,
		src.Signal.File, src.Signal.Column,
		src.Short.File, src.Short.Column,
		src.Long.File, src.Long.Column,
		fmtKeyDate(start), fmtKeyDate(end),
	)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}

func fmtKeyDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
