// Package cache keeps per-symbol indicator snapshots so repeated requests for
// the same history do not recompute every series. The cache is versioned by
// the identity of the last bar seen plus the series length; a new bar, an
// amended close, or a different history window all miss and repopulate. There
// is no implicit global state: the cache is an explicit dependency.
package cache

import (
	"fmt"
	"sync"
	"time"

	"QuantCore/internal/domain/models"
)

type snapshot struct {
	version string
	set     *models.IndicatorSet
	exp     time.Time
}

// SnapshotCache maps symbol -> last computed indicator set.
type SnapshotCache struct {
	mu  sync.RWMutex
	m   map[string]snapshot
	ttl time.Duration
}

// NewSnapshotCache creates a snapshot cache; ttl <= 0 disables expiry.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{m: make(map[string]snapshot), ttl: ttl}
}

// Version derives the cache key version from the series identity.
func Version(s models.PriceSeries) string {
	if len(s) == 0 {
		return "empty"
	}
	last := s[len(s)-1]
	return fmt.Sprintf("%s|%.8f|%d", last.Date.Format("2006-01-02"), last.Close, len(s))
}

// Get returns the cached set for symbol when its version still matches.
func (c *SnapshotCache) Get(symbol, version string) (*models.IndicatorSet, bool) {
	c.mu.RLock()
	e, ok := c.m[symbol]
	c.mu.RUnlock()
	if !ok || e.version != version {
		return nil, false
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.m, symbol)
		c.mu.Unlock()
		return nil, false
	}
	return e.set, true
}

// Put stores the set under the symbol, replacing any older version.
func (c *SnapshotCache) Put(symbol, version string, set *models.IndicatorSet) {
	var exp time.Time
	if c.ttl > 0 {
		exp = time.Now().Add(c.ttl)
	}
	c.mu.Lock()
	c.m[symbol] = snapshot{version: version, set: set, exp: exp}
	c.mu.Unlock()
}

// Invalidate drops the snapshot for a symbol.
func (c *SnapshotCache) Invalidate(symbol string) {
	c.mu.Lock()
	delete(c.m, symbol)
	c.mu.Unlock()
}
