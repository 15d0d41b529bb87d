// Package cache implements the bounded query-result cache (C6): a memo for
// traversal and shortest-path results keyed by (op, canonical_args), with a
// size bound, a TTL, and a version stamp that the mutation engine
// invalidates wholesale on every successful mutation.
//
// The cache is a pure performance optimization: disabling it must never
// change a result, only how it was produced. Backing store is Ristretto,
// an admission-controlled concurrent cache.
package cache

import (
	"hash/fnv"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Op identifies which kernel produced a memoized result.
type Op string

const (
	OpTraverse     Op = "traverse"
	OpShortestPath Op = "shortest_path"
)

// entry is what gets stored in Ristretto: the result plus the bookkeeping
// the version/TTL check needs at Get time.
type entry struct {
	value      interface{}
	version    uint64
	insertedAt time.Time
}

// QueryCache is a thread-safe, size- and TTL-bounded memo for (op, args)
// results, backed by Ristretto. A lookup is a hit iff the key is present,
// Ristretto's own TTL has not elapsed, AND the stored version still matches
// the engine's current version — the version check catches mutations that
// land inside Ristretto's slightly-lagged async expiry sweep.
type QueryCache struct {
	store   *ristretto.Cache[uint64, *entry]
	ttl     time.Duration
	enabled atomic.Bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New creates a QueryCache bounded to approximately maxEntries items, each
// entry eligible for reuse for up to ttl after insertion. maxEntries <= 0
// defaults to 10,000; ttl <= 0 defaults to 5 minutes.
func New(maxEntries int, ttl time.Duration) (*QueryCache, error) {
	if maxEntries <= 0 {
		maxEntries = 10_000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	store, err := ristretto.NewCache(&ristretto.Config[uint64, *entry]{
		NumCounters:        int64(maxEntries) * 10,
		MaxCost:            int64(maxEntries),
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	qc := &QueryCache{store: store, ttl: ttl}
	qc.enabled.Store(true)
	return qc, nil
}

// SetEnabled toggles the cache at runtime. Disabling it makes every Get a
// miss without discarding the backing store, so re-enabling picks up
// whatever is still unexpired.
func (c *QueryCache) SetEnabled(enabled bool) {
	c.enabled.Store(enabled)
}

// Key hashes (op, canonicalArgs) into a 64-bit lookup key with FNV-1a.
func Key(op Op, canonicalArgs string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(op))
	h.Write([]byte{0})
	h.Write([]byte(canonicalArgs))
	return h.Sum64()
}

// Get returns the memoized value for key iff the cache is enabled, the key
// is present, Ristretto has not expired it, and currentVersion matches the
// version it was inserted under.
func (c *QueryCache) Get(key uint64, currentVersion uint64) (interface{}, bool) {
	if !c.enabled.Load() {
		c.misses.Add(1)
		return nil, false
	}

	e, ok := c.store.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	if e.version != currentVersion {
		c.store.Del(key)
		c.misses.Add(1)
		return nil, false
	}
	if time.Since(e.insertedAt) >= c.ttl {
		c.store.Del(key)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return e.value, true
}

// Put memoizes value under key, stamped with the version current at
// insertion time. A subsequent mutation bumping the version silently
// invalidates this entry the next time it is looked up. Ristretto applies
// the write through an asynchronous buffer, so a Get issued immediately
// after Put may still miss.
func (c *QueryCache) Put(key uint64, value interface{}, version uint64) {
	c.store.SetWithTTL(key, &entry{value: value, version: version, insertedAt: time.Now()}, 1, c.ttl)
}

// Stats reports cumulative hit/miss counters for observability.
type Stats struct {
	Hits   uint64
	Misses uint64
}

func (c *QueryCache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Close releases Ristretto's background goroutines. Safe to call once the
// owning engine is done with the cache.
func (c *QueryCache) Close() {
	c.store.Close()
}
