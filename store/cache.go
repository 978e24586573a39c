package store

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/factgo/fact"
)

// ResultCache is an LRU cache for query results, keyed by the query's
// fingerprint. Every entry is stamped with the store generation it was
// computed at; a lookup under any other generation is a miss and evicts the
// stale entry.
type ResultCache struct {
	mu        sync.Mutex
	capacity  int
	items     map[uint64]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	key   uint64
	gen   uint64
	facts []fact.Fact
}

// NewResultCache creates a cache holding at most capacity results. A
// capacity of 0 or less disables caching.
func NewResultCache(capacity int) *ResultCache {
	return &ResultCache{
		capacity:  capacity,
		items:     make(map[uint64]*list.Element),
		evictList: list.New(),
	}
}

// Get returns the cached result for key if it was stored at generation gen.
func (c *ResultCache) Get(key, gen uint64) ([]fact.Fact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	e := ent.Value.(*cacheEntry)
	if e.gen != gen {
		c.evictList.Remove(ent)
		delete(c.items, key)
		c.misses.Add(1)
		return nil, false
	}
	c.evictList.MoveToFront(ent)
	c.hits.Add(1)
	return e.facts, true
}

// Put stores a result under key, stamped with gen.
func (c *ResultCache) Put(key, gen uint64, facts []fact.Fact) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		e := ent.Value.(*cacheEntry)
		e.gen = gen
		e.facts = facts
		c.evictList.MoveToFront(ent)
		return
	}

	ent := c.evictList.PushFront(&cacheEntry{key: key, gen: gen, facts: facts})
	c.items[key] = ent

	for c.evictList.Len() > c.capacity {
		oldest := c.evictList.Back()
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
}

// Purge drops all entries. Counters are kept.
func (c *ResultCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[uint64]*list.Element)
	c.evictList.Init()
}

// Len returns the number of cached results.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Counters returns the accumulated hit and miss counts.
func (c *ResultCache) Counters() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
