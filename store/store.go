package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/resource"
	"github.com/hupe1980/factgo/span"
)

// factSize is the encoded size of a fact, used for ingest accounting.
const factSize = 24

// ErrInvalidPredicate is returned when a fact carries the zero predicate.
var ErrInvalidPredicate = errors.New("store: invalid predicate")

// Options configures a Store.
type Options struct {
	// Logger receives structured batch-append records. Defaults to
	// slog.Default.
	Logger *slog.Logger
	// Controller rate-limits AppendBatch ingest when configured with an
	// ingest limit. Optional.
	Controller *resource.Controller
	// CacheCapacity is the maximum number of cached query results.
	CacheCapacity int
}

// DefaultOptions are the options used when none are given.
var DefaultOptions = Options{
	CacheCapacity: 128,
}

// Stats is a point-in-time snapshot of store counters.
type Stats struct {
	Facts       int
	Generation  uint64
	Appends     int64
	Batches     int64
	CacheHits   int64
	CacheMisses int64
}

// Store is an append-only fact store with predicate and range indexes.
type Store struct {
	facts    []fact.Fact
	postings map[fact.Predicate]*roaring.Bitmap
	ranges   *rangeIndex
	cache    *ResultCache

	gen     atomic.Uint64
	appends atomic.Int64
	batches atomic.Int64

	logger *slog.Logger
	ctrl   *resource.Controller
}

// New creates an empty Store.
func New(optFns ...func(*Options)) *Store {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		postings: make(map[fact.Predicate]*roaring.Bitmap),
		ranges:   newRangeIndex(),
		cache:    NewResultCache(opts.CacheCapacity),
		logger:   logger,
		ctrl:     opts.Controller,
	}
}

// WithLogger sets the logger for batch-append records.
func WithLogger(l *slog.Logger) func(*Options) {
	return func(o *Options) { o.Logger = l }
}

// WithController enables ingest rate limiting on AppendBatch.
func WithController(c *resource.Controller) func(*Options) {
	return func(o *Options) { o.Controller = c }
}

// WithCacheCapacity sets the result-cache entry capacity.
func WithCacheCapacity(n int) func(*Options) {
	return func(o *Options) { o.CacheCapacity = n }
}

// Append inserts one fact, assigns it the next ID and bumps the generation.
// The returned fact ID is never 0.
func (s *Store) Append(f fact.Fact) (fact.ID, error) {
	if f.Predicate() == fact.PredInvalid {
		return 0, ErrInvalidPredicate
	}
	id := s.insert(f)
	s.gen.Add(1)
	s.appends.Add(1)
	return id, nil
}

// AppendBatch inserts facts in order with a single generation bump. When an
// ingest limit is configured the call blocks until the batch's byte volume
// is admitted, or returns the context's error.
func (s *Store) AppendBatch(ctx context.Context, fs []fact.Fact) ([]fact.ID, error) {
	if len(fs) == 0 {
		return nil, nil
	}
	// Validate up front so a bad fact leaves the batch unapplied.
	for i, f := range fs {
		if f.Predicate() == fact.PredInvalid {
			return nil, fmt.Errorf("fact %d: %w", i, ErrInvalidPredicate)
		}
	}
	if s.ctrl != nil {
		if err := s.ctrl.AcquireIngest(ctx, len(fs)*factSize); err != nil {
			return nil, err
		}
	}

	ids := make([]fact.ID, len(fs))
	for i, f := range fs {
		ids[i] = s.insert(f)
	}
	s.gen.Add(1)
	s.appends.Add(int64(len(fs)))
	s.batches.Add(1)

	s.logger.Debug("appended fact batch",
		slog.Int("count", len(fs)),
		slog.Uint64("first_id", uint64(ids[0])),
		slog.Uint64("generation", s.gen.Load()),
	)

	return ids, nil
}

// insert adds the fact to all indexes without touching the generation.
func (s *Store) insert(f fact.Fact) fact.ID {
	id := fact.ID(len(s.facts) + 1)
	f = f.WithID(id)

	s.facts = append(s.facts, f)

	bm, ok := s.postings[f.Predicate()]
	if !ok {
		bm = roaring.New()
		s.postings[f.Predicate()] = bm
	}
	bm.Add(uint32(id))

	s.ranges.add(f.Subject, id)

	return id
}

// Get returns the fact with the given ID. An unknown ID is a normal miss.
func (s *Store) Get(id fact.ID) (fact.Fact, bool) {
	if id == 0 || int(id) > len(s.facts) {
		return fact.Fact{}, false
	}
	return s.facts[id-1], true
}

// Len returns the number of stored facts.
func (s *Store) Len() int {
	return len(s.facts)
}

// Generation returns the mutation counter. It increases on every Append,
// AppendBatch and Reset.
func (s *Store) Generation() uint64 {
	return s.gen.Load()
}

// ByPredicate returns all facts carrying the predicate, in ID order.
func (s *Store) ByPredicate(p fact.Predicate) []fact.Fact {
	bm, ok := s.postings[p]
	if !ok {
		return nil
	}
	out := make([]fact.Fact, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, s.facts[it.Next()-1])
	}
	return out
}

// Overlapping returns all facts whose subject span overlaps q. Result order
// is unspecified.
func (s *Store) Overlapping(q span.Span) []fact.Fact {
	var out []fact.Fact
	s.ranges.overlapping(q, func(id fact.ID) {
		out = append(out, s.facts[id-1])
	})
	return out
}

// StartBetween returns all facts whose subject start offset lies in
// [lo, hi). Result order is unspecified.
func (s *Store) StartBetween(lo, hi uint32) []fact.Fact {
	var out []fact.Fact
	s.ranges.startRange(lo, hi, func(id fact.ID) {
		out = append(out, s.facts[id-1])
	})
	return out
}

// All returns the backing fact slice in ID order. Callers must not modify
// it.
func (s *Store) All() []fact.Fact {
	return s.facts
}

// Reset discards all facts, indexes and cached results. It is the only way
// to remove data from the store.
func (s *Store) Reset() {
	s.facts = nil
	s.postings = make(map[fact.Predicate]*roaring.Bitmap)
	s.ranges = newRangeIndex()
	s.cache.Purge()
	s.gen.Add(1)
}

// CachedResult returns a previously cached query result if it is still
// current for the store's generation.
func (s *Store) CachedResult(key uint64) ([]fact.Fact, bool) {
	return s.cache.Get(key, s.gen.Load())
}

// CacheResult stores a query result stamped with the current generation.
func (s *Store) CacheResult(key uint64, res []fact.Fact) {
	s.cache.Put(key, s.gen.Load(), res)
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() Stats {
	hits, misses := s.cache.Counters()
	return Stats{
		Facts:       len(s.facts),
		Generation:  s.gen.Load(),
		Appends:     s.appends.Load(),
		Batches:     s.batches.Load(),
		CacheHits:   hits,
		CacheMisses: misses,
	}
}
