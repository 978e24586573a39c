package store

import (
	"sort"
	"sync"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/span"
)

// rangeIndex answers span overlap queries over a columnar layout: starts,
// ends and IDs in aligned slices, sorted by start on seal. prefixMaxEnd[i]
// holds the maximum end among entries [0..i], which lets a backward walk
// stop as soon as no earlier entry can still reach the query window.
//
// Appends land in a pending tail; the index reseals lazily on the next
// query. Writes are serialized externally by the store's single-writer
// discipline, but concurrent readers may race to trigger the reseal, so
// sealing itself is mutex-guarded. Once sealed for the current length the
// columns are read-only and queries proceed without the lock.
type rangeIndex struct {
	starts []uint32
	ends   []uint32
	ids    []fact.ID

	prefixMaxEnd []uint32
	sealed       int // number of entries covered by the sorted prefix state

	mu sync.Mutex // serializes reseals between concurrent readers
}

func newRangeIndex() *rangeIndex {
	return &rangeIndex{}
}

func (r *rangeIndex) add(s span.Span, id fact.ID) {
	r.starts = append(r.starts, s.Start)
	r.ends = append(r.ends, s.End)
	r.ids = append(r.ids, id)
}

// seal sorts the columns by start and rebuilds the prefix-max-end column.
// Safe to call from concurrent readers; the fast path after sealing takes
// the lock only to establish visibility of the sorted columns.
func (r *rangeIndex) seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed == len(r.ids) {
		return
	}

	idx := make([]int, len(r.ids))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return r.starts[idx[a]] < r.starts[idx[b]]
	})

	starts := make([]uint32, len(idx))
	ends := make([]uint32, len(idx))
	ids := make([]fact.ID, len(idx))
	for i, j := range idx {
		starts[i] = r.starts[j]
		ends[i] = r.ends[j]
		ids[i] = r.ids[j]
	}
	r.starts, r.ends, r.ids = starts, ends, ids

	r.prefixMaxEnd = make([]uint32, len(ends))
	var maxEnd uint32
	for i, e := range ends {
		if e > maxEnd {
			maxEnd = e
		}
		r.prefixMaxEnd[i] = maxEnd
	}
	r.sealed = len(r.ids)
}

// startRange calls fn for every entry whose start offset lies in [lo, hi).
func (r *rangeIndex) startRange(lo, hi uint32, fn func(fact.ID)) {
	r.seal()

	i := sort.Search(len(r.starts), func(i int) bool {
		return r.starts[i] >= lo
	})
	for ; i < len(r.starts) && r.starts[i] < hi; i++ {
		fn(r.ids[i])
	}
}

// overlapping calls fn for every entry whose span overlaps q.
func (r *rangeIndex) overlapping(q span.Span, fn func(fact.ID)) {
	r.seal()

	// Entries at or beyond q.End cannot overlap a half-open window.
	hi := sort.Search(len(r.starts), func(i int) bool {
		return r.starts[i] >= q.End
	})

	for i := hi - 1; i >= 0; i-- {
		if r.prefixMaxEnd[i] <= q.Start {
			break
		}
		if (span.Span{Start: r.starts[i], End: r.ends[i]}).Overlaps(q) {
			fn(r.ids[i])
		}
	}
}
