// Package store provides an append-only, indexed in-memory fact store.
//
// Facts receive monotonically increasing IDs starting at 1. Three indexes
// are maintained: a dense ID index for O(1) lookup, roaring-bitmap postings
// per predicate, and a columnar range index over subject spans for
// O(log n + k) overlap queries.
//
// The store follows a single-writer, many-reader discipline: Append,
// AppendBatch and Reset must come from one goroutine, while readers may run
// concurrently with each other (but not with a writer). The store takes no
// write locks of its own.
package store
