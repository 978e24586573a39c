// Package stream implements a closed-variant pull iterator used on the
// substrate's hottest paths (per-token and per-fact loops).
//
// A Stream is a tagged union rather than an interface: Next dispatches with a
// single switch over a closed set of variants, which compiles to a jump table
// instead of an indirect call. Variants cover in-memory slices, fixed
// capacity ring buffers, generators, the empty and error streams, and the
// composed operators map, filter, take, drop and merge.
//
// Next returns (value, ok, err); exhaustion is ok=false with a nil error.
// Peek is available on slice, ring and Peekable-wrapped streams. Calling Peek
// on a generator or a bare operator is a contract violation and fails with
// ErrNotPeekable rather than being silently tolerated.
//
// Streams are pull-based and run nothing ahead of demand; cancellation is
// structural (stop pulling and drop the stream).
package stream
