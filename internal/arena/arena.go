// Package arena provides an exact-size bump allocator with bulk teardown for
// transient token and fact scratch arrays.
//
// The allocator hands out exactly the requested size from large chunks and
// never frees individual allocations; Reset releases everything at once. A
// size-class reuse pool was considered and rejected: tracking
// full-allocation-vs-returned-slice metadata invites double-free-class bugs,
// and exact-size bump allocation measured fast enough.
//
// Arena follows the substrate's single-writer discipline: allocations and
// Reset must not run concurrently.
package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocationFailed is returned when the memory budget denies a chunk.
	ErrAllocationFailed = errors.New("arena: allocation failed")
	// ErrMaxChunksExceeded is returned when the arena exceeds its chunk limit.
	ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")
)

const (
	// DefaultChunkSize is the default chunk size (64 KiB).
	DefaultChunkSize = 64 * 1024
	// MaxChunks bounds total arena growth.
	MaxChunks = 16384
)

// MemoryAcquirer reserves memory against an external budget.
type MemoryAcquirer interface {
	AcquireMemory(amount int64) error
	ReleaseMemory(amount int64)
}

// Stats tracks arena usage.
type Stats struct {
	ChunksAllocated int
	BytesReserved   int
	BytesUsed       int
	TotalAllocs     int
}

// Arena is a chunked bump allocator.
type Arena struct {
	chunkSize int
	chunks    [][]byte
	offset    int // offset into the last chunk
	stats     Stats
	acquirer  MemoryAcquirer
}

// Option configures an Arena.
type Option func(*Arena)

// WithMemoryAcquirer charges chunk reservations against an external budget.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Arena) {
		a.acquirer = acquirer
	}
}

// New creates an Arena. A non-positive chunkSize selects DefaultChunkSize.
func New(chunkSize int, opts ...Option) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Alloc returns a zeroed slice of exactly n bytes owned by the arena.
// Requests larger than the chunk size get a dedicated chunk.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n < 0 {
		panic(fmt.Sprintf("arena: negative allocation %d", n))
	}
	if n == 0 {
		return nil, nil
	}

	if n > a.chunkSize {
		if err := a.addChunk(n); err != nil {
			return nil, err
		}
		a.offset = n
		return a.chunks[len(a.chunks)-1][:n], nil
	}

	if len(a.chunks) == 0 || a.offset+n > a.chunkSize {
		if err := a.addChunk(a.chunkSize); err != nil {
			return nil, err
		}
		a.offset = 0
	}

	chunk := a.chunks[len(a.chunks)-1]
	out := chunk[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	a.stats.BytesUsed += n
	a.stats.TotalAllocs++
	return out, nil
}

// AppendByte appends b to buf, growing through the arena when capacity runs
// out. Used by the lexer's side buffer so boundary-crossing tokens grow
// without per-byte allocations.
func (a *Arena) AppendByte(buf []byte, b byte) ([]byte, error) {
	if len(buf) < cap(buf) {
		return append(buf, b), nil
	}
	grown, err := a.Alloc(max(2*cap(buf), 64))
	if err != nil {
		return buf, err
	}
	grown = grown[:len(buf)]
	copy(grown, buf)
	return append(grown, b), nil
}

func (a *Arena) addChunk(size int) error {
	if len(a.chunks) >= MaxChunks {
		return ErrMaxChunksExceeded
	}
	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(int64(size)); err != nil {
			return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
		}
	}
	a.chunks = append(a.chunks, make([]byte, size))
	a.stats.ChunksAllocated++
	a.stats.BytesReserved += size
	return nil
}

// Reset releases all chunks at once. Slices handed out earlier become
// invalid; the caller owns making sure none are still reachable.
func (a *Arena) Reset() {
	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(int64(a.stats.BytesReserved))
	}
	a.chunks = nil
	a.offset = 0
	a.stats.BytesReserved = 0
	a.stats.BytesUsed = 0
}

// Stats returns a snapshot of usage counters.
func (a *Arena) Stats() Stats {
	return a.stats
}
