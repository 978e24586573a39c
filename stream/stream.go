package stream

import (
	"errors"

	"github.com/hupe1980/factgo/internal/ring"
)

// ErrNotPeekable is returned when Peek is called on a variant that cannot
// buffer lookahead. This signals a programming error, not a data condition.
var ErrNotPeekable = errors.New("stream: variant does not support peek")

// Kind identifies the stream variant.
type Kind uint8

const (
	// KindEmpty always reports exhaustion.
	KindEmpty Kind = iota
	// KindSlice iterates a contiguous sequence zero-copy.
	KindSlice
	// KindRing pops from a fixed-capacity ring buffer.
	KindRing
	// KindGenerator computes values on demand from opaque state.
	KindGenerator
	// KindError always returns the same error.
	KindError
	// KindMap applies a transform to an inner stream.
	KindMap
	// KindFilter drops non-matching items of an inner stream.
	KindFilter
	// KindTake yields at most n items of an inner stream.
	KindTake
	// KindDrop skips the first n items of an inner stream.
	KindDrop
	// KindMerge interleaves two inner streams round-robin.
	KindMerge
	// KindPeek buffers one lookahead item over an inner stream.
	KindPeek
)

// Stream is a closed-variant pull iterator.
// Not safe for concurrent use.
type Stream[T any] struct {
	kind Kind

	// slice
	items []T
	pos   int

	// ring
	rb *ring.Buffer[T]

	// generator
	gen func() (T, bool, error)

	// error
	err error

	// operators
	in, in2 *Stream[T]
	mapFn   func(T) T
	pred    func(T) bool
	n       int
	turn    bool

	// peekable
	peeked  bool
	peekVal T
}

// Empty returns a stream that is always exhausted.
func Empty[T any]() *Stream[T] {
	return &Stream[T]{kind: KindEmpty}
}

// FromSlice returns a zero-copy stream over items. The stream borrows the
// slice; the caller must not mutate it while iterating.
func FromSlice[T any](items []T) *Stream[T] {
	return &Stream[T]{kind: KindSlice, items: items}
}

// FromRing returns a stream popping from rb in FIFO order.
func FromRing[T any](rb *ring.Buffer[T]) *Stream[T] {
	return &Stream[T]{kind: KindRing, rb: rb}
}

// Generate returns a stream computing values on demand. Generators are
// monotonic and non-reentrant; they do not support Peek.
func Generate[T any](next func() (T, bool, error)) *Stream[T] {
	return &Stream[T]{kind: KindGenerator, gen: next}
}

// Fail returns a stream that always yields err.
func Fail[T any](err error) *Stream[T] {
	return &Stream[T]{kind: KindError, err: err}
}

// Next returns the next value. Exhaustion is (zero, false, nil).
func (s *Stream[T]) Next() (T, bool, error) {
	var zero T
	switch s.kind {
	case KindEmpty:
		return zero, false, nil

	case KindSlice:
		if s.pos >= len(s.items) {
			return zero, false, nil
		}
		v := s.items[s.pos]
		s.pos++
		return v, true, nil

	case KindRing:
		v, ok := s.rb.Pop()
		return v, ok, nil

	case KindGenerator:
		return s.gen()

	case KindError:
		return zero, false, s.err

	case KindMap:
		v, ok, err := s.in.Next()
		if !ok || err != nil {
			return zero, false, err
		}
		return s.mapFn(v), true, nil

	case KindFilter:
		for {
			v, ok, err := s.in.Next()
			if !ok || err != nil {
				return zero, false, err
			}
			if s.pred(v) {
				return v, true, nil
			}
		}

	case KindTake:
		if s.n <= 0 {
			return zero, false, nil
		}
		v, ok, err := s.in.Next()
		if !ok || err != nil {
			return zero, false, err
		}
		s.n--
		return v, true, nil

	case KindDrop:
		for s.n > 0 {
			_, ok, err := s.in.Next()
			if err != nil {
				return zero, false, err
			}
			if !ok {
				s.n = 0
				return zero, false, nil
			}
			s.n--
		}
		return s.in.Next()

	case KindMerge:
		first, second := s.in, s.in2
		if s.turn {
			first, second = second, first
		}
		s.turn = !s.turn
		v, ok, err := first.Next()
		if err != nil {
			return zero, false, err
		}
		if ok {
			return v, true, nil
		}
		return second.Next()

	case KindPeek:
		if s.peeked {
			s.peeked = false
			v := s.peekVal
			s.peekVal = zero
			return v, true, nil
		}
		return s.in.Next()

	default:
		panic("stream: invalid variant")
	}
}

// Peek returns the next value without consuming it. Only slice, ring, empty
// and Peekable-wrapped streams support lookahead; all other variants fail
// with ErrNotPeekable.
func (s *Stream[T]) Peek() (T, bool, error) {
	var zero T
	switch s.kind {
	case KindEmpty:
		return zero, false, nil

	case KindSlice:
		if s.pos >= len(s.items) {
			return zero, false, nil
		}
		return s.items[s.pos], true, nil

	case KindRing:
		v, ok := s.rb.Peek()
		return v, ok, nil

	case KindPeek:
		if s.peeked {
			return s.peekVal, true, nil
		}
		v, ok, err := s.in.Next()
		if !ok || err != nil {
			return zero, false, err
		}
		s.peekVal = v
		s.peeked = true
		return v, true, nil

	default:
		return zero, false, ErrNotPeekable
	}
}

// Kind returns the variant tag.
func (s *Stream[T]) Kind() Kind {
	return s.kind
}

// Collect drains the stream into a slice.
func (s *Stream[T]) Collect() ([]T, error) {
	var out []T
	for {
		v, ok, err := s.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// Collect drains s into a slice.
func Collect[T any](s *Stream[T]) ([]T, error) {
	return s.Collect()
}
