package stream

// Map returns a stream applying fn to every item. Stacked maps fuse into a
// single pass.
func (s *Stream[T]) Map(fn func(T) T) *Stream[T] {
	if s.kind == KindMap {
		inner := s.mapFn
		return &Stream[T]{kind: KindMap, in: s.in, mapFn: func(v T) T {
			return fn(inner(v))
		}}
	}
	return &Stream[T]{kind: KindMap, in: s, mapFn: fn}
}

// Filter returns a stream yielding only items for which pred is true.
func (s *Stream[T]) Filter(pred func(T) bool) *Stream[T] {
	return &Stream[T]{kind: KindFilter, in: s, pred: pred}
}

// Take returns a stream yielding at most n items.
func (s *Stream[T]) Take(n int) *Stream[T] {
	return &Stream[T]{kind: KindTake, in: s, n: n}
}

// Drop returns a stream skipping the first n items.
func (s *Stream[T]) Drop(n int) *Stream[T] {
	return &Stream[T]{kind: KindDrop, in: s, n: n}
}

// Merge returns a stream interleaving s and other round-robin; when one side
// is exhausted the remainder drains from the other.
func (s *Stream[T]) Merge(other *Stream[T]) *Stream[T] {
	return &Stream[T]{kind: KindMerge, in: s, in2: other}
}

// Peekable wraps s with a one-item lookahead buffer so Peek works over any
// inner variant. Slice and ring streams already support Peek directly.
func (s *Stream[T]) Peekable() *Stream[T] {
	if s.kind == KindSlice || s.kind == KindRing || s.kind == KindPeek {
		return s
	}
	return &Stream[T]{kind: KindPeek, in: s}
}

// MapTo transforms a stream across element types. It yields a generator
// variant, so wrap with Peekable when lookahead is needed.
func MapTo[T, U any](s *Stream[T], fn func(T) U) *Stream[U] {
	return Generate(func() (U, bool, error) {
		var zero U
		v, ok, err := s.Next()
		if !ok || err != nil {
			return zero, false, err
		}
		return fn(v), true, nil
	})
}
