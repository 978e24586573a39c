// Package ring implements a fixed-capacity circular FIFO buffer.
//
// The buffer backs the stream ring variant and the lexer's byte window. All
// operations are O(1); the buffer never reallocates after construction.
package ring

// Buffer is a fixed-capacity circular FIFO.
// Not safe for concurrent use.
type Buffer[T any] struct {
	items []T
	head  int
	size  int
}

// New creates a Buffer with the given capacity. A non-positive capacity is a
// programming error.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// Len returns the number of buffered items.
func (b *Buffer[T]) Len() int { return b.size }

// Free returns the remaining capacity.
func (b *Buffer[T]) Free() int { return len(b.items) - b.size }

// Push appends an item. Returns false when the buffer is full.
func (b *Buffer[T]) Push(v T) bool {
	if b.size == len(b.items) {
		return false
	}
	b.items[(b.head+b.size)%len(b.items)] = v
	b.size++
	return true
}

// PushSlice appends as many items from vs as fit and returns the count.
func (b *Buffer[T]) PushSlice(vs []T) int {
	n := 0
	for _, v := range vs {
		if !b.Push(v) {
			break
		}
		n++
	}
	return n
}

// Pop removes and returns the oldest item.
func (b *Buffer[T]) Pop() (T, bool) {
	var zero T
	if b.size == 0 {
		return zero, false
	}
	v := b.items[b.head]
	b.items[b.head] = zero
	b.head = (b.head + 1) % len(b.items)
	b.size--
	return v, true
}

// Peek returns the oldest item without removing it.
func (b *Buffer[T]) Peek() (T, bool) {
	if b.size == 0 {
		var zero T
		return zero, false
	}
	return b.items[b.head], true
}

// At returns the item at logical offset i from the head.
func (b *Buffer[T]) At(i int) (T, bool) {
	if i < 0 || i >= b.size {
		var zero T
		return zero, false
	}
	return b.items[(b.head+i)%len(b.items)], true
}

// Discard drops up to n items from the head and returns the count dropped.
func (b *Buffer[T]) Discard(n int) int {
	if n > b.size {
		n = b.size
	}
	var zero T
	for i := 0; i < n; i++ {
		b.items[b.head] = zero
		b.head = (b.head + 1) % len(b.items)
	}
	b.size -= n
	return n
}

// Reset empties the buffer.
func (b *Buffer[T]) Reset() {
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.head = 0
	b.size = 0
}
