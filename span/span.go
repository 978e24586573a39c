package span

import (
	"fmt"
	"unsafe"
)

// Span is a byte-offset interval into a source buffer.
// Invariant: Start <= End.
type Span struct {
	Start uint32
	End   uint32
}

// Compile-time size assertion: a Span must stay embeddable as 8 bytes.
var _ [8]struct{} = [unsafe.Sizeof(Span{})]struct{}{}

// Packed is the dense 8-byte wire encoding of a Span.
// Layout: Start in the high 32 bits, End in the low 32 bits.
type Packed uint64

// New creates a Span. Reversed bounds are a programming error, not a
// recoverable condition.
func New(start, end uint32) Span {
	if start > end {
		panic(fmt.Sprintf("span: reversed bounds %d > %d", start, end))
	}
	return Span{Start: start, End: end}
}

// Pack encodes the span into its dense 8-byte form.
func (s Span) Pack() Packed {
	return Packed(uint64(s.Start)<<32 | uint64(s.End))
}

// Unpack is the exact inverse of Pack.
func Unpack(p Packed) Span {
	return Span{
		Start: uint32(p >> 32),
		End:   uint32(p), //nolint:gosec // intentional truncation to low 32 bits
	}
}

// Len returns the number of bytes covered.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Contains reports whether offset lies inside the span (half-open).
func (s Span) Contains(offset uint32) bool {
	return offset >= s.Start && offset < s.End
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// String returns a compact representation, e.g. "[4,17)".
func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// Merge returns the smallest span containing both a and b.
func Merge(a, b Span) Span {
	out := a
	if b.Start < out.Start {
		out.Start = b.Start
	}
	if b.End > out.End {
		out.End = b.End
	}
	return out
}

// Intersect returns the overlapping sub-span. When the spans are disjoint
// (a.End <= b.Start or b.End <= a.Start) it returns the zero Span and false.
func Intersect(a, b Span) (Span, bool) {
	if a.End <= b.Start || b.End <= a.Start {
		return Span{}, false
	}
	out := Span{Start: a.Start, End: a.End}
	if b.Start > out.Start {
		out.Start = b.Start
	}
	if b.End < out.End {
		out.End = b.End
	}
	return out, true
}

// Distance returns 0 when the spans overlap or touch, otherwise the gap
// between the nearer endpoints.
func Distance(a, b Span) uint32 {
	if a.End < b.Start {
		return b.Start - a.End
	}
	if b.End < a.Start {
		return a.Start - b.End
	}
	return 0
}
