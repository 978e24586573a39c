// Package span provides byte-offset intervals into source text and their
// dense 8-byte encoding.
//
// A Span is a pair of unsigned 32-bit offsets with Start <= End. The packed
// form embeds both offsets into a single uint64 so a span can live inline
// inside other fixed-size records without indirection. Packing and unpacking
// are exact inverses.
//
// SpanSet holds a collection of spans and supports Normalize, the classic
// sort-and-sweep merge producing a sorted, non-overlapping, minimal cover.
package span
