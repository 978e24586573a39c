// Package fact defines the immutable 24-byte observation record that the
// store, query engine and extraction pipeline exchange.
//
// A Fact anchors one observation to a source range: a store-assigned ID, a
// subject span, a predicate classifying the observation, a confidence in
// [0,1] and an optional typed object value. The predicate tag, the object
// kind and the object payload share a single packed 64-bit word so the whole
// record stays exactly 24 bytes and can be copied by value on hot paths.
//
// Object values carry an explicit kind tag. In particular, interned-string
// references (KindStringRef) and cross-references to other facts
// (KindFactRef) are distinct kinds rather than a positional convention, so a
// zero-valued reference is never ambiguous.
//
// Facts are write-once: the store assigns the ID on insertion and no field
// changes afterwards. Semantic updates are modeled as new facts appended
// under a later store generation.
package fact
