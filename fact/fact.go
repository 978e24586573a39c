package fact

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/hupe1980/factgo/span"
)

// ID is the store-assigned fact identifier. IDs are strictly monotonic per
// store; 0 means "not yet inserted".
type ID uint32

// Fact is an immutable 24-byte observation record. The word field packs the
// predicate tag (top 8 bits) together with the object value (kind tag plus
// 52-bit payload).
type Fact struct {
	ID         ID
	Subject    span.Span
	Confidence float32
	word       uint64
}

// Compile-time size assertion: the record must stay exactly 24 bytes.
var _ [24]struct{} = [unsafe.Sizeof(Fact{})]struct{}{}

const predShift = 56

// New constructs a Fact. The ID stays zero until the store assigns one.
// A confidence outside [0,1] (or NaN) is a programming error.
func New(subject span.Span, pred Predicate, confidence float32, obj Value) Fact {
	if math.IsNaN(float64(confidence)) || confidence < 0 || confidence > 1 {
		panic(fmt.Sprintf("fact: confidence %v outside [0,1]", confidence))
	}
	return Fact{
		Subject:    subject,
		Confidence: confidence,
		word:       uint64(pred)<<predShift | obj.bits,
	}
}

// Predicate returns the categorical tag.
func (f Fact) Predicate() Predicate {
	return Predicate(f.word >> predShift)
}

// Object returns the typed object value.
func (f Fact) Object() Value {
	return Value{bits: f.word &^ (uint64(0xff) << predShift)}
}

// WithID returns a copy of the fact carrying the given ID. Used by the store
// during insertion; callers never mutate a fact in place.
func (f Fact) WithID(id ID) Fact {
	f.ID = id
	return f
}

// String returns a debug representation.
func (f Fact) String() string {
	return fmt.Sprintf("Fact{#%d %s %s conf=%.2f obj=%s}",
		f.ID, f.Predicate(), f.Subject, f.Confidence, f.Object())
}
