package fact

import (
	"fmt"
	"math"

	"github.com/hupe1980/factgo/span"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindAbsent represents the absence of an object value.
	KindAbsent Kind = iota
	// KindInt represents a signed integer scalar.
	KindInt
	// KindUint represents an unsigned integer scalar.
	KindUint
	// KindBool represents a boolean.
	KindBool
	// KindFloat represents a 32-bit floating scalar.
	KindFloat
	// KindInterval represents a source span.
	KindInterval
	// KindStringRef represents an interned-string table index.
	KindStringRef
	// KindFactRef represents a cross-reference to another fact's ID.
	KindFactRef
)

var kindNames = [...]string{
	"absent", "int", "uint", "bool", "float", "interval", "string_ref", "fact_ref",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Object payload layout inside the packed fact word.
//
// The fact word reserves the top 8 bits for the predicate and the next 4 bits
// for the kind tag, leaving a 52-bit payload:
//
//	bits 51..32  interval length (u20, saturating) / integer high bits
//	bits 31..0   interval start / reference index / float32 bits
const (
	kindShift    = 52
	payloadMask  = (uint64(1) << kindShift) - 1
	intLimit     = int64(1) << 51
	uintLimit    = uint64(1) << kindShift
	ivalLenShift = 32
	ivalLenMax   = uint32(1)<<20 - 1
)

// Value is the typed object slot of a Fact, packed into the low 56 bits of
// the fact word (4-bit kind tag plus 52-bit payload).
type Value struct {
	bits uint64
}

func makeValue(kind Kind, payload uint64) Value {
	return Value{bits: uint64(kind)<<kindShift | payload&payloadMask}
}

// Absent returns the absent Value.
func Absent() Value { return Value{} }

// Int returns an integer Value. The payload is 52 bits wide; values outside
// [-2^51, 2^51) are a programming error.
func Int(v int64) Value {
	if v >= intLimit || v < -intLimit {
		panic(fmt.Sprintf("fact: integer object %d exceeds 52-bit payload", v))
	}
	return makeValue(KindInt, uint64(v)&payloadMask)
}

// Uint returns an unsigned integer Value. Values >= 2^52 are a programming
// error.
func Uint(v uint64) Value {
	if v >= uintLimit {
		panic(fmt.Sprintf("fact: unsigned object %d exceeds 52-bit payload", v))
	}
	return makeValue(KindUint, v)
}

// Bool returns a boolean Value.
func Bool(v bool) Value {
	var payload uint64
	if v {
		payload = 1
	}
	return makeValue(KindBool, payload)
}

// Float returns a 32-bit floating scalar Value.
func Float(v float32) Value {
	return makeValue(KindFloat, uint64(math.Float32bits(v)))
}

// SpanValue returns an interval Value. The payload stores the start offset
// exactly and the length saturated to 20 bits (1 MiB - 1); object intervals
// longer than that are clamped, unlike standalone span.Packed encodings which
// are always exact.
func SpanValue(s span.Span) Value {
	length := s.Len()
	if length > ivalLenMax {
		length = ivalLenMax
	}
	return makeValue(KindInterval, uint64(length)<<ivalLenShift|uint64(s.Start))
}

// StringRef returns a Value referencing an interned-string table index.
func StringRef(index uint32) Value {
	return makeValue(KindStringRef, uint64(index))
}

// FactRef returns a Value referencing another fact's ID.
func FactRef(id ID) Value {
	return makeValue(KindFactRef, uint64(id))
}

// Kind returns the kind tag.
func (v Value) Kind() Kind {
	return Kind(v.bits >> kindShift)
}

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool { return v.Kind() == KindAbsent }

// AsInt returns the integer payload if Kind is KindInt.
func (v Value) AsInt() (int64, bool) {
	if v.Kind() != KindInt {
		return 0, false
	}
	raw := v.bits & payloadMask
	// Sign-extend from bit 51.
	if raw&(1<<51) != 0 {
		raw |= ^payloadMask
	}
	return int64(raw), true //nolint:gosec // sign extension above makes this exact
}

// AsUint returns the unsigned payload if Kind is KindUint.
func (v Value) AsUint() (uint64, bool) {
	if v.Kind() != KindUint {
		return 0, false
	}
	return v.bits & payloadMask, true
}

// AsBool returns the boolean payload if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind() != KindBool {
		return false, false
	}
	return v.bits&1 != 0, true
}

// AsFloat returns the floating payload if Kind is KindFloat.
func (v Value) AsFloat() (float32, bool) {
	if v.Kind() != KindFloat {
		return 0, false
	}
	return math.Float32frombits(uint32(v.bits)), true //nolint:gosec // low 32 bits hold the float
}

// AsSpan returns the interval payload if Kind is KindInterval.
func (v Value) AsSpan() (span.Span, bool) {
	if v.Kind() != KindInterval {
		return span.Span{}, false
	}
	start := uint32(v.bits)                                    //nolint:gosec // low 32 bits
	length := uint32(v.bits>>ivalLenShift) & ivalLenMax        //nolint:gosec // 20-bit field
	return span.Span{Start: start, End: start + length}, true
}

// AsStringRef returns the interned-string index if Kind is KindStringRef.
func (v Value) AsStringRef() (uint32, bool) {
	if v.Kind() != KindStringRef {
		return 0, false
	}
	return uint32(v.bits), true //nolint:gosec // reference fits 32 bits
}

// AsFactRef returns the referenced fact ID if Kind is KindFactRef.
func (v Value) AsFactRef() (ID, bool) {
	if v.Kind() != KindFactRef {
		return 0, false
	}
	return ID(v.bits), true //nolint:gosec // reference fits 32 bits
}

// String returns a debug representation.
func (v Value) String() string {
	switch v.Kind() {
	case KindAbsent:
		return "absent"
	case KindInt:
		i, _ := v.AsInt()
		return fmt.Sprintf("int(%d)", i)
	case KindUint:
		u, _ := v.AsUint()
		return fmt.Sprintf("uint(%d)", u)
	case KindBool:
		b, _ := v.AsBool()
		return fmt.Sprintf("bool(%t)", b)
	case KindFloat:
		f, _ := v.AsFloat()
		return fmt.Sprintf("float(%g)", f)
	case KindInterval:
		s, _ := v.AsSpan()
		return "interval" + s.String()
	case KindStringRef:
		ix, _ := v.AsStringRef()
		return fmt.Sprintf("string_ref(%d)", ix)
	case KindFactRef:
		id, _ := v.AsFactRef()
		return fmt.Sprintf("fact_ref(%d)", id)
	default:
		return "invalid"
	}
}
