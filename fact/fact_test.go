package fact

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/factgo/span"
)

func TestFactSize(t *testing.T) {
	assert.Equal(t, uintptr(24), unsafe.Sizeof(Fact{}))
	assert.Equal(t, uintptr(8), unsafe.Sizeof(span.Span{}))
}

func TestNewPreservesFields(t *testing.T) {
	subj := span.New(10, 42)
	f := New(subj, PredIsFunction, 0.9, StringRef(7))

	assert.Equal(t, ID(0), f.ID)
	assert.Equal(t, subj, f.Subject)
	assert.Equal(t, PredIsFunction, f.Predicate())
	assert.InDelta(t, 0.9, f.Confidence, 1e-6)

	ix, ok := f.Object().AsStringRef()
	require.True(t, ok)
	assert.Equal(t, uint32(7), ix)
}

func TestNewRejectsBadConfidence(t *testing.T) {
	assert.Panics(t, func() { New(span.Span{}, PredIsToken, -0.1, Absent()) })
	assert.Panics(t, func() { New(span.Span{}, PredIsToken, 1.5, Absent()) })
}

func TestWithID(t *testing.T) {
	f := New(span.New(0, 4), PredIsToken, 1, Absent())
	g := f.WithID(9)

	assert.Equal(t, ID(0), f.ID, "original untouched")
	assert.Equal(t, ID(9), g.ID)
	assert.Equal(t, f.Predicate(), g.Predicate())
	assert.Equal(t, f.Subject, g.Subject)
}

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		kind  Kind
		check func(t *testing.T, v Value)
	}{
		{"absent", Absent(), KindAbsent, func(t *testing.T, v Value) {
			assert.True(t, v.IsAbsent())
		}},
		{"int negative", Int(-12345), KindInt, func(t *testing.T, v Value) {
			i, ok := v.AsInt()
			require.True(t, ok)
			assert.Equal(t, int64(-12345), i)
		}},
		{"int large", Int(1<<50 + 3), KindInt, func(t *testing.T, v Value) {
			i, ok := v.AsInt()
			require.True(t, ok)
			assert.Equal(t, int64(1<<50+3), i)
		}},
		{"uint", Uint(1 << 51), KindUint, func(t *testing.T, v Value) {
			u, ok := v.AsUint()
			require.True(t, ok)
			assert.Equal(t, uint64(1)<<51, u)
		}},
		{"bool", Bool(true), KindBool, func(t *testing.T, v Value) {
			b, ok := v.AsBool()
			require.True(t, ok)
			assert.True(t, b)
		}},
		{"float", Float(3.25), KindFloat, func(t *testing.T, v Value) {
			f, ok := v.AsFloat()
			require.True(t, ok)
			assert.Equal(t, float32(3.25), f)
		}},
		{"interval", SpanValue(span.New(100, 164)), KindInterval, func(t *testing.T, v Value) {
			s, ok := v.AsSpan()
			require.True(t, ok)
			assert.Equal(t, span.Span{Start: 100, End: 164}, s)
		}},
		{"string ref zero", StringRef(0), KindStringRef, func(t *testing.T, v Value) {
			ix, ok := v.AsStringRef()
			require.True(t, ok)
			assert.Equal(t, uint32(0), ix)
		}},
		{"fact ref zero", FactRef(0), KindFactRef, func(t *testing.T, v Value) {
			id, ok := v.AsFactRef()
			require.True(t, ok)
			assert.Equal(t, ID(0), id)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.kind, tt.value.Kind())
			tt.check(t, tt.value)
		})
	}
}

func TestStringRefAndFactRefDistinct(t *testing.T) {
	// Index 0 and ID 0 are both legitimate; the kind tag keeps them apart.
	sref := StringRef(0)
	fref := FactRef(0)
	assert.NotEqual(t, sref.Kind(), fref.Kind())

	_, ok := sref.AsFactRef()
	assert.False(t, ok)
	_, ok = fref.AsStringRef()
	assert.False(t, ok)
}

func TestIntRangePanics(t *testing.T) {
	assert.Panics(t, func() { Int(1 << 51) })
	assert.Panics(t, func() { Int(-(1 << 51) - 1) })
	assert.Panics(t, func() { Uint(1 << 52) })
	assert.NotPanics(t, func() { Int(1<<51 - 1) })
	assert.NotPanics(t, func() { Int(-(1 << 51)) })
}

func TestSpanValueSaturatesLength(t *testing.T) {
	s, ok := SpanValue(span.New(0, 1<<22)).AsSpan()
	require.True(t, ok)
	assert.Equal(t, uint32(1<<20-1), s.Len())
}

func TestPredicateNames(t *testing.T) {
	assert.Equal(t, "is_function", PredIsFunction.String())
	assert.Equal(t, "is_class", PredIsClass.String())
	assert.Equal(t, "user_200", Predicate(200).String())
}
