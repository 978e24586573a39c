package span

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	spans := []Span{
		{0, 0},
		{0, 1},
		{17, 4096},
		{^uint32(0) - 1, ^uint32(0)},
		{1 << 20, 1 << 24},
	}
	for _, s := range spans {
		require.Equal(t, s, Unpack(s.Pack()), "round trip for %v", s)
	}
}

func TestNewPanicsOnReversedBounds(t *testing.T) {
	assert.Panics(t, func() { New(10, 5) })
	assert.NotPanics(t, func() { New(5, 5) })
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{0, 5}, Span{10, 20}, Span{0, 20}},
		{"overlapping", Span{0, 15}, Span{10, 20}, Span{0, 20}},
		{"contained", Span{0, 20}, Span{5, 10}, Span{0, 20}},
		{"identical", Span{3, 7}, Span{3, 7}, Span{3, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.a, tt.b))
			assert.Equal(t, tt.want, Merge(tt.b, tt.a))
		})
	}
}

func TestIntersect(t *testing.T) {
	got, ok := Intersect(Span{0, 10}, Span{5, 20})
	require.True(t, ok)
	assert.Equal(t, Span{5, 10}, got)

	_, ok = Intersect(Span{0, 5}, Span{5, 10})
	assert.False(t, ok, "touching spans do not intersect")

	_, ok = Intersect(Span{0, 5}, Span{10, 20})
	assert.False(t, ok)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, uint32(5), Distance(Span{0, 5}, Span{10, 20}))
	assert.Equal(t, uint32(5), Distance(Span{10, 20}, Span{0, 5}))
	assert.Equal(t, uint32(0), Distance(Span{0, 5}, Span{5, 10}), "touching")
	assert.Equal(t, uint32(0), Distance(Span{0, 10}, Span{5, 20}), "overlapping")
}

func TestNormalize(t *testing.T) {
	ss := NewSet(
		Span{10, 20},
		Span{0, 5},
		Span{4, 12},
		Span{30, 40},
		Span{20, 25},
	)
	ss.Normalize()
	assert.Equal(t, []Span{{0, 25}, {30, 40}}, ss.Spans())

	// Idempotence.
	before := append([]Span(nil), ss.Spans()...)
	ss.Normalize()
	assert.Equal(t, before, ss.Spans())
}

func TestNormalizeProperties(t *testing.T) {
	ss := NewSet(
		Span{7, 9}, Span{1, 3}, Span{2, 6}, Span{9, 9}, Span{100, 200}, Span{150, 160},
	)
	ss.Normalize()

	out := ss.Spans()
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1].End, out[i].Start, "sorted and non-overlapping")
	}
}

func TestCover(t *testing.T) {
	assert.Equal(t, Span{}, NewSet().Cover())
	assert.Equal(t, Span{1, 40}, NewSet(Span{10, 40}, Span{1, 3}).Cover())
}
