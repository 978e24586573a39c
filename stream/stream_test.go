package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/factgo/internal/ring"
)

func collect(t *testing.T, s *Stream[int]) []int {
	t.Helper()
	out, err := Collect(s)
	require.NoError(t, err)
	return out
}

func TestCollectMethod(t *testing.T) {
	out, err := FromSlice([]int{1, 2, 3}).Filter(func(v int) bool { return v > 1 }).Collect()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, out)

	sentinel := errors.New("inner")
	partial, err := FromSlice([]int{1}).Merge(Fail[int](sentinel)).Collect()
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, []int{1}, partial)
}

func TestFromSlice(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	assert.Equal(t, []int{1, 2, 3}, collect(t, s))

	// Exhaustion is not an error and is stable.
	_, ok, err := s.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEmpty(t *testing.T) {
	_, ok, err := Empty[int]().Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFail(t *testing.T) {
	sentinel := errors.New("boom")
	s := Fail[int](sentinel)
	_, _, err := s.Next()
	assert.ErrorIs(t, err, sentinel)
	// The error repeats.
	_, _, err = s.Next()
	assert.ErrorIs(t, err, sentinel)
}

func TestFromRing(t *testing.T) {
	rb := ring.New[int](4)
	rb.PushSlice([]int{7, 8, 9})
	assert.Equal(t, []int{7, 8, 9}, collect(t, FromRing(rb)))
}

func TestGenerate(t *testing.T) {
	i := 0
	s := Generate(func() (int, bool, error) {
		if i >= 3 {
			return 0, false, nil
		}
		i++
		return i * 10, true, nil
	})
	assert.Equal(t, []int{10, 20, 30}, collect(t, s))
}

func TestMapFilterTakeDrop(t *testing.T) {
	base := func() *Stream[int] { return FromSlice([]int{1, 2, 3, 4, 5, 6}) }

	assert.Equal(t, []int{2, 4, 6, 8, 10, 12}, collect(t, base().Map(func(v int) int { return v * 2 })))
	assert.Equal(t, []int{2, 4, 6}, collect(t, base().Filter(func(v int) bool { return v%2 == 0 })))
	assert.Equal(t, []int{1, 2}, collect(t, base().Take(2)))
	assert.Equal(t, []int{5, 6}, collect(t, base().Drop(4)))
	assert.Empty(t, collect(t, base().Drop(100)))
	assert.Empty(t, collect(t, base().Take(0)))
}

func TestMapFusion(t *testing.T) {
	s := FromSlice([]int{1, 2}).
		Map(func(v int) int { return v + 1 }).
		Map(func(v int) int { return v * 10 })

	// Fused into a single map over the original slice stream.
	assert.Equal(t, KindMap, s.Kind())
	assert.Equal(t, KindSlice, s.in.Kind())
	assert.Equal(t, []int{20, 30}, collect(t, s))
}

func TestMerge(t *testing.T) {
	a := FromSlice([]int{1, 3, 5})
	b := FromSlice([]int{2, 4})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, collect(t, a.Merge(b)))
}

func TestPeekOnSliceAndRing(t *testing.T) {
	s := FromSlice([]int{1, 2})
	v, ok, err := s.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// Peek does not consume.
	assert.Equal(t, []int{1, 2}, collect(t, s))

	rb := ring.New[int](2)
	rb.Push(42)
	rs := FromRing(rb)
	v, ok, err = rs.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, []int{42}, collect(t, rs))
}

func TestPeekContractViolation(t *testing.T) {
	gen := Generate(func() (int, bool, error) { return 1, true, nil })
	_, _, err := gen.Peek()
	assert.ErrorIs(t, err, ErrNotPeekable)

	filtered := FromSlice([]int{1}).Filter(func(int) bool { return true })
	_, _, err = filtered.Peek()
	assert.ErrorIs(t, err, ErrNotPeekable)
}

func TestPeekable(t *testing.T) {
	i := 0
	s := Generate(func() (int, bool, error) {
		if i >= 2 {
			return 0, false, nil
		}
		i++
		return i, true, nil
	}).Peekable()

	v, ok, err := s.Peek()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []int{1, 2}, collect(t, s))
}

func TestErrorPropagatesThroughOperators(t *testing.T) {
	sentinel := errors.New("inner")
	s := Fail[int](sentinel).Map(func(v int) int { return v }).Take(10)
	_, _, err := s.Next()
	assert.ErrorIs(t, err, sentinel)
}

func TestMapTo(t *testing.T) {
	s := MapTo(FromSlice([]int{1, 2, 3}), func(v int) string {
		return string(rune('a' + v - 1))
	})
	out, err := Collect(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out)
}
