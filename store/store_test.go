package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/span"
)

func newFact(start, end uint32, p fact.Predicate, conf float32) fact.Fact {
	return fact.New(span.New(start, end), p, conf, fact.Absent())
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	s := New()

	for i := 1; i <= 5; i++ {
		id, err := s.Append(newFact(0, uint32(i), fact.PredIsToken, 1))
		require.NoError(t, err)
		assert.Equal(t, fact.ID(i), id)
	}
	assert.Equal(t, 5, s.Len())
}

func TestAppendRejectsInvalidPredicate(t *testing.T) {
	s := New()

	_, err := s.Append(newFact(0, 1, fact.PredInvalid, 1))
	require.ErrorIs(t, err, ErrInvalidPredicate)
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Generation())
}

func TestGet(t *testing.T) {
	s := New()
	id, err := s.Append(newFact(3, 9, fact.PredIsIdent, 0.5))
	require.NoError(t, err)

	got, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, span.New(3, 9), got.Subject)
	assert.Equal(t, fact.PredIsIdent, got.Predicate())

	_, ok = s.Get(0)
	assert.False(t, ok)
	_, ok = s.Get(42)
	assert.False(t, ok)
}

func TestAppendBatchSingleGenerationBump(t *testing.T) {
	s := New()

	gen := s.Generation()
	ids, err := s.AppendBatch(context.Background(), []fact.Fact{
		newFact(0, 1, fact.PredIsToken, 1),
		newFact(1, 2, fact.PredIsToken, 1),
		newFact(2, 3, fact.PredIsIdent, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, []fact.ID{1, 2, 3}, ids)
	assert.Equal(t, gen+1, s.Generation())
}

func TestAppendBatchAtomicOnBadFact(t *testing.T) {
	s := New()

	_, err := s.AppendBatch(context.Background(), []fact.Fact{
		newFact(0, 1, fact.PredIsToken, 1),
		newFact(1, 2, fact.PredInvalid, 1),
	})
	require.ErrorIs(t, err, ErrInvalidPredicate)
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Generation())
}

func TestByPredicate(t *testing.T) {
	s := New()
	mustAppend := func(f fact.Fact) fact.ID {
		id, err := s.Append(f)
		require.NoError(t, err)
		return id
	}

	a := mustAppend(newFact(0, 1, fact.PredIsFunction, 0.9))
	mustAppend(newFact(1, 2, fact.PredIsClass, 0.3))
	b := mustAppend(newFact(2, 3, fact.PredIsFunction, 0.4))

	fns := s.ByPredicate(fact.PredIsFunction)
	require.Len(t, fns, 2)
	assert.Equal(t, a, fns[0].ID)
	assert.Equal(t, b, fns[1].ID)

	assert.Nil(t, s.ByPredicate(fact.PredRefersTo))
}

func TestOverlapping(t *testing.T) {
	s := New()
	spans := []span.Span{
		span.New(0, 10),
		span.New(5, 15),
		span.New(20, 30),
		span.New(0, 100),
		span.New(40, 41),
	}
	for _, sp := range spans {
		_, err := s.Append(fact.New(sp, fact.PredIsToken, 1, fact.Absent()))
		require.NoError(t, err)
	}

	ids := func(fs []fact.Fact) []fact.ID {
		out := make([]fact.ID, len(fs))
		for i, f := range fs {
			out[i] = f.ID
		}
		return out
	}

	tests := []struct {
		name  string
		query span.Span
		want  []fact.ID
	}{
		{"hits two plus cover", span.New(8, 12), []fact.ID{1, 2, 4}},
		{"disjoint gap", span.New(16, 20), []fact.ID{4}},
		{"point-sized", span.New(25, 26), []fact.ID{3, 4}},
		{"beyond everything", span.New(200, 300), nil},
		{"single byte fact", span.New(40, 50), []fact.ID{4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(s.Overlapping(tt.query))
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestOverlappingAfterInterleavedAppends(t *testing.T) {
	s := New()

	_, err := s.Append(newFact(0, 10, fact.PredIsToken, 1))
	require.NoError(t, err)

	// First query seals the index; the next append must be visible anyway.
	require.Len(t, s.Overlapping(span.New(0, 5)), 1)

	_, err = s.Append(newFact(2, 4, fact.PredIsToken, 1))
	require.NoError(t, err)
	assert.Len(t, s.Overlapping(span.New(0, 5)), 2)
}

func TestConcurrentRangeQueries(t *testing.T) {
	s := New()

	for i := 0; i < 2000; i++ {
		_, err := s.Append(newFact(uint32(i), uint32(i+10), fact.PredIsToken, 1))
		require.NoError(t, err)
	}

	// The first read after an append reseals the range index; concurrent
	// readers must be able to race for that reseal. Run under -race.
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				q := span.New(uint32(g*100+i), uint32(g*100+i+20))
				assert.NotEmpty(t, s.Overlapping(q))
				assert.NotEmpty(t, s.StartBetween(q.Start, q.End))
			}
		}(g)
	}
	wg.Wait()
}

func TestReset(t *testing.T) {
	s := New()
	_, err := s.Append(newFact(0, 1, fact.PredIsToken, 1))
	require.NoError(t, err)
	gen := s.Generation()

	s.Reset()

	assert.Zero(t, s.Len())
	assert.Greater(t, s.Generation(), gen)
	assert.Empty(t, s.ByPredicate(fact.PredIsToken))
	assert.Empty(t, s.Overlapping(span.New(0, 10)))
}

func TestResultCacheCoherence(t *testing.T) {
	s := New()
	_, err := s.Append(newFact(0, 1, fact.PredIsToken, 1))
	require.NoError(t, err)

	const key = 0xdeadbeef
	res := s.ByPredicate(fact.PredIsToken)
	s.CacheResult(key, res)

	got, ok := s.CachedResult(key)
	require.True(t, ok)
	assert.Equal(t, res, got)

	// Any mutation invalidates the entry.
	_, err = s.Append(newFact(1, 2, fact.PredIsToken, 1))
	require.NoError(t, err)
	_, ok = s.CachedResult(key)
	assert.False(t, ok)
}

func TestResultCacheEviction(t *testing.T) {
	c := NewResultCache(2)

	c.Put(1, 0, nil)
	c.Put(2, 0, nil)

	_, ok := c.Get(1, 0) // touch 1 so 2 becomes the LRU
	require.True(t, ok)

	c.Put(3, 0, nil)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get(2, 0)
	assert.False(t, ok, "LRU entry evicted")
	_, ok = c.Get(1, 0)
	assert.True(t, ok)
	_, ok = c.Get(3, 0)
	assert.True(t, ok)
}

func TestStats(t *testing.T) {
	s := New()

	_, err := s.Append(newFact(0, 1, fact.PredIsToken, 1))
	require.NoError(t, err)
	_, err = s.AppendBatch(context.Background(), []fact.Fact{
		newFact(1, 2, fact.PredIsToken, 1),
		newFact(2, 3, fact.PredIsToken, 1),
	})
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 3, st.Facts)
	assert.Equal(t, int64(3), st.Appends)
	assert.Equal(t, int64(1), st.Batches)
	assert.Equal(t, uint64(2), st.Generation)
}

func BenchmarkOverlapping(b *testing.B) {
	s := New()
	for i := 0; i < 10000; i++ {
		start := uint32(i * 7 % 65536)
		_, _ = s.Append(fact.New(span.New(start, start+16), fact.PredIsToken, 1, fact.Absent()))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Overlapping(span.New(1000, 1100))
	}
}
