package intern

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternDedup(t *testing.T) {
	tb := NewTable()

	a := tb.Intern("hello")
	b := tb.Intern("world")
	c := tb.Intern("hello")

	assert.Equal(t, a, c)
	assert.NotEqual(t, a, b)

	s, ok := tb.Lookup(a)
	require.True(t, ok)
	assert.Equal(t, "hello", s)
}

func TestEmptyStringIsHandleZero(t *testing.T) {
	tb := NewTable()
	assert.Equal(t, uint32(0), tb.Intern(""))

	s, ok := tb.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, "", s)
}

func TestLookupUnknown(t *testing.T) {
	tb := NewTable()
	_, ok := tb.Lookup(99)
	assert.False(t, ok)
}

func TestInternBytes(t *testing.T) {
	tb := NewTable()
	h := tb.Intern("name")
	assert.Equal(t, h, tb.InternBytes([]byte("name")))
}

func TestConcurrentIntern(t *testing.T) {
	tb := NewTable()
	var wg sync.WaitGroup
	handles := make([]uint32, 16)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = tb.Intern("same")
		}(i)
	}
	wg.Wait()
	for _, h := range handles[1:] {
		assert.Equal(t, handles[0], h)
	}
}
