package testutil

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/span"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns a pseudo-random number in [0,1).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// RandomSpan returns a span with bounds in [0, maxOffset) and a length of
// at least 1.
func RandomSpan(rng *RNG, maxOffset uint32) span.Span {
	start := uint32(rng.Intn(int(maxOffset - 1)))
	length := uint32(rng.Intn(int(maxOffset-start))) + 1
	if start+length > maxOffset {
		length = maxOffset - start
	}
	return span.New(start, start+length)
}

// RandomFacts returns n facts with random subjects, valid non-zero
// predicates and random confidences.
func RandomFacts(rng *RNG, n int, maxOffset uint32) []fact.Fact {
	preds := []fact.Predicate{
		fact.PredIsToken, fact.PredIsIdent, fact.PredIsFunction,
		fact.PredIsClass, fact.PredIsObject, fact.PredIsProperty,
		fact.PredIsValue, fact.PredHasName,
	}
	out := make([]fact.Fact, n)
	for i := range out {
		out[i] = fact.New(
			RandomSpan(rng, maxOffset),
			preds[rng.Intn(len(preds))],
			rng.Float32(),
			fact.Absent(),
		)
	}
	return out
}

// RandomDocument returns a small well-formed JSON document with nesting up
// to depth levels. Useful for exercising the tokenizer.
func RandomDocument(rng *RNG, depth int) string {
	var b strings.Builder
	writeValue(rng, &b, depth)
	return b.String()
}

func writeValue(rng *RNG, b *strings.Builder, depth int) {
	if depth <= 0 {
		switch rng.Intn(4) {
		case 0:
			b.WriteString(strconv.Itoa(rng.Intn(10000)))
		case 1:
			b.WriteString(`"v` + strconv.Itoa(rng.Intn(100)) + `"`)
		case 2:
			b.WriteString("true")
		default:
			b.WriteString("null")
		}
		return
	}

	if rng.Intn(2) == 0 {
		b.WriteByte('{')
		n := rng.Intn(3) + 1
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(`"k` + strconv.Itoa(i) + `": `)
			writeValue(rng, b, depth-1)
		}
		b.WriteByte('}')
		return
	}

	b.WriteByte('[')
	n := rng.Intn(3) + 1
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(rng, b, depth-1)
	}
	b.WriteByte(']')
}
