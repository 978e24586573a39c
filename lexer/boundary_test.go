package lexer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/factgo/token"
)

const boundaryDoc = `{
	// configuration record
	"name": "hello\nworld",
	"scale": -12.5e+2,
	"ok": true, "missing": null,
	/* spans
	   lines */
	"items": [1, 2.5, "a rather longer string value", false]
} `

// resolved pairs a completed token with its payload resolved through the
// lexer's intern table, so runs with independent interners compare equal.
type resolved struct {
	tok token.Token
	str string
}

func resolve(toks []token.Token, l *Lexer) []resolved {
	out := make([]resolved, len(toks))
	for i, tok := range toks {
		r := resolved{tok: tok}
		switch tok.Kind {
		case token.KindString, token.KindPropertyName, token.KindComment, token.KindErr:
			r.str, _ = l.Interner().Lookup(tok.Payload)
			r.tok.Payload = 0
		case token.KindNumber:
			if tok.Flags != 0 {
				r.str, _ = l.Interner().Lookup(tok.Payload)
				r.tok.Payload = 0
			}
		}
		out[i] = r
	}
	return out
}

func TestSplitAtEveryOffset(t *testing.T) {
	doc := []byte(boundaryDoc)

	toks, l := lex(t, [][]byte{doc})
	want := resolve(toks, l)
	require.NotEmpty(t, want)

	for split := 0; split <= len(doc); split++ {
		toks, l := lex(t, [][]byte{doc[:split], doc[split:]})
		got := resolve(toks, l)
		assert.Equal(t, want, got, "split at offset %d", split)
	}
}

func TestThreeWaySplits(t *testing.T) {
	doc := []byte(boundaryDoc)

	toks, l := lex(t, [][]byte{doc})
	want := resolve(toks, l)

	for _, step := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("step_%d", step), func(t *testing.T) {
			var chunks [][]byte
			for i := 0; i < len(doc); i += step {
				end := i + step
				if end > len(doc) {
					end = len(doc)
				}
				chunks = append(chunks, doc[i:end])
			}
			toks, l := lex(t, chunks)
			assert.Equal(t, want, resolve(toks, l))
		})
	}
}

func TestTokensLargerThanWindow(t *testing.T) {
	doc := []byte(`"this string is far longer than the window it flows through"`)

	toks, l := lex(t, [][]byte{doc}, WithWindowSize(8))
	require.Len(t, toks, 1)
	assert.Equal(t, token.KindString, toks[0].Kind)

	content, ok := l.Interner().Lookup(toks[0].Payload)
	require.True(t, ok)
	assert.Equal(t, "this string is far longer than the window it flows through", content)
	assert.Equal(t, uint32(0), toks[0].Span.Start)
	assert.Equal(t, uint32(len(doc)), toks[0].Span.End)
}

func TestSmallWindowMatchesLarge(t *testing.T) {
	doc := []byte(boundaryDoc)

	toks, l := lex(t, [][]byte{doc})
	want := resolve(toks, l)

	toks, l = lex(t, [][]byte{doc}, WithWindowSize(5))
	assert.Equal(t, want, resolve(toks, l))
}

func TestCompletedTokensNeverFlagContinuation(t *testing.T) {
	doc := []byte(boundaryDoc)
	for split := 0; split <= len(doc); split++ {
		toks, _ := lex(t, [][]byte{doc[:split], doc[split:]})
		for _, tok := range toks {
			assert.False(t, tok.Flags.Is(token.FlagContinuation),
				"split %d: completed %s token carries the continuation flag", split, tok.Kind)
		}
	}
}
