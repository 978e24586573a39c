package factgo_test

import (
	"context"
	"fmt"

	factgo "github.com/hupe1980/factgo"
	"github.com/hupe1980/factgo/fact"
	"github.com/hupe1980/factgo/query"
	"github.com/hupe1980/factgo/span"
	"github.com/hupe1980/factgo/token"
)

func Example() {
	a := factgo.New()

	// Tokenize a JSON-like document.
	tokens, _ := a.Tokenize("json", []byte(`{"name": "parse"}`))
	n := 0
	for {
		_, ok, err := tokens.Next()
		if err != nil || !ok {
			break
		}
		n++
	}
	fmt.Println("tokens:", n)

	// Record facts derived from the document.
	_, _ = a.AppendFacts(context.Background(), []fact.Fact{
		fact.New(span.New(0, 17), fact.PredIsObject, 0.95, fact.Absent()),
		fact.New(span.New(1, 7), fact.PredIsProperty, 0.9, fact.Absent()),
	})

	// Query the high-confidence ones back.
	q, _ := query.NewBuilder().
		Where(query.ConfidenceGte(0.92)).
		Build()
	results, _ := a.Query(q)
	facts, _ := results.Collect()
	fmt.Println("facts:", len(facts))

	// Output:
	// tokens: 5
	// facts: 1
}

func ExampleAnalyzer_Tokenize() {
	a := factgo.New()

	s, _ := a.Tokenize("json", []byte(`[1, "two"]`))
	for {
		t, ok, err := s.Next()
		if err != nil || !ok {
			break
		}
		if t.Kind == token.KindString {
			content, _ := a.Interner().Lookup(t.Payload)
			fmt.Println(content)
		}
	}
	// Output:
	// two
}
