// Package factgo provides an embeddable substrate for source-code analysis
// tooling: packed source intervals, fixed-size facts with confidence
// weights, closed stream variants, a boundary-safe streaming tokenizer and
// an indexed, queryable fact store.
//
// # Quick Start
//
//	a := factgo.New()
//
//	// Tokenize a JSON-like document, feeding bytes incrementally.
//	tokens, _ := a.Tokenize("json", []byte(`{"answer": 42}`))
//
//	// Record derived facts.
//	id, _ := a.AppendFact(fact.New(span.New(0, 14), fact.PredIsObject, 0.95, fact.Absent()))
//
//	// Query them back.
//	q, _ := query.NewBuilder().
//	    Where(query.PredicateEq(fact.PredIsObject)).
//	    OrderBy(query.FieldConfidence, query.Desc).
//	    Build()
//	results, _ := a.Query(q)
//
// All data lives in memory; the package has no file, wire or CLI surface.
// Writers must be serialized by the caller (single-writer, many-reader).
package factgo
