// Package query implements a small query engine over a fact store: a fluent
// builder producing a Query AST, an optimizer applying semantics-preserving
// rewrites, a planner choosing between full, predicate-indexed and
// range-indexed scans, and an executor yielding result streams.
//
// Invalid field/operator combinations fail when the query is built, not when
// it runs. Executing the same query twice against an unmutated store yields
// identical ordered results.
package query
