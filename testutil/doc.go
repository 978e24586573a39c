// Package testutil provides testing utilities for factgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random number generator and helpers
// for generating random spans, facts and JSON-like documents.
//
//	rng := testutil.NewRNG(seed)
//	facts := testutil.RandomFacts(rng, 1000, 1<<16)
//	doc := testutil.RandomDocument(rng, 3)
package testutil
