// Package lexer implements a streaming tokenizer that survives arbitrary
// input chunking.
//
// A Lexer owns a fixed-capacity byte window (4 KiB by default) as its only
// required memory. Callers push bytes with Feed and pull fixed-size tokens
// with Next; a single global byte/line/column cursor advances across feeds so
// token spans are absolute regardless of chunk boundaries.
//
// # Boundary continuation
//
// A scanner (string, number, keyword, comment) may exhaust the window before
// finding its terminator. The lexer then records the partial scanner state,
// spills the bytes gathered so far into a growable side buffer, and returns a
// sentinel continuation token. After the caller supplies more bytes the exact
// scanner resumes where it stopped. Tokenizing a document in one shot and
// tokenizing it split at every possible byte offset yield identical completed
// token sequences; only the interleaved continuation sentinels differ.
//
// Malformed input (bad escape, leading-zero numeral, unterminated string at
// end of input, invalid keyword) surfaces as an err-kind token carrying an
// interned diagnostic. Errors are local to one token; the stream continues.
//
// The ships-with grammar is the JSON-like configuration dialect (strict JSON
// literals plus // and /* */ comments). Additional languages plug in through
// an explicitly constructed Registry; there is no process-wide language
// table.
package lexer
