// Package token defines the fixed-size token record emitted by the streaming
// lexer. Tokens are 16 bytes and copied by value; variable-size payloads
// (string contents, long numbers) live in the lexer's intern table and are
// referenced through the Payload field.
package token

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/factgo/span"
)

// Kind classifies a token.
type Kind uint8

const (
	// KindInvalid is the zero kind.
	KindInvalid Kind = iota
	// KindBraceOpen is "{".
	KindBraceOpen
	// KindBraceClose is "}".
	KindBraceClose
	// KindBracketOpen is "[".
	KindBracketOpen
	// KindBracketClose is "]".
	KindBracketClose
	// KindColon is ":".
	KindColon
	// KindComma is ",".
	KindComma
	// KindPropertyName is a string in object-key position.
	KindPropertyName
	// KindString is a string in value position.
	KindString
	// KindNumber is a numeric literal.
	KindNumber
	// KindTrue is the keyword true.
	KindTrue
	// KindFalse is the keyword false.
	KindFalse
	// KindNull is the keyword null.
	KindNull
	// KindWhitespace is a run of whitespace (emitted only when requested).
	KindWhitespace
	// KindComment is a comment.
	KindComment
	// KindEOF marks the end of input.
	KindEOF
	// KindErr carries a diagnostic for malformed input.
	KindErr
	// KindContinuation means "scan incomplete, supply more input".
	KindContinuation
)

var kindNames = [...]string{
	"invalid", "brace_open", "brace_close", "bracket_open", "bracket_close",
	"colon", "comma", "property_name", "string", "number", "true", "false",
	"null", "whitespace", "comment", "eof", "err", "continuation",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Flags carries per-token bit flags.
type Flags uint16

const (
	// FlagHasEscapes marks a string containing escape sequences.
	FlagHasEscapes Flags = 1 << iota
	// FlagFloat marks a number with a fractional part.
	FlagFloat
	// FlagNegative marks a negative number.
	FlagNegative
	// FlagScientific marks a number in exponent notation.
	FlagScientific
	// FlagMultiline marks a block comment.
	FlagMultiline
	// FlagContinuation marks the "more input required" sentinel. Completed
	// tokens never carry it.
	FlagContinuation
)

// MaxDepth is the saturation limit of the nesting counter.
const MaxDepth = 255

// Token is the fixed 16-byte lexer output record.
// Payload is an interned-string index for strings, property names, comments
// and diagnostics, and an inline numeric hint for small integers.
type Token struct {
	Span    span.Span
	Payload uint32
	Flags   Flags
	Kind    Kind
	Depth   uint8
}

// Compile-time size assertion: a Token must stay within 16 bytes.
const _ = uint(16 - unsafe.Sizeof(Token{}))

// Tagged pairs a token with the language that produced it, for consumers
// that multiplex several lexers into one stream.
type Tagged struct {
	Token Token
	Lang  uint8
}

// Compile-time size assertion: the union form must stay within 24 bytes.
const _ = uint(24 - unsafe.Sizeof(Tagged{}))

// Is reports whether the flag is set.
func (f Flags) Is(flag Flags) bool { return f&flag != 0 }

// IsStructural reports whether the kind is a structural delimiter.
func (k Kind) IsStructural() bool {
	switch k {
	case KindBraceOpen, KindBraceClose, KindBracketOpen, KindBracketClose, KindColon, KindComma:
		return true
	default:
		return false
	}
}

// String returns a debug representation.
func (t Token) String() string {
	return fmt.Sprintf("Token{%s %s depth=%d flags=%#x payload=%d}",
		t.Kind, t.Span, t.Depth, uint16(t.Flags), t.Payload)
}
