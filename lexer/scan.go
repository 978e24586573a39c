package lexer

import (
	"github.com/hupe1980/factgo/token"
)

// numState tracks the numeric grammar position across window boundaries.
type numState uint8

const (
	numStart numState = iota // nothing or only "-" consumed
	numIntZero
	numIntDigits
	numFracDot
	numFracDigits
	numExpStart
	numExpSign
	numExpZero
	numExpDigits
)

func isHex(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// scanString consumes until the closing quote. The side buffer holds the raw
// contents without the surrounding quotes, escapes undecoded.
func (l *Lexer) scanString() (token.Token, error) {
	for {
		b, ok := l.window.Peek()
		if !ok {
			if l.finished {
				return l.errToken(l.tokStart, "unterminated string"), nil
			}
			return l.continuation(l.tokStart), nil
		}
		l.consume()

		if l.strHexLeft > 0 {
			if !isHex(b) {
				return l.errToken(l.tokStart, "bad unicode escape"), nil
			}
			l.strHexLeft--
			if err := l.push(b); err != nil {
				return token.Token{}, err
			}
			continue
		}

		if l.strEscape {
			switch b {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				l.strHexLeft = 4
			default:
				return l.errToken(l.tokStart, "bad escape"), nil
			}
			l.strEscape = false
			if err := l.push(b); err != nil {
				return token.Token{}, err
			}
			continue
		}

		switch b {
		case '"':
			kind := token.KindString
			if l.topIsObject() && l.expectKey {
				kind = token.KindPropertyName
			}
			return l.emit(kind, l.interner.InternBytes(l.side)), nil
		case '\\':
			l.tokFlags |= token.FlagHasEscapes
			l.strEscape = true
			if err := l.push(b); err != nil {
				return token.Token{}, err
			}
		case '\n':
			return l.errToken(l.tokStart, "unterminated string"), nil
		default:
			if err := l.push(b); err != nil {
				return token.Token{}, err
			}
		}
	}
}

// scanNumber enforces the literal grammar exactly: no redundant leading zero
// in the mantissa or exponent, a dot requires digits on both sides, a single
// optional sign on mantissa and exponent.
func (l *Lexer) scanNumber() (token.Token, error) {
	for {
		b, ok := l.window.Peek()
		if !ok {
			if !l.finished {
				return l.continuation(l.tokStart), nil
			}
			return l.finishNumber()
		}
		accept, diag := l.numStep(b)
		if diag != "" {
			l.consume()
			return l.errToken(l.tokStart, diag), nil
		}
		if !accept {
			return l.finishNumber()
		}
		l.consume()
		if err := l.push(b); err != nil {
			return token.Token{}, err
		}
	}
}

// numStep decides whether b extends the literal. A non-empty diag rejects the
// literal outright; accept=false ends it before b.
func (l *Lexer) numStep(b byte) (accept bool, diag string) {
	switch l.numState {
	case numStart:
		switch {
		case b == '-' && len(l.side) == 0:
			l.tokFlags |= token.FlagNegative
			return true, ""
		case b == '0':
			l.numState = numIntZero
			return true, ""
		case isDigit(b):
			l.numState = numIntDigits
			return true, ""
		}
		return false, ""

	case numIntZero:
		switch {
		case isDigit(b):
			return false, "leading zero in number"
		case b == '.':
			l.tokFlags |= token.FlagFloat
			l.numState = numFracDot
			return true, ""
		case b == 'e' || b == 'E':
			l.tokFlags |= token.FlagScientific
			l.numState = numExpStart
			return true, ""
		}
		return false, ""

	case numIntDigits:
		switch {
		case isDigit(b):
			return true, ""
		case b == '.':
			l.tokFlags |= token.FlagFloat
			l.numState = numFracDot
			return true, ""
		case b == 'e' || b == 'E':
			l.tokFlags |= token.FlagScientific
			l.numState = numExpStart
			return true, ""
		}
		return false, ""

	case numFracDot:
		if isDigit(b) {
			l.numState = numFracDigits
			return true, ""
		}
		return false, ""

	case numFracDigits:
		switch {
		case isDigit(b):
			return true, ""
		case b == 'e' || b == 'E':
			l.tokFlags |= token.FlagScientific
			l.numState = numExpStart
			return true, ""
		}
		return false, ""

	case numExpStart:
		switch {
		case b == '+' || b == '-':
			l.numState = numExpSign
			return true, ""
		case b == '0':
			l.numState = numExpZero
			return true, ""
		case isDigit(b):
			l.numState = numExpDigits
			return true, ""
		}
		return false, ""

	case numExpSign:
		switch {
		case b == '0':
			l.numState = numExpZero
			return true, ""
		case isDigit(b):
			l.numState = numExpDigits
			return true, ""
		}
		return false, ""

	case numExpZero:
		if isDigit(b) {
			return false, "leading zero in exponent"
		}
		return false, ""

	case numExpDigits:
		if isDigit(b) {
			return true, ""
		}
		return false, ""

	default:
		panic("lexer: invalid number state")
	}
}

func (l *Lexer) finishNumber() (token.Token, error) {
	switch l.numState {
	case numIntZero, numIntDigits, numFracDigits, numExpZero, numExpDigits:
	case numStart:
		return l.errToken(l.tokStart, "minus without digits"), nil
	case numFracDot:
		return l.errToken(l.tokStart, "missing digits after decimal point"), nil
	default:
		return l.errToken(l.tokStart, "missing exponent digits"), nil
	}
	return l.emit(token.KindNumber, l.numberPayload()), nil
}

// numberPayload returns the inline value for small non-negative integers,
// otherwise the interned lexeme index. The flags tell the consumer which
// form it got: an unflagged number is inline.
func (l *Lexer) numberPayload() uint32 {
	if l.tokFlags&(token.FlagFloat|token.FlagNegative|token.FlagScientific) == 0 && len(l.side) <= 9 {
		var v uint32
		for _, b := range l.side {
			v = v*10 + uint32(b-'0')
		}
		return v
	}
	return l.interner.InternBytes(l.side)
}

// scanKeyword matches true/false/null; anything else alphabetic is an
// invalid literal.
func (l *Lexer) scanKeyword() (token.Token, error) {
	if l.kwKind == token.KindErr {
		return l.scanKeywordJunk()
	}
	for l.kwMatched < len(l.kwWant) {
		b, ok := l.window.Peek()
		if !ok {
			if l.finished {
				return l.errToken(l.tokStart, "invalid literal"), nil
			}
			return l.continuation(l.tokStart), nil
		}
		if b != l.kwWant[l.kwMatched] {
			return l.scanKeywordJunk()
		}
		l.consume()
		if err := l.push(b); err != nil {
			return token.Token{}, err
		}
		l.kwMatched++
	}

	// Full match; the literal must end at a delimiter.
	b, ok := l.window.Peek()
	if !ok {
		if !l.finished {
			return l.continuation(l.tokStart), nil
		}
		return l.emit(l.kwKind, 0), nil
	}
	if isAlpha(b) || isDigit(b) {
		return l.scanKeywordJunk()
	}
	return l.emit(l.kwKind, 0), nil
}

func (l *Lexer) scanKeywordJunk() (token.Token, error) {
	// Junk mode survives window boundaries through the keyword marker.
	l.kwKind = token.KindErr
	l.kwWant = ""
	l.kwMatched = 0
	for {
		b, ok := l.window.Peek()
		if !ok {
			if l.finished {
				return l.errToken(l.tokStart, "invalid literal"), nil
			}
			return l.continuation(l.tokStart), nil
		}
		if !isAlpha(b) && !isDigit(b) {
			return l.errToken(l.tokStart, "invalid literal"), nil
		}
		l.consume()
		if err := l.push(b); err != nil {
			return token.Token{}, err
		}
	}
}

// scanCommentStart has consumed "/" and decides between the comment forms.
func (l *Lexer) scanCommentStart() (token.Token, error) {
	b, ok := l.window.Peek()
	if !ok {
		if l.finished {
			return l.errToken(l.tokStart, "unexpected character"), nil
		}
		return l.continuation(l.tokStart), nil
	}
	switch b {
	case '/':
		l.consume()
		l.pending = pendingCommentSingle
		return l.scanCommentSingle()
	case '*':
		l.consume()
		l.pending = pendingCommentMulti
		l.tokFlags |= token.FlagMultiline
		return l.scanCommentMulti()
	default:
		return l.errToken(l.tokStart, "unexpected character"), nil
	}
}

func (l *Lexer) scanCommentSingle() (token.Token, error) {
	for {
		b, ok := l.window.Peek()
		if !ok {
			if l.finished {
				return l.finishComment()
			}
			return l.continuation(l.tokStart), nil
		}
		if b == '\n' {
			// The newline stays in the window as whitespace.
			return l.finishComment()
		}
		l.consume()
		if err := l.push(b); err != nil {
			return token.Token{}, err
		}
	}
}

func (l *Lexer) scanCommentMulti() (token.Token, error) {
	for {
		b, ok := l.window.Peek()
		if !ok {
			if l.finished {
				return l.errToken(l.tokStart, "unterminated comment"), nil
			}
			return l.continuation(l.tokStart), nil
		}
		l.consume()
		if l.commentPrevStar && b == '/' {
			// Drop the terminator's "*" from the content.
			l.side = l.side[:len(l.side)-1]
			return l.finishComment()
		}
		l.commentPrevStar = b == '*'
		if err := l.push(b); err != nil {
			return token.Token{}, err
		}
	}
}

func (l *Lexer) finishComment() (token.Token, error) {
	if !l.opts.EmitComments {
		l.pending = pendingNone
		l.side = l.side[:0]
		return l.Next()
	}
	return l.emit(token.KindComment, l.interner.InternBytes(l.side)), nil
}

func (l *Lexer) scanWhitespace() (token.Token, error) {
	for {
		b, ok := l.window.Peek()
		if !ok {
			if l.finished {
				return l.emit(token.KindWhitespace, 0), nil
			}
			return l.continuation(l.tokStart), nil
		}
		if !isWhitespace(b) {
			return l.emit(token.KindWhitespace, 0), nil
		}
		l.consume()
	}
}
