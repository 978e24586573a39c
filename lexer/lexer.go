package lexer

import (
	"github.com/hupe1980/factgo/internal/arena"
	"github.com/hupe1980/factgo/internal/intern"
	"github.com/hupe1980/factgo/internal/ring"
	"github.com/hupe1980/factgo/resource"
	"github.com/hupe1980/factgo/span"
	"github.com/hupe1980/factgo/stream"
	"github.com/hupe1980/factgo/token"
)

// DefaultWindowSize is the capacity of the fixed byte window.
const DefaultWindowSize = 4096

// maxTrackedLevels is the depth of the container-kind bit stack.
const maxTrackedLevels = 32

// pending identifies the scanner suspended at a window boundary.
type pending uint8

const (
	pendingNone pending = iota
	pendingString
	pendingNumber
	pendingKeyword
	pendingCommentStart
	pendingCommentSingle
	pendingCommentMulti
	pendingWhitespace
)

// Options configures a Lexer.
type Options struct {
	// WindowSize is the fixed byte window capacity.
	WindowSize int
	// Interner receives string payloads. When nil the lexer owns a fresh
	// table.
	Interner *intern.Table
	// Controller charges side-buffer growth against a memory budget.
	Controller *resource.Controller
	// EmitWhitespace emits whitespace runs as tokens instead of skipping
	// them.
	EmitWhitespace bool
	// EmitComments emits comment tokens instead of skipping them.
	EmitComments bool
}

// DefaultOptions are the options used when none are given.
var DefaultOptions = Options{
	WindowSize:   DefaultWindowSize,
	EmitComments: true,
}

// Lexer is a streaming tokenizer for the JSON-like grammar.
// Not safe for concurrent use.
type Lexer struct {
	window   *ring.Buffer[byte]
	arena    *arena.Arena
	interner *intern.Table
	opts     Options

	pos  uint32
	line uint32
	col  uint32

	depth      uint8
	containers uint32 // bit per tracked level, 1 = object
	nest       int
	expectKey  bool

	finished bool
	done     bool

	// continuation state
	pending  pending
	tokStart uint32
	tokFlags token.Flags
	side     []byte

	strEscape  bool
	strHexLeft uint8

	numState numState

	kwWant    string
	kwKind    token.Kind
	kwMatched int

	commentPrevStar bool
}

// New creates a Lexer.
func New(optFns ...func(*Options)) *Lexer {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.WindowSize <= 0 {
		opts.WindowSize = DefaultWindowSize
	}
	interner := opts.Interner
	if interner == nil {
		interner = intern.NewTable()
	}

	var arenaOpts []arena.Option
	if opts.Controller != nil {
		arenaOpts = append(arenaOpts, arena.WithMemoryAcquirer(acquirer{opts.Controller}))
	}

	return &Lexer{
		window:   ring.New[byte](opts.WindowSize),
		arena:    arena.New(0, arenaOpts...),
		interner: interner,
		opts:     opts,
		line:     1,
		col:      1,
	}
}

// acquirer adapts *resource.Controller to the arena's budget interface.
type acquirer struct {
	ctrl *resource.Controller
}

func (a acquirer) AcquireMemory(amount int64) error { return a.ctrl.AcquireMemory(amount) }
func (a acquirer) ReleaseMemory(amount int64)       { a.ctrl.ReleaseMemory(amount) }

// WithWindowSize sets the fixed window capacity.
func WithWindowSize(n int) func(*Options) {
	return func(o *Options) { o.WindowSize = n }
}

// WithInterner shares an intern table with the caller.
func WithInterner(t *intern.Table) func(*Options) {
	return func(o *Options) { o.Interner = t }
}

// WithController charges lexer memory against a resource budget.
func WithController(c *resource.Controller) func(*Options) {
	return func(o *Options) { o.Controller = c }
}

// WithWhitespace emits whitespace tokens.
func WithWhitespace() func(*Options) {
	return func(o *Options) { o.EmitWhitespace = true }
}

// WithoutComments drops comment tokens instead of emitting them.
func WithoutComments() func(*Options) {
	return func(o *Options) { o.EmitComments = false }
}

// Interner returns the table resolving token payload indexes.
func (l *Lexer) Interner() *intern.Table {
	return l.interner
}

// Feed pushes bytes into the window and returns how many were accepted.
// Bytes that do not fit must be re-offered after more tokens are pulled.
func (l *Lexer) Feed(p []byte) int {
	return l.window.PushSlice(p)
}

// Finish signals that no more input will arrive. Subsequent scans treat an
// empty window as end of input instead of requesting a continuation.
func (l *Lexer) Finish() {
	l.finished = true
}

// Pos returns the current absolute byte offset, line and column.
func (l *Lexer) Pos() (offset, line, col uint32) {
	return l.pos, l.line, l.col
}

// Depth returns the current nesting depth (saturating).
func (l *Lexer) Depth() uint8 {
	return l.depth
}

// consume pops one byte and advances the global cursor.
func (l *Lexer) consume() byte {
	b, _ := l.window.Pop()
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// Next scans one token. The only non-token failure mode is resource
// exhaustion while growing the side buffer.
func (l *Lexer) Next() (token.Token, error) {
	if l.done {
		return l.eofToken(), nil
	}

	switch l.pending {
	case pendingNone:
	case pendingString:
		return l.scanString()
	case pendingNumber:
		return l.scanNumber()
	case pendingKeyword:
		return l.scanKeyword()
	case pendingCommentStart:
		return l.scanCommentStart()
	case pendingCommentSingle:
		return l.scanCommentSingle()
	case pendingCommentMulti:
		return l.scanCommentMulti()
	case pendingWhitespace:
		return l.scanWhitespace()
	}

	// Skip (or gather) whitespace.
	for {
		b, ok := l.window.Peek()
		if !ok {
			if l.finished {
				l.done = true
				return l.eofToken(), nil
			}
			return l.continuation(l.pos), nil
		}
		if !isWhitespace(b) {
			break
		}
		if l.opts.EmitWhitespace {
			l.begin(pendingWhitespace)
			return l.scanWhitespace()
		}
		l.consume()
	}

	start := l.pos
	b, _ := l.window.Peek()

	switch {
	case b == '{':
		l.consume()
		l.pushContainer(true)
		l.expectKey = true
		return l.structural(token.KindBraceOpen, start), nil
	case b == '}':
		l.consume()
		t := l.structural(token.KindBraceClose, start)
		l.popContainer()
		l.expectKey = false
		return t, nil
	case b == '[':
		l.consume()
		l.pushContainer(false)
		l.expectKey = false
		return l.structural(token.KindBracketOpen, start), nil
	case b == ']':
		l.consume()
		t := l.structural(token.KindBracketClose, start)
		l.popContainer()
		return t, nil
	case b == ':':
		l.consume()
		l.expectKey = false
		return l.structural(token.KindColon, start), nil
	case b == ',':
		l.consume()
		if l.topIsObject() {
			l.expectKey = true
		}
		return l.structural(token.KindComma, start), nil
	case b == '"':
		l.consume()
		l.begin(pendingString)
		l.tokStart = start
		return l.scanString()
	case b == '-' || isDigit(b):
		l.begin(pendingNumber)
		return l.scanNumber()
	case b == 't':
		l.beginKeyword("true", token.KindTrue)
		return l.scanKeyword()
	case b == 'f':
		l.beginKeyword("false", token.KindFalse)
		return l.scanKeyword()
	case b == 'n':
		l.beginKeyword("null", token.KindNull)
		return l.scanKeyword()
	case b == '/':
		l.consume()
		l.begin(pendingCommentStart)
		l.tokStart = start
		return l.scanCommentStart()
	case isAlpha(b):
		// Bare identifiers are invalid literals in this grammar.
		l.beginKeyword("", token.KindErr)
		return l.scanKeyword()
	default:
		l.consume()
		return l.errToken(start, "unexpected character"), nil
	}
}

// begin arms a scanner with the current position as token start.
func (l *Lexer) begin(p pending) {
	l.pending = p
	l.tokStart = l.pos
	l.tokFlags = 0
	l.side = l.side[:0]
	l.strEscape = false
	l.strHexLeft = 0
	l.numState = numStart
	l.commentPrevStar = false
}

func (l *Lexer) beginKeyword(want string, kind token.Kind) {
	l.begin(pendingKeyword)
	l.kwWant = want
	l.kwKind = kind
	l.kwMatched = 0
}

func (l *Lexer) pushContainer(isObject bool) {
	if l.nest < maxTrackedLevels {
		if isObject {
			l.containers |= 1 << uint(l.nest)
		} else {
			l.containers &^= 1 << uint(l.nest)
		}
	}
	l.nest++
	if l.depth < token.MaxDepth {
		l.depth++
	}
}

func (l *Lexer) popContainer() {
	if l.nest > 0 {
		l.nest--
	}
	if l.depth > 0 {
		l.depth--
	}
}

func (l *Lexer) topIsObject() bool {
	if l.nest == 0 || l.nest > maxTrackedLevels {
		return false
	}
	return l.containers&(1<<uint(l.nest-1)) != 0
}

func (l *Lexer) structural(kind token.Kind, start uint32) token.Token {
	return token.Token{
		Span:  span.Span{Start: start, End: l.pos},
		Kind:  kind,
		Depth: l.depth,
	}
}

func (l *Lexer) eofToken() token.Token {
	l.done = true
	return token.Token{
		Span: span.Span{Start: l.pos, End: l.pos},
		Kind: token.KindEOF,
	}
}

// continuation emits the "more input required" sentinel. Scanner state, if
// any, stays armed for the next call.
func (l *Lexer) continuation(start uint32) token.Token {
	return token.Token{
		Span:  span.Span{Start: start, End: l.pos},
		Kind:  token.KindContinuation,
		Flags: token.FlagContinuation,
		Depth: l.depth,
	}
}

// errToken finalizes the current scan as a diagnostic token.
func (l *Lexer) errToken(start uint32, msg string) token.Token {
	l.pending = pendingNone
	l.side = l.side[:0]
	return token.Token{
		Span:    span.Span{Start: start, End: l.pos},
		Kind:    token.KindErr,
		Depth:   l.depth,
		Payload: l.interner.Intern(msg),
	}
}

// emit finalizes the current scan as a completed token.
func (l *Lexer) emit(kind token.Kind, payload uint32) token.Token {
	t := token.Token{
		Span:    span.Span{Start: l.tokStart, End: l.pos},
		Kind:    kind,
		Flags:   l.tokFlags,
		Depth:   l.depth,
		Payload: payload,
	}
	l.pending = pendingNone
	l.side = l.side[:0]
	return t
}

// push appends a byte to the side buffer, growing through the arena.
func (l *Lexer) push(b byte) error {
	grown, err := l.arena.AppendByte(l.side, b)
	if err != nil {
		return err
	}
	l.side = grown
	return nil
}

// Stream returns a token stream pulling from the lexer until EOF. The input
// must be fully fed and finished; a continuation would otherwise surface as a
// sentinel token in the stream.
func (l *Lexer) Stream() *stream.Stream[token.Token] {
	return stream.Generate(func() (token.Token, bool, error) {
		t, err := l.Next()
		if err != nil {
			return token.Token{}, false, err
		}
		if t.Kind == token.KindEOF {
			return token.Token{}, false, nil
		}
		return t, true, nil
	})
}
