package mathml

import (
	"fmt"
	"strings"
)

// Reserved code points delimiting math objects inside paragraph text.
// See https://learn.microsoft.com/en-us/archive/blogs/murrays/officemath.
const (
	MarkerStart = "\uFDD0"
	MarkerSep   = "\uFDEE"
	MarkerEnd   = "\uFDEF"
)

// TokenKind discriminates Token values.
type TokenKind uint8

// Token kinds.
const (
	TokenEOF TokenKind = iota
	TokenText
	TokenStart
	TokenSep
	TokenEnd
)

// Token is one lexical unit of the math stream.
// Text is set for TokenText, Object for TokenStart, and Type for TokenStart,
// TokenSep and TokenEnd.
type Token struct {
	Kind   TokenKind
	Text   string
	Type   ObjectType
	Object Object
}

// Is reports whether the token is a separator or end of the given kind for typ.
func (t Token) Is(kind TokenKind, typ ObjectType) bool {
	return t.Kind == kind && t.Type == typ
}

// String renders the token for error messages.
func (t Token) String() string {
	switch t.Kind {
	case TokenText:
		return fmt.Sprintf("Text(%q)", t.Text)
	case TokenStart:
		return fmt.Sprintf("Start(%s)", t.Type)
	case TokenSep:
		return fmt.Sprintf("Sep(%s)", t.Type)
	case TokenEnd:
		return fmt.Sprintf("End(%s)", t.Type)
	default:
		return "EOF"
	}
}

// Lexer splits (text, object) segments into tokens.
// It performs no nesting or arity validation; that is the parser's job.
type Lexer struct {
	queue   []Segment
	pending *Segment
}

// NewLexer creates a Lexer over a copy of segments.
func NewLexer(segments []Segment) *Lexer {
	queue := make([]Segment, len(segments))
	copy(queue, segments)
	return &Lexer{queue: queue}
}

// Next pops the front segment and classifies it.
// Once the queue is drained it returns an EOF token on every call.
func (l *Lexer) Next() (Token, error) {
	var seg Segment
	switch {
	case l.pending != nil:
		seg, l.pending = *l.pending, nil
	case len(l.queue) > 0:
		seg = l.queue[0]
		l.queue = l.queue[1:]
	default:
		return Token{Kind: TokenEOF}, nil
	}
	text, obj := seg.Text, seg.Object

	switch {
	case text == MarkerStart:
		return Token{Kind: TokenStart, Type: obj.Type, Object: obj}, nil
	case text == MarkerSep:
		return Token{Kind: TokenSep, Type: obj.Type}, nil
	case text == MarkerEnd:
		return Token{Kind: TokenEnd, Type: obj.Type}, nil
	case strings.HasPrefix(text, MarkerStart):
		l.pushFront(Segment{Text: text[len(MarkerStart):], Object: obj})
		return Token{Kind: TokenStart, Type: obj.Type, Object: obj}, nil
	case strings.HasSuffix(text, MarkerSep):
		l.pushFront(Segment{Text: MarkerSep, Object: obj})
		return Token{Kind: TokenText, Text: text[:len(text)-len(MarkerSep)]}, nil
	case strings.HasSuffix(text, MarkerEnd):
		l.pushFront(Segment{Text: MarkerEnd, Object: obj})
		return Token{Kind: TokenText, Text: text[:len(text)-len(MarkerEnd)]}, nil
	default:
		return Token{Kind: TokenText, Text: text}, nil
	}
}

// pushFront holds the remainder of a split segment for the next call.
// A split never leaves more than one segment behind.
func (l *Lexer) pushFront(seg Segment) {
	l.pending = &seg
}
