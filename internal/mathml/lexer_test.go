package mathml

import (
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers - Segment builders shared by the package tests
// ---------------------------------------------------------------------------

func segStart(obj Object) Segment { return Segment{Text: MarkerStart, Object: obj} }

func segSep(obj Object) Segment { return Segment{Text: MarkerSep, Object: obj} }

func segEnd(obj Object) Segment { return Segment{Text: MarkerEnd, Object: obj} }

func segText(s string) Segment { return Segment{Text: s} }

func drain(t *testing.T, l *Lexer) []Token {
	t.Helper()
	var tokens []Token
	for i := 0; i < 100; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
	t.Fatal("lexer did not reach EOF")
	return nil
}

// ---------------------------------------------------------------------------
// TestLexerNext - Splits segments into tokens
// ---------------------------------------------------------------------------

func TestLexerNext(t *testing.T) {
	t.Parallel()

	frac := Object{Type: Fraction, ArgCount: 2}

	tests := []struct {
		name     string
		segments []Segment
		want     []Token
	}{
		{
			name:     "empty input",
			segments: nil,
			want:     nil,
		},
		{
			name:     "plain text",
			segments: []Segment{segText("x+y")},
			want:     []Token{{Kind: TokenText, Text: "x+y"}},
		},
		{
			name:     "exact markers",
			segments: []Segment{segStart(frac), segSep(frac), segEnd(frac)},
			want: []Token{
				{Kind: TokenStart, Type: Fraction, Object: frac},
				{Kind: TokenSep, Type: Fraction},
				{Kind: TokenEnd, Type: Fraction},
			},
		},
		{
			name: "start marker prefix",
			segments: []Segment{
				{Text: MarkerStart + "1" + MarkerSep, Object: frac},
			},
			want: []Token{
				{Kind: TokenStart, Type: Fraction, Object: frac},
				{Kind: TokenText, Text: "1"},
				{Kind: TokenSep, Type: Fraction},
			},
		},
		{
			name: "end marker suffix",
			segments: []Segment{
				{Text: "2" + MarkerEnd, Object: frac},
			},
			want: []Token{
				{Kind: TokenText, Text: "2"},
				{Kind: TokenEnd, Type: Fraction},
			},
		},
		{
			name: "sep marker suffix",
			segments: []Segment{
				{Text: "a" + MarkerSep, Object: frac},
				segText("b"),
			},
			want: []Token{
				{Kind: TokenText, Text: "a"},
				{Kind: TokenSep, Type: Fraction},
				{Kind: TokenText, Text: "b"},
			},
		},
		{
			name: "start prefix with sep suffix",
			segments: []Segment{
				{Text: MarkerStart + "1" + MarkerSep, Object: frac},
				{Text: "2" + MarkerEnd, Object: frac},
			},
			want: []Token{
				{Kind: TokenStart, Type: Fraction, Object: frac},
				{Kind: TokenText, Text: "1"},
				{Kind: TokenSep, Type: Fraction},
				{Kind: TokenText, Text: "2"},
				{Kind: TokenEnd, Type: Fraction},
			},
		},
		{
			name: "start immediately followed by end",
			segments: []Segment{
				{Text: MarkerStart + MarkerEnd, Object: Object{Type: OpChar, Char: '+'}},
			},
			want: []Token{
				{Kind: TokenStart, Type: OpChar, Object: Object{Type: OpChar, Char: '+'}},
				{Kind: TokenEnd, Type: OpChar},
			},
		},
		{
			name: "marker in the middle is text",
			segments: []Segment{
				segText("a" + MarkerSep + "b"),
			},
			want: []Token{{Kind: TokenText, Text: "a" + MarkerSep + "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := drain(t, NewLexer(tt.segments))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexerNext_EOFIsSticky(t *testing.T) {
	t.Parallel()

	l := NewLexer([]Segment{segText("x")})
	if _, err := l.Next(); err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		if tok.Kind != TokenEOF {
			t.Errorf("call %d: Kind = %v, want EOF", i, tok)
		}
	}
}

func TestNewLexer_CopiesInput(t *testing.T) {
	t.Parallel()

	segments := []Segment{segText("a"), segText("b")}
	l := NewLexer(segments)
	segments[0].Text = "changed"

	tok, err := l.Next()
	if err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if tok.Text != "a" {
		t.Errorf("Text = %q, want %q", tok.Text, "a")
	}
}

func TestTokenString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: TokenText, Text: "x"}, `Text("x")`},
		{Token{Kind: TokenStart, Type: Fraction}, "Start(fraction)"},
		{Token{Kind: TokenSep, Type: Matrix}, "Sep(matrix)"},
		{Token{Kind: TokenEnd, Type: SubSup}, "End(sub-sup)"},
		{Token{}, "EOF"},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestLexerNext_LongSplitStream(t *testing.T) {
	t.Parallel()

	frac := Object{Type: Fraction, ArgCount: 2}
	const n = 20000
	segments := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		segments = append(segments, Segment{Text: "x" + MarkerEnd, Object: frac})
	}

	l := NewLexer(segments)
	count := 0
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("Next() unexpected error: %v", err)
		}
		if tok.Kind == TokenEOF {
			break
		}
		count++
	}
	if count != 2*n {
		t.Errorf("got %d tokens, want %d", count, 2*n)
	}
}
