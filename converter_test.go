package onemath

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const (
	mathOpen = `<math xmlns="http://www.w3.org/1998/Math/MathML">`
	halfML   = mathOpen + "<mfrac><mrow><mn>1</mn></mrow><mrow><mn>2</mn></mrow></mfrac></math>"
)

// fraction builds the segments of num/den.
func fraction(num, den string) []Segment {
	frac := &MathObject{Type: "fraction", ArgCount: 2}
	return []Segment{
		{Text: MarkerStart, Object: frac},
		{Text: num},
		{Text: MarkerSep, Object: frac},
		{Text: den},
		{Text: MarkerEnd, Object: frac},
	}
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	return c
}

// ---------------------------------------------------------------------------
// TestNewConverter - Option validation
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	cssFile := filepath.Join(t.TempDir(), "page.css")
	if err := os.WriteFile(cssFile, []byte("p { margin: 0; }"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name      string
		opts      []Option
		wantStyle string
		wantErr   error
	}{
		{"defaults", nil, "", nil},
		{"embedded style", []Option{WithStyle("default")}, "Cambria Math", nil},
		{"css content", []Option{WithStyle("mi { color: red; }")}, "mi { color: red; }", nil},
		{"css file", []Option{WithStyle(cssFile)}, "p { margin: 0; }", nil},
		{"unknown style", []Option{WithStyle("nonexistent")}, "", ErrStyleNotFound},
		{"bad asset path", []Option{WithAssetPath(filepath.Join(t.TempDir(), "missing"))}, "", ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewConverter(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewConverter() error = %v", err)
			}
			if !strings.Contains(c.cfg.resolvedStyle, tt.wantStyle) {
				t.Errorf("resolved style = %q, want it to contain %q", c.cfg.resolvedStyle, tt.wantStyle)
			}
		})
	}
}

func TestNewConverter_MissingStyleFile(t *testing.T) {
	t.Parallel()

	_, err := NewConverter(WithStyle(filepath.Join(t.TempDir(), "absent.css")))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("NewConverter() error = %v, want os.ErrNotExist", err)
	}
}

func TestNewConverter_AssetPathOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "lab.css"), []byte("/* lab */"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	c := newTestConverter(t, WithAssetPath(dir), WithStyle("lab"))
	if c.cfg.resolvedStyle != "/* lab */" {
		t.Errorf("resolved style = %q, want %q", c.cfg.resolvedStyle, "/* lab */")
	}
}

func TestWithTimeout_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

// ---------------------------------------------------------------------------
// TestRenderMath - Segment streams to MathML
// ---------------------------------------------------------------------------

func TestRenderMath(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)

	small := &MathObject{Type: "fraction", ArgCount: 2, Char: "U+2298"}
	badArity := &MathObject{Type: "fraction", ArgCount: 3}

	tests := []struct {
		name     string
		segments []Segment
		want     string
		wantErr  []error
	}{
		{
			name:     "fraction",
			segments: fraction("1", "2"),
			want:     halfML,
		},
		{
			name: "small fraction same markup",
			segments: []Segment{
				{Text: MarkerStart + "1" + MarkerSep, Object: small},
				{Text: "2" + MarkerEnd, Object: small},
			},
			want: halfML,
		},
		{
			name:     "plain text",
			segments: []Segment{{Text: "x+1"}},
			want:     mathOpen + `<mi mathvariant="normal">x</mi><mo>+</mo><mn>1</mn></math>`,
		},
		{
			name:     "empty",
			segments: nil,
			want:     mathOpen + "</math>",
		},
		{
			name: "arity mismatch",
			segments: []Segment{
				{Text: MarkerStart, Object: badArity},
				{Text: MarkerEnd, Object: badArity},
			},
			wantErr: []error{ErrMathRender, ErrArgCount},
		},
		{
			name:     "stray end",
			segments: []Segment{{Text: MarkerEnd, Object: &MathObject{Type: "fraction"}}},
			wantErr:  []error{ErrMathRender, ErrUnexpectedToken},
		},
		{
			name:     "unknown type",
			segments: []Segment{{Text: MarkerStart, Object: &MathObject{Type: "hologram"}}},
			wantErr:  []error{ErrInvalidMathObject},
		},
		{
			name:     "two characters",
			segments: []Segment{{Text: MarkerStart, Object: &MathObject{Type: "accent", Char: "ab"}}},
			wantErr:  []error{ErrInvalidMathObject},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.RenderMath(tt.segments)
			if len(tt.wantErr) > 0 {
				for _, want := range tt.wantErr {
					if !errors.Is(err, want) {
						t.Errorf("RenderMath() error = %v, want %v", err, want)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("RenderMath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderMath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderMath_LogsFeatureGaps(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := newTestConverter(t, WithLogger(zerolog.New(&buf)))

	opChar := &MathObject{Type: "op-char", Char: "+"}
	got, err := c.RenderMath([]Segment{{Text: MarkerStart + MarkerEnd, Object: opChar}})
	if err != nil {
		t.Fatalf("RenderMath() error = %v", err)
	}
	if got != mathOpen+"<mo>+</mo></math>" {
		t.Errorf("RenderMath() = %q", got)
	}

	logged := buf.String()
	for _, want := range []string{`"level":"warn"`, `"feature":"op-char"`} {
		if !strings.Contains(logged, want) {
			t.Errorf("log missing %s in %q", want, logged)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRenderParagraph - Grouping runs and pairing objects
// ---------------------------------------------------------------------------

func TestRenderParagraph(t *testing.T) {
	t.Parallel()

	c := newTestConverter(t)
	frac := MathObject{Type: "fraction", ArgCount: 2}

	fracRuns := []TextRun{
		{Text: MarkerStart, Math: true},
		{Text: "1", Math: true},
		{Text: MarkerSep, Math: true},
		{Text: "2", Math: true},
		{Text: MarkerEnd, Math: true},
	}
	fracObjects := []MathObject{frac, frac, frac, frac, frac}

	tests := []struct {
		name    string
		runs    []TextRun
		objects []MathObject
		want    string
		wantErr error
	}{
		{
			name: "empty paragraph",
			want: "&nbsp;",
		},
		{
			name: "plain runs escaped and joined",
			runs: []TextRun{{Text: "a < b"}, {Text: " & c"}},
			want: "a &lt; b &amp; c",
		},
		{
			name:    "math group between text",
			runs:    append(append([]TextRun{{Text: "Let "}}, fracRuns...), TextRun{Text: " hold"}),
			objects: fracObjects,
			want:    "Let " + halfML + " hold",
		},
		{
			name: "objects exhausted renders joined text",
			runs: []TextRun{{Text: "x", Math: true}, {Text: "+1", Math: true}},
			want: mathOpen + `<mi mathvariant="normal">x</mi><mo>+</mo><mn>1</mn></math>`,
		},
		{
			name: "second group uses the following objects",
			runs: append(append(append([]TextRun{}, fracRuns...), TextRun{Text: " and "}), fracRuns...),
			objects: append(append([]MathObject{}, fracObjects...), fracObjects...),
			want:    halfML + " and " + halfML,
		},
		{
			name:    "missing objects padded with empty ones",
			runs:    fracRuns,
			objects: fracObjects[:1],
			wantErr: ErrUnexpectedToken,
		},
		{
			name: "newlines become breaks",
			runs: []TextRun{{Text: "first\n  second"}},
			want: "first<br>&nbsp;&nbsp;second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.RenderParagraph(tt.runs, tt.objects)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrMathRender) {
					t.Errorf("RenderParagraph() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RenderParagraph() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderParagraph() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvert - Pages with equation blocks
// ---------------------------------------------------------------------------

const halfBlock = `~~~equation
- text: "\uFDD0"
  object: {type: fraction, args: 2}
- text: "1"
- text: "\uFDEE"
  object: {type: fraction, args: 2}
- text: "2"
- text: "\uFDEF"
  object: {type: fraction, args: 2}
~~~
`

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         []Option
		input        Input
		wantContains []string
	}{
		{
			name:  "equation block",
			input: Input{Markdown: "# Ratio\n\n" + halfBlock},
			wantContains: []string{
				"<!DOCTYPE html>",
				`<h1 id="ratio">Ratio</h1>`,
				`<div class="equation">` + halfML + "</div>",
			},
		},
		{
			name:         "title",
			input:        Input{Markdown: "text", Title: "Algebra"},
			wantContains: []string{"<title>Algebra</title>"},
		},
		{
			name:         "style then input css",
			opts:         []Option{WithStyle("math { color: blue; }")},
			input:        Input{Markdown: "text", CSS: "p { color: red; }"},
			wantContains: []string{"<style>math { color: blue; }\np { color: red; }</style></head>"},
		},
		{
			name:         "highlights",
			input:        Input{Markdown: "==key== idea"},
			wantContains: []string{"<mark>key</mark> idea"},
		},
		{
			name:         "segments page",
			input:        Input{Segments: fraction("1", "2"), Title: "Half"},
			wantContains: []string{"<title>Half</title>", `<div class="equation">` + halfML + "</div>"},
		},
		{
			name:         "relative image",
			input:        Input{Markdown: "![plot](img/plot.png)", SourceDir: t.TempDir()},
			wantContains: []string{`src="file://`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestConverter(t, tt.opts...)
			res, err := c.Convert(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			got := string(res.HTML)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Convert() missing %q in:\n%s", want, got)
				}
			}
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   Input
		wantErr []error
	}{
		{
			name:    "empty input",
			input:   Input{},
			wantErr: []error{ErrEmptyMarkdown},
		},
		{
			name:    "malformed yaml",
			input:   Input{Markdown: "~~~equation\n- text: [\n~~~\n"},
			wantErr: []error{ErrHTMLConversion, ErrInvalidEquationBlock},
		},
		{
			name:    "unknown key",
			input:   Input{Markdown: "~~~equation\n- text: x\n  colour: red\n~~~\n"},
			wantErr: []error{ErrInvalidEquationBlock},
		},
		{
			name:    "unknown object type",
			input:   Input{Markdown: "~~~equation\n- text: x\n  object: {type: hologram}\n~~~\n"},
			wantErr: []error{ErrInvalidEquationBlock, ErrInvalidMathObject},
		},
		{
			name:    "broken structure",
			input:   Input{Markdown: "~~~equation\n- text: \"\\uFDEF\"\n  object: {type: fraction, args: 2}\n~~~\n"},
			wantErr: []error{ErrMathRender, ErrUnexpectedToken},
		},
		{
			name:    "invalid segment object",
			input:   Input{Segments: []Segment{{Text: "x", Object: &MathObject{Char: "xy"}}}},
			wantErr: []error{ErrInvalidMathObject},
		},
	}

	c := newTestConverter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := c.Convert(context.Background(), tt.input)
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("Convert() error = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestConvert_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestConverter(t, WithTimeout(time.Minute))
	_, err := c.Convert(ctx, Input{Markdown: "# x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestDecodeSegments - YAML segment lists
// ---------------------------------------------------------------------------

func TestDecodeSegments(t *testing.T) {
	t.Parallel()

	data := []byte(`
- text: "\uFDD0"
  object:
    type: Brackets-With-Seps
    args: 2
    char: "("
    char1: ")"
    char2: U+007C
    align: 0
- text: a
`)

	got, err := DecodeSegments(data)
	if err != nil {
		t.Fatalf("DecodeSegments() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d segments, want 2", len(got))
	}
	if got[0].Text != MarkerStart {
		t.Errorf("Text = %q, want start marker", got[0].Text)
	}
	if got[1].Object != nil {
		t.Errorf("Object = %+v, want nil", got[1].Object)
	}

	obj, err := got[0].Object.toObject()
	if err != nil {
		t.Fatalf("toObject() error = %v", err)
	}
	if obj.Type.String() != "brackets-with-seps" || obj.ArgCount != 2 {
		t.Errorf("object = %+v", obj)
	}
	if obj.Char != '(' || obj.Char1 != ')' || obj.Char2 != '|' {
		t.Errorf("chars = %q %q %q", obj.Char, obj.Char1, obj.Char2)
	}
	if obj.Align == nil || *obj.Align != 0 {
		t.Errorf("Align = %v, want pointer to 0", obj.Align)
	}
}

func TestDecodeSegments_Empty(t *testing.T) {
	t.Parallel()

	if _, err := DecodeSegments(nil); !errors.Is(err, ErrInvalidEquationBlock) {
		t.Errorf("DecodeSegments(nil) error = %v, want ErrInvalidEquationBlock", err)
	}
}

func TestParseChar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", 0, false},
		{"x", 'x', false},
		{"∑", '∑', false},
		{"U+2298", '\u2298', false},
		{"u+1d400", '\U0001D400', false},
		{"U+", 0, true},
		{"U+ZZ", 0, true},
		{"U+110000", 0, true},
		{"ab", 0, true},
	}

	for _, tt := range tests {
		got, err := parseChar(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseChar(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseChar(%q) = %U, want %U", tt.in, got, tt.want)
		}
	}
}
