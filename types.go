package onemath

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/alnah/go-onemath/internal/mathml"
)

// Sentinel characters that give a flat segment stream its nesting. A segment
// whose text is exactly one marker opens, separates or closes the arguments
// of its object.
const (
	MarkerStart = mathml.MarkerStart
	MarkerSep   = mathml.MarkerSep
	MarkerEnd   = mathml.MarkerEnd
)

const defaultTimeout = 30 * time.Second

// MathObject describes the math object active over a text fragment, as
// decoded by the document model.
//
// Type is the kebab-case object name ("fraction", "sub-sup", ...); empty
// means the fragment belongs to no object. Char, Char1 and Char2 hold a
// single character or a "U+XXXX" code point and are absent when empty.
// Column is absent when zero. Align is a pointer because a packed value of
// zero is meaningful.
type MathObject struct {
	Type     string `yaml:"type"`
	ArgCount uint32 `yaml:"args,omitempty"`
	Char     string `yaml:"char,omitempty"`
	Char1    string `yaml:"char1,omitempty"`
	Char2    string `yaml:"char2,omitempty"`
	Column   uint8  `yaml:"column,omitempty"`
	Align    *uint8 `yaml:"align,omitempty"`
}

// Validate checks that the type is known and every character field holds a
// single character.
func (o *MathObject) Validate() error {
	_, err := o.toObject()
	return err
}

func (o *MathObject) toObject() (mathml.Object, error) {
	if o == nil {
		return mathml.Object{}, nil
	}

	var obj mathml.Object
	if err := obj.Type.UnmarshalText([]byte(o.Type)); err != nil {
		return mathml.Object{}, fmt.Errorf("%w: unknown type %q", ErrInvalidMathObject, o.Type)
	}

	fields := []struct {
		name string
		src  string
		dst  *rune
	}{
		{"char", o.Char, &obj.Char},
		{"char1", o.Char1, &obj.Char1},
		{"char2", o.Char2, &obj.Char2},
	}
	for _, f := range fields {
		c, err := parseChar(f.src)
		if err != nil {
			return mathml.Object{}, fmt.Errorf("%w: %s: %v", ErrInvalidMathObject, f.name, err)
		}
		*f.dst = c
	}

	obj.ArgCount = o.ArgCount
	obj.Column = o.Column
	if o.Align != nil {
		obj.Align = mathml.AlignValue(*o.Align)
	}
	return obj, nil
}

// parseChar reads "" as absent, "U+XXXX" as a code point, and anything else
// as exactly one character.
func parseChar(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if hex, ok := strings.CutPrefix(strings.ToUpper(s), "U+"); ok && len(s) > 2 {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, fmt.Errorf("invalid code point %q", s)
		}
		return rune(n), nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("want one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Segment is one fragment of equation text with the object active over it.
type Segment struct {
	Text   string      `yaml:"text"`
	Object *MathObject `yaml:"object,omitempty"`
}

// TextRun is a run of paragraph text. Math runs carry equation fragments and
// are paired, in order, with the paragraph's math objects.
type TextRun struct {
	Text string
	Math bool
}

// Input contains page conversion parameters. Either Markdown or Segments
// must be set; Markdown wins when both are.
type Input struct {
	Markdown  string    // Markdown page; "equation" fenced blocks hold YAML segment lists
	Segments  []Segment // a single equation rendered as the whole page
	Title     string    // page title (optional)
	CSS       string    // extra CSS appended after the style (optional)
	SourceDir string    // directory relative image and link paths resolve against (optional)
}

// ConvertResult holds the rendered page.
type ConvertResult struct {
	HTML []byte
}

// Option configures a Converter.
type Option func(*Converter)

type converterConfig struct {
	timeout       time.Duration
	logger        zerolog.Logger
	styleInput    string
	resolvedStyle string
	assetPath     string
}

// WithTimeout bounds a single Convert call. Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("onemath: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithLogger sets the logger that receives unsupported-feature warnings.
// The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = logger
	}
}

// WithStyle selects the page CSS: a style name resolved through the asset
// loaders, a path to a .css file, or literal CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath adds a directory whose styles/ override the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}
