package mathml

import (
	"strings"
	"unicode"
)

// TextType classifies one character of a literal text run.
type TextType uint8

// Text types. Each maps to one fixed leaf template in the renderer.
const (
	TextIdentifier TextType = iota
	TextNormal
	TextNumeric
	TextOperator
	TextSpace
	TextRaw
	TextDoubleOperator
	TextBold
	TextBoldItalic
	TextBoldScript
	TextDouble
	TextFraktur
	TextFrakturBold
	TextMono
	TextSans
	TextSansBold
	TextSansBoldItalic
	TextSansItalic
	TextScript
)

var textTypeNames = [...]string{
	TextIdentifier:     "identifier",
	TextNormal:         "normal",
	TextNumeric:        "numeric",
	TextOperator:       "operator",
	TextSpace:          "space",
	TextRaw:            "raw",
	TextDoubleOperator: "double-operator",
	TextBold:           "bold",
	TextBoldItalic:     "bold-italic",
	TextBoldScript:     "bold-script",
	TextDouble:         "double-struck",
	TextFraktur:        "fraktur",
	TextFrakturBold:    "bold-fraktur",
	TextMono:           "monospace",
	TextSans:           "sans-serif",
	TextSansBold:       "sans-serif-bold",
	TextSansBoldItalic: "sans-serif-bold-italic",
	TextSansItalic:     "sans-serif-italic",
	TextScript:         "script",
}

func (t TextType) String() string {
	if int(t) < len(textTypeNames) {
		return textTypeNames[t]
	}
	return "unknown"
}

// functionApplication is the invisible function-application operator.
const functionApplication = '\u2061'

// charRange is an inclusive range of code points.
type charRange struct {
	lo, hi rune
}

func (r charRange) contains(c rune) bool {
	return c >= r.lo && c <= r.hi
}

// mathAlphabets maps contiguous math-alphanumeric ranges to text types.
// Scanned in order; the first match wins.
var mathAlphabets = []struct {
	r   charRange
	typ TextType
}{
	{charRange{0x1D400, 0x1D433}, TextBold},           // bold
	{charRange{0x1D434, 0x1D467}, TextIdentifier},     // italic
	{charRange{0x1D468, 0x1D49B}, TextBoldItalic},     // bold-italic
	{charRange{0x1D49C, 0x1D4CF}, TextScript},         // script
	{charRange{0x1D4D0, 0x1D503}, TextBoldScript},     // bold-script
	{charRange{0x1D504, 0x1D537}, TextFraktur},        // fraktur
	{charRange{0x1D538, 0x1D56B}, TextDouble},         // double
	{charRange{0x1D56C, 0x1D59F}, TextFrakturBold},    // fraktur-bold
	{charRange{0x1D5A0, 0x1D5D3}, TextSans},           // sans
	{charRange{0x1D5D4, 0x1D607}, TextSansBold},       // sans-bold
	{charRange{0x1D608, 0x1D63B}, TextSansItalic},     // sans-italic
	{charRange{0x1D63C, 0x1D66F}, TextSansBoldItalic}, // sans-bold-italic
	{charRange{0x1D670, 0x1D6A3}, TextMono},           // monospace
	{charRange{0x1D6A8, 0x1D6E1}, TextBold},           // greek-bold
	{charRange{0x1D6E2, 0x1D71B}, TextIdentifier},     // greek-italic
	{charRange{0x1D71C, 0x1D755}, TextBoldItalic},     // greek-bold-italic
	{charRange{0x1D756, 0x1D78F}, TextSansBold},       // greek-sans-bold
	{charRange{0x1D790, 0x1D7C9}, TextSansBoldItalic}, // greek-sans-bold-italic
	{charRange{0x2200, 0x22FF}, TextOperator},         // operator
	{charRange{0x2190, 0x21FF}, TextOperator},         // arrow
}

// Unicode blocks consulted after the math alphabets.
var (
	blockGreekAndCoptic     = charRange{0x0370, 0x03FF}
	blockLetterlikeSymbols  = charRange{0x2100, 0x214F}
	blockMathAlphanumeric   = charRange{0x1D400, 0x1D7FF}
	blockLatin1Supplement   = charRange{0x0080, 0x00FF}
	blockGeneralPunctuation = charRange{0x2000, 0x206F}
)

// doubleStruckDifferentials maps the double-struck differential operators to
// the italic letters they render as.
var doubleStruckDifferentials = map[rune]string{
	'\u2145': "\U0001D437", // ⅅ -> 𝐷
	'\u2146': "\U0001D451", // ⅆ -> 𝑑
}

const asciiPunctuation = `!"#$%&'()*+,-./:;<=>?@[\]^_` + "`" + `{|}~`

// ClassifyRune returns the text type of c. The second result is false when
// no rule matched and c fell back to TextIdentifier.
func ClassifyRune(c rune) (TextType, bool) {
	if c == '&' {
		return TextRaw, true
	}
	if c < unicode.MaxASCII && strings.ContainsRune(asciiPunctuation, c) {
		return TextOperator, true
	}
	if c < unicode.MaxASCII && (c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
		return TextNormal, true
	}
	if unicode.Is(unicode.Zs, c) {
		return TextSpace, true
	}
	if unicode.IsNumber(c) {
		return TextNumeric, true
	}
	if unicode.Is(unicode.Sm, c) {
		return TextOperator, true
	}
	if unicode.Is(unicode.Cf, c) {
		if c == functionApplication {
			return TextOperator, true
		}
		return TextRaw, true
	}
	if _, ok := doubleStruckDifferentials[c]; ok {
		return TextDoubleOperator, true
	}

	for _, alphabet := range mathAlphabets {
		if alphabet.r.contains(c) {
			return alphabet.typ, true
		}
	}

	switch {
	case blockGreekAndCoptic.contains(c),
		blockLetterlikeSymbols.contains(c),
		blockMathAlphanumeric.contains(c):
		return TextIdentifier, true
	case blockLatin1Supplement.contains(c):
		return TextNormal, true
	case blockGeneralPunctuation.contains(c):
		return TextOperator, true
	}

	return TextIdentifier, false
}

// TextSegment is a maximal run of characters sharing one text type.
type TextSegment struct {
	Type TextType
	Text string
}

// SegmentText strips format characters other than the function-application
// operator and splits the rest into maximal same-type runs. The callback, if
// not nil, receives every character that fell back to TextIdentifier.
func SegmentText(s string, unclassified func(rune)) []TextSegment {
	var segments []TextSegment
	var current strings.Builder
	var currentType TextType
	started := false

	for _, c := range s {
		if isSkippableFormat(c) {
			continue
		}

		typ, ok := ClassifyRune(c)
		if !ok && unclassified != nil {
			unclassified(c)
		}

		if started && typ != currentType {
			segments = append(segments, TextSegment{Type: currentType, Text: current.String()})
			current.Reset()
		}
		currentType = typ
		started = true
		current.WriteRune(c)
	}

	if started {
		segments = append(segments, TextSegment{Type: currentType, Text: current.String()})
	}
	return segments
}

func isSkippableFormat(c rune) bool {
	return unicode.Is(unicode.Cf, c) && c != functionApplication
}
