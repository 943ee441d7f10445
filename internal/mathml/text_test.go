package mathml

import (
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// TestClassifyRune - Character to text type rules
// ---------------------------------------------------------------------------

func TestClassifyRune(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		c      rune
		want   TextType
		wantOK bool
	}{
		{"ampersand", '&', TextRaw, true},
		{"ascii letter", 'x', TextNormal, true},
		{"ascii upper letter", 'Q', TextNormal, true},
		{"ascii punctuation", '+', TextOperator, true},
		{"ascii paren", '(', TextOperator, true},
		{"ascii digit", '5', TextNumeric, true},
		{"ascii space", ' ', TextSpace, true},
		{"no-break space", '\u00A0', TextSpace, true},
		{"em space", '\u2003', TextSpace, true},
		{"math symbol", '∑', TextOperator, true},
		{"function application", '\u2061', TextOperator, true},
		{"zero width space", '\u200B', TextRaw, true},
		{"double-struck d", '\u2146', TextDoubleOperator, true},
		{"double-struck D", '\u2145', TextDoubleOperator, true},
		{"bold A", '\U0001D400', TextBold, true},
		{"italic a", '\U0001D44E', TextIdentifier, true},
		{"script A", '\U0001D49C', TextScript, true},
		{"fraktur A", '\U0001D504', TextFraktur, true},
		{"double-struck A", '\U0001D538', TextDouble, true},
		{"monospace A", '\U0001D670', TextMono, true},
		{"bold digit", '\U0001D7CE', TextNumeric, true},
		{"greek sans bold italic alpha", '\U0001D7AA', TextSansBoldItalic, true},
		{"greek alpha", 'α', TextIdentifier, true},
		{"letterlike R", 'ℝ', TextIdentifier, true},
		{"latin-1 e acute", 'é', TextNormal, true},
		{"ellipsis", '…', TextOperator, true},
		{"unclassified", '中', TextIdentifier, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ClassifyRune(tt.c)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ClassifyRune(%U) = %v, %v, want %v, %v", tt.c, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSegmentText - Maximal same-type runs
// ---------------------------------------------------------------------------

func TestSegmentText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []TextSegment
	}{
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "only format characters",
			in:   "\u200B\u200C",
			want: nil,
		},
		{
			name: "mixed runs",
			in:   "2xy+10",
			want: []TextSegment{
				{TextNumeric, "2"},
				{TextNormal, "xy"},
				{TextOperator, "+"},
				{TextNumeric, "10"},
			},
		},
		{
			name: "format characters stripped",
			in:   "a\u200Bb",
			want: []TextSegment{{TextNormal, "ab"}},
		},
		{
			name: "function application kept",
			in:   "sin\u2061x",
			want: []TextSegment{
				{TextNormal, "sin"},
				{TextOperator, "\u2061"},
				{TextNormal, "x"},
			},
		},
		{
			name: "spaces grouped",
			in:   "a  b",
			want: []TextSegment{
				{TextNormal, "a"},
				{TextSpace, "  "},
				{TextNormal, "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := SegmentText(tt.in, nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SegmentText(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegmentText_ReportsUnclassified(t *testing.T) {
	t.Parallel()

	var reported []rune
	SegmentText("x中文", func(c rune) { reported = append(reported, c) })

	want := []rune{'中', '文'}
	if !reflect.DeepEqual(reported, want) {
		t.Errorf("reported = %q, want %q", reported, want)
	}
}

func TestTextTypeString(t *testing.T) {
	t.Parallel()

	if got := TextFrakturBold.String(); got != "bold-fraktur" {
		t.Errorf("String() = %q, want %q", got, "bold-fraktur")
	}
	if got := TextType(200).String(); got != "unknown" {
		t.Errorf("String() = %q, want %q", got, "unknown")
	}
}
