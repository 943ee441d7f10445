package mathml

import "fmt"

// Packed align values are decoded into one named type per construct. The raw
// byte never leaves these decoders.

// BoxDisplay is the packed display byte of a box.
//
//	bit 0     alignment (BoxAlignment)
//	bits 2-4  spacing class (BoxSpace)
//	bits 5-6  size tier (BoxSize)
//	bit 7     no-break flag
//
// Unknown bits are ignored.
type BoxDisplay uint8

// BoxAlignment is the vertical alignment of a box.
type BoxAlignment uint8

// Box alignments.
const (
	BoxAlignBaseline BoxAlignment = 0
	BoxAlignCenter   BoxAlignment = 1
)

// BoxSpace is the spacing class a box applies around its content.
type BoxSpace uint8

// Box spacing classes.
const (
	BoxSpaceDefault      BoxSpace = 0
	BoxSpaceUnary        BoxSpace = 4
	BoxSpaceBinary       BoxSpace = 8
	BoxSpaceRelational   BoxSpace = 12
	BoxSpaceSkip         BoxSpace = 16
	BoxSpaceOrd          BoxSpace = 20
	BoxSpaceDifferential BoxSpace = 24
)

// BoxSize is the script size tier of a box.
type BoxSize uint8

// Box size tiers.
const (
	BoxSizeText         BoxSize = 0
	BoxSizeScript       BoxSize = 32
	BoxSizeScriptScript BoxSize = 64
)

const (
	boxAlignMask = 0x01
	boxSpaceMask = 0x1c
	boxSizeMask  = 0x60
	boxNoBreak   = 0x80
)

// Align returns the alignment field.
func (d BoxDisplay) Align() BoxAlignment { return BoxAlignment(d & boxAlignMask) }

// Space returns the spacing class field.
func (d BoxDisplay) Space() BoxSpace { return BoxSpace(d & boxSpaceMask) }

// Size returns the size tier field.
func (d BoxDisplay) Size() BoxSize { return BoxSize(d & boxSizeMask) }

// NoBreak reports whether the box forbids line breaks inside it.
func (d BoxDisplay) NoBreak() bool { return d&boxNoBreak != 0 }

// BoxedFormulaAlignment is the packed border flag set of a boxed formula.
type BoxedFormulaAlignment uint8

// Boxed formula flags.
const (
	BoxHideTop    BoxedFormulaAlignment = 1
	BoxHideBottom BoxedFormulaAlignment = 2
	BoxHideLeft   BoxedFormulaAlignment = 4
	BoxHideRight  BoxedFormulaAlignment = 8
	BoxStrikeH    BoxedFormulaAlignment = 16
	BoxStrikeV    BoxedFormulaAlignment = 32
	BoxStrikeTLBR BoxedFormulaAlignment = 64
	BoxStrikeBLTR BoxedFormulaAlignment = 128
)

// Has reports whether all bits of flag are set.
func (a BoxedFormulaAlignment) Has(flag BoxedFormulaAlignment) bool { return a&flag == flag }

// BracketsAlignment selects a fixed bracket size.
type BracketsAlignment uint8

// Bracket sizes, following the TeX \big family.
const (
	BracketsDontGrow BracketsAlignment = 64
	BracketsTeXbig   BracketsAlignment = 32
	BracketsTeXBig   BracketsAlignment = 96
	BracketsTeXbigg  BracketsAlignment = 160
	BracketsTeXBigg  BracketsAlignment = 224
)

// decodeBracketsAlignment maps a packed value to a bracket size.
// Unlisted values yield ok=false and are treated as absent.
func decodeBracketsAlignment(v uint8) (BracketsAlignment, bool) {
	switch a := BracketsAlignment(v); a {
	case BracketsDontGrow, BracketsTeXbig, BracketsTeXBig, BracketsTeXbigg, BracketsTeXBigg:
		return a, true
	}
	return 0, false
}

// Tier returns the size tier used by the bracket scaling formula.
func (a BracketsAlignment) Tier() int {
	switch a {
	case BracketsTeXbig:
		return 1
	case BracketsTeXBig:
		return 2
	case BracketsTeXbigg:
		return 3
	case BracketsTeXBigg:
		return 4
	default:
		return 0
	}
}

// EquationArrayAlignment is the vertical alignment of an equation array.
type EquationArrayAlignment uint8

// Equation array alignments.
const (
	EqArrayLayoutWidth    EquationArrayAlignment = 0
	EqArrayAlignTopRow    EquationArrayAlignment = 4
	EqArrayAlignBottomRow EquationArrayAlignment = 12
)

func decodeEquationArrayAlignment(v uint8) (EquationArrayAlignment, error) {
	switch a := EquationArrayAlignment(v); a {
	case EqArrayLayoutWidth, EqArrayAlignTopRow, EqArrayAlignBottomRow:
		return a, nil
	}
	return 0, fmt.Errorf("%w: equation array alignment %d", ErrInvalidValue, v)
}

// MatrixAlignment is the alignment or placeholder option of a matrix.
type MatrixAlignment uint8

// Matrix alignments.
const (
	MatrixAlignCenter     MatrixAlignment = 0
	MatrixAlignTopRow     MatrixAlignment = 1
	MatrixAlignBottomRow  MatrixAlignment = 3
	MatrixShowPlaceholder MatrixAlignment = 8
)

func decodeMatrixAlignment(v uint8) (MatrixAlignment, error) {
	switch a := MatrixAlignment(v); a {
	case MatrixAlignCenter, MatrixAlignTopRow, MatrixAlignBottomRow, MatrixShowPlaceholder:
		return a, nil
	}
	return 0, fmt.Errorf("%w: matrix alignment %d", ErrInvalidValue, v)
}

// MatrixBrackets is the bracket pair drawn around a matrix.
type MatrixBrackets uint8

// Matrix bracket kinds. MatrixNoBrackets draws empty operators.
const (
	MatrixNoBrackets MatrixBrackets = iota
	MatrixParentheses
	MatrixVerticalBars
	MatrixDoubleVerticalBars
)

func decodeMatrixBrackets(c rune) (MatrixBrackets, error) {
	switch c {
	case '\u25A0':
		return MatrixNoBrackets, nil
	case '\u24A8':
		return MatrixParentheses, nil
	case '\u24B1':
		return MatrixVerticalBars, nil
	case '\u24A9':
		return MatrixDoubleVerticalBars, nil
	}
	return 0, fmt.Errorf("%w: matrix brackets specifier %q", ErrInvalidValue, c)
}

// Glyphs returns the opening and closing glyphs, empty for MatrixNoBrackets.
func (b MatrixBrackets) Glyphs() (open, close string) {
	switch b {
	case MatrixParentheses:
		return "(", ")"
	case MatrixVerticalBars:
		return "|", "|"
	case MatrixDoubleVerticalBars:
		return "‖", "‖"
	default:
		return "", ""
	}
}

// NAryDisplay is the packed display byte of an n-ary operator.
//
//	bits 0-1  limit placement (NAryAlignment)
//	bits 2-4  options (NAryOptions)
//	bits 6-7  growth (NAryGrowth)
type NAryDisplay uint8

// NAryAlignment selects where the limits of an n-ary operator go.
type NAryAlignment uint8

// N-ary limit placements.
const (
	LimitsDefault           NAryAlignment = 0
	LimitsUnderOver         NAryAlignment = 1
	LimitsSubSup            NAryAlignment = 2
	UpperLimitAsSuperScript NAryAlignment = 3
)

// NAryOptions is the option flag set of an n-ary operator.
type NAryOptions uint8

// N-ary options.
const (
	LimitsOpposite    NAryOptions = 4
	ShowLLimPlaceHldr NAryOptions = 8
	ShowULimPlaceHldr NAryOptions = 16
)

// NAryGrowth tells whether the operator stretches with its body.
type NAryGrowth uint8

// N-ary growth values. NAryGrowthUnset covers every other bit pattern.
const (
	NAryGrowthUnset     NAryGrowth = 0
	DontGrowWithContent NAryGrowth = 64
	GrowWithContent     NAryGrowth = 128
)

const (
	naryAlignMask   = 0x03
	naryOptionsMask = 0x1c
	naryGrowthMask  = 0xc0
)

// Align returns the limit placement.
func (d NAryDisplay) Align() NAryAlignment { return NAryAlignment(d & naryAlignMask) }

// Options returns the option flags; unknown bits are dropped.
func (d NAryDisplay) Options() NAryOptions { return NAryOptions(d & naryOptionsMask) }

// Growth returns the growth setting.
func (d NAryDisplay) Growth() NAryGrowth {
	switch g := NAryGrowth(d & naryGrowthMask); g {
	case DontGrowWithContent, GrowWithContent:
		return g
	}
	return NAryGrowthUnset
}

// Has reports whether all bits of flag are set.
func (o NAryOptions) Has(flag NAryOptions) bool { return o&flag == flag }

// PhantomDisplay is the packed display flag set of a phantom.
type PhantomDisplay uint8

// Phantom flags.
const (
	PhantomShow        PhantomDisplay = 1
	PhantomZeroWidth   PhantomDisplay = 2
	PhantomZeroAscent  PhantomDisplay = 4
	PhantomZeroDescent PhantomDisplay = 8
	PhantomTransparent PhantomDisplay = 16

	phantomKnown = PhantomShow | PhantomZeroWidth | PhantomZeroAscent | PhantomZeroDescent | PhantomTransparent
)

func decodePhantomDisplay(v uint8) (PhantomDisplay, error) {
	d := PhantomDisplay(v)
	if d&^phantomKnown != 0 {
		return 0, fmt.Errorf("%w: phantom display %d", ErrInvalidValue, v)
	}
	return d, nil
}

// Has reports whether all bits of flag are set.
func (d PhantomDisplay) Has(flag PhantomDisplay) bool { return d&flag == flag }

// PhantomKind is the phantom or smash variant.
type PhantomKind uint8

// Phantom kinds.
const (
	PhantomFullOrCustom PhantomKind = iota
	PhantomHorizontal
	PhantomVertical
	SmashAscent
	SmashDescent
	SmashHorizontal
	SmashVertical
)

func decodePhantomKind(c rune) (PhantomKind, error) {
	switch c {
	case '\u27E1':
		return PhantomFullOrCustom, nil
	case '\u2B04':
		return PhantomHorizontal, nil
	case '\u21F3':
		return PhantomVertical, nil
	case '\u2B06':
		return SmashAscent, nil
	case '\u2B07':
		return SmashDescent, nil
	case '\u2B0C':
		return SmashHorizontal, nil
	case '\u2B0D':
		return SmashVertical, nil
	}
	return 0, fmt.Errorf("%w: phantom kind %q", ErrInvalidValue, c)
}

// IsSmash reports whether the kind keeps its content visible.
func (k PhantomKind) IsSmash() bool {
	return k == SmashAscent || k == SmashDescent || k == SmashHorizontal || k == SmashVertical
}

// SubSupAlignment is the explicit script alignment of a sub-sup.
type SubSupAlignment uint8

// SubSupAlign is the only known sub-sup alignment.
const SubSupAlign SubSupAlignment = 1

func decodeSubSupAlignment(v uint8) (SubSupAlignment, error) {
	if SubSupAlignment(v) != SubSupAlign {
		return 0, fmt.Errorf("%w: sub-sup alignment %d", ErrInvalidValue, v)
	}
	return SubSupAlign, nil
}

// StretchStackPosition is where the stretch character sits relative to the base.
type StretchStackPosition uint8

// Stretch stack positions.
const (
	CharBelow StretchStackPosition = 0
	CharAbove StretchStackPosition = 1
	BaseBelow StretchStackPosition = 2
	BaseAbove StretchStackPosition = 3
)

func decodeStretchStackPosition(v uint8) (StretchStackPosition, error) {
	if v > uint8(BaseAbove) {
		return 0, fmt.Errorf("%w: stretch position %d", ErrInvalidValue, v)
	}
	return StretchStackPosition(v), nil
}
