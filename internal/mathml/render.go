package mathml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// MathMLNamespace is the namespace of the root <math> element.
const MathMLNamespace = "http://www.w3.org/1998/Math/MathML"

// Layout constants.
const (
	bracketScale      = 1.25
	emptyGroup        = "<mi></mi>"
	emptyScript       = "<mo>\u2B1A</mo>"
	placeholderCell   = "<mtd><mo>\u25A1</mo></mtd>"
	placeholderLimit  = "<mrow><mo>\u25A1</mo></mrow>"
	noScript          = "<none/>"
	alignMark         = `<malignmark edge="left"></malignmark>`
	scriptStyleOpen   = `<mstyle scriptlevel="1" displaystyle="false">`
	matrixColumnSpace = "0.8em"
)

// leafEscaper escapes markup-significant characters in leaf text. '&' is left
// alone: it only ever reaches a leaf as raw text.
var leafEscaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

// Renderer lowers an Equation to MathML markup.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	logger zerolog.Logger

	// arrayDepth counts enclosing equation arrays; raw '&' inside one
	// becomes an alignment mark.
	arrayDepth int
}

// NewRenderer creates a Renderer reporting feature gaps to logger.
func NewRenderer(logger zerolog.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// RenderEquation renders eq wrapped in a <math> root element.
func (r *Renderer) RenderEquation(eq Equation) (string, error) {
	var sb strings.Builder
	sb.WriteString(`<math xmlns="` + MathMLNamespace + `">`)
	if err := r.renderEq(&sb, eq); err != nil {
		return "", err
	}
	sb.WriteString("</math>")
	return sb.String(), nil
}

// Render parses segments and renders the resulting equation.
func Render(segments []Segment, logger zerolog.Logger) (string, error) {
	p, err := NewParser(segments, logger)
	if err != nil {
		return "", err
	}
	eq, err := p.Parse()
	if err != nil {
		return "", err
	}
	return NewRenderer(logger).RenderEquation(eq)
}

func (r *Renderer) renderEq(sb *strings.Builder, eq Equation) error {
	for _, op := range eq {
		s, err := r.renderOp(op)
		if err != nil {
			return err
		}
		sb.WriteString(s)
	}
	return nil
}

// renderGroup renders eq as a single MathML child.
func (r *Renderer) renderGroup(eq Equation) (string, error) {
	switch len(eq) {
	case 0:
		return emptyGroup, nil
	case 1:
		if text, ok := eq[0].(Text); ok {
			return "<mrow>" + r.renderText(text.Value) + "</mrow>", nil
		}
		return r.renderOp(eq[0])
	default:
		var sb strings.Builder
		sb.WriteString("<mrow>")
		if err := r.renderEq(&sb, eq); err != nil {
			return "", err
		}
		sb.WriteString("</mrow>")
		return sb.String(), nil
	}
}

// renderGroups renders each equation as a group, stopping at the first error.
func (r *Renderer) renderGroups(eqs ...Equation) ([]string, error) {
	out := make([]string, len(eqs))
	for i, eq := range eqs {
		s, err := r.renderGroup(eq)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func (r *Renderer) renderOp(op MathOp) (string, error) {
	switch op := op.(type) {
	case Text:
		return r.renderText(op.Value), nil
	case AccentOp:
		return r.renderAccent(op)
	case BoxOp:
		return r.renderBox(op)
	case BoxedFormulaOp:
		return r.renderBoxedFormula(op)
	case BracketsOp:
		return r.renderBrackets(op)
	case BracketsWithSepsOp:
		return r.renderBracketsWithSeps(op)
	case EquationArrayOp:
		return r.renderEquationArray(op)
	case FractionOp:
		return r.renderFraction(op)
	case FunctionApplyOp:
		return r.renderFunctionApply(op)
	case LeftSubSupOp:
		return r.renderLeftSubSup(op)
	case LowerLimitOp:
		return r.renderLimit("munder", op.Body, op.Limit)
	case MatrixOp:
		return r.renderMatrix(op)
	case NAryOp:
		return r.renderNAry(op)
	case OverBarOp:
		return r.renderOverBar(op)
	case PhantomOp:
		return r.renderPhantom(op)
	case RadicalOp:
		return r.renderRadical(op)
	case SlashedFractionOp:
		return r.renderSlashedFraction(op)
	case StackOp:
		return r.renderStack(op)
	case StretchStackOp:
		return r.renderStretchStack(op)
	case SubscriptOp:
		return r.renderScripts("msub", op.Body, op.Sub)
	case SubSupOp:
		if op.Align != nil {
			r.warnFeature("sub-sup-alignment")
		}
		return r.renderScripts("msubsup", op.Body, op.Sub, op.Sup)
	case SuperscriptOp:
		return r.renderScripts("msup", op.Body, op.Sup)
	case UnderBarOp:
		return r.renderUnderBar(op)
	case UpperLimitOp:
		return r.renderLimit("mover", op.Body, op.Limit)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownNode, op)
	}
}

// renderText lowers a literal run into leaf elements, one per same-type segment.
func (r *Renderer) renderText(s string) string {
	segments := SegmentText(s, func(c rune) {
		r.logger.Warn().
			Str("feature", "text-type").
			Str("char", fmt.Sprintf("%U", c)).
			Msg("no text type for character, rendering as identifier")
	})

	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(r.renderLeaf(seg))
	}
	return sb.String()
}

func (r *Renderer) renderLeaf(seg TextSegment) string {
	text := seg.Text
	switch seg.Type {
	case TextRaw:
		if r.arrayDepth > 0 {
			return strings.ReplaceAll(text, "&", alignMark)
		}
		return text
	case TextSpace:
		return `<mspace width="0.222em"></mspace>`
	case TextDoubleOperator:
		c, size := utf8.DecodeRuneInString(text)
		mapped, ok := doubleStruckDifferentials[c]
		if !ok || size != len(text) {
			r.logger.Warn().
				Str("feature", "double-operator").
				Str("text", text).
				Msg("math feature not implemented, keeping the double-struck operator")
			mapped = text
		}
		return `<mrow><mspace width="0.166em"></mspace><mi>` + leafEscaper.Replace(mapped) + "</mi></mrow>"
	}

	text = leafEscaper.Replace(text)
	switch seg.Type {
	case TextIdentifier:
		return "<mi>" + text + "</mi>"
	case TextNormal:
		return `<mi mathvariant="normal">` + text + "</mi>"
	case TextNumeric:
		return "<mn>" + text + "</mn>"
	case TextOperator:
		return "<mo>" + text + "</mo>"
	default:
		return `<mi mathvariant="` + seg.Type.String() + `">` + text + "</mi>"
	}
}

func (r *Renderer) renderAccent(op AccentOp) (string, error) {
	body, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}
	return `<mover accent="true">` + body + mo(op.Char) + "</mover>", nil
}

// boxSpacing is the (left, right) space a box class adds around its content.
var boxSpacing = map[BoxSpace][2]string{
	BoxSpaceUnary:        {"", "0.166em"},
	BoxSpaceBinary:       {"0.222em", "0.222em"},
	BoxSpaceRelational:   {"0.278em", "0.278em"},
	BoxSpaceSkip:         {"0.444em", "0.444em"},
	BoxSpaceDifferential: {"0.111em", ""},
}

func (r *Renderer) renderBox(op BoxOp) (string, error) {
	content, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}
	if op.Display == nil {
		return content, nil
	}
	display := *op.Display

	if display.Align() != BoxAlignBaseline {
		content = "<mrow><malignmark/>" + content + "</mrow>"
	}

	if space, ok := boxSpacing[display.Space()]; ok {
		content = "<mrow>" + mspace(space[0]) + content + mspace(space[1]) + "</mrow>"
	}

	switch display.Size() {
	case BoxSizeScript:
		content = scriptStyleOpen + content + "</mstyle>"
	case BoxSizeScriptScript:
		content = `<mstyle scriptlevel="2" displaystyle="false">` + content + "</mstyle>"
	}

	if display.NoBreak() {
		content = `<mrow linebreak="nobreak">` + content + "</mrow>"
	}
	return content, nil
}

func (r *Renderer) renderBoxedFormula(op BoxedFormulaOp) (string, error) {
	if op.Align != nil {
		r.warnFeature("boxed-formula-alignment")
	}
	body, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}
	return `<menclose notation="box">` + body + "</menclose>", nil
}

// bracketSize returns the min/max size attributes for align, or "" when absent.
func bracketSize(align *BracketsAlignment) string {
	if align == nil {
		return ""
	}
	size := strconv.FormatFloat(math.Pow(bracketScale, float64(align.Tier())), 'f', -1, 64) + "em"
	return ` minsize="` + size + `" maxsize="` + size + `"`
}

func (r *Renderer) renderBrackets(op BracketsOp) (string, error) {
	body, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}
	size := bracketSize(op.Align)
	return "<mrow>" + bracket(op.Open, size) + body + bracket(op.Close, size) + "</mrow>", nil
}

func (r *Renderer) renderBracketsWithSeps(op BracketsWithSepsOp) (string, error) {
	segments, err := r.renderGroups(op.Segments...)
	if err != nil {
		return "", err
	}
	size := bracketSize(op.Align)
	attrs := ` symmetric="true"` + size
	sep := `<mo stretchy="true"` + attrs + ">" + escapeRune(op.Sep) + "</mo>"
	return "<mrow>" +
		bracket(op.Open, attrs) +
		strings.Join(segments, sep) +
		bracket(op.Close, attrs) +
		"</mrow>", nil
}

func (r *Renderer) renderEquationArray(op EquationArrayOp) (string, error) {
	if op.Align != nil {
		r.warnFeature("equation-array-alignment")
	}

	r.arrayDepth++
	defer func() { r.arrayDepth-- }()

	var sb strings.Builder
	sb.WriteString("<mtable>")
	for _, row := range op.Rows {
		cell, err := r.renderGroup(row)
		if err != nil {
			return "", err
		}
		sb.WriteString("<mtr><mtd>" + cell + "</mtd></mtr>")
	}
	sb.WriteString("</mtable>")
	return sb.String(), nil
}

func (r *Renderer) renderFraction(op FractionOp) (string, error) {
	// Small fractions share the markup of regular ones.
	parts, err := r.renderGroups(op.Num, op.Den)
	if err != nil {
		return "", err
	}
	return "<mfrac>" + parts[0] + parts[1] + "</mfrac>", nil
}

func (r *Renderer) renderFunctionApply(op FunctionApplyOp) (string, error) {
	parts, err := r.renderGroups(op.Func, op.Body)
	if err != nil {
		return "", err
	}
	return parts[0] + mo(functionApplication) + parts[1], nil
}

func (r *Renderer) renderLeftSubSup(op LeftSubSupOp) (string, error) {
	body, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}
	sub, err := r.renderOptional(op.Sub, noScript)
	if err != nil {
		return "", err
	}
	sup, err := r.renderOptional(op.Sup, noScript)
	if err != nil {
		return "", err
	}
	return "<mmultiscripts>" + body + noScript + noScript + "<mprescripts/>" + sub + sup + "</mmultiscripts>", nil
}

func (r *Renderer) renderLimit(tag string, body, limit Equation) (string, error) {
	parts, err := r.renderGroups(body, limit)
	if err != nil {
		return "", err
	}
	return "<" + tag + ">" + parts[0] + parts[1] + "</" + tag + ">", nil
}

func (r *Renderer) renderMatrix(op MatrixOp) (string, error) {
	var showPlaceholder bool
	var rowAlign string
	if op.Align != nil {
		switch *op.Align {
		case MatrixShowPlaceholder:
			showPlaceholder = true
		case MatrixAlignTopRow:
			rowAlign = ` rowalign="top"`
		case MatrixAlignBottomRow:
			rowAlign = ` rowalign="bottom"`
		}
	}

	columns := max(int(op.Columns), 1) // 0 only in hand-built trees
	var rows strings.Builder
	for start := 0; start < len(op.Items); start += columns {
		rows.WriteString("<mtr>")
		for i := start; i < start+columns; i++ {
			var item Equation
			if i < len(op.Items) {
				item = op.Items[i]
			}
			switch {
			case len(item) == 0 && showPlaceholder:
				rows.WriteString(placeholderCell)
			case len(item) == 0:
				rows.WriteString("<mtd></mtd>")
			default:
				cell, err := r.renderGroup(item)
				if err != nil {
					return "", err
				}
				rows.WriteString("<mtd>" + cell + "</mtd>")
			}
		}
		rows.WriteString("</mtr>")
	}

	open, closing := op.Brackets.Glyphs()
	return "<mrow><mo>" + open + "</mo>" +
		`<mtable columnspacing="` + matrixColumnSpace + `"` + rowAlign + ">" + rows.String() + "</mtable>" +
		"<mo>" + closing + "</mo></mrow>", nil
}

func (r *Renderer) renderNAry(op NAryOp) (string, error) {
	parts, err := r.renderGroups(op.Sub, op.Sup, op.Body)
	if err != nil {
		return "", err
	}
	sub, sup, body := parts[0], parts[1], parts[2]

	if op.Display == nil {
		return "<mrow><munderover>" + mo(op.Op) + sub + sup + "</munderover>" + body + "</mrow>", nil
	}
	display := *op.Display

	opNode := mo(op.Op)
	switch display.Growth() {
	case DontGrowWithContent:
		opNode = `<mo stretchy="false">` + escapeRune(op.Op) + "</mo>"
	case GrowWithContent:
		opNode = `<mo stretchy="true">` + escapeRune(op.Op) + "</mo>"
	}

	options := display.Options()
	if options.Has(ShowLLimPlaceHldr) && len(op.Sub) == 0 {
		sub = placeholderLimit
	}
	if options.Has(ShowULimPlaceHldr) && len(op.Sup) == 0 {
		sup = placeholderLimit
	}
	if options.Has(LimitsOpposite) {
		sub, sup = sup, sub
	}

	tag := "munderover"
	switch display.Align() {
	case LimitsSubSup, UpperLimitAsSuperScript:
		tag = "msubsup"
	}
	return "<mrow><" + tag + ">" + opNode + sub + sup + "</" + tag + ">" + body + "</mrow>", nil
}

func (r *Renderer) renderOverBar(op OverBarOp) (string, error) {
	body, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}
	return `<mover accent="true">` + body + "<mo>\u00AF</mo></mover>", nil
}

func (r *Renderer) renderPhantom(op PhantomOp) (string, error) {
	show := op.Kind.IsSmash()
	var transparent, zeroWidth, zeroAscent, zeroDescent bool
	if op.Display != nil {
		d := *op.Display
		show = show || d.Has(PhantomShow)
		transparent = d.Has(PhantomTransparent)
		zeroWidth = d.Has(PhantomZeroWidth)
		zeroAscent = d.Has(PhantomZeroAscent)
		zeroDescent = d.Has(PhantomZeroDescent)
	}

	switch op.Kind {
	case PhantomHorizontal, SmashVertical:
		zeroAscent = true
		zeroDescent = true
	case PhantomVertical, SmashHorizontal:
		zeroWidth = true
	case SmashAscent:
		zeroAscent = true
	case SmashDescent:
		zeroDescent = true
	}

	content, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}

	if !show {
		content = "<mphantom>" + content + "</mphantom>"
	} else if transparent {
		content = `<mstyle mathcolor="transparent">` + content + "</mstyle>"
	}

	if zeroWidth || zeroAscent || zeroDescent {
		var attrs strings.Builder
		if zeroWidth {
			attrs.WriteString(` width="0"`)
		}
		if zeroAscent {
			attrs.WriteString(` height="0"`)
		}
		if zeroDescent {
			attrs.WriteString(` depth="0"`)
		}
		content = "<mpadded" + attrs.String() + ">" + content + "</mpadded>"
	}
	return content, nil
}

func (r *Renderer) renderRadical(op RadicalOp) (string, error) {
	parts, err := r.renderGroups(op.Body, op.Degree)
	if err != nil {
		return "", err
	}
	return "<mroot>" + parts[0] + parts[1] + "</mroot>", nil
}

func (r *Renderer) renderSlashedFraction(op SlashedFractionOp) (string, error) {
	parts, err := r.renderGroups(op.Num, op.Den)
	if err != nil {
		return "", err
	}
	num, den := parts[0], parts[1]
	const slash = "<mo>\u2044</mo>"

	if op.Linear {
		return num + slash + den, nil
	}
	return "<mrow>" +
		"<msup><mrow/>" + scriptStyleOpen + num + "</mstyle></msup>" +
		slash +
		"<msub><mrow/>" + scriptStyleOpen + den + "</mstyle></msub>" +
		"</mrow>", nil
}

func (r *Renderer) renderStack(op StackOp) (string, error) {
	parts, err := r.renderGroups(op.Num, op.Den)
	if err != nil {
		return "", err
	}
	return "<mtable><mtr><mtd>" + parts[0] + "</mtd></mtr><mtr><mtd>" + parts[1] + "</mtd></mtr></mtable>", nil
}

// renderStretchStack always uses the body as base and the char as the mark;
// MathML has no notion of the base itself sitting above or below.
func (r *Renderer) renderStretchStack(op StretchStackOp) (string, error) {
	body, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}
	tag := "munder"
	if op.Pos == CharAbove || op.Pos == BaseBelow {
		tag = "mover"
	}
	return "<" + tag + ` accent="true">` + body + mo(op.Char) + "</" + tag + ">", nil
}

// renderScripts renders a base followed by scripts; empty scripts become a
// dotted placeholder.
func (r *Renderer) renderScripts(tag string, body Equation, scripts ...Equation) (string, error) {
	base, err := r.renderGroup(body)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<" + tag + ">" + base)
	for _, script := range scripts {
		s, err := r.renderOptional(script, emptyScript)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	sb.WriteString("</" + tag + ">")
	return sb.String(), nil
}

func (r *Renderer) renderUnderBar(op UnderBarOp) (string, error) {
	body, err := r.renderGroup(op.Body)
	if err != nil {
		return "", err
	}
	return `<munder accentunder="true">` + body + "<mo>_</mo></munder>", nil
}

// renderOptional renders eq as a group, or returns fallback when eq is empty.
func (r *Renderer) renderOptional(eq Equation, fallback string) (string, error) {
	if len(eq) == 0 {
		return fallback, nil
	}
	return r.renderGroup(eq)
}

func (r *Renderer) warnFeature(feature string) {
	r.logger.Warn().
		Str("feature", feature).
		Msg("math feature not implemented, rendering without it")
}

func mo(c rune) string {
	return "<mo>" + escapeRune(c) + "</mo>"
}

// bracket renders an optional bracket glyph; a zero rune renders nothing.
func bracket(c rune, attrs string) string {
	if c == 0 {
		return ""
	}
	return "<mo" + attrs + ">" + escapeRune(c) + "</mo>"
}

func mspace(width string) string {
	if width == "" {
		return ""
	}
	return `<mspace width="` + width + `"></mspace>`
}

func escapeRune(c rune) string {
	return leafEscaper.Replace(string(c))
}
