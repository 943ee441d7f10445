package mathml

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Characters that select a construct variant.
const (
	smallFractionChar  = '\u2298' // ⊘
	linearFractionChar = '\u2215' // ∕
)

// Parser builds an Equation from a token stream with one token of lookahead.
type Parser struct {
	lexer  *Lexer
	cur    Token
	logger zerolog.Logger
}

// NewParser creates a Parser over segments and primes the lookahead token.
func NewParser(segments []Segment, logger zerolog.Logger) (*Parser, error) {
	lexer := NewLexer(segments)
	cur, err := lexer.Next()
	if err != nil {
		return nil, err
	}
	return &Parser{lexer: lexer, cur: cur, logger: logger}, nil
}

// Parse consumes the whole stream and returns the top-level equation.
func (p *Parser) Parse() (Equation, error) {
	var eq Equation
	for p.cur.Kind != TokenEOF {
		op, err := p.parseOp()
		if err != nil {
			return nil, err
		}
		eq = append(eq, op)
	}
	return eq, nil
}

func (p *Parser) parseOp() (MathOp, error) {
	switch p.cur.Kind {
	case TokenText:
		tok, err := p.bump()
		if err != nil {
			return nil, err
		}
		return Text{Value: tok.Text}, nil
	case TokenStart:
		return p.parseObject(p.cur.Type)
	case TokenSep:
		return nil, fmt.Errorf("%w: separator of %s (expected text or math object start)", ErrUnexpectedToken, p.cur.Type)
	case TokenEnd:
		return nil, fmt.Errorf("%w: end of %s (expected text or math object start)", ErrUnexpectedToken, p.cur.Type)
	default:
		return nil, fmt.Errorf("%w: EOF (expected text or math object start)", ErrUnexpectedToken)
	}
}

func (p *Parser) parseObject(typ ObjectType) (MathOp, error) {
	switch typ {
	case Accent:
		return p.parseAccent()
	case Box:
		return p.parseBox()
	case BoxedFormula:
		return p.parseBoxedFormula()
	case Brackets:
		return p.parseBrackets()
	case BracketsWithSeps:
		return p.parseBracketsWithSeps()
	case EquationArray:
		return p.parseEquationArray()
	case Fraction:
		return p.parseFraction()
	case FunctionApply:
		return p.parseFunctionApply()
	case LeftSubSup:
		return p.parseLeftSubSup()
	case LowerLimit:
		return p.parseLowerLimit()
	case Matrix:
		return p.parseMatrix()
	case Nary:
		return p.parseNAry()
	case OpChar:
		return p.parseOpChar()
	case Overbar:
		return p.parseOverBar()
	case Phantom:
		return p.parsePhantom()
	case Radical:
		return p.parseRadical()
	case SlashedFraction:
		return p.parseSlashedFraction()
	case Stack:
		return p.parseStack()
	case StretchStack:
		return p.parseStretchStack()
	case Subscript:
		return p.parseSubscript()
	case SubSup:
		return p.parseSubSup()
	case Superscript:
		return p.parseSuperscript()
	case Underbar:
		return p.parseUnderBar()
	case UpperLimit:
		return p.parseUpperLimit()
	case None, SimpleText, PlainText:
		return nil, fmt.Errorf("%w: start of %s (text objects are not tokenized as objects)", ErrUnexpectedToken, typ)
	default:
		return nil, fmt.Errorf("%w: start of unknown object %s", ErrUnexpectedToken, typ)
	}
}

func (p *Parser) parseAccent() (MathOp, error) {
	obj, body, err := p.parseObject1(Accent)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	if obj.Char == 0 {
		return nil, fmt.Errorf("%w: accent has no accent char", ErrMissingField)
	}
	return AccentOp{Char: obj.Char, Body: body}, nil
}

func (p *Parser) parseBox() (MathOp, error) {
	obj, body, err := p.parseObject1(Box)
	if err != nil {
		return nil, err
	}
	op := BoxOp{Body: body}
	if obj.Align != nil {
		display := BoxDisplay(*obj.Align)
		op.Display = &display
	}
	return op, nil
}

func (p *Parser) parseBoxedFormula() (MathOp, error) {
	obj, body, err := p.parseObject1(BoxedFormula)
	if err != nil {
		return nil, err
	}
	op := BoxedFormulaOp{Body: body}
	if obj.Align != nil {
		// Every bit of the byte is a known border flag.
		align := BoxedFormulaAlignment(*obj.Align)
		op.Align = &align
	}
	return op, nil
}

func (p *Parser) parseBrackets() (MathOp, error) {
	obj, body, err := p.parseObject1(Brackets)
	if err != nil {
		return nil, err
	}
	return BracketsOp{
		Open:  obj.Char,
		Close: obj.Char1,
		Body:  body,
		Align: bracketsAlign(obj),
	}, nil
}

func (p *Parser) parseBracketsWithSeps() (MathOp, error) {
	obj, segments, err := p.parseObjectN(BracketsWithSeps)
	if err != nil {
		return nil, err
	}
	if obj.Char2 == 0 {
		return nil, fmt.Errorf("%w: brackets with seps has no separator character", ErrMissingField)
	}
	return BracketsWithSepsOp{
		Open:     obj.Char,
		Close:    obj.Char1,
		Sep:      obj.Char2,
		Segments: segments,
		Align:    bracketsAlign(obj),
	}, nil
}

func (p *Parser) parseEquationArray() (MathOp, error) {
	obj, rows, err := p.parseObjectN(EquationArray)
	if err != nil {
		return nil, err
	}
	if obj.Column == 0 {
		return nil, fmt.Errorf("%w: equation array columns are not set", ErrMissingField)
	}
	op := EquationArrayOp{Columns: obj.Column, Rows: rows}
	if obj.Align != nil {
		align, err := decodeEquationArrayAlignment(*obj.Align)
		if err != nil {
			return nil, err
		}
		op.Align = &align
	}
	return op, nil
}

func (p *Parser) parseFraction() (MathOp, error) {
	obj, num, den, err := p.parseObject2(Fraction)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return FractionOp{Num: num, Den: den, Small: obj.Char == smallFractionChar}, nil
}

func (p *Parser) parseFunctionApply() (MathOp, error) {
	obj, fn, body, err := p.parseObject2(FunctionApply)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return FunctionApplyOp{Func: fn, Body: body}, nil
}

func (p *Parser) parseLeftSubSup() (MathOp, error) {
	obj, sub, sup, body, err := p.parseObject3(LeftSubSup)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return LeftSubSupOp{Sub: sub, Sup: sup, Body: body}, nil
}

func (p *Parser) parseLowerLimit() (MathOp, error) {
	obj, body, limit, err := p.parseObject2(LowerLimit)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return LowerLimitOp{Body: body, Limit: limit}, nil
}

func (p *Parser) parseMatrix() (MathOp, error) {
	obj, items, err := p.parseObjectN(Matrix)
	if err != nil {
		return nil, err
	}
	if obj.Column == 0 {
		return nil, fmt.Errorf("%w: matrix columns are not set", ErrMissingField)
	}
	if obj.Char == 0 {
		return nil, fmt.Errorf("%w: matrix has no brackets specifier", ErrMissingField)
	}
	brackets, err := decodeMatrixBrackets(obj.Char)
	if err != nil {
		return nil, err
	}
	op := MatrixOp{Columns: obj.Column, Brackets: brackets, Items: items}
	if obj.Align != nil {
		align, err := decodeMatrixAlignment(*obj.Align)
		if err != nil {
			return nil, err
		}
		op.Align = &align
	}
	return op, nil
}

func (p *Parser) parseNAry() (MathOp, error) {
	obj, sub, sup, body, err := p.parseObject3(Nary)
	if err != nil {
		return nil, err
	}
	if obj.Char == 0 {
		return nil, fmt.Errorf("%w: n-ary has no operator char", ErrMissingField)
	}
	op := NAryOp{Op: obj.Char, Sub: sub, Sup: sup, Body: body}
	if obj.Align != nil {
		display := NAryDisplay(*obj.Align)
		op.Display = &display
	}
	return op, nil
}

func (p *Parser) parseOpChar() (MathOp, error) {
	obj, err := p.bumpStart(OpChar)
	if err != nil {
		return nil, err
	}
	if err := expectArgCount(obj, 0); err != nil {
		return nil, err
	}
	if err := p.bumpEnd(OpChar); err != nil {
		return nil, err
	}

	p.logger.Warn().
		Str("feature", "op-char").
		Msg("math feature not implemented, rendering the operator char as text")

	var text string
	if obj.Char != 0 {
		text = string(obj.Char)
	}
	return Text{Value: text}, nil
}

func (p *Parser) parseOverBar() (MathOp, error) {
	obj, body, err := p.parseObject1(Overbar)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return OverBarOp{Body: body}, nil
}

func (p *Parser) parsePhantom() (MathOp, error) {
	obj, body, err := p.parseObject1(Phantom)
	if err != nil {
		return nil, err
	}
	if obj.Char == 0 {
		return nil, fmt.Errorf("%w: phantom has no kind specifier", ErrMissingField)
	}
	kind, err := decodePhantomKind(obj.Char)
	if err != nil {
		return nil, err
	}
	op := PhantomOp{Body: body, Kind: kind}
	if obj.Align != nil {
		display, err := decodePhantomDisplay(*obj.Align)
		if err != nil {
			return nil, err
		}
		op.Display = &display
	}
	return op, nil
}

func (p *Parser) parseRadical() (MathOp, error) {
	obj, degree, body, err := p.parseObject2(Radical)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return RadicalOp{Degree: degree, Body: body}, nil
}

func (p *Parser) parseSlashedFraction() (MathOp, error) {
	obj, num, den, err := p.parseObject2(SlashedFraction)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return SlashedFractionOp{Num: num, Den: den, Linear: obj.Char == linearFractionChar}, nil
}

func (p *Parser) parseStack() (MathOp, error) {
	obj, num, den, err := p.parseObject2(Stack)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return StackOp{Num: num, Den: den}, nil
}

func (p *Parser) parseStretchStack() (MathOp, error) {
	obj, body, err := p.parseObject1(StretchStack)
	if err != nil {
		return nil, err
	}
	if obj.Char == 0 {
		return nil, fmt.Errorf("%w: stretch stack has no stretch char", ErrMissingField)
	}
	var raw uint8
	if obj.Align != nil {
		raw = *obj.Align
	}
	pos, err := decodeStretchStackPosition(raw)
	if err != nil {
		return nil, err
	}
	return StretchStackOp{Char: obj.Char, Body: body, Pos: pos}, nil
}

func (p *Parser) parseSubscript() (MathOp, error) {
	obj, body, sub, err := p.parseObject2(Subscript)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return SubscriptOp{Body: body, Sub: sub}, nil
}

func (p *Parser) parseSubSup() (MathOp, error) {
	obj, body, sub, sup, err := p.parseObject3(SubSup)
	if err != nil {
		return nil, err
	}
	op := SubSupOp{Body: body, Sub: sub, Sup: sup}
	if obj.Align != nil {
		align, err := decodeSubSupAlignment(*obj.Align)
		if err != nil {
			return nil, err
		}
		op.Align = &align
	}
	return op, nil
}

func (p *Parser) parseSuperscript() (MathOp, error) {
	obj, body, sup, err := p.parseObject2(Superscript)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return SuperscriptOp{Body: body, Sup: sup}, nil
}

func (p *Parser) parseUnderBar() (MathOp, error) {
	obj, body, err := p.parseObject1(Underbar)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return UnderBarOp{Body: body}, nil
}

func (p *Parser) parseUpperLimit() (MathOp, error) {
	obj, body, limit, err := p.parseObject2(UpperLimit)
	if err != nil {
		return nil, err
	}
	if err := expectNoAlign(obj); err != nil {
		return nil, err
	}
	return UpperLimitOp{Body: body, Limit: limit}, nil
}

// Helpers

func (p *Parser) parseObject1(typ ObjectType) (Object, Equation, error) {
	obj, args, err := p.parseFixed(typ, 1)
	if err != nil {
		return Object{}, nil, err
	}
	return obj, args[0], nil
}

func (p *Parser) parseObject2(typ ObjectType) (Object, Equation, Equation, error) {
	obj, args, err := p.parseFixed(typ, 2)
	if err != nil {
		return Object{}, nil, nil, err
	}
	return obj, args[0], args[1], nil
}

func (p *Parser) parseObject3(typ ObjectType) (Object, Equation, Equation, Equation, error) {
	obj, args, err := p.parseFixed(typ, 3)
	if err != nil {
		return Object{}, nil, nil, nil, err
	}
	return obj, args[0], args[1], args[2], nil
}

// parseFixed parses an object whose construct takes exactly n arguments.
func (p *Parser) parseFixed(typ ObjectType, n uint32) (Object, []Equation, error) {
	obj, err := p.bumpStart(typ)
	if err != nil {
		return Object{}, nil, err
	}
	if err := expectArgCount(obj, n); err != nil {
		return Object{}, nil, err
	}
	args, err := p.parseArgs(typ, n)
	if err != nil {
		return Object{}, nil, err
	}
	return obj, args, nil
}

// parseObjectN parses an object taking as many arguments as it declares.
func (p *Parser) parseObjectN(typ ObjectType) (Object, []Equation, error) {
	obj, err := p.bumpStart(typ)
	if err != nil {
		return Object{}, nil, err
	}
	if obj.ArgCount == 0 {
		if err := p.bumpEnd(typ); err != nil {
			return Object{}, nil, err
		}
		return obj, nil, nil
	}
	args, err := p.parseArgs(typ, obj.ArgCount)
	if err != nil {
		return Object{}, nil, err
	}
	return obj, args, nil
}

// parseArgs parses n arguments separated by n-1 separators and closed by an end.
func (p *Parser) parseArgs(typ ObjectType, n uint32) ([]Equation, error) {
	var args []Equation
	for i := uint32(0); i < n; i++ {
		arg, err := p.parseArg(typ)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if i < n-1 {
			err = p.bumpSep(typ)
		} else {
			err = p.bumpEnd(typ)
		}
		if err != nil {
			return nil, err
		}
	}
	return args, nil
}

// parseArg parses operators until the separator or end of typ.
func (p *Parser) parseArg(typ ObjectType) (Equation, error) {
	var eq Equation
	for !p.cur.Is(TokenSep, typ) && !p.cur.Is(TokenEnd, typ) {
		op, err := p.parseOp()
		if err != nil {
			return nil, err
		}
		eq = append(eq, op)
	}
	return eq, nil
}

func (p *Parser) bump() (Token, error) {
	next, err := p.lexer.Next()
	if err != nil {
		return Token{}, err
	}
	tok := p.cur
	p.cur = next
	return tok, nil
}

func (p *Parser) bumpStart(typ ObjectType) (Object, error) {
	tok, err := p.bump()
	if err != nil {
		return Object{}, err
	}
	if tok.Kind != TokenStart || tok.Type != typ {
		return Object{}, fmt.Errorf("%w: %s (expected start of %s)", ErrUnexpectedToken, tok, typ)
	}
	return tok.Object, nil
}

func (p *Parser) bumpSep(typ ObjectType) error {
	tok, err := p.bump()
	if err != nil {
		return err
	}
	if !tok.Is(TokenSep, typ) {
		return fmt.Errorf("%w: %s (expected separator of %s)", ErrUnexpectedToken, tok, typ)
	}
	return nil
}

func (p *Parser) bumpEnd(typ ObjectType) error {
	tok, err := p.bump()
	if err != nil {
		return err
	}
	if !tok.Is(TokenEnd, typ) {
		return fmt.Errorf("%w: %s (expected end of %s)", ErrUnexpectedToken, tok, typ)
	}
	return nil
}

func expectArgCount(obj Object, n uint32) error {
	if obj.ArgCount != n {
		return fmt.Errorf("%w: %s declares %d (expected %d)", ErrArgCount, obj.Type, obj.ArgCount, n)
	}
	return nil
}

func expectNoAlign(obj Object) error {
	if obj.Align != nil {
		return fmt.Errorf("%w: %s carries align data %d", ErrUnexpectedAlign, obj.Type, *obj.Align)
	}
	return nil
}

func bracketsAlign(obj Object) *BracketsAlignment {
	if obj.Align == nil {
		return nil
	}
	align, ok := decodeBracketsAlignment(*obj.Align)
	if !ok {
		return nil
	}
	return &align
}
