package mathml

// Equation is an ordered sequence of operators in reading order.
type Equation []MathOp

// MathOp is one node of the equation tree. The set of implementations is
// closed; every child Equation is owned by exactly one parent.
type MathOp interface {
	mathOp()
}

// Text is a literal run of characters.
type Text struct {
	Value string
}

// AccentOp places an accent character over its body.
type AccentOp struct {
	Char rune
	Body Equation
}

// BoxOp groups its body, optionally with spacing, size and alignment hints.
type BoxOp struct {
	Body    Equation
	Display *BoxDisplay
}

// BoxedFormulaOp draws a frame around its body.
type BoxedFormulaOp struct {
	Body  Equation
	Align *BoxedFormulaAlignment
}

// BracketsOp encloses its body in an optional pair of brackets.
type BracketsOp struct {
	Open  rune
	Close rune
	Body  Equation
	Align *BracketsAlignment
}

// BracketsWithSepsOp encloses segments in brackets, separated by Sep.
type BracketsWithSepsOp struct {
	Open     rune
	Close    rune
	Sep      rune
	Segments []Equation
	Align    *BracketsAlignment
}

// EquationArrayOp stacks rows of equations.
type EquationArrayOp struct {
	Columns uint8
	Rows    []Equation
	Align   *EquationArrayAlignment
}

// FractionOp is a stacked fraction. Small marks the reduced-size variant.
type FractionOp struct {
	Num   Equation
	Den   Equation
	Small bool
}

// FunctionApplyOp applies a function name to an argument.
type FunctionApplyOp struct {
	Func Equation
	Body Equation
}

// LeftSubSupOp attaches pre-scripts to its body.
type LeftSubSupOp struct {
	Sub  Equation
	Sup  Equation
	Body Equation
}

// LowerLimitOp places a limit under its body.
type LowerLimitOp struct {
	Body  Equation
	Limit Equation
}

// MatrixOp lays items out in rows of Columns cells.
type MatrixOp struct {
	Columns  uint8
	Brackets MatrixBrackets
	Items    []Equation
	Align    *MatrixAlignment
}

// NAryOp is a big operator (sum, integral, ...) with limits and a body.
type NAryOp struct {
	Op      rune
	Sub     Equation
	Sup     Equation
	Body    Equation
	Display *NAryDisplay
}

// OverBarOp draws a bar over its body.
type OverBarOp struct {
	Body Equation
}

// PhantomOp hides or smashes its body.
type PhantomOp struct {
	Body    Equation
	Kind    PhantomKind
	Display *PhantomDisplay
}

// RadicalOp is a root of Body with an optional Degree.
type RadicalOp struct {
	Degree Equation
	Body   Equation
}

// SlashedFractionOp is a fraction drawn with a slash. Linear keeps it inline.
type SlashedFractionOp struct {
	Num    Equation
	Den    Equation
	Linear bool
}

// StackOp stacks two equations without a fraction bar.
type StackOp struct {
	Num Equation
	Den Equation
}

// StretchStackOp stacks a stretched character above or below its body.
type StretchStackOp struct {
	Char rune
	Body Equation
	Pos  StretchStackPosition
}

// SubscriptOp attaches a subscript.
type SubscriptOp struct {
	Body Equation
	Sub  Equation
}

// SubSupOp attaches a subscript and a superscript.
type SubSupOp struct {
	Body  Equation
	Sub   Equation
	Sup   Equation
	Align *SubSupAlignment
}

// SuperscriptOp attaches a superscript.
type SuperscriptOp struct {
	Body Equation
	Sup  Equation
}

// UnderBarOp draws a bar under its body.
type UnderBarOp struct {
	Body Equation
}

// UpperLimitOp places a limit over its body.
type UpperLimitOp struct {
	Body  Equation
	Limit Equation
}

func (Text) mathOp()               {}
func (AccentOp) mathOp()           {}
func (BoxOp) mathOp()              {}
func (BoxedFormulaOp) mathOp()     {}
func (BracketsOp) mathOp()         {}
func (BracketsWithSepsOp) mathOp() {}
func (EquationArrayOp) mathOp()    {}
func (FractionOp) mathOp()         {}
func (FunctionApplyOp) mathOp()    {}
func (LeftSubSupOp) mathOp()       {}
func (LowerLimitOp) mathOp()       {}
func (MatrixOp) mathOp()           {}
func (NAryOp) mathOp()             {}
func (OverBarOp) mathOp()          {}
func (PhantomOp) mathOp()          {}
func (RadicalOp) mathOp()          {}
func (SlashedFractionOp) mathOp()  {}
func (StackOp) mathOp()            {}
func (StretchStackOp) mathOp()     {}
func (SubscriptOp) mathOp()        {}
func (SubSupOp) mathOp()           {}
func (SuperscriptOp) mathOp()      {}
func (UnderBarOp) mathOp()         {}
func (UpperLimitOp) mathOp()       {}
