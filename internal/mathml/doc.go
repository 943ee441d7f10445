// Package mathml compiles inline math objects of the document model to MathML.
//
// # Input
//
// The document model stores an equation as flat paragraph text. Each text
// fragment is paired with the descriptor ([Object]) of the math object active
// at that position, and three reserved code points delimit the objects:
//
//	U+FDD0  start of an object (the fragment carries its descriptor)
//	U+FDEE  separator between two arguments of an object
//	U+FDEF  end of an object
//
// # Stages
//
//	[]Segment ──> Lexer ──> Parser ──> Equation ──> Renderer ──> <math>…</math>
//
// The [Lexer] splits fragments into start, separator, end and text tokens.
// The [Parser] checks arity and required fields per construct and decodes the
// packed alignment byte into a named type ([BoxDisplay], [NAryDisplay], ...).
// The [Renderer] lowers the tree to MathML; literal text goes through
// [SegmentText] which picks the leaf element for every character.
//
// Structural and field errors abort the equation and wrap one of the sentinel
// errors of this package. Gaps in feature coverage only log a warning with a
// "feature" field and rendering continues.
package mathml
