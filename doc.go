// Package onemath renders the inline math of OneNote-style rich text as
// MathML, and Markdown pages carrying such equations as standalone HTML.
//
// # Equations
//
// The document model stores an equation as a flat run of text fragments,
// each tagged with the math object active over it. Nesting is recovered
// from sentinel characters: a fragment whose text is MarkerStart opens an
// object, MarkerSep separates its arguments and MarkerEnd closes it.
//
//	conv, err := onemath.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	frac := &onemath.MathObject{Type: "fraction", ArgCount: 2}
//	mathML, err := conv.RenderMath([]onemath.Segment{
//	    {Text: onemath.MarkerStart, Object: frac},
//	    {Text: "1"},
//	    {Text: onemath.MarkerSep, Object: frac},
//	    {Text: "2"},
//	    {Text: onemath.MarkerEnd, Object: frac},
//	})
//
// Constructs the renderer does not support (some alignment modes, operator
// characters) are rendered without the feature and reported as warnings on
// the logger given with WithLogger. Malformed streams fail with
// ErrMathRender wrapping one of ErrUnexpectedToken, ErrArgCount,
// ErrMissingField, ErrInvalidValue or ErrUnexpectedAlign.
//
// # Paragraphs
//
// RenderParagraph takes the runs of a paragraph with their math flag and the
// paragraph's math objects, renders every math group in place and turns line
// breaks into <br>.
//
// # Pages
//
// Convert renders a Markdown page. Fenced blocks tagged "equation" hold a
// YAML list of segments and become MathML:
//
//	```equation
//	- text: "\uFDD0"
//	  object: {type: sub-sup, args: 3}
//	- text: "x"
//	- text: "\uFDEE"
//	  object: {type: sub-sup, args: 3}
//	- text: "i"
//	- text: "\uFDEE"
//	  object: {type: sub-sup, args: 3}
//	- text: "2"
//	- text: "\uFDEF"
//	  object: {type: sub-sup, args: 3}
//	```
//
// Everything else is GitHub-flavored Markdown with highlighted code blocks
// and ==highlight== marks. The page gets the CSS from WithStyle followed by
// Input.CSS.
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. ConverterPool bounds how many
// pages render at once for batch jobs:
//
//	pool, err := onemath.NewConverterPool(onemath.ResolvePoolSize(0))
//	conv, err := pool.Acquire()
//	defer pool.Release(conv)
package onemath
