package onemath

import (
	"errors"

	"github.com/alnah/go-onemath/internal/mathml"
	"github.com/alnah/go-onemath/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown        = errors.New("markdown content cannot be empty")
	ErrMathRender           = errors.New("math rendering failed")
	ErrInvalidEquationBlock = errors.New("invalid equation block")
	ErrInvalidMathObject    = errors.New("invalid math object")
	ErrHTMLConversion       = pipeline.ErrHTMLConversion

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Equation errors. A failed RenderMath wraps ErrMathRender together with
// exactly one of these.
var (
	ErrUnexpectedToken = mathml.ErrUnexpectedToken
	ErrArgCount        = mathml.ErrArgCount
	ErrMissingField    = mathml.ErrMissingField
	ErrInvalidValue    = mathml.ErrInvalidValue
	ErrUnexpectedAlign = mathml.ErrUnexpectedAlign
)
