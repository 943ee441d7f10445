package mathml

import "errors"

// Sentinel errors for equation parsing and rendering.
// Every one of them aborts rendering of the current equation.
var (
	// ErrUnexpectedToken indicates the token stream does not match the
	// grammar rule in progress (wrong object type, stray separator or end, EOF).
	ErrUnexpectedToken = errors.New("unexpected math token")

	// ErrArgCount indicates a descriptor declares a different number of
	// arguments than its construct takes.
	ErrArgCount = errors.New("unexpected argument count")

	// ErrMissingField indicates a required descriptor field is absent.
	ErrMissingField = errors.New("missing math object field")

	// ErrInvalidValue indicates a descriptor field holds a value outside its
	// known range.
	ErrInvalidValue = errors.New("invalid math object value")

	// ErrUnexpectedAlign indicates alignment data on a construct that never
	// carries any.
	ErrUnexpectedAlign = errors.New("unexpected math object align")

	// ErrUnknownNode indicates an equation tree holding a node the renderer
	// does not know, such as a nil MathOp.
	ErrUnknownNode = errors.New("unknown equation node")
)
