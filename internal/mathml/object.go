package mathml

import (
	"fmt"
	"strings"
)

// ObjectType identifies the kind of math object a descriptor describes.
type ObjectType uint8

// Object types produced by the document model.
const (
	None ObjectType = iota
	Accent
	Box
	BoxedFormula
	Brackets
	BracketsWithSeps
	EquationArray
	Fraction
	FunctionApply
	LeftSubSup
	LowerLimit
	Matrix
	Nary
	OpChar
	Overbar
	Phantom
	Radical
	SlashedFraction
	Stack
	StretchStack
	Subscript
	SubSup
	Superscript
	Underbar
	UpperLimit
	SimpleText
	PlainText
)

var objectTypeNames = [...]string{
	None:             "none",
	Accent:           "accent",
	Box:              "box",
	BoxedFormula:     "boxed-formula",
	Brackets:         "brackets",
	BracketsWithSeps: "brackets-with-seps",
	EquationArray:    "equation-array",
	Fraction:         "fraction",
	FunctionApply:    "function-apply",
	LeftSubSup:       "left-sub-sup",
	LowerLimit:       "lower-limit",
	Matrix:           "matrix",
	Nary:             "nary",
	OpChar:           "op-char",
	Overbar:          "overbar",
	Phantom:          "phantom",
	Radical:          "radical",
	SlashedFraction:  "slashed-fraction",
	Stack:            "stack",
	StretchStack:     "stretch-stack",
	Subscript:        "subscript",
	SubSup:           "sub-sup",
	Superscript:      "superscript",
	Underbar:         "underbar",
	UpperLimit:       "upper-limit",
	SimpleText:       "simple-text",
	PlainText:        "plain-text",
}

// String returns the kebab-case name of the object type.
func (t ObjectType) String() string {
	if int(t) < len(objectTypeNames) {
		return objectTypeNames[t]
	}
	return fmt.Sprintf("ObjectType(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t ObjectType) MarshalText() ([]byte, error) {
	if int(t) >= len(objectTypeNames) {
		return nil, fmt.Errorf("%w: object type %d", ErrInvalidValue, uint8(t))
	}
	return []byte(objectTypeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Names are matched case-insensitively; an empty name is None.
func (t *ObjectType) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	if name == "" {
		*t = None
		return nil
	}
	parsed, ok := ParseObjectType(name)
	if !ok {
		return fmt.Errorf("%w: unknown object type %q", ErrInvalidValue, string(text))
	}
	*t = parsed
	return nil
}

// ParseObjectType looks up an object type by its kebab-case name.
func ParseObjectType(name string) (ObjectType, bool) {
	for i, n := range objectTypeNames {
		if n == name {
			return ObjectType(i), true
		}
	}
	return None, false
}

// Object describes one math object instance as decoded by the document model.
// Characters are absent when zero. Column is absent when zero. Align is a
// pointer because a packed value of zero is meaningful.
type Object struct {
	Type     ObjectType
	ArgCount uint32
	Char     rune
	Char1    rune
	Char2    rune
	Column   uint8
	Align    *uint8
}

// Segment is one fragment of paragraph text with the math object active at
// that position. Fragments outside any object carry the zero Object.
type Segment struct {
	Text   string
	Object Object
}

// AlignValue returns a pointer to v, for building descriptors with align data.
func AlignValue(v uint8) *uint8 {
	return &v
}
