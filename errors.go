package formula

import (
	"errors"
	"strconv"
	"strings"
)

// Error kinds. Every error returned by this package is or unwraps to exactly
// one of these, so callers can classify failures with errors.Is.
var (
	// ErrEmptyExpression means the formula text is empty or only whitespace.
	ErrEmptyExpression = errors.New("empty formula")
	// ErrInvalidValue means a variable binding is NaN or infinite.
	ErrInvalidValue = errors.New("invalid variable value")
	// ErrUnbound means placeholders remain that have no binding.
	ErrUnbound = errors.New("unbound variables")
	// ErrIllegalCharacters means the substituted formula contains a rune
	// outside the arithmetic character set.
	ErrIllegalCharacters = errors.New("illegal characters")
	// ErrSyntax means the formula does not parse.
	ErrSyntax = errors.New("syntax error")
	// ErrNonFinite means evaluation produced NaN or an infinity.
	ErrNonFinite = errors.New("non-finite result")
	// ErrTooComplex means the formula is nested too deeply or is too long.
	ErrTooComplex = errors.New("expression too complex")
)

// InvalidValueError is an error indicating a variable bound to NaN or an
// infinity. It unwraps to ErrInvalidValue.
type InvalidValueError struct {
	// Name is the variable name.
	Name string
	// Value is the rejected value.
	Value float64
}

func (err *InvalidValueError) Error() string {
	return "invalid value " + strconv.FormatFloat(err.Value, 'g', -1, 64) + " for variable " + strconv.Quote(err.Name)
}

func (err *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}

// UnboundError is an error listing placeholders that have no value. It
// unwraps to ErrUnbound.
type UnboundError struct {
	// Names are the unbound placeholder names in order of first appearance.
	Names []string
}

func (err *UnboundError) Error() string {
	if len(err.Names) == 1 {
		return "unbound variable: " + err.Names[0]
	}
	return "unbound variables: " + strings.Join(err.Names, ", ")
}

func (err *UnboundError) Unwrap() error {
	return ErrUnbound
}

// CharacterError is an error indicating a rune that is not allowed in a
// formula after substitution. It implements InputError and unwraps to
// ErrIllegalCharacters.
type CharacterError struct {
	// Col is the position of the rune in the original formula.
	Col int
	// Char is the offending rune.
	Char rune
}

func (err *CharacterError) Error() string {
	return errpos(err.Col, "illegal character "+strconv.QuoteRune(err.Char))
}

func (err *CharacterError) Pos() int {
	return err.Col
}

func (err *CharacterError) Unwrap() error {
	return ErrIllegalCharacters
}

// NonFiniteError is an error from an operation whose result is NaN, infinite,
// or outside the range of float64. It implements InputError and unwraps to
// ErrNonFinite.
type NonFiniteError struct {
	// Col is the position of the operator that failed.
	Col int
	// Op is the operator, e.g. "/" or "^".
	Op string
	// Reason describes the failure, e.g. "division by zero".
	Reason string
}

func (err *NonFiniteError) Error() string {
	msg := "non-finite result"
	if err.Op != "" {
		msg += " from " + strconv.Quote(err.Op)
	}
	if err.Reason != "" {
		msg += ": " + err.Reason
	}
	return errpos(err.Col, msg)
}

func (err *NonFiniteError) Pos() int {
	return err.Col
}

func (err *NonFiniteError) Unwrap() error {
	return ErrNonFinite
}

// ComplexityError is an error indicating a formula beyond the nesting or
// length bounds. It implements InputError and unwraps to ErrTooComplex.
type ComplexityError struct {
	// Col is the position at which the bound was exceeded.
	Col int
	// Depth is the nesting limit that was exceeded, or 0 if the formula was
	// too long.
	Depth int
	// Len is the length of the formula in runes when it was too long.
	Len int
	// Max is the length limit when the formula was too long.
	Max int
}

func (err *ComplexityError) Error() string {
	if err.Depth > 0 {
		return errpos(err.Col, "expression nested more than "+strconv.Itoa(err.Depth)+" levels deep")
	}
	return errpos(err.Col, "formula has "+strconv.Itoa(err.Len)+" characters, more than the limit of "+strconv.Itoa(err.Max))
}

func (err *ComplexityError) Pos() int {
	return err.Col
}

func (err *ComplexityError) Unwrap() error {
	return ErrTooComplex
}

var (
	_ InputError = (*CharacterError)(nil)
	_ InputError = (*NonFiniteError)(nil)
	_ InputError = (*ComplexityError)(nil)
)
