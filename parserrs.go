package formula

import "strconv"

// OperatorError is an error indicating an operator where a term was expected,
// e.g. the * in "*2". It implements InputError and unwraps to ErrSyntax.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Unwrap() error {
	return ErrSyntax
}

// BracketError is an error indicating unbalanced parentheses. It implements
// InputError and unwraps to ErrSyntax.
type BracketError struct {
	// Col is the position of the unmatched bracket, or of the end of input
	// for an unclosed one.
	Col int
	// Left is the opening bracket, if any.
	Left string
	// Right is the closing bracket, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrSyntax
}

// EmptyExpressionError is an error indicating an empty subexpression, as in
// "()" or "2 *". It implements InputError and unwraps to ErrSyntax. An
// entirely empty formula is ErrEmptyExpression instead.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or the empty string at
	// the end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrSyntax
}

// TokenError is an error indicating a term where an operator or the end of
// the formula was expected, as in "2 3" or "2 (3)". It implements InputError
// and unwraps to ErrSyntax.
type TokenError struct {
	// Col is the position of the unexpected token.
	Col int
	// Text is the unexpected token.
	Text string
	// Kind describes the token, e.g. "number" or "variable".
	Kind string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+err.Kind+" "+strconv.Quote(err.Text)+" after expression; missing operator?")
}

func (err *TokenError) Pos() int {
	return err.Col
}

func (err *TokenError) Unwrap() error {
	return ErrSyntax
}

// NumberError indicates an invalid numeric literal such as "1.2.3" or ".".
// It implements InputError and unwraps to ErrSyntax.
type NumberError struct {
	// Col is the position of the start of the literal.
	Col int
	// Text is the literal up to and including the rune that made it invalid.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return ErrSyntax
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// a malformed formula implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based rune column in the
	// formula text as the user wrote it, before substitution.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*NumberError)(nil)
)
