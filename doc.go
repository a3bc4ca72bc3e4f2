// Package formula evaluates arithmetic formulas with named placeholders.
//
// A formula is ordinary arithmetic over decimal numbers with +, -, *, /, ^
// and parentheses, plus placeholders written in braces: "{weight} /
// ({height} * {height})". ExtractVariables lists the placeholders a formula
// uses so that a caller can ask for their values, and Evaluate substitutes
// those values and computes the result. "-2^2" is "-(2^2)", and "2^3^2" is
// "2^(3^2)".
//
// Evaluation never hands text to a general-purpose interpreter. Formulas are
// lexed and parsed with an explicit grammar, and the resulting tree is
// computed with math/big at float64 precision unless another precision is
// requested. Every failure is one of a small set of error kinds, exposed as
// sentinel errors for use with errors.Is.
//
// There is no package-level mutable state; all functions are safe for
// concurrent use.
package formula
