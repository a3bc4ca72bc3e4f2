package formula

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Expr = num | placeholder | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr
// num = digits [ '.' [ digits ] ] | '.' digits
// placeholder = '{' name '}'

// Expr is a parsed formula that can be evaluated for many sets of values. An
// Expr is immutable and safe for concurrent use.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of placeholder names in order of first appearance.
	names []string
	// prec is the precision for evaluation.
	prec uint
}

// parsectx holds general data for parsing.
type parsectx struct {
	// depth is the current nesting depth of groups, unary operators, and
	// right-associative operands.
	depth int
	// maxDepth is the bound on depth.
	maxDepth int
}

// enter increases the nesting depth for a construct starting at col.
func (p *parsectx) enter(col int) error {
	p.depth++
	if p.depth > p.maxDepth {
		return &ComplexityError{Col: col, Depth: p.maxDepth}
	}
	return nil
}

func (p *parsectx) leave() {
	p.depth--
}

// precheck rejects empty and overlong formulas.
func (c config) precheck(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyExpression
	}
	if n := utf8.RuneCountInString(text); n > c.maxLength {
		return &ComplexityError{Col: c.maxLength + 1, Len: n, Max: c.maxLength}
	}
	return nil
}

// Parse parses a formula so that it can be evaluated with Expr.Eval.
// Placeholders become variables. Parse applies the same checks as Evaluate
// except those that need values: the character set, with placeholders
// allowed, and the grammar.
func Parse(text string, opts ...Option) (*Expr, error) {
	c := configure(opts)
	if err := c.precheck(text); err != nil {
		return nil, err
	}
	if err := sanitize(text, nil, true); err != nil {
		return nil, err
	}
	n, err := parse(strings.NewReader(text), nil, c)
	if err != nil {
		return nil, err
	}
	ex := Expr{
		n:     n,
		names: ExtractVariables(text),
		prec:  c.prec,
	}
	return &ex, nil
}

// Validate reports whether a formula is well-formed without evaluating it or
// requiring values for its placeholders. It is intended for checking a
// formula before storing it.
func Validate(text string, opts ...Option) error {
	_, err := Parse(text, opts...)
	return err
}

// parse parses a whole expression from src. cols maps positions in src to
// columns in the original formula.
func parse(src io.RuneScanner, cols []int, c config) (*node, error) {
	scan := lex(src, cols)
	p := parsectx{maxDepth: c.maxDepth}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, lexToken{})
	}
	return n, nil
}

// parseterm parses a single term, including any binary operators more binding
// than until. If there is no error, then parseterm pushes the last token it
// scans, which is always a close parenthesis, an operator, or EOF.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenName, tokenOpen:
			// There is no implicit multiplication, so two terms in a row
			// are an error.
			return nil, juxtaposed(tok)
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			if prec.right {
				if err := p.enter(tok.pos); err != nil {
					return nil, err
				}
			}
			rhs, err := parseterm(scan, p, prec)
			if prec.right {
				p.leave()
			}
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, pos: tok.pos, left: n, right: rhs}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("formula: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return &node{kind: nodeNum, name: tok.text, pos: tok.pos}, nil
	case tokenName:
		return &node{kind: nodeName, name: tok.text, pos: tok.pos}, nil
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the enclosing operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		if err := p.enter(tok.pos); err != nil {
			return nil, err
		}
		rhs, err := parseterm(scan, p, prec)
		p.leave()
		if err != nil {
			return nil, err
		}
		return &node{kind: prec.op, pos: tok.pos, left: rhs}, nil
	case tokenOpen:
		if err := p.enter(tok.pos); err != nil {
			return nil, err
		}
		rhs, err := parseterm(scan, p, exprprec)
		p.leave()
		if err != nil {
			return nil, err
		}
		if end := scan.must(); end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, tok)
		}
		return &node{kind: nodeGroup, pos: tok.pos, left: rhs}, nil
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("formula: unknown token: " + tok.String())
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is the open parenthesis the
// subexpression should have matched, or the zero token if none.
func itShouldNotHaveEndedThisWay(tok lexToken, open lexToken) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: open.pos, Left: open.text}
	case tokenClose:
		// A close bracket with nothing to close.
		return &BracketError{Col: tok.pos, Right: tok.text}
	default:
		panic("formula: it really should not have ended this way: " + tok.String())
	}
}

// juxtaposed returns an error for a term directly following another term.
func juxtaposed(tok lexToken) error {
	kind := "token"
	switch tok.kind {
	case tokenNum:
		kind = "number"
	case tokenName:
		kind = "variable"
	case tokenOpen:
		kind = "parenthesis"
	}
	return &TokenError{Col: tok.pos, Text: tok.text, Kind: kind}
}

// Vars returns the placeholder names used in the expression, in order of first
// appearance.
func (e *Expr) Vars() []string {
	return append(make([]string, 0, len(e.names)), e.names...)
}

// String creates formula text for the parsed expression. Each operation that
// is an operand of another is parenthesized. The result parses to an
// expression that evaluates identically.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
