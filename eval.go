package formula

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// machine evaluates one expression. Values live on a stack of big.Floats at a
// fixed precision. A machine is used for a single evaluation and then
// discarded.
type machine struct {
	stack []*big.Float
	vars  map[string]float64
	prec  uint
	// pos is the column of the node being evaluated, for errors recovered
	// from panics.
	pos int
}

func newMachine(prec uint, vars map[string]float64) *machine {
	return &machine{vars: vars, prec: prec}
}

// run evaluates n and returns the result as a float64.
func (m *machine) run(n *node) (r float64, err error) {
	defer func() {
		x := recover()
		if x == nil {
			return
		}
		// big.Float panics with ErrNaN for operations like Inf - Inf.
		e, ok := x.(error)
		if !ok || !errors.As(e, new(big.ErrNaN)) {
			panic(x)
		}
		r, err = 0, &NonFiniteError{Col: m.pos, Reason: e.Error()}
	}()
	if err := n.eval(m); err != nil {
		return 0, err
	}
	if len(m.stack) != 1 {
		panic("formula: inconsistent stack: " + strconv.Itoa(len(m.stack)) + " items (bad AST?)")
	}
	f, _ := m.stack[0].Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, &NonFiniteError{Col: n.pos, Reason: "result out of range"}
	}
	return f, nil
}

// push ensures a settable value on the stack.
func (m *machine) push() *big.Float {
	if len(m.stack) < cap(m.stack) {
		m.stack = m.stack[:len(m.stack)+1]
		if m.stack[len(m.stack)-1] == nil {
			m.stack[len(m.stack)-1] = new(big.Float).SetPrec(m.prec)
		}
	} else {
		m.stack = append(m.stack, new(big.Float).SetPrec(m.prec))
	}
	return m.stack[len(m.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (m *machine) pop() *big.Float {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (m *machine) top() *big.Float {
	return m.stack[len(m.stack)-1]
}

// check fails if v is outside the range of float64. At DefaultPrec, check
// also rounds v to float64, so values below the normal range lose precision or
// flush to zero as they would in float64 arithmetic.
func (m *machine) check(v *big.Float, n *node) error {
	f, _ := v.Float64()
	if v.IsInf() || math.IsInf(f, 0) {
		return &NonFiniteError{Col: n.pos, Op: opText[n.kind], Reason: "result out of range"}
	}
	if m.prec == DefaultPrec {
		v.SetFloat64(f)
	}
	return nil
}

// arith64 sets l to l op r computed in float64. l and r must hold float64
// values. Rounding once gives the float64 result even when it is subnormal.
func arith64(op nodeKind, l, r *big.Float) {
	a, _ := l.Float64()
	b, _ := r.Float64()
	switch op {
	case nodeAdd:
		a += b
	case nodeSub:
		a -= b
	case nodeMul:
		a *= b
	case nodeDiv:
		a /= b
	}
	l.SetFloat64(a)
}

// bigop sets l to l op r at l's precision.
func bigop(op nodeKind, l, r *big.Float) {
	switch op {
	case nodeAdd:
		l.Add(l, r)
	case nodeSub:
		l.Sub(l, r)
	case nodeMul:
		l.Mul(l, r)
	case nodeDiv:
		l.Quo(l, r)
	}
}

// eval pushes the node's value to the machine's stack.
func (n *node) eval(m *machine) error {
	m.pos = n.pos
	switch n.kind {
	case nodeNum:
		v := m.push()
		if m.prec == DefaultPrec {
			// Parsing straight to float64 rounds once, including in the
			// subnormal range.
			f, err := strconv.ParseFloat(n.name, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return &NumberError{Col: n.pos, Text: n.name}
			}
			v.SetFloat64(f)
		} else if _, _, err := v.Parse(n.name, 10); err != nil {
			return &NumberError{Col: n.pos, Text: n.name}
		}
		return m.check(v, n)
	case nodeName:
		v, ok := m.vars[n.name]
		if !ok {
			return &UnboundError{Names: []string{n.name}}
		}
		m.push().SetFloat64(v)
	case nodeNeg:
		if err := n.left.eval(m); err != nil {
			return err
		}
		v := m.top()
		v.Neg(v)
	case nodeNop, nodeGroup:
		if err := n.left.eval(m); err != nil {
			return err
		}
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		if err := n.left.eval(m); err != nil {
			return err
		}
		if err := n.right.eval(m); err != nil {
			return err
		}
		m.pos = n.pos
		r := m.pop()
		l := m.top()
		switch {
		case n.kind == nodePow:
			if err := pow(l, r, n); err != nil {
				return err
			}
		case n.kind == nodeDiv && r.Sign() == 0:
			return &NonFiniteError{Col: n.pos, Op: "/", Reason: "division by zero"}
		case m.prec == DefaultPrec:
			arith64(n.kind, l, r)
		default:
			bigop(n.kind, l, r)
		}
		return m.check(l, n)
	default:
		panic("formula: invalid AST node " + n.kind.String())
	}
	return nil
}

// pow sets x to x^y following float64 pow where that is finite. Cases where
// float64 pow would give NaN or an infinity are errors.
func pow(x, y *big.Float, n *node) error {
	switch {
	case y.Sign() == 0:
		x.SetInt64(1)
		return nil
	case x.Sign() == 0:
		if y.Sign() < 0 {
			return &NonFiniteError{Col: n.pos, Op: "^", Reason: "zero to a negative power"}
		}
		x.SetInt64(0)
		return nil
	}
	neg := false
	if x.Sign() < 0 {
		if !y.IsInt() {
			return &NonFiniteError{Col: n.pos, Op: "^", Reason: "negative base with a fractional exponent"}
		}
		neg = odd(y)
		x.Neg(x)
	}
	// An estimate of the result's binary exponent decides overflow and
	// underflow before doing any work. x may be below float64 range, so its
	// logarithm comes from its own exponent.
	var mant big.Float
	exp := x.MantExp(&mant)
	mf, _ := mant.Float64()
	yf, _ := y.Float64()
	switch e := yf * (float64(exp) + math.Log2(mf)); {
	case e > 1025:
		return &NonFiniteError{Col: n.pos, Op: "^", Reason: "result out of range"}
	case e < -1100:
		x.SetInt64(0)
		return nil
	}
	if k, acc := y.Int64(); acc == big.Exact && -maxIntPow <= k && k <= maxIntPow {
		powint(x, k)
	} else {
		bigfloat.Pow(x, x, y)
	}
	if neg {
		x.Neg(x)
	}
	return nil
}

// maxIntPow is the largest integer exponent computed by repeated squaring.
const maxIntPow = 1 << 10

// powint sets x to x^k by repeated squaring at extended precision, so that
// results representable at x's precision are exact.
func powint(x *big.Float, k int64) {
	prec := x.Prec() + 64
	b := new(big.Float).SetPrec(prec).Set(x)
	r := new(big.Float).SetPrec(prec).SetInt64(1)
	inv := k < 0
	if inv {
		k = -k
	}
	for ; k > 0; k >>= 1 {
		if k&1 == 1 {
			r.Mul(r, b)
		}
		b.Mul(b, b)
	}
	if inv {
		r.Quo(new(big.Float).SetPrec(prec).SetInt64(1), r)
	}
	x.Set(r)
}

// odd reports whether the integer y is odd.
func odd(y *big.Float) bool {
	i, _ := y.Int(nil)
	return i.Bit(0) == 1
}

// Eval evaluates the expression with values for its placeholders. Values for
// names the expression does not use are ignored, except that every value must
// be finite.
func (e *Expr) Eval(values map[string]float64) (float64, error) {
	if err := checkValues(values); err != nil {
		return 0, err
	}
	var missing []string
	for _, name := range e.names {
		if _, ok := values[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return 0, &UnboundError{Names: missing}
	}
	return newMachine(e.prec, values).run(e.n)
}

// Evaluate computes the value of a formula. Each placeholder is replaced by
// the decimal text of its value, then the result is checked, parsed, and
// evaluated. Errors are checked in this order: an empty formula; a formula
// that is too long; a NaN or infinite value; placeholders with no value;
// characters other than digits, '.', operators, parentheses, and whitespace;
// syntax; and finally results that are not finite.
//
// The result is finite whenever the error is nil.
func Evaluate(text string, values map[string]float64, opts ...Option) (float64, error) {
	c := configure(opts)
	if err := c.precheck(text); err != nil {
		return 0, err
	}
	if err := checkValues(values); err != nil {
		return 0, err
	}
	sub, cols := substitute(text, values)
	if names := ExtractVariables(sub); len(names) > 0 {
		return 0, &UnboundError{Names: names}
	}
	if err := sanitize(sub, cols, false); err != nil {
		return 0, err
	}
	n, err := parse(strings.NewReader(sub), cols, c)
	if err != nil {
		return 0, err
	}
	return newMachine(c.prec, nil).run(n)
}
