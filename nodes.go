package formula

import (
	"strings"
)

// node is a node in the abstract syntax tree of a formula. Nodes are never
// modified after parsing.
type node struct {
	kind nodeKind

	// name is the literal text of a nodeNum or the variable name of a
	// nodeName.
	name string
	// pos is the column of the token that produced the node: the literal, the
	// placeholder, the operator, or the open parenthesis.
	pos int

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push num
	nodeName // push lookup(name)

	nodeNeg   // evaluate left, then negate
	nodeAdd   // evaluate left, add right
	nodeSub   // evaluate left, sub right
	nodeMul   // evaluate left, mul right
	nodeDiv   // evaluate left, div by right
	nodePow   // evaluate left, exp by right
	nodeNop   // evaluate left (unary plus)
	nodeGroup // evaluate left (parentheses)
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

// opText gives the operator spelling of each operator node kind.
var opText = [...]string{
	nodeNeg: "-",
	nodeAdd: "+",
	nodeSub: "-",
	nodeMul: "*",
	nodeDiv: "/",
	nodePow: "^",
	nodeNop: "+",

	nodeGroup: "",
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n as formula text. Every operand that is itself an operation is
// parenthesized, so the output parses to the same tree up to groups.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum:
		b.WriteString(n.name)
	case nodeName:
		b.WriteByte('{')
		b.WriteString(n.name)
		b.WriteByte('}')
	case nodeGroup:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNeg, nodeNop:
		b.WriteString(opText[n.kind])
		n.left.operand(b)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		n.left.operand(b)
		b.WriteByte(' ')
		b.WriteString(opText[n.kind])
		b.WriteByte(' ')
		n.right.operand(b)
	default:
		panic("formula: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

// operand writes n, parenthesized unless it is a term on its own.
func (n *node) operand(b *strings.Builder) {
	switch n.kind {
	case nodeNum, nodeName, nodeGroup:
		n.fmt(b)
	default:
		b.WriteByte('(')
		n.fmt(b)
		b.WriteByte(')')
	}
}
