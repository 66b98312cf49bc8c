package calc

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	name string
	fn   Func

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // push num
	nodeConst // push constant name at context precision

	nodeCall // name is Func to call on left

	nodeNeg // evaluate left, then negate
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeConst:
		return "Const"
	case nodeCall:
		return "Call"
	case nodeNeg:
		return "Neg"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

// fmt writes n with every term bracketed. If alt is true, the operators are
// written with the display glyphs.
func (n *node) fmt(b *strings.Builder, alt bool) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, alt)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, alt)
		}
		b.WriteByte('$')
	case nodeNum, nodeConst:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.left.fmt(b, alt)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b, alt)
	case nodeAdd:
		n.left.fmt(b, alt)
		b.WriteString(" + ")
		n.right.fmt(b, alt)
	case nodeSub:
		n.left.fmt(b, alt)
		if !alt {
			b.WriteString(" - ")
		} else {
			b.WriteString(" – ")
		}
		n.right.fmt(b, alt)
	case nodeMul:
		n.left.fmt(b, alt)
		if !alt {
			b.WriteString(" * ")
		} else {
			b.WriteString(" × ")
		}
		n.right.fmt(b, alt)
	case nodeDiv:
		n.left.fmt(b, alt)
		if !alt {
			b.WriteString(" / ")
		} else {
			b.WriteString(" ÷ ")
		}
		n.right.fmt(b, alt)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
