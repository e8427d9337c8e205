package rad

import (
	"strconv"
	"strings"
)

// Print renders n as an infix expression using the same surface syntax Parse
// accepts for CONSTANT, INPUT, and arithmetic nodes. COMPOSITION and CUSTOM
// have no infix syntax of their own (the grammar cannot produce them), so
// they print as the fixed placeholders "<composition>" and "<custom>" (no
// operands, no arity) and do not round-trip through Parse.
func Print(n *Node) string {
	var b strings.Builder
	writeNode(&b, n, false)
	return b.String()
}

// String implements fmt.Stringer so a *Node prints sensibly in %v and %s.
func (n *Node) String() string { return Print(n) }

func writeNode(b *strings.Builder, n *Node, parens bool) {
	switch n.kind {
	case KindConstant:
		b.WriteString(strconv.FormatFloat(n.constValue, 'g', -1, 64))
	case KindInput:
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(n.id))
		b.WriteByte(']')
	case KindAdd, KindSub, KindMul, KindDiv:
		if parens {
			b.WriteByte('(')
		}
		writeNode(b, n.op0, needsParens(n.op0, n.kind, false))
		b.WriteByte(' ')
		b.WriteByte(opSymbol(n.kind))
		b.WriteByte(' ')
		writeNode(b, n.op1, needsParens(n.op1, n.kind, true))
		if parens {
			b.WriteByte(')')
		}
	case KindComposition:
		b.WriteString("<composition>")
	case KindCustom:
		b.WriteString("<custom>")
	default:
		b.WriteString("<arg ")
		b.WriteString(strconv.Itoa(n.id))
		b.WriteByte('>')
	}
}

func isBinary(k Kind) bool {
	switch k {
	case KindAdd, KindSub, KindMul, KindDiv:
		return true
	default:
		return false
	}
}

func opSymbol(k Kind) byte {
	switch k {
	case KindAdd:
		return '+'
	case KindSub:
		return '-'
	case KindMul:
		return '*'
	case KindDiv:
		return '/'
	default:
		panic("rad: not an operator kind")
	}
}

// needsParens decides whether child (on the right side if onRight) needs
// parenthesising under parent, given standard +/- vs */ precedence and the
// non-associativity of - and /.
func needsParens(child *Node, parent Kind, onRight bool) bool {
	if !isBinary(child.kind) {
		return false
	}
	parentLevel := opLevel(parent)
	childLevel := opLevel(child.kind)
	if childLevel < parentLevel {
		return true
	}
	if childLevel == parentLevel && onRight && (parent == KindSub || parent == KindDiv) {
		return true
	}
	return false
}

func opLevel(k Kind) int {
	switch k {
	case KindAdd, KindSub:
		return 0
	case KindMul, KindDiv:
		return 1
	default:
		return 2
	}
}
