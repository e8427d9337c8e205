package rad

// Const builds a CONSTANT node holding k.
func Const(k float64) *Node {
	n := newNode(KindConstant)
	n.constValue = k
	return n
}

// Input builds an INPUT node reading inputs[id] at evaluation time.
func Input(id int) *Node {
	n := newNode(KindInput)
	n.id = id
	return n
}

// Add builds ADD(a, b), consuming both handles.
func Add(a, b *Node) *Node { return binary(KindAdd, a, b) }

// Sub builds SUB(a, b), consuming both handles.
func Sub(a, b *Node) *Node { return binary(KindSub, a, b) }

// Mul builds MUL(a, b), consuming both handles.
func Mul(a, b *Node) *Node { return binary(KindMul, a, b) }

// Div builds DIV(a, b), consuming both handles.
func Div(a, b *Node) *Node { return binary(KindDiv, a, b) }

func binary(kind Kind, a, b *Node) *Node {
	a.checkAlive("use")
	b.checkAlive("use")
	n := newNode(kind)
	n.op0 = a
	n.op1 = b
	return n
}

// Composition builds a COMPOSITION node: evaluating it evaluates each of
// inputs[*], then evaluates inner with those values as its own input vector.
// inner must reference INPUT(i) only for i < len(inputs). Both inner and
// every element of inputs are consumed.
func Composition(inner *Node, inputs []*Node) *Node {
	inner.checkAlive("use")
	for _, x := range inputs {
		x.checkAlive("use")
	}
	n := newNode(KindComposition)
	n.inner = inner
	n.inputs = append([]*Node(nil), inputs...)
	n.inputValues = make([]float64, len(inputs))
	n.inputDerivatives = make([]float64, len(inputs))
	return n
}

// Custom builds a CUSTOM node around a user-supplied scalar function with
// arity len(inputs). Every element of inputs is consumed.
func Custom(f CustomFunc, inputs []*Node) *Node {
	for _, x := range inputs {
		x.checkAlive("use")
	}
	n := newNode(KindCustom)
	n.customFn = f
	n.inputs = append([]*Node(nil), inputs...)
	n.inputValues = make([]float64, len(inputs))
	n.inputDerivatives = make([]float64, len(inputs))
	n.inputGrad = make([]float64, len(inputs))
	return n
}

// Copy returns n with its refcount incremented — a shared, non-consuming
// handle to the same node. The caller now owns one more reference and must
// Discard it independently of the original handle.
func Copy(n *Node) *Node {
	n.checkAlive("copy")
	n.refcount++
	return n
}

// DeepCopy allocates a structurally independent clone of n, with fresh
// refcounts of 1 throughout. Unlike Copy, the returned graph shares no nodes
// with n — mutating scratch fields during a pass over one does not affect
// the other.
func DeepCopy(n *Node) *Node {
	n.checkAlive("deep_copy")
	switch n.kind {
	case KindConstant:
		return Const(n.constValue)
	case KindInput:
		return Input(n.id)
	case KindAdd:
		return Add(DeepCopy(n.op0), DeepCopy(n.op1))
	case KindSub:
		return Sub(DeepCopy(n.op0), DeepCopy(n.op1))
	case KindMul:
		return Mul(DeepCopy(n.op0), DeepCopy(n.op1))
	case KindDiv:
		return Div(DeepCopy(n.op0), DeepCopy(n.op1))
	case KindComposition:
		inputs := make([]*Node, len(n.inputs))
		for i, x := range n.inputs {
			inputs[i] = DeepCopy(x)
		}
		return Composition(DeepCopy(n.inner), inputs)
	case KindCustom:
		inputs := make([]*Node, len(n.inputs))
		for i, x := range n.inputs {
			inputs[i] = DeepCopy(x)
		}
		return Custom(n.customFn, inputs)
	default:
		panic("rad: deep_copy of internal node kind " + n.kind.String())
	}
}

// Discard releases one owning handle to n. When the refcount reaches zero,
// every child is released exactly once (recursively) and n is freed. Calling
// Discard more times than a node was constructed/Copy'd is a programmer
// error and panics, as does any further use of n afterward.
func Discard(n *Node) {
	n.checkAlive("discard")
	n.refcount--
	if n.refcount > 0 {
		return
	}
	switch n.kind {
	case KindAdd, KindSub, KindMul, KindDiv:
		Discard(n.op0)
		Discard(n.op1)
	case KindComposition:
		Discard(n.inner)
		for _, x := range n.inputs {
			Discard(x)
		}
	case KindCustom:
		for _, x := range n.inputs {
			Discard(x)
		}
	}
	n.freed = true
	liveNodes--
}
