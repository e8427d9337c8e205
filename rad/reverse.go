package rad

// Engine owns the one piece of process-wide state the reverse-mode
// algorithm in the C reference used as a true global: a monotonically
// increasing invocation id that stamps every node visited by a reverse pass,
// so a later pass can tell whether a node's value cache was already
// overwritten this round. Keeping it on Engine instead of a package-level
// variable means two Engines differentiating two independent graphs never
// interfere with each other. The zero value is ready to use.
type Engine struct {
	invocation uint64
}

// BackwardDiff computes n's value and accumulates ∂n/∂inputs[id] into
// derivatives[id] for every reachable INPUT id, via two-phase reverse-mode
// differentiation: a forward value pass stamped with a fresh invocation id,
// then a seed-propagation pass starting from seed 1 at the root. derivatives
// is not zeroed by this call — callers pre-zero or pre-scale it themselves
// (e.g. training.Momentum scales by a momentum factor before each call).
func (e *Engine) BackwardDiff(n *Node, inputs []float64, derivatives []float64) float64 {
	id := e.invocation
	e.invocation++
	value := e.forwardPass(n, inputs, id)
	backwardPass(n, 1, derivatives)
	return value
}

// forwardPass is reverse-mode's phase A: a post-order traversal that caches
// value on every node and, for COMPOSITION, populates input_derivatives by
// recursively running a full reverse pass over inner.
//
// Higher-order composition guard: if inner was already stamped with this
// same invocation id (it is reachable, under this call, both as a
// COMPOSITION's inner function and as some other already-visited part of the
// very same pass), recursing into it directly would let the nested pass
// overwrite value caches the outer traversal has not finished consuming —
// the exact unsoundness the C reference's commented-out guard could not
// close. Recursing into a DeepCopy instead keeps the outer pass's caches
// intact; the copy is discarded once the nested pass is done with it.
func (e *Engine) forwardPass(n *Node, inputs []float64, id uint64) float64 {
	n.checkAlive("backward_diff")
	n.invocationID = id

	var out float64
	switch n.kind {
	case KindConstant:
		out = n.constValue
	case KindInput:
		out = inputs[n.id]
	case KindAdd:
		out = e.forwardPass(n.op0, inputs, id) + e.forwardPass(n.op1, inputs, id)
	case KindSub:
		out = e.forwardPass(n.op0, inputs, id) - e.forwardPass(n.op1, inputs, id)
	case KindMul:
		out = e.forwardPass(n.op0, inputs, id) * e.forwardPass(n.op1, inputs, id)
	case KindDiv:
		out = e.forwardPass(n.op0, inputs, id) / e.forwardPass(n.op1, inputs, id)
	case KindComposition:
		for i, x := range n.inputs {
			n.inputValues[i] = e.forwardPass(x, inputs, id)
			n.inputDerivatives[i] = 0
		}

		inner := n.inner
		reentrant := inner.invocationID == id
		if reentrant {
			inner = DeepCopy(n.inner)
		}
		out = e.forwardPass(inner, n.inputValues, id)
		backwardPass(inner, 1, n.inputDerivatives)
		if reentrant {
			Discard(inner)
		}
	case KindCustom:
		for i, x := range n.inputs {
			n.inputValues[i] = e.forwardPass(x, inputs, id)
		}
		out = n.customFn(n.inputValues, n.inputDerivatives)
	}

	n.value = out
	return out
}

// backwardPass is reverse-mode's phase B: seed propagation. Because of DAG
// sharing, a node reached through two parents simply has this function
// invoked on it twice with two different seeds; contributions are summed at
// INPUT leaves via derivatives[], so no topological ordering is needed here.
func backwardPass(n *Node, seed float64, derivatives []float64) {
	switch n.kind {
	case KindConstant:
		return
	case KindInput:
		derivatives[n.id] += seed
	case KindAdd:
		backwardPass(n.op0, seed, derivatives)
		backwardPass(n.op1, seed, derivatives)
	case KindSub:
		backwardPass(n.op0, seed, derivatives)
		backwardPass(n.op1, -seed, derivatives)
	case KindMul:
		backwardPass(n.op0, seed*n.op1.value, derivatives)
		backwardPass(n.op1, seed*n.op0.value, derivatives)
	case KindDiv:
		backwardPass(n.op0, seed/n.op1.value, derivatives)
		backwardPass(n.op1, -seed*n.op0.value/(n.op1.value*n.op1.value), derivatives)
	case KindComposition, KindCustom:
		for i, x := range n.inputs {
			backwardPass(x, seed*n.inputDerivatives[i], derivatives)
		}
	}
}
