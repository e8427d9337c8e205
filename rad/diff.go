package rad

// ForwardDiff computes n's value and its directional derivative with respect
// to a single input id, seeding inputs[id] with derivative 1 and every other
// input with derivative 0 (standard dual-number forward accumulation). It
// returns the derivative; the value is written to *value if value != nil.
func ForwardDiff(n *Node, inputs []float64, id int, value *float64) float64 {
	deriv := forwardDiffNode(n, inputs, id)
	if value != nil {
		*value = n.value
	}
	return deriv
}

func forwardDiffNode(n *Node, inputs []float64, id int) float64 {
	n.checkAlive("forward_diff")
	var outValue, outDeriv float64

	switch n.kind {
	case KindConstant:
		outValue, outDeriv = n.constValue, 0
	case KindInput:
		outValue = inputs[n.id]
		if n.id == id {
			outDeriv = 1
		}
	case KindAdd:
		d0 := forwardDiffNode(n.op0, inputs, id)
		v0 := n.op0.value
		d1 := forwardDiffNode(n.op1, inputs, id)
		v1 := n.op1.value
		outValue, outDeriv = v0+v1, d0+d1
	case KindSub:
		d0 := forwardDiffNode(n.op0, inputs, id)
		v0 := n.op0.value
		d1 := forwardDiffNode(n.op1, inputs, id)
		v1 := n.op1.value
		outValue, outDeriv = v0-v1, d0-d1
	case KindMul:
		d0 := forwardDiffNode(n.op0, inputs, id)
		v0 := n.op0.value
		d1 := forwardDiffNode(n.op1, inputs, id)
		v1 := n.op1.value
		outValue, outDeriv = v0*v1, v0*d1+v1*d0
	case KindDiv:
		d0 := forwardDiffNode(n.op0, inputs, id)
		v0 := n.op0.value
		d1 := forwardDiffNode(n.op1, inputs, id)
		v1 := n.op1.value
		outValue, outDeriv = v0/v1, (d0*v1-d1*v0)/(v1*v1)
	case KindComposition:
		for i, x := range n.inputs {
			n.inputDerivatives[i] = forwardDiffNode(x, inputs, id)
			n.inputValues[i] = x.value
		}
		outDeriv = forwardGradNode(n.inner, n.inputValues, n.inputDerivatives)
		outValue = n.inner.value
	case KindCustom:
		for i, x := range n.inputs {
			n.inputDerivatives[i] = forwardDiffNode(x, inputs, id)
			n.inputValues[i] = x.value
		}
		outValue = n.customFn(n.inputValues, n.inputGrad)
		for i := range n.inputs {
			outDeriv += n.inputDerivatives[i] * n.inputGrad[i]
		}
	}

	n.value, n.deriv = outValue, outDeriv
	return outDeriv
}

// ForwardGrad computes n's value and Σ dinputs[i]·(∂n/∂inputs[i]), the
// forward-accumulated directional derivative along an arbitrary seed vector
// rather than a one-hot input direction. It is also the recursive step
// ForwardDiff and ForwardGrad itself use to cross a COMPOSITION boundary: the
// outer call's per-input derivatives become the inner evaluation's dinputs.
func ForwardGrad(n *Node, inputs, dinputs []float64, value *float64) float64 {
	deriv := forwardGradNode(n, inputs, dinputs)
	if value != nil {
		*value = n.value
	}
	return deriv
}

func forwardGradNode(n *Node, inputs, dinputs []float64) float64 {
	n.checkAlive("forward_grad")
	var outValue, outDeriv float64

	switch n.kind {
	case KindConstant:
		outValue, outDeriv = n.constValue, 0
	case KindInput:
		outValue, outDeriv = inputs[n.id], dinputs[n.id]
	case KindAdd:
		d0 := forwardGradNode(n.op0, inputs, dinputs)
		v0 := n.op0.value
		d1 := forwardGradNode(n.op1, inputs, dinputs)
		v1 := n.op1.value
		outValue, outDeriv = v0+v1, d0+d1
	case KindSub:
		d0 := forwardGradNode(n.op0, inputs, dinputs)
		v0 := n.op0.value
		d1 := forwardGradNode(n.op1, inputs, dinputs)
		v1 := n.op1.value
		outValue, outDeriv = v0-v1, d0-d1
	case KindMul:
		d0 := forwardGradNode(n.op0, inputs, dinputs)
		v0 := n.op0.value
		d1 := forwardGradNode(n.op1, inputs, dinputs)
		v1 := n.op1.value
		outValue, outDeriv = v0*v1, v0*d1+v1*d0
	case KindDiv:
		d0 := forwardGradNode(n.op0, inputs, dinputs)
		v0 := n.op0.value
		d1 := forwardGradNode(n.op1, inputs, dinputs)
		v1 := n.op1.value
		outValue, outDeriv = v0/v1, (d0*v1-d1*v0)/(v1*v1)
	case KindComposition:
		for i, x := range n.inputs {
			n.inputDerivatives[i] = forwardGradNode(x, inputs, dinputs)
			n.inputValues[i] = x.value
		}
		outDeriv = forwardGradNode(n.inner, n.inputValues, n.inputDerivatives)
		outValue = n.inner.value
	case KindCustom:
		for i, x := range n.inputs {
			n.inputDerivatives[i] = forwardGradNode(x, inputs, dinputs)
			n.inputValues[i] = x.value
		}
		outValue = n.customFn(n.inputValues, n.inputGrad)
		for i := range n.inputs {
			outDeriv += n.inputDerivatives[i] * n.inputGrad[i]
		}
	}

	n.value, n.deriv = outValue, outDeriv
	return outDeriv
}
