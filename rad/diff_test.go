package rad

import (
	"math"
	"testing"
)

const tol = 1e-9

func closeEnough(a, b float64) bool { return math.Abs(a-b) < tol }

// expNeg is exp(-x) exposed as a CUSTOM node, the sub-graph the sigmoid
// parse-format example in the grammar docs composes with "1/(1 + {0})".
func expNeg(in, grad []float64) float64 {
	v := math.Exp(-in[0])
	grad[0] = -v
	return v
}

func buildPolynomial() *Node {
	// [0]*[0] + [0]*[1]
	return Add(Mul(Input(0), Input(0)), Mul(Input(0), Input(1)))
}

func TestForwardAgreesWithReversePolynomial(t *testing.T) {
	n := buildPolynomial()
	defer Discard(n)

	inputs := []float64{2, 3}
	var eng Engine
	derivatives := make([]float64, 2)
	value := eng.BackwardDiff(n, inputs, derivatives)

	if value != 10 {
		t.Fatalf("value = %v, want 10", value)
	}
	if !closeEnough(derivatives[0], 7) || !closeEnough(derivatives[1], 2) {
		t.Fatalf("gradient = %v, want [7 2]", derivatives)
	}

	for i := range inputs {
		fwd := ForwardDiff(n, inputs, i, nil)
		if !closeEnough(fwd, derivatives[i]) {
			t.Fatalf("ForwardDiff wrt %d = %v, BackwardDiff = %v", i, fwd, derivatives[i])
		}
	}
}

func TestForwardGradChainRule(t *testing.T) {
	n := buildPolynomial()
	defer Discard(n)

	inputs := []float64{2, 3}
	dinputs := []float64{1.5, -0.5}

	got := ForwardGrad(n, inputs, dinputs, nil)

	var eng Engine
	derivatives := make([]float64, 2)
	eng.BackwardDiff(n, inputs, derivatives)
	want := dinputs[0]*derivatives[0] + dinputs[1]*derivatives[1]

	if !closeEnough(got, want) {
		t.Fatalf("ForwardGrad = %v, want Σ dxᵢ·∂e/∂xᵢ = %v", got, want)
	}
}

func TestSharingCorrectness(t *testing.T) {
	f := Add(Input(0), Mul(Input(0), Const(2)))
	shared := Copy(f)
	g := Add(f, shared)
	defer Discard(g)

	inputs := []float64{5}
	var eng Engine
	dg := make([]float64, 1)
	eng.BackwardDiff(g, inputs, dg)

	fOnly := DeepCopy(f)
	df := make([]float64, 1)
	var eng2 Engine
	eng2.BackwardDiff(fOnly, inputs, df)
	Discard(fOnly)

	if !closeEnough(dg[0], 2*df[0]) {
		t.Fatalf("∂g/∂x0 = %v, want 2·∂f/∂x0 = %v", dg[0], 2*df[0])
	}
}

func TestConstantSubgraphZeroGradient(t *testing.T) {
	n := Add(Const(5), Mul(Input(0), Const(0)))
	defer Discard(n)

	for _, x := range []float64{0, 1, -17, 42.5} {
		inputs := []float64{x}

		fwdValue := 0.0
		fwdDeriv := ForwardDiff(n, inputs, 0, &fwdValue)
		if fwdValue != 5 || fwdDeriv != 0 {
			t.Fatalf("ForwardDiff at x=%v = (%v, %v), want (5, 0)", x, fwdValue, fwdDeriv)
		}

		var eng Engine
		derivatives := make([]float64, 1)
		value := eng.BackwardDiff(n, inputs, derivatives)
		if value != 5 || derivatives[0] != 0 {
			t.Fatalf("BackwardDiff at x=%v = (%v, %v), want (5, 0)", x, value, derivatives[0])
		}
	}
}

func TestDivisionByInputScenario(t *testing.T) {
	// [0]/([0]*[0] + [1]*[1]) at [3,4] -> value 0.12, gradient [0.0112, -0.0384]
	n := Div(Input(0), Add(Mul(Input(0), Input(0)), Mul(Input(1), Input(1))))
	defer Discard(n)

	inputs := []float64{3, 4}
	var eng Engine
	derivatives := make([]float64, 2)
	value := eng.BackwardDiff(n, inputs, derivatives)

	if !closeEnough(value, 0.12) {
		t.Fatalf("value = %v, want 0.12", value)
	}
	if !closeEnough(derivatives[0], 0.0112) || !closeEnough(derivatives[1], -0.0384) {
		t.Fatalf("gradient = %v, want [0.0112 -0.0384]", derivatives)
	}
}

func TestSigmoidScenario(t *testing.T) {
	sigmoid, err := Parse("1/(1 + {0})", Custom(expNeg, []*Node{Input(0)}))
	if err != nil {
		t.Fatalf("Parse sigmoid: %v", err)
	}
	defer Discard(sigmoid)

	inputs := []float64{0}
	var eng Engine
	derivatives := make([]float64, 1)
	value := eng.BackwardDiff(sigmoid, inputs, derivatives)

	if !closeEnough(value, 0.5) {
		t.Fatalf("sigmoid(0) = %v, want 0.5", value)
	}
	if !closeEnough(derivatives[0], 0.25) {
		t.Fatalf("sigmoid'(0) = %v, want 0.25", derivatives[0])
	}
}

// TestHigherOrderCompositionReentrancy exercises the fix for the reference's
// documented-but-unfixed bug: a COMPOSITION whose inner function is the very
// same shared sub-graph reachable elsewhere in the outer expression. Without
// deep-copying inner on detected re-entrancy, the nested reverse pass would
// clobber the outer pass's value cache mid-traversal.
func TestHigherOrderCompositionReentrancy(t *testing.T) {
	// shared(x) = x*x, reused both as the COMPOSITION's inner function and
	// directly as a sibling of the COMPOSITION node in the outer graph. The
	// sibling is op0, so the outer pass stamps it before reaching the
	// COMPOSITION, which then detects the re-entry.
	shared := Mul(Input(0), Input(0))
	innerHandle := Copy(shared)

	comp := Composition(innerHandle, []*Node{Add(Input(0), Const(1))})
	root := Add(shared, comp)
	defer Discard(root)

	inputs := []float64{2}
	var eng Engine
	derivatives := make([]float64, 1)
	value := eng.BackwardDiff(root, inputs, derivatives)

	// comp = (x+1)^2 at x=2 -> 9; shared = x^2 at x=2 -> 4; root = 13.
	if !closeEnough(value, 13) {
		t.Fatalf("value = %v, want 13", value)
	}
	// d(comp)/dx = 2(x+1) = 6; d(shared)/dx = 2x = 4; total = 10.
	if !closeEnough(derivatives[0], 10) {
		t.Fatalf("gradient = %v, want [10]", derivatives)
	}
}
