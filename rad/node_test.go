package rad

import "testing"

// TestRefcountBalance constructs a handful of graphs with shared
// sub-expressions and checks that discarding every externally held handle
// exactly once drains LiveNodes back to the baseline observed before the
// test, regardless of how much internal sharing occurred.
func TestRefcountBalance(t *testing.T) {
	base := LiveNodes()

	f := Add(Input(0), Const(2))
	shared := Copy(f)
	g := Mul(f, shared)
	Discard(g)

	if got := LiveNodes(); got != base {
		t.Fatalf("LiveNodes() = %d after full discard, want %d", got, base)
	}
}

func TestRefcountBalanceDeepGraph(t *testing.T) {
	base := LiveNodes()

	x := Input(0)
	acc := Const(0)
	for i := 0; i < 20; i++ {
		acc = Add(acc, Copy(x))
	}
	Discard(x)
	Discard(acc)

	if got := LiveNodes(); got != base {
		t.Fatalf("LiveNodes() = %d after full discard, want %d", got, base)
	}
}

func TestDiscardTwicePanics(t *testing.T) {
	n := Const(1)
	Discard(n)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double discard")
		}
	}()
	Discard(n)
}

func TestUseAfterDiscardPanics(t *testing.T) {
	a := Const(1)
	b := Const(2)
	Discard(a)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic using a discarded node")
		}
	}()
	Add(a, b)
}

func TestCopySharesUnderlyingNode(t *testing.T) {
	n := Const(3)
	c := Copy(n)
	if n != c {
		t.Fatalf("Copy should return the same handle, got distinct nodes")
	}
	Discard(n)
	Discard(c)
}

func TestDeepCopyIsStructurallyIndependent(t *testing.T) {
	base := LiveNodes()

	n := Add(Input(0), Const(5))
	clone := DeepCopy(n)
	if clone == n {
		t.Fatalf("DeepCopy should not return the same handle")
	}

	if Eval(n, []float64{1}) != Eval(clone, []float64{1}) {
		t.Fatalf("clone should evaluate identically to the original")
	}

	Discard(n)
	Discard(clone)
	if got := LiveNodes(); got != base {
		t.Fatalf("LiveNodes() = %d after discarding both, want %d", got, base)
	}
}
