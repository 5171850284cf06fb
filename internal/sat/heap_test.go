package sat

import (
	"math"
	"testing"
)

func TestVarOrderPopsHighestActivityFirst(t *testing.T) {
	vo := NewVarOrder(0.95, 2)
	a := vo.AddVar(0, true, true)
	b := vo.AddVar(0, true, true)
	c := vo.AddVar(0, true, true)

	vo.BumpScore(b)
	vo.BumpScore(b)
	vo.BumpScore(c)

	var order []Var
	for {
		v, ok := vo.Pop()
		if !ok {
			break
		}
		order = append(order, v)
	}
	want := []Var{b, c, a}
	if len(order) != len(want) {
		t.Fatalf("pop order length = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("pop order = %v, want %v", order, want)
		}
	}
}

func TestVarOrderTieBreaksOnLowerIndex(t *testing.T) {
	vo := NewVarOrder(0.95, 2)
	a := vo.AddVar(1.0, true, true)
	b := vo.AddVar(1.0, true, true)

	v, ok := vo.Pop()
	if !ok || v != a {
		t.Fatalf("Pop() = %v, %v, want %v, true (lower index wins tie)", v, ok, a)
	}
	v, ok = vo.Pop()
	if !ok || v != b {
		t.Fatalf("second Pop() = %v, %v, want %v, true", v, ok, b)
	}
}

func TestVarOrderNaNActivityIsFatal(t *testing.T) {
	prev := logFatal
	defer func() { logFatal = prev }()

	var caught bool
	logFatal = func(format string, args ...any) { caught = true; panic("fatal") }

	defer func() {
		recover()
		if !caught {
			t.Fatalf("expected logFatal to be invoked comparing NaN activity")
		}
	}()

	vo := NewVarOrder(0.95, 2)
	vo.AddVar(math.NaN(), true, true)
	b := vo.AddVar(0, true, true)
	vo.update(vo.pos[b])
}

func TestVarOrderReinsertRespectsPhaseSaving(t *testing.T) {
	vo := NewVarOrder(0.95, 1)
	v := vo.AddVar(0, true, true)
	vo.Pop()
	vo.Reinsert(v, False, true)
	if vo.PhaseOf(v) != False {
		t.Fatalf("PhaseOf(%d) = %v, want False after Reinsert with phase saving on", v, vo.PhaseOf(v))
	}
}

func TestVarOrderRebuildDropsStaleMembers(t *testing.T) {
	vo := NewVarOrder(0.95, 2)
	a := vo.AddVar(0, true, true)
	vo.AddVar(0, true, true) // b: dropped by Rebuild below

	vo.Rebuild([]Var{a})
	if vo.Len() != 1 {
		t.Fatalf("Len() after Rebuild = %d, want 1", vo.Len())
	}
	v, ok := vo.Pop()
	if !ok || v != a {
		t.Fatalf("Pop() after Rebuild = %v, %v, want %v, true", v, ok, a)
	}
}
