package sat

import "testing"

func newResetSet(n int) *ResetSet {
	s := &ResetSet{}
	for i := 0; i < n; i++ {
		s.Expand()
	}
	s.Clear() // zero value starts at timestamp 0, where Contains is always false
	return s
}

func TestResetSetAddContains(t *testing.T) {
	s := newResetSet(4)
	s.Add(1)
	s.Add(3)

	if !s.Contains(1) || !s.Contains(3) {
		t.Fatalf("Contains false for a just-added member")
	}
	if s.Contains(0) || s.Contains(2) {
		t.Fatalf("Contains true for a var never added")
	}
}

func TestResetSetClearEmptiesSet(t *testing.T) {
	s := newResetSet(4)
	s.Add(0)
	s.Add(1)
	s.Clear()

	if s.Contains(0) || s.Contains(1) {
		t.Fatalf("member survived Clear()")
	}
	s.Add(2)
	if !s.Contains(2) {
		t.Fatalf("Add after Clear did not take effect")
	}
}

func TestResetSetRemoveEvictsOnlyTargetMember(t *testing.T) {
	s := newResetSet(4)
	s.Add(0)
	s.Add(1)
	s.Remove(0)

	if s.Contains(0) {
		t.Fatalf("Remove did not evict var 0")
	}
	if !s.Contains(1) {
		t.Fatalf("Remove evicted var 1 too")
	}
}

func TestResetSetRemoveIsSafeForNonMember(t *testing.T) {
	s := newResetSet(4)
	s.Remove(2) // must not panic
	if s.Contains(2) {
		t.Fatalf("Remove caused a non-member to appear present")
	}
}

func TestResetSetTimestampWrapResetsExplicitly(t *testing.T) {
	s := &ResetSet{}
	s.Expand()
	s.Expand()
	s.timestamp = ^uint32(0) // one Clear() away from wrapping to 0
	s.Add(0)

	s.Clear()
	if s.timestamp == 0 {
		t.Fatalf("timestamp wrapped to 0, which Contains treats as always-empty")
	}
	if s.Contains(0) {
		t.Fatalf("member from before the wrap survived Clear()")
	}
	s.Add(1)
	if !s.Contains(1) {
		t.Fatalf("Add after wrap-around Clear did not take effect")
	}
}
