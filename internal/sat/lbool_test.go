package sat

import "testing"

func TestLBoolXor(t *testing.T) {
	cases := []struct {
		l    LBool
		sign bool
		want LBool
	}{
		{True, false, True},
		{True, true, False},
		{False, true, True},
		{Unknown, true, Unknown},
		{Unknown, false, Unknown},
	}
	for _, c := range cases {
		if got := c.l.Xor(c.sign); got != c.want {
			t.Errorf("%v.Xor(%v) = %v, want %v", c.l, c.sign, got, c.want)
		}
	}
}

func TestLBoolAndOr(t *testing.T) {
	if got := True.And(False); got != False {
		t.Errorf("True.And(False) = %v, want False", got)
	}
	if got := True.And(Unknown); got != Unknown {
		t.Errorf("True.And(Unknown) = %v, want Unknown", got)
	}
	if got := False.Or(True); got != True {
		t.Errorf("False.Or(True) = %v, want True", got)
	}
	if got := Unknown.Or(False); got != Unknown {
		t.Errorf("Unknown.Or(False) = %v, want Unknown", got)
	}
}

func TestLift(t *testing.T) {
	if Lift(true) != True {
		t.Error("Lift(true) != True")
	}
	if Lift(false) != False {
		t.Error("Lift(false) != False")
	}
}
