package sat

import "testing"

func TestLiteralEncoding(t *testing.T) {
	for v := Var(0); v < 8; v++ {
		pos := PositiveLiteral(v)
		neg := NegativeLiteral(v)

		if pos.VarID() != v || neg.VarID() != v {
			t.Fatalf("VarID(%d) = %d, %d, want %d, %d", v, pos.VarID(), neg.VarID(), v, v)
		}
		if !pos.IsPositive() {
			t.Errorf("PositiveLiteral(%d).IsPositive() = false", v)
		}
		if neg.IsPositive() {
			t.Errorf("NegativeLiteral(%d).IsPositive() = true", v)
		}
		if pos.Opposite() != neg || neg.Opposite() != pos {
			t.Errorf("Opposite mismatch for var %d", v)
		}
		if pos.Opposite().Opposite() != pos {
			t.Errorf("Opposite is not an involution for var %d", v)
		}
	}
}

func TestLitUndefNeverMatchesARealLiteral(t *testing.T) {
	for v := Var(0); v < 4; v++ {
		if PositiveLiteral(v) == LitUndef || NegativeLiteral(v) == LitUndef {
			t.Fatalf("real literal for var %d collides with LitUndef", v)
		}
		if PositiveLiteral(v) == LitUndef.Opposite() || NegativeLiteral(v) == LitUndef.Opposite() {
			t.Fatalf("real literal for var %d collides with LitUndef.Opposite()", v)
		}
	}
}
