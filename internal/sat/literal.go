package sat

import "fmt"

// Var is a dense, nonnegative variable index assigned on creation.
type Var int

// Lit represents a literal: a variable paired with a sign bit. Literals
// are encoded as 2*var+sign so that they can index arrays directly; there
// are exactly 2*nVars literal indices for a solver with nVars variables.
type Lit int

// VarUndef is a sentinel variable used where no variable applies.
const VarUndef Var = -1

// LitUndef is a sentinel literal that never equals a real literal or its
// opposite; used to seed a "last literal seen" cursor before any literal has
// been seen.
const LitUndef Lit = -2

// PositiveLiteral returns the positive literal of variable v.
func PositiveLiteral(v Var) Lit {
	return Lit(v * 2)
}

// NegativeLiteral returns the negative literal of variable v.
func NegativeLiteral(v Var) Lit {
	return Lit(v*2 + 1)
}

// VarID returns the variable underlying the literal.
func (l Lit) VarID() Var {
	return Var(l / 2)
}

// IsPositive reports whether the literal represents its variable directly
// (as opposed to its negation).
func (l Lit) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of l.
func (l Lit) Opposite() Lit {
	return l ^ 1
}

func (l Lit) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
