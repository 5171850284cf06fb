package sat

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestSolver() *Solver {
	opts := DefaultOptions()
	return NewSolver(opts)
}

func addClause(t *testing.T, s *Solver, vs ...int) {
	t.Helper()
	if !s.AddClause(lits(vs...)) {
		t.Fatalf("AddClause(%v) returned false", vs)
	}
}

func newVars(s *Solver, n int) {
	for i := 0; i < n; i++ {
		s.NewVar(Unknown, true)
	}
}

func TestSolveEmptyFormulaIsSatisfiable(t *testing.T) {
	s := newTestSolver()
	newVars(s, 3)

	if !s.Solve(nil) {
		t.Fatalf("Solve() = false for an empty formula, want true")
	}
	if len(s.Model()) != 3 {
		t.Fatalf("Model() length = %d, want 3", len(s.Model()))
	}
}

func TestSolveUnitClauseForcesAssignment(t *testing.T) {
	s := newTestSolver()
	newVars(s, 1)
	addClause(t, s, 1)

	if !s.Solve(nil) {
		t.Fatalf("Solve() = false, want true")
	}
	if s.Model()[0] != True {
		t.Fatalf("Model()[0] = %v, want True", s.Model()[0])
	}
}

func TestSolveDirectContradictionIsUnsatisfiable(t *testing.T) {
	s := newTestSolver()
	newVars(s, 1)
	addClause(t, s, 1)
	if s.AddClause(lits(-1)) {
		t.Fatalf("AddClause([-1]) = true after asserting [1], want false")
	}

	if s.Okay() {
		t.Fatalf("Okay() = true after asserting a variable both ways at the root")
	}
	if s.Solve(nil) {
		t.Fatalf("Solve() = true, want false")
	}
}

func TestSolveChainPropagation(t *testing.T) {
	// x1 -> x2 -> x3 -> x4, plus x1. Forces every variable true by unit
	// propagation alone, no search needed.
	s := newTestSolver()
	newVars(s, 4)
	addClause(t, s, 1)
	addClause(t, s, -1, 2)
	addClause(t, s, -2, 3)
	addClause(t, s, -3, 4)

	if !s.Solve(nil) {
		t.Fatalf("Solve() = false, want true")
	}
	for i, want := range []LBool{True, True, True, True} {
		if got := s.Model()[i]; got != want {
			t.Errorf("Model()[%d] = %v, want %v", i, got, want)
		}
	}
}

// pigeonhole encodes the pigeonhole problem for the given counts: every
// pigeon sits in some hole, and no two pigeons share a hole. It is
// unsatisfiable when pigeons > holes. Variable (p,h) = (p-1)*holes+h
// (1-indexed pigeons/holes).
func pigeonhole(s *Solver, pigeons, holes int) {
	v := func(p, h int) int { return (p-1)*holes + h }
	newVars(s, pigeons*holes)

	for p := 1; p <= pigeons; p++ {
		clause := make([]int, 0, holes)
		for h := 1; h <= holes; h++ {
			clause = append(clause, v(p, h))
		}
		s.AddClause(lits(clause...))
	}
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				s.AddClause(lits(-v(p1, h), -v(p2, h)))
			}
		}
	}
}

func TestSolvePigeonholeIsUnsatisfiable(t *testing.T) {
	s := newTestSolver()
	pigeonhole(s, 3, 2)

	if s.Solve(nil) {
		t.Fatalf("Solve() = true for pigeonhole(3,2), want false (unsatisfiable)")
	}
}

func TestSolveWithSatisfiableAssumptions(t *testing.T) {
	s := newTestSolver()
	newVars(s, 2)
	addClause(t, s, 1, 2)

	if !s.Solve(lits(1)) {
		t.Fatalf("Solve(assume x1) = false, want true")
	}
	if s.Model()[0] != True {
		t.Fatalf("Model()[0] = %v, want True under assumption x1", s.Model()[0])
	}
}

func TestSolveWithUnsatisfiableAssumptionsReportsConflict(t *testing.T) {
	s := newTestSolver()
	newVars(s, 1)
	addClause(t, s, 1) // x1 is forced true at the root

	if s.Solve(lits(-1)) {
		t.Fatalf("Solve(assume -x1) = true, want false (x1 is forced true)")
	}
	conflict := s.ConflictClause()
	if len(conflict) == 0 {
		t.Fatalf("ConflictClause() is empty after an assumption-driven UNSAT")
	}
	// conflict holds the negation of each responsible assumption: x1 was
	// forced true at the root, so assuming -x1 conflicts and the reported
	// literal is the positive one.
	if !cmp.Equal(conflict, lits(1)) {
		t.Errorf("ConflictClause() = %v, want %v", conflict, lits(1))
	}
}

func TestSolveIsDeterministicForAFixedSeed(t *testing.T) {
	run := func() []LBool {
		s := newTestSolver()
		pigeonhole(s, 2, 3) // satisfiable: more holes than pigeons
		if !s.Solve(nil) {
			t.Fatalf("Solve() = false for pigeonhole(2,3), want true (satisfiable)")
		}
		return s.Model()
	}

	m1 := run()
	m2 := run()
	if !cmp.Equal(m1, m2) {
		t.Errorf("two runs with identical options/seed diverged: %v vs %v", m1, m2)
	}
}
