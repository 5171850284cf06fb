package sat

// simplify performs a root-level cleanup pass: it propagates, then (once
// per distinct root assignment) strips satisfied clauses out of both the
// constraint and learnt databases and rebuilds the decision heap to drop
// now-fixed variables. It is a no-op, returning true, if nothing has
// changed since the last call. It returns false if propagation at the root
// finds a conflict, which makes the solver permanently UNSAT.
func (s *Solver) simplify() bool {
	if !s.ok {
		return false
	}
	if s.decisionLevel() != 0 {
		return true
	}

	if confl := s.propagate(); confl != CRefUndef {
		s.ok = false
		return false
	}

	if s.NumAssigns() == s.simpDBAssigns {
		return true
	}

	s.learnts = s.removeSatisfiedFrom(s.learnts)
	s.constraints = s.removeSatisfiedFrom(s.constraints)
	s.rebuildOrderHeap()
	s.simpDBAssigns = s.NumAssigns()
	s.checkGarbage()
	return true
}

// removeSatisfiedFrom compacts list in place, dropping every clause that
// Clause.Simplify reports as satisfied and trimming falsified literals out
// of the rest.
func (s *Solver) removeSatisfiedFrom(list []CRef) []CRef {
	j := 0
	for _, cr := range list {
		c := s.ca.Clause(cr)
		if c.Simplify(s) {
			s.removeClause(cr)
		} else {
			list[j] = cr
			j++
		}
	}
	return list[:j]
}

// rebuildOrderHeap discards the heap and reinserts every variable that is
// both still a decision variable and still unassigned.
func (s *Solver) rebuildOrderHeap() {
	vars := make([]Var, 0, s.NumVariables())
	for i := 0; i < s.NumVariables(); i++ {
		v := Var(i)
		if s.decisionVar.Get(v) && s.VarValue(v) == Unknown {
			vars = append(vars, v)
		}
	}
	s.order.Rebuild(vars)
}
