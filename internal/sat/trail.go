package sat

// VarData records, for an assigned variable, the clause that forced the
// assignment (CRefUndef for a decision or a top-level fact) and the
// decision level at which it was assigned.
type VarData struct {
	Reason CRef
	Level  int
}

// decisionLevel returns the current decision level: 0 is the top level.
func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// NumAssigns returns the number of literals currently on the trail.
func (s *Solver) NumAssigns() int {
	return len(s.trail)
}

// enqueue records a new fact p, forced by clause from (CRefUndef for a
// decision). It assumes p is not already assigned; callers check LitValue
// themselves first wherever p might already be assigned.
func (s *Solver) enqueue(p Lit, from CRef) {
	v := p.VarID()
	s.assigns[p] = True
	s.assigns[p.Opposite()] = False
	s.vardata.Set(v, VarData{Reason: from, Level: s.decisionLevel()})
	s.trail = append(s.trail, p)
}

// assume pushes a new decision level and enqueues p as a decision.
func (s *Solver) assume(p Lit) {
	s.trailLim = append(s.trailLim, len(s.trail))
	s.enqueue(p, CRefUndef)
}

// undoOne unassigns the last literal on the trail, restoring it to the
// variable order heap (phase-saved) if it is a decision variable.
func (s *Solver) undoOne() {
	p := s.trail[len(s.trail)-1]
	v := p.VarID()

	val := s.assigns[p]
	s.assigns[p] = Unknown
	s.assigns[p.Opposite()] = Unknown
	s.vardata.Set(v, VarData{Reason: CRefUndef, Level: -1})

	s.order.Reinsert(v, val, s.decisionVar.Get(v))
	s.trail = s.trail[:len(s.trail)-1]
}

// cancelUntil pops decision levels until decisionLevel() == level, undoing
// every literal assigned above it and resetting qhead so propagation
// resumes from the new trail end.
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		target := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > target {
			s.undoOne()
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
	s.qhead = len(s.trail)
}
