package sat

// checkGarbage triggers a garbage collection once the arena's wasted
// fraction crosses GarbageFrac.
func (s *Solver) checkGarbage() {
	if s.ca.Len() == 0 {
		return
	}
	if float64(s.ca.Wasted()) > float64(s.ca.Len())*s.opts.GarbageFrac {
		s.garbageCollect()
	}
}

// garbageCollect compacts the clause arena: every live clause is copied into
// a fresh arena (with no wasted space) and every CRef held anywhere in the
// solver — watch lists, reason pointers, and the constraint/learnt clause
// lists themselves — is rewritten to point at the copy.
func (s *Solver) garbageCollect() {
	to := NewClauseArena(s.ca.Len() - s.ca.Wasted())
	s.relocAll(to)
	s.ca = to
}

func (s *Solver) relocAll(to *ClauseArena) {
	s.watches.CleanAll()
	for l := 0; l < len(s.assigns); l++ {
		lit := Lit(l)
		ws := s.watches.Raw(lit)
		for i := range ws {
			s.ca.Reloc(&ws[i].Cref, to)
		}
	}

	for _, p := range s.trail {
		v := p.VarID()
		vd := s.vardata.Get(v)
		if vd.Reason == CRefUndef {
			continue
		}
		c := s.ca.Clause(vd.Reason)
		if c.Reloced() || c.locked(s) {
			s.ca.Reloc(&vd.Reason, to)
			s.vardata.Set(v, vd)
		}
	}

	s.constraints = relocList(s.ca, to, s.constraints)
	s.learnts = relocList(s.ca, to, s.learnts)
}

// relocList copies every non-removed clause in list into to, dropping
// removed ones, and returns the compacted list of (relocated) CRefs.
func relocList(from, to *ClauseArena, list []CRef) []CRef {
	j := 0
	for _, cr := range list {
		if from.Clause(cr).Removed() {
			continue
		}
		from.Reloc(&cr, to)
		list[j] = cr
		j++
	}
	return list[:j]
}
