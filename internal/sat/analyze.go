package sat

// analyze walks the implication graph backward from confl to the first
// unique implication point (1-UIP): the single literal at the current
// decision level that every path from the conflict to a decision passes
// through. It returns the learnt clause (element 0 is the asserting
// literal, to be watched alongside the highest-level literal among the
// rest) and the level to backtrack to before asserting it.
func (s *Solver) analyze(confl CRef) ([]Lit, int) {
	outLearnt := append(s.analyzeBuf[:0], LitUndef) // placeholder for the UIP
	pathC := 0
	p := LitUndef
	index := len(s.trail) - 1

	for {
		c := s.ca.Clause(confl)
		if c.Learnt() {
			s.bumpClauseActivity(confl)
		}
		start := 0
		if p != LitUndef {
			start = 1 // c[0] is p itself when c is p's reason clause
		}
		for j := start; j < c.Size(); j++ {
			q := c.Lit(j)
			v := q.VarID()
			if s.seen.Contains(v) || s.vardata.Get(v).Level == 0 {
				continue
			}
			s.bumpVarActivity(v)
			s.seen.Add(v)
			s.analyzeClear = append(s.analyzeClear, v)
			if s.vardata.Get(v).Level >= s.decisionLevel() {
				pathC++
			} else {
				outLearnt = append(outLearnt, q)
			}
		}

		for !s.seen.Contains(s.trail[index].VarID()) {
			index--
		}
		p = s.trail[index]
		index--
		confl = s.vardata.Get(p.VarID()).Reason
		s.seen.Remove(p.VarID())
		pathC--
		if pathC <= 0 {
			break
		}
	}
	outLearnt[0] = p.Opposite()

	outLearnt = s.minimize(outLearnt)

	btLevel := 0
	if len(outLearnt) > 1 {
		maxI := 1
		for i := 2; i < len(outLearnt); i++ {
			if s.vardata.Get(outLearnt[i].VarID()).Level > s.vardata.Get(outLearnt[maxI].VarID()).Level {
				maxI = i
			}
		}
		outLearnt[1], outLearnt[maxI] = outLearnt[maxI], outLearnt[1]
		btLevel = s.vardata.Get(outLearnt[1].VarID()).Level
	}

	for _, v := range s.analyzeClear {
		s.seen.Remove(v)
	}
	s.analyzeClear = s.analyzeClear[:0]
	s.analyzeBuf = outLearnt
	return outLearnt, btLevel
}

// minimize dispatches to the configured clause-minimization strategy. Mode 0
// performs none; mode 1 drops a learnt literal whose reason clause is
// entirely subsumed by the rest of the learnt clause; mode 2 does the same
// check recursively through the implication graph.
func (s *Solver) minimize(outLearnt []Lit) []Lit {
	switch s.opts.CCMinMode {
	case 2:
		return s.minimizeDeep(outLearnt)
	case 1:
		return s.minimizeBasic(outLearnt)
	default:
		return outLearnt
	}
}

func (s *Solver) minimizeBasic(outLearnt []Lit) []Lit {
	j := 1
	for i := 1; i < len(outLearnt); i++ {
		v := outLearnt[i].VarID()
		reason := s.vardata.Get(v).Reason
		redundant := reason != CRefUndef
		if redundant {
			c := s.ca.Clause(reason)
			for k := 1; k < c.Size(); k++ {
				w := c.Lit(k).VarID()
				if !s.seen.Contains(w) && s.vardata.Get(w).Level > 0 {
					redundant = false
					break
				}
			}
		}
		if !redundant {
			outLearnt[j] = outLearnt[i]
			j++
		}
	}
	return outLearnt[:j]
}

func abstractLevelOf(level int) uint32 {
	return 1 << (uint32(level) & 31)
}

func (s *Solver) minimizeDeep(outLearnt []Lit) []Lit {
	var levels uint32
	for i := 1; i < len(outLearnt); i++ {
		levels |= abstractLevelOf(s.vardata.Get(outLearnt[i].VarID()).Level)
	}
	j := 1
	for i := 1; i < len(outLearnt); i++ {
		v := outLearnt[i].VarID()
		keep := s.vardata.Get(v).Reason == CRefUndef || !s.litRedundant(outLearnt[i], levels)
		if keep {
			outLearnt[j] = outLearnt[i]
			j++
		}
	}
	return outLearnt[:j]
}

// litRedundant reports whether l's assignment is implied entirely by
// literals already in the learnt clause (as tracked by s.seen), by walking
// its reason clause and recursively the reasons behind that. levels is a
// bitmask of the decision levels represented in the learnt clause so far:
// a literal whose level isn't in that set can't possibly be redundant, which
// lets the walk bail out without visiting its reason at all.
func (s *Solver) litRedundant(l Lit, levels uint32) bool {
	stack := append(s.analyzeStack[:0], l)
	top := len(s.analyzeClear)

	for len(stack) > 0 {
		cr := s.vardata.Get(stack[len(stack)-1].VarID()).Reason
		c := s.ca.Clause(cr)
		stack = stack[:len(stack)-1]

		for i := 1; i < c.Size(); i++ {
			q := c.Lit(i)
			v := q.VarID()
			if s.seen.Contains(v) || s.vardata.Get(v).Level == 0 {
				continue
			}
			if s.vardata.Get(v).Reason != CRefUndef && abstractLevelOf(s.vardata.Get(v).Level)&levels != 0 {
				s.seen.Add(v)
				stack = append(stack, q)
				s.analyzeClear = append(s.analyzeClear, v)
				continue
			}
			for _, cleared := range s.analyzeClear[top:] {
				s.seen.Remove(cleared)
			}
			s.analyzeClear = s.analyzeClear[:top]
			s.analyzeStack = stack[:0]
			return false
		}
	}
	s.analyzeStack = stack[:0]
	return true
}

// analyzeFinal computes, into s.conflict, p together with the negations of
// the assumption decisions that force p true. search calls it with the
// negation of the next assumption when that assumption is already false
// under the current assignment.
func (s *Solver) analyzeFinal(p Lit) {
	s.conflict.Clear()
	s.conflict.Add(p)

	if s.decisionLevel() == 0 {
		return
	}

	s.seen.Add(p.VarID())
	for i := len(s.trail) - 1; i >= s.trailLim[0]; i-- {
		v := s.trail[i].VarID()
		if !s.seen.Contains(v) {
			continue
		}
		reason := s.vardata.Get(v).Reason
		if reason == CRefUndef {
			if s.vardata.Get(v).Level > 0 {
				s.conflict.Add(s.trail[i].Opposite())
			}
		} else {
			c := s.ca.Clause(reason)
			for j := 1; j < c.Size(); j++ {
				w := c.Lit(j).VarID()
				if s.vardata.Get(w).Level > 0 {
					s.seen.Add(w)
				}
			}
		}
		s.seen.Remove(v)
	}
	s.seen.Remove(p.VarID())
}
