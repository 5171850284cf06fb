package sat

import (
	"math"
	"sort"
)

// luby returns the x-th (0-based) element of the Luby restart sequence with
// base y, i.e. y raised to the exponent the sequence holds at x (for y=2:
// 1, 1, 2, 1, 1, 2, 4, ...), computed iteratively the MiniSat way.
func luby(y float64, x int) float64 {
	size, seq := 1, 0
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x %= size
	}
	return math.Pow(y, float64(seq))
}

// Solve runs the search to completion with no resource budget, under the
// given assumptions (nil for none), and returns whether the formula plus
// assumptions is satisfiable. On true, Model() holds the assignment; on
// false with assumptions given, ConflictClause() holds the responsible
// subset.
func (s *Solver) Solve(assumptions []Lit) bool {
	s.assumptions = assumptions
	s.confBudget = -1
	s.propBudget = -1
	return s.solve() == True
}

// SolveLimited runs the search under whatever budget was last set via
// SetConfBudget/SetPropBudget (and any pending Interrupt), returning Unknown
// if the budget is exhausted before a verdict is reached.
func (s *Solver) SolveLimited(assumptions []Lit) LBool {
	s.assumptions = assumptions
	return s.solve()
}

func (s *Solver) solve() LBool {
	s.model = s.model[:0]
	s.conflict.Clear()
	if !s.ok {
		return False
	}

	s.maxLearnts = float64(s.NumConstraints()) * s.opts.LearntSizeFactor
	if s.maxLearnts < 0 {
		s.maxLearnts = 0
	}
	s.learntSizeAdjustConfl = float64(s.opts.LearntSizeAdjustStartConfl)
	s.learntSizeAdjustCnt = s.opts.LearntSizeAdjustStartConfl

	status := Unknown
	curRestarts := 0
	s.printSearchHeader()
	for status == Unknown {
		var restBase float64
		if s.opts.LubyRestart {
			restBase = luby(s.opts.RestartInc, curRestarts)
		} else {
			restBase = math.Pow(s.opts.RestartInc, float64(curRestarts))
		}
		s.starts++
		s.printSearchStats()
		status = s.search(int(restBase * float64(s.opts.RestartFirst)))
		if !s.withinBudget() {
			break
		}
		curRestarts++
	}

	if status == True {
		s.model = make([]LBool, s.NumVariables())
		for v := 0; v < s.NumVariables(); v++ {
			s.model[v] = s.VarValue(Var(v))
		}
	} else if status == False && s.conflict.Len() == 0 {
		s.ok = false
	}

	s.cancelUntil(0)
	return status
}

// search runs one restart's worth of conflict-driven search: propagate,
// analyze and learn on conflict, otherwise (re)simplify, reduce the learnt
// database if it has grown too large, and make a new decision. It returns
// True/False on a definite verdict, or Unknown once nOfConflicts conflicts
// have been seen (a negative nOfConflicts never triggers this) or the
// resource budget runs out.
func (s *Solver) search(nOfConflicts int) LBool {
	if !s.ok {
		return False
	}
	conflictC := 0

	for {
		confl := s.propagate()
		if confl != CRefUndef {
			s.conflicts++
			conflictC++
			if s.decisionLevel() == 0 {
				return False
			}

			learnt, btLevel := s.analyze(confl)
			s.cancelUntil(btLevel)

			s.avgLearntSize.Add(float64(len(learnt)))
			if len(learnt) == 1 {
				s.enqueue(learnt[0], CRefUndef)
			} else {
				cr := s.allocClause(learnt, true)
				s.learnts = append(s.learnts, cr)
				s.bumpClauseActivity(cr)
				s.enqueue(learnt[0], cr)
			}

			s.decayVarActivity()
			s.decayClauseActivity()

			s.learntSizeAdjustCnt--
			if s.learntSizeAdjustCnt == 0 {
				s.learntSizeAdjustConfl *= s.opts.LearntSizeAdjustInc
				s.learntSizeAdjustCnt = int(s.learntSizeAdjustConfl)
				s.maxLearnts *= s.opts.LearntSizeInc
			}
			continue
		}

		if (nOfConflicts >= 0 && conflictC >= nOfConflicts) || !s.withinBudget() {
			s.cancelUntil(0)
			return Unknown
		}

		if s.decisionLevel() == 0 {
			if !s.simplify() {
				return False
			}
		}

		if len(s.learnts)-s.NumAssigns() >= int(s.maxLearnts) {
			s.reduceDB()
		}

		next := LitUndef
		for next == LitUndef && s.decisionLevel() < len(s.assumptions) {
			p := s.assumptions[s.decisionLevel()]
			switch s.LitValue(p) {
			case True:
				s.trailLim = append(s.trailLim, len(s.trail)) // dummy level
			case False:
				s.analyzeFinal(p.Opposite())
				return False
			default:
				next = p
			}
		}
		if next == LitUndef {
			s.decisions++
			next = s.pickBranchLit()
			if next == LitUndef {
				return True
			}
		}
		s.assume(next)
	}
}

// pickBranchLit chooses the next decision literal: with probability
// RandomVarFreq, a uniformly random unassigned decision variable; otherwise
// the highest-activity one off the order heap. The literal's polarity comes
// from RndPol (coin flip), else the variable's user-set preferred polarity,
// else the phase cache (the value it held the last time it was assigned).
func (s *Solver) pickBranchLit() Lit {
	next := VarUndef

	if drand(&s.opts.RandomSeed) < s.opts.RandomVarFreq && s.order.Len() > 0 {
		idx := irand(&s.opts.RandomSeed, s.order.Len())
		v := s.order.At(idx)
		if s.VarValue(v) == Unknown && s.decisionVar.Get(v) {
			next = v
			s.rndDecisions++
			s.order.RemoveAt(idx)
		}
	}

	if next == VarUndef {
		for {
			v, ok := s.order.Pop()
			if !ok {
				return LitUndef
			}
			if s.VarValue(v) == Unknown && s.decisionVar.Get(v) {
				next = v
				break
			}
		}
	}

	switch {
	case s.opts.RndPol:
		if drand(&s.opts.RandomSeed) < 0.5 {
			return NegativeLiteral(next)
		}
		return PositiveLiteral(next)
	case s.userPol.Get(next) != Unknown:
		if s.userPol.Get(next) == True {
			return PositiveLiteral(next)
		}
		return NegativeLiteral(next)
	default:
		if s.order.PhaseOf(next) == False {
			return NegativeLiteral(next)
		}
		return PositiveLiteral(next)
	}
}

// reduceDB discards the less active half of the learnt clause database,
// keeping every size-2 clause (too valuable to ever discard) and every
// clause currently locked as a propagation reason.
func (s *Solver) reduceDB() {
	sort.Slice(s.learnts, func(i, j int) bool {
		ci, cj := s.ca.Clause(s.learnts[i]), s.ca.Clause(s.learnts[j])
		if ci.Size() == 2 {
			return false
		}
		if cj.Size() == 2 {
			return true
		}
		return ci.Activity() < cj.Activity()
	})

	n := len(s.learnts)
	var extraLim float64
	if n > 0 {
		extraLim = s.claInc / float64(n)
	}

	j := 0
	for i := 0; i < n; i++ {
		cr := s.learnts[i]
		c := s.ca.Clause(cr)
		if c.Size() > 2 && !c.locked(s) && (i < n/2 || c.Activity() < extraLim) {
			s.removeClause(cr)
		} else {
			s.learnts[j] = cr
			j++
		}
	}
	s.learnts = s.learnts[:j]
	s.checkGarbage()
}
