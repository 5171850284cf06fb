package sat

import (
	"io"
	"sync/atomic"
	"time"
)

// Options holds every solver tunable named in the configuration surface.
// Zero value is not meaningful; use DefaultOptions.
type Options struct {
	VarDecay   float64 // activity decay factor per conflict, in (0, 1]
	ClauseDecay float64 // learnt-clause activity decay factor per conflict

	RandomVarFreq float64 // probability in [0,1] of a random decision
	RandomSeed    float64 // drand seed; same seed gives the same run

	LubyRestart bool // Luby sequence if true, geometric if false
	RestartFirst int
	RestartInc   float64

	CCMinMode   int // 0 none, 1 basic, 2 deep (recursive)
	PhaseSaving int // 0 none, >=1 save last polarity on backtrack

	RndPol     bool // ignore the phase cache and pick a random polarity
	RndInitAct bool // seed activity with small random noise instead of 0

	GarbageFrac float64 // trigger a GC when wasted/total exceeds this

	LearntSizeFactor           float64 // initial learnt-clause budget, as a factor of NumConstraints
	LearntSizeInc              float64 // learnt-clause budget growth factor applied at each adjustment
	LearntSizeAdjustStartConfl int     // conflicts before the first budget adjustment
	LearntSizeAdjustInc        float64 // multiplier on the conflict interval between adjustments
}

// DefaultOptions returns MiniSat's published defaults.
func DefaultOptions() Options {
	return Options{
		VarDecay:                   0.95,
		ClauseDecay:                0.999,
		RandomVarFreq:              0,
		RandomSeed:                 91648253,
		LubyRestart:                true,
		RestartFirst:               100,
		RestartInc:                 2,
		CCMinMode:                  2,
		PhaseSaving:                2,
		RndPol:                     false,
		RndInitAct:                 false,
		GarbageFrac:                0.20,
		LearntSizeFactor:           1.0 / 3.0,
		LearntSizeInc:              1.1,
		LearntSizeAdjustStartConfl: 100,
		LearntSizeAdjustInc:        1.5,
	}
}

// Solver is a CDCL SAT solver: an incremental clause database plus a search
// procedure that can be driven one clause at a time (AddClause) and one
// query at a time (Solve/SolveLimited).
type Solver struct {
	opts Options

	ca          *ClauseArena
	constraints []CRef // input clauses, kept for Simplify/Reloc bookkeeping
	learnts     []CRef

	claInc float64

	order *VarOrder

	assigns  []LBool // indexed by Lit: 2*NumVariables entries
	vardata  VMap[VarData]
	userPol  VMap[LBool]
	decisionVar VMap[bool]

	trail    []Lit
	trailLim []int
	qhead    int

	watches *OccLists[Watcher]

	nextVar Var

	seen ResetSet

	// scratch buffers reused across calls to avoid per-conflict allocation
	analyzeBuf   []Lit
	analyzeStack []Lit
	analyzeClear []Var

	assumptions []Lit
	model       []LBool
	conflict    LSet

	ok bool

	// search statistics
	conflicts     int64
	decisions     int64
	rndDecisions  int64
	propagations  int64
	starts        int64
	numClauses    int
	numLearnts    int
	clausesLiterals int64
	learntsLiterals int64

	simpDBAssigns int

	maxLearnts            float64
	learntSizeAdjustConfl float64
	learntSizeAdjustCnt   int

	confBudget int64 // -1: unbounded
	propBudget int64
	interrupt  atomic.Bool

	statsOut      io.Writer
	startTime     time.Time
	verbosity     int
	avgLearntSize EMA
}

// NewSolver returns an empty solver configured with opts.
func NewSolver(opts Options) *Solver {
	s := &Solver{
		opts:       opts,
		ca:         NewClauseArena(1 << 20),
		claInc:     1,
		order:      NewVarOrder(opts.VarDecay, opts.PhaseSaving),
		ok:            true,
		confBudget:    -1,
		propBudget:    -1,
		startTime:     time.Now(),
		avgLearntSize: NewEMA(0.99),
	}
	s.watches = NewOccLists[Watcher](func(w Watcher) bool {
		return s.ca.Clause(w.Cref).Removed()
	})
	s.seen.Clear() // bootstrap off the zero-value timestamp, where Contains is never true
	return s
}

// NewDefaultSolver returns a solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions())
}

// Okay reports whether the formula is still satisfiable by the information
// derived so far. Once false, every operation below is a no-op.
func (s *Solver) Okay() bool { return s.ok }

// NumVariables returns the number of variables allocated so far.
func (s *Solver) NumVariables() int { return int(s.nextVar) }

// NumConstraints returns the number of original (non-learnt) clauses.
func (s *Solver) NumConstraints() int { return s.numClauses }

// NumLearnts returns the number of learnt clauses currently in the database.
func (s *Solver) NumLearnts() int { return s.numLearnts }

// NewVar allocates a fresh variable. upol is the variable's preferred
// polarity (Unknown for no preference); dvar controls whether the search
// may branch on it.
func (s *Solver) NewVar(upol LBool, dvar bool) Var {
	v := s.nextVar
	s.nextVar++
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.vardata.Push(VarData{Reason: CRefUndef, Level: -1})
	s.seen.Expand()
	s.watches.Init(PositiveLiteral(v))
	s.watches.Init(NegativeLiteral(v))

	initScore := 0.0
	if s.opts.RndInitAct {
		initScore = drand(&s.opts.RandomSeed) * 0.00001
	}
	s.order.AddVar(initScore, true, false)
	s.userPol.Push(upol)
	s.decisionVar.Push(false)
	s.SetDecisionVar(v, dvar)
	return v
}

// ReleaseVar tells the solver that v will never be branched on or queried
// again. If v is still unassigned it is fixed true as a harmless unit fact,
// and it is permanently excluded from the decision heap.
func (s *Solver) ReleaseVar(v Var) {
	if s.VarValue(v) == Unknown {
		s.AddClause([]Lit{PositiveLiteral(v)})
	}
	s.SetDecisionVar(v, false)
}

// SetDecisionVar toggles whether v may be chosen as a branching variable.
func (s *Solver) SetDecisionVar(v Var, dvar bool) {
	wasDecision := s.decisionVar.Get(v)
	s.decisionVar.Set(v, dvar)
	switch {
	case dvar && !wasDecision:
		s.order.Insert(v)
	case !dvar && wasDecision:
		s.order.Remove(v)
	}
}

// LitValue returns the current truth value of l.
func (s *Solver) LitValue(l Lit) LBool {
	return s.assigns[l]
}

// VarValue returns the current truth value of v's positive literal.
func (s *Solver) VarValue(v Var) LBool {
	return s.assigns[PositiveLiteral(v)]
}

// Model returns the satisfying assignment from the last successful Solve
// call, indexed by Var. It is empty unless the last search returned True.
func (s *Solver) Model() []LBool { return s.model }

// ConflictClause returns, after an UNSAT-under-assumptions result, the
// negations of the assumptions responsible for it: a clause implied by the
// formula, so at least one of its literals must hold.
func (s *Solver) ConflictClause() []Lit { return s.conflict.Literals() }

// SetConfBudget bounds the next SolveLimited call to at most n further
// conflicts; n < 0 removes the bound. Solve ignores and clears the bound.
func (s *Solver) SetConfBudget(n int64) {
	if n >= 0 {
		n += s.conflicts
	}
	s.confBudget = n
}

// SetPropBudget bounds the next SolveLimited call to at most n further
// propagations; n < 0 removes the bound. Solve ignores and clears the bound.
func (s *Solver) SetPropBudget(n int64) {
	if n >= 0 {
		n += s.propagations
	}
	s.propBudget = n
}

// Interrupt asynchronously requests that any in-progress SolveLimited return
// Unknown as soon as it next checks in. Safe to call from another goroutine.
func (s *Solver) Interrupt() { s.interrupt.Store(true) }

// ClearInterrupt resets the asynchronous interrupt flag before a new search.
func (s *Solver) ClearInterrupt() { s.interrupt.Store(false) }

func (s *Solver) withinBudget() bool {
	if s.interrupt.Load() {
		return false
	}
	if s.confBudget >= 0 && s.conflicts >= s.confBudget {
		return false
	}
	if s.propBudget >= 0 && s.propagations >= s.propBudget {
		return false
	}
	return true
}

// bumpVarActivity increases v's VSIDS activity.
func (s *Solver) bumpVarActivity(v Var) {
	s.order.BumpScore(v)
}

// decayVarActivity applies one tick of activity decay to every variable.
func (s *Solver) decayVarActivity() {
	s.order.DecayScores()
}

// bumpClauseActivity increases a learnt clause's activity, rescaling every
// learnt clause's activity (and the increment) if it would overflow.
func (s *Solver) bumpClauseActivity(cr CRef) {
	c := s.ca.Clause(cr)
	if !c.Learnt() {
		return
	}
	newAct := c.Activity() + s.claInc
	c.SetActivity(newAct)
	if newAct > 1e20 {
		s.claInc *= 1e-20
		for _, lcr := range s.learnts {
			lc := s.ca.Clause(lcr)
			lc.SetActivity(lc.Activity() * 1e-20)
		}
	}
}

// decayClauseActivity applies one tick of activity decay to learnt clauses.
func (s *Solver) decayClauseActivity() {
	s.claInc /= s.opts.ClauseDecay
}

// attachClause registers cr's two watched literals and updates clause-count
// statistics. cr must have size >= 2.
func (s *Solver) attachClause(cr CRef) {
	c := s.ca.Clause(cr)
	c0, c1 := c.Lit(0), c.Lit(1)
	s.watches.Push(c0.Opposite(), Watcher{Cref: cr, Blocker: c1})
	s.watches.Push(c1.Opposite(), Watcher{Cref: cr, Blocker: c0})
	if c.Learnt() {
		s.numLearnts++
		s.learntsLiterals += int64(c.Size())
	} else {
		s.numClauses++
		s.clausesLiterals += int64(c.Size())
	}
}

// detachClause unregisters cr's watches (lazily, via smudge) and updates
// statistics. It does not free cr's arena words; call removeClause for that.
func (s *Solver) detachClause(cr CRef) {
	c := s.ca.Clause(cr)
	c0, c1 := c.Lit(0), c.Lit(1)
	s.watches.Smudge(c0.Opposite())
	s.watches.Smudge(c1.Opposite())
	if c.Learnt() {
		s.numLearnts--
		s.learntsLiterals -= int64(c.Size())
	} else {
		s.numClauses--
		s.clausesLiterals -= int64(c.Size())
	}
}

// removeClause detaches and frees cr, clearing any reason pointer that
// refers to it so the trail never points at reclaimed arena words.
func (s *Solver) removeClause(cr CRef) {
	c := s.ca.Clause(cr)
	s.detachClause(cr)
	if c.locked(s) {
		v := c.Lit(0).VarID()
		s.vardata.Set(v, VarData{Reason: CRefUndef, Level: s.vardata.Get(v).Level})
	}
	s.ca.Free(cr)
}

// allocClause copies lits into the arena and attaches the resulting clause.
func (s *Solver) allocClause(lits []Lit, learnt bool) CRef {
	cr := s.ca.Alloc(lits, learnt)
	s.attachClause(cr)
	return cr
}

// AddClause adds a clause at the root level: it is sorted, deduplicated, and
// dropped if it is a tautology or already satisfied. A clause that reduces
// to empty under root-level assignments makes the solver permanently UNSAT;
// AddClause returns false in that case (and whenever the solver was already
// UNSAT). A unit clause is enqueued directly rather than stored in the
// arena.
func (s *Solver) AddClause(lits []Lit) bool {
	if !s.ok {
		return false
	}
	sortLits(lits)

	j := 0
	last := LitUndef
	for i := 0; i < len(lits); i++ {
		l := lits[i]
		if s.LitValue(l) == True || l == last.Opposite() {
			return true // satisfied or tautological: not a constraint at all
		}
		if s.LitValue(l) != False && l != last {
			last = l
			lits[j] = l
			j++
		}
	}
	lits = lits[:j]

	switch len(lits) {
	case 0:
		s.ok = false
		return false
	case 1:
		s.enqueue(lits[0], CRefUndef)
		if s.propagateRoot() != CRefUndef {
			s.ok = false
			return false
		}
		return true
	default:
		cr := s.allocClause(lits, false)
		s.constraints = append(s.constraints, cr)
		return true
	}
}

// propagateRoot runs propagate() at decision level 0, used right after a
// unit clause is asserted outside of search.
func (s *Solver) propagateRoot() CRef {
	if s.decisionLevel() != 0 {
		return CRefUndef
	}
	return s.propagate()
}

// sortLits sorts literals by their packed integer encoding, which groups
// literals of the same variable adjacently (positive before negative) and
// lets AddClause detect duplicates and tautologies in a single pass.
func sortLits(lits []Lit) {
	for i := 1; i < len(lits); i++ {
		for j := i; j > 0 && lits[j-1] > lits[j]; j-- {
			lits[j-1], lits[j] = lits[j], lits[j-1]
		}
	}
}
