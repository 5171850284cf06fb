package sat

import (
	"log"
	"math"
)

// logFatal aborts the process on a detected programmer error (NaN
// activity). A package variable so tests can observe the fatal path
// without actually terminating the test binary.
var logFatal = log.Fatalf

// VarOrder maintains the branching heuristic: a VSIDS-style activity score
// per variable, backed by an indexed binary max-heap so that BumpScore can
// update a variable's position in O(log n), and a phase cache for
// phase-saving. The heap holds a permutation of the decision-eligible,
// currently unassigned variables.
type VarOrder struct {
	scores     []float64 // activity, in [0, 1e100)
	scoreInc   float64   // in (0, 1e100)
	scoreDecay float64   // in (0, 1]

	phases      []LBool
	phaseSaving int // 0 = none, >=1 = save polarity on every backtrack

	heap []Var
	pos  []int // var -> index in heap, or -1 if not in the heap
}

// NewVarOrder returns an empty VarOrder.
func NewVarOrder(scoreDecay float64, phaseSaving int) *VarOrder {
	return &VarOrder{
		scoreInc:    1,
		scoreDecay:  scoreDecay,
		phaseSaving: phaseSaving,
	}
}

// AddVar registers a new variable with the given initial score and phase.
// If isDecision, the variable is immediately inserted into the heap.
func (vo *VarOrder) AddVar(initScore float64, initPhase bool, isDecision bool) Var {
	v := Var(len(vo.scores))
	vo.scores = append(vo.scores, initScore)
	vo.phases = append(vo.phases, Lift(initPhase))
	vo.pos = append(vo.pos, -1)
	if isDecision {
		vo.insert(v)
	}
	return v
}

// Contains reports whether v is currently in the heap.
func (vo *VarOrder) Contains(v Var) bool {
	return vo.pos[v] != -1
}

// Insert adds v to the heap if it is not already a member. Used when a
// variable becomes eligible for decisions again (SetDecisionVar(v, true)).
func (vo *VarOrder) Insert(v Var) {
	vo.insert(v)
}

func (vo *VarOrder) insert(v Var) {
	if vo.pos[v] != -1 {
		return
	}
	vo.heap = append(vo.heap, v)
	idx := len(vo.heap) - 1
	vo.pos[v] = idx
	vo.siftUp(idx)
}

// Reinsert adds variable v back to the set of decision candidates. Called
// by the solver when v is unassigned by a backtrack; val is the value v had
// just before being unassigned, recorded into the phase cache when phase
// saving is enabled.
func (vo *VarOrder) Reinsert(v Var, val LBool, isDecision bool) {
	if vo.phaseSaving >= 1 {
		vo.phases[v] = val
	}
	if isDecision {
		vo.insert(v)
	}
}

// DecayScores increases the bump increment, which has the effect of
// decaying every variable's relative contribution to future comparisons.
func (vo *VarOrder) DecayScores() {
	vo.scoreInc /= vo.scoreDecay
	if vo.scoreInc > 1e100 {
		vo.rescale()
	}
}

// BumpScore increases v's activity and restores the heap invariant.
func (vo *VarOrder) BumpScore(v Var) {
	vo.scores[v] += vo.scoreInc
	if vo.pos[v] != -1 {
		vo.update(vo.pos[v])
	}
	if vo.scores[v] > 1e100 {
		vo.rescale()
	}
}

func (vo *VarOrder) rescale() {
	vo.scoreInc *= 1e-100
	for v := range vo.scores {
		vo.scores[v] *= 1e-100
	}
	// Relative order is unchanged by a uniform rescale, so the heap shape
	// stays valid; no reheapify necessary.
}

// PhaseOf returns the cached last-assigned polarity of v (Unknown if v has
// never been assigned).
func (vo *VarOrder) PhaseOf(v Var) LBool {
	return vo.phases[v]
}

// Rebuild discards the heap and reinserts exactly the given variables, used
// by simplify() to drop stale entries for now-fixed or released variables.
func (vo *VarOrder) Rebuild(vars []Var) {
	for _, v := range vo.heap {
		vo.pos[v] = -1
	}
	vo.heap = vo.heap[:0]
	for _, v := range vars {
		vo.insert(v)
	}
}

// Len returns the number of variables currently in the heap.
func (vo *VarOrder) Len() int {
	return len(vo.heap)
}

// At returns the variable stored at heap array position idx, without
// regard for heap order. Used only to sample a uniformly random heap member
// for the random-decision path; the caller must still remove it via
// RemoveAt if it ends up being used.
func (vo *VarOrder) At(idx int) Var {
	return vo.heap[idx]
}

// Pop removes and returns the highest-activity variable.
func (vo *VarOrder) Pop() (Var, bool) {
	return vo.pop()
}

// Remove extracts v from the heap if it is currently a member; a no-op
// otherwise. Used when a variable is barred from future decisions
// (SetDecisionVar(v, false)) while still unassigned.
func (vo *VarOrder) Remove(v Var) {
	if vo.pos[v] != -1 {
		vo.RemoveAt(vo.pos[v])
	}
}

// RemoveAt extracts the variable at heap array position idx, restoring the
// heap invariant. Used after a random-decision pick, so the chosen variable
// does not linger in the heap under a stale pos[] entry.
func (vo *VarOrder) RemoveAt(idx int) {
	v := vo.heap[idx]
	last := len(vo.heap) - 1
	vo.heap[idx] = vo.heap[last]
	vo.pos[vo.heap[idx]] = idx
	vo.heap = vo.heap[:last]
	vo.pos[v] = -1
	if idx < len(vo.heap) {
		if !vo.siftUp(idx) {
			vo.siftDown(idx)
		}
	}
}

func (vo *VarOrder) pop() (Var, bool) {
	if len(vo.heap) == 0 {
		return 0, false
	}
	top := vo.heap[0]
	last := len(vo.heap) - 1
	vo.heap[0] = vo.heap[last]
	vo.pos[vo.heap[0]] = 0
	vo.heap = vo.heap[:last]
	vo.pos[top] = -1
	if len(vo.heap) > 0 {
		vo.siftDown(0)
	}
	return top, true
}

// update restores the heap invariant around a variable whose score just
// changed; exactly one of siftUp/siftDown will actually move it.
func (vo *VarOrder) update(idx int) {
	if !vo.siftUp(idx) {
		vo.siftDown(idx)
	}
}

// less implements the spec's comparator: higher activity first, ties broken
// by lower variable index. NaN activity is a programmer error, not a value
// the heap can order, and is fatal.
func (vo *VarOrder) less(a, b Var) bool {
	sa, sb := vo.scores[a], vo.scores[b]
	if sa != sb {
		if math.IsNaN(sa) || math.IsNaN(sb) {
			logFatal("sat: NaN activity comparing variables %d and %d", a, b)
		}
		return sa > sb
	}
	return a < b
}

func (vo *VarOrder) swap(i, j int) {
	vo.heap[i], vo.heap[j] = vo.heap[j], vo.heap[i]
	vo.pos[vo.heap[i]] = i
	vo.pos[vo.heap[j]] = j
}

func (vo *VarOrder) siftUp(i int) bool {
	moved := false
	for i > 0 {
		parent := (i - 1) / 2
		if !vo.less(vo.heap[i], vo.heap[parent]) {
			break
		}
		vo.swap(i, parent)
		i = parent
		moved = true
	}
	return moved
}

func (vo *VarOrder) siftDown(i int) bool {
	moved := false
	n := len(vo.heap)
	for {
		l, r := 2*i+1, 2*i+2
		smallest := i
		if l < n && vo.less(vo.heap[l], vo.heap[smallest]) {
			smallest = l
		}
		if r < n && vo.less(vo.heap[r], vo.heap[smallest]) {
			smallest = r
		}
		if smallest == i {
			break
		}
		vo.swap(i, smallest)
		i = smallest
		moved = true
	}
	return moved
}
