package sat

import "math"

// CRef is an opaque handle into a ClauseArena: a 32-bit word offset. It is
// stable across normal solver operation but is rewritten en masse (through a
// relocation table) whenever the arena is garbage collected; no CRef may be
// cached across a call to Solver's garbage collector.
type CRef uint32

// CRefUndef is the sentinel "no clause" handle.
const CRefUndef CRef = math.MaxUint32

// Clause mark values. Only attached, live clauses (mark 0) take part in
// propagation; mark 1 means logically removed but not yet physically
// reclaimed; mark 2 means the header has been relocated and the word at
// offset 1 holds the new CRef.
const (
	markLive    uint8 = 0
	markRemoved uint8 = 1
	markReloced uint8 = 2
)

// ClauseArena is a contiguous growable buffer of 32-bit words storing clause
// headers and literal payloads back to back. Clauses are never physically
// removed in place; Free only accounts the freed words as wasted so that
// GC can later compact the arena in one pass.
type ClauseArena struct {
	data   []uint32
	wasted int
}

// NewClauseArena returns an empty arena with room for roughly capWords
// 32-bit words before its first growth.
func NewClauseArena(capWords int) *ClauseArena {
	return &ClauseArena{data: make([]uint32, 0, capWords)}
}

// Len returns the number of words currently occupied (including wasted
// words not yet reclaimed by GC).
func (a *ClauseArena) Len() int {
	return len(a.data)
}

// Wasted returns the number of words accounted as wasted by Free and
// FreeAmount since this arena was created. A garbage collection copies live
// clauses into a fresh arena, which starts with no wasted words.
func (a *ClauseArena) Wasted() int {
	return a.wasted
}

// wordCount returns the number of words a clause of the given size and
// learnt-ness occupies: one header word, two words for the activity float
// if learnt, then size literal words.
func wordCount(size int, learnt bool) int {
	n := 1 + size
	if learnt {
		n += 2
	}
	return n
}

func packHeader(size int, learnt bool, mark uint8) uint32 {
	h := uint32(mark & 0x3)
	if learnt {
		h |= 1 << 2
	}
	h |= uint32(size) << 3
	return h
}

// Alloc reserves space for a clause with the given literals and returns its
// handle. Learnt clauses get two extra header words for an activity float,
// initialized to zero.
func (a *ClauseArena) Alloc(lits []Lit, learnt bool) CRef {
	cr := CRef(len(a.data))
	a.data = append(a.data, packHeader(len(lits), learnt, markLive))
	if learnt {
		a.data = append(a.data, 0, 0) // activity = 0.0
	}
	for _, l := range lits {
		a.data = append(a.data, uint32(l))
	}
	return cr
}

// Free marks the clause at cr as removed and accounts its words as wasted.
// It does not physically remove anything; the words are reclaimed on the
// next garbage collection.
func (a *ClauseArena) Free(cr CRef) {
	c := a.Clause(cr)
	a.wasted += c.wordCount()
	c.setMark(markRemoved)
}

// FreeAmount accounts n additional words (e.g. trimmed literal tail words
// from a clause that was shrunk in place) as wasted.
func (a *ClauseArena) FreeAmount(n int) {
	a.wasted += n
}

// Clause returns a lightweight view over the clause at cr. The view shares
// the arena's backing storage; it is valid only until the next garbage
// collection.
func (a *ClauseArena) Clause(cr CRef) Clause {
	return Clause{a: a, cr: cr}
}

// Reloc copies the clause at *cr into the destination arena, unless it was
// already relocated (by an earlier call sharing the same destination), in
// which case *cr is simply redirected to the previously copied clause.
func (a *ClauseArena) Reloc(cr *CRef, to *ClauseArena) {
	c := a.Clause(*cr)
	if c.Reloced() {
		*cr = c.relocTarget()
		return
	}

	size := c.Size()
	lits := make([]Lit, size)
	for i := 0; i < size; i++ {
		lits[i] = c.Lit(i)
	}
	learnt := c.Learnt()

	newCR := to.Alloc(lits, learnt)
	if learnt {
		to.Clause(newCR).SetActivity(c.Activity())
	}

	c.setMark(markReloced)
	c.setRelocTarget(newCR)
	*cr = newCR
}
