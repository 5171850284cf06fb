package sat

import (
	"math"
	"strings"
)

// Clause is a lightweight view into a ClauseArena: size, flags and
// literals are read and written directly through the arena's backing
// words. It is valid only between garbage collections.
type Clause struct {
	a  *ClauseArena
	cr CRef
}

func (c Clause) header() uint32 {
	return c.a.data[c.cr]
}

// Size returns the clause's current literal count.
func (c Clause) Size() int {
	return int(c.header() >> 3)
}

// Learnt reports whether the clause was learnt by conflict analysis.
func (c Clause) Learnt() bool {
	return c.header()&(1<<2) != 0
}

// Mark returns the clause's 2-bit mark (0 live, 1 removed, 2 reloced).
func (c Clause) Mark() uint8 {
	return uint8(c.header() & 0x3)
}

func (c Clause) setMark(m uint8) {
	h := c.header()
	h = (h &^ 0x3) | uint32(m&0x3)
	c.a.data[c.cr] = h
}

// Removed reports whether the clause has been logically deleted (its
// arena words are not yet reclaimed).
func (c Clause) Removed() bool {
	return c.Mark() == markRemoved
}

// Reloced reports whether the clause's header has been relocated to a new
// arena; its literal/activity words are stale.
func (c Clause) Reloced() bool {
	return c.Mark() == markReloced
}

func (c Clause) relocTarget() CRef {
	return CRef(c.a.data[c.cr+1])
}

func (c Clause) setRelocTarget(target CRef) {
	c.a.data[c.cr+1] = uint32(target)
}

// litOffset returns the arena word index of literal 0.
func (c Clause) litOffset() uint32 {
	if c.Learnt() {
		return uint32(c.cr) + 3
	}
	return uint32(c.cr) + 1
}

// Lit returns the literal at position i.
func (c Clause) Lit(i int) Lit {
	return Lit(c.a.data[c.litOffset()+uint32(i)])
}

// SetLit overwrites the literal at position i.
func (c Clause) SetLit(i int, l Lit) {
	c.a.data[c.litOffset()+uint32(i)] = uint32(l)
}

// Swap exchanges the literals at positions i and j.
func (c Clause) Swap(i, j int) {
	li, lj := c.Lit(i), c.Lit(j)
	c.SetLit(i, lj)
	c.SetLit(j, li)
}

// Activity returns the clause's learnt-clause activity (zero for input
// clauses, which have no activity field).
func (c Clause) Activity() float64 {
	if !c.Learnt() {
		return 0
	}
	lo := c.a.data[c.cr+1]
	hi := c.a.data[c.cr+2]
	return math.Float64frombits(uint64(lo) | uint64(hi)<<32)
}

// SetActivity overwrites the clause's activity. Only meaningful for
// learnt clauses.
func (c Clause) SetActivity(v float64) {
	bits := math.Float64bits(v)
	c.a.data[c.cr+1] = uint32(bits)
	c.a.data[c.cr+2] = uint32(bits >> 32)
}

func (c Clause) wordCount() int {
	return wordCount(c.Size(), c.Learnt())
}

// Shrink trims the clause down to newSize literals in place (positions
// 0..newSize-1 are kept as-is by the caller before calling Shrink). The
// trimmed tail words become wasted arena space; the caller is responsible
// for accounting them via the arena's FreeAmount.
func (c Clause) Shrink(newSize int) {
	h := c.header()
	h = (h & 0x7) | uint32(newSize)<<3
	c.a.data[c.cr] = h
}

// locked reports whether c is currently the reason for its own first
// literal's assignment, and so cannot be removed by clause DB reduction or
// GC without leaving a dangling reason pointer.
func (c Clause) locked(s *Solver) bool {
	v := c.Lit(0).VarID()
	return s.LitValue(c.Lit(0)) == True && s.vardata.Get(v).Reason == c.cr
}

// Simplify removes falsified literals and reports whether the clause is
// satisfied at the current (assumed root) assignment, in which case the
// caller should remove it entirely.
func (c Clause) Simplify(s *Solver) bool {
	size := c.Size()
	j := 0
	for i := 0; i < size; i++ {
		switch s.LitValue(c.Lit(i)) {
		case True:
			return true
		case False:
			// discard
		default:
			if j != i {
				c.SetLit(j, c.Lit(i))
			}
			j++
		}
	}
	if j != size {
		s.ca.FreeAmount(size - j)
		c.Shrink(j)
	}
	return false
}

func (c Clause) String() string {
	if c.Size() == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.Lit(0).String())
	for i := 1; i < c.Size(); i++ {
		sb.WriteByte(' ')
		sb.WriteString(c.Lit(i).String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Watcher is an entry in a literal's watch list: a clause plus a blocker
// literal, a literal of the clause that, if already true, lets BCP skip
// loading the clause entirely.
type Watcher struct {
	Cref    CRef
	Blocker Lit
}
