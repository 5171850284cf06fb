package sat

import (
	"fmt"
	"io"
	"time"
)

// Stats is a snapshot of cumulative search counters, useful for reporting
// without scraping EnableStats output.
type Stats struct {
	Conflicts       int64
	Decisions       int64
	RandomDecisions int64
	Propagations    int64
	Restarts        int64
	Clauses         int
	Learnts         int
}

// Stats returns the solver's current cumulative counters.
func (s *Solver) Stats() Stats {
	return Stats{
		Conflicts:       s.conflicts,
		Decisions:       s.decisions,
		RandomDecisions: s.rndDecisions,
		Propagations:    s.propagations,
		Restarts:        s.starts,
		Clauses:         s.numClauses,
		Learnts:         s.numLearnts,
	}
}

// EnableStats turns on periodic search-progress reporting to w (e.g.
// os.Stderr from the CLI driver). Verbosity 0 (the default) prints nothing.
func (s *Solver) EnableStats(w io.Writer, verbosity int) {
	s.statsOut = w
	s.verbosity = verbosity
}

func (s *Solver) printSearchHeader() {
	if s.statsOut == nil || s.verbosity == 0 {
		return
	}
	fmt.Fprintln(s.statsOut, "c            time      restarts      conflicts       learnts    avg-lrnt-sz")
}

func (s *Solver) printSearchStats() {
	if s.statsOut == nil || s.verbosity == 0 {
		return
	}
	fmt.Fprintf(s.statsOut, "c %14s %14d %14d %14d %14.1f\n",
		time.Since(s.startTime).Round(time.Millisecond),
		s.starts,
		s.conflicts,
		len(s.learnts),
		s.avgLearntSize.Val())
}
