// Package dimacs loads DIMACS CNF formulas directly into a solver, streaming
// clauses as they are parsed rather than building an intermediate formula
// representation.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	upstream "github.com/rhartert/dimacs"

	"github.com/gocdcl/solver/internal/sat"
)

// Solver is the subset of sat.Solver's surface LoadDIMACS needs: enough to
// allocate variables and add clauses as they stream in.
type Solver interface {
	NewVar(upol sat.LBool, dvar bool) sat.Var
	AddClause(lits []sat.Lit) bool
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file at filename and loads its formula
// into solver, allocating exactly the number of variables the problem line
// declares before the first clause is added.
func LoadDIMACS(filename string, gzipped bool, solver Solver) error {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("opening %q: %w", filename, err)
	}
	defer rc.Close()

	b := &builder{solver: solver}
	if err := upstream.ReadBuilder(rc, b); err != nil {
		return fmt.Errorf("parsing %q: %w", filename, err)
	}
	return nil
}

// builder adapts a Solver to upstream's dimacs.Builder callback interface.
type builder struct {
	solver Solver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q, want \"cnf\"", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.NewVar(sat.Unknown, true)
	}
	return nil
}

func (b *builder) Clause(rawLits []int) error {
	clause := make([]sat.Lit, len(rawLits))
	for i, l := range rawLits {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(sat.Var(-l - 1))
		} else {
			clause[i] = sat.PositiveLiteral(sat.Var(l - 1))
		}
	}
	b.solver.AddClause(clause)
	return nil
}

func (b *builder) Comment(string) error {
	return nil
}
