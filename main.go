package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gocdcl/solver/internal/dimacs"
	"github.com/gocdcl/solver/internal/sat"
)

var (
	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile to cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof heap profile to memprof")
	flagGzip       = flag.Bool("gzip", false, "treat the instance file as gzip-compressed")
	flagVerbosity  = flag.Int("verbose", 1, "search progress reporting: 0 silent, 1 per restart")

	flagAssume     = flag.String("assume", "", "comma-separated DIMACS literals to assume, e.g. -assume=1,-2,3")
	flagConfBudget = flag.Int64("conf-budget", -1, "abort after this many conflicts (-1: unlimited)")
	flagPropBudget = flag.Int64("prop-budget", -1, "abort after this many propagations (-1: unlimited)")

	flagVarDecay  = flag.Float64("var-decay", sat.DefaultOptions().VarDecay, "variable activity decay factor")
	flagClaDecay  = flag.Float64("cla-decay", sat.DefaultOptions().ClauseDecay, "learnt clause activity decay factor")
	flagRandFreq  = flag.Float64("rnd-freq", sat.DefaultOptions().RandomVarFreq, "probability of a random decision")
	flagRandSeed  = flag.Float64("seed", sat.DefaultOptions().RandomSeed, "PRNG seed")
	flagCCMinMode = flag.Int("ccmin-mode", sat.DefaultOptions().CCMinMode, "clause minimization: 0 none, 1 basic, 2 deep")
	flagPhaseSave = flag.Int("phase-saving", sat.DefaultOptions().PhaseSaving, "phase saving: 0 off, 1/2 on")
	flagNoLuby    = flag.Bool("no-luby", false, "use geometric restarts instead of Luby")
	flagRndPol    = flag.Bool("rnd-pol", false, "choose random branching polarity")
)

type config struct {
	instanceFile string
	cpuProfile   bool
	memProfile   bool
	gzip         bool
	verbosity    int
	assume       []int
	confBudget   int64
	propBudget   int64
	opts         sat.Options
}

func parseAssumptions(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid assumption literal %q: %w", f, err)
		}
		if v == 0 {
			return nil, fmt.Errorf("assumption literal cannot be 0")
		}
		out = append(out, v)
	}
	return out, nil
}

func parseConfig() (*config, error) {
	flag.Parse()
	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}

	assume, err := parseAssumptions(*flagAssume)
	if err != nil {
		return nil, err
	}

	opts := sat.DefaultOptions()
	opts.VarDecay = *flagVarDecay
	opts.ClauseDecay = *flagClaDecay
	opts.RandomVarFreq = *flagRandFreq
	opts.RandomSeed = *flagRandSeed
	opts.CCMinMode = *flagCCMinMode
	opts.PhaseSaving = *flagPhaseSave
	opts.LubyRestart = !*flagNoLuby
	opts.RndPol = *flagRndPol

	return &config{
		instanceFile: flag.Arg(0),
		cpuProfile:   *flagCPUProfile,
		memProfile:   *flagMemProfile,
		gzip:         *flagGzip,
		verbosity:    *flagVerbosity,
		assume:       assume,
		confBudget:   *flagConfBudget,
		propBudget:   *flagPropBudget,
		opts:         opts,
	}, nil
}

// assumptionLiterals converts 1-indexed signed DIMACS literals into sat.Lit,
// failing if any refers to a variable the instance never declared.
func assumptionLiterals(raw []int, nVars int) ([]sat.Lit, error) {
	lits := make([]sat.Lit, len(raw))
	for i, v := range raw {
		variable := v - 1
		if v < 0 {
			variable = -v - 1
		}
		if variable < 0 || variable >= nVars {
			return nil, fmt.Errorf("assumption literal %d refers to an undeclared variable", v)
		}
		if v < 0 {
			lits[i] = sat.NegativeLiteral(sat.Var(variable))
		} else {
			lits[i] = sat.PositiveLiteral(sat.Var(variable))
		}
	}
	return lits, nil
}

// watchInterrupt arranges for s.Interrupt() to be called on SIGINT/SIGTERM,
// the cooperative concurrency model SolveLimited relies on to abort a search
// already in progress: the signal handler is the only extra goroutine in the
// process.
func watchInterrupt(s *sat.Solver) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			s.Interrupt()
		case <-done:
		}
	}()
	return func() {
		close(done)
		signal.Stop(ch)
	}
}

func run(cfg *config) error {
	s := sat.NewSolver(cfg.opts)
	s.EnableStats(os.Stdout, cfg.verbosity)

	if err := dimacs.LoadDIMACS(cfg.instanceFile, cfg.gzip, s); err != nil {
		return fmt.Errorf("could not load instance: %w", err)
	}

	assumptions, err := assumptionLiterals(cfg.assume, s.NumVariables())
	if err != nil {
		return err
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	s.SetConfBudget(cfg.confBudget)
	s.SetPropBudget(cfg.propBudget)
	stopWatching := watchInterrupt(s)
	defer stopWatching()

	start := time.Now()
	status := s.SolveLimited(assumptions)
	elapsed := time.Since(start)

	stats := s.Stats()
	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", stats.Conflicts, float64(stats.Conflicts)/elapsed.Seconds())
	fmt.Printf("c decisions:  %d\n", stats.Decisions)
	fmt.Printf("c status:     %s\n", status)

	if status == sat.True {
		printModel(s)
	} else if status == sat.False && len(assumptions) > 0 {
		fmt.Printf("c conflict:   %v\n", s.ConflictClause())
	}

	return nil
}

func printModel(s *sat.Solver) {
	model := s.Model()
	fmt.Print("v")
	for v, val := range model {
		lit := v + 1
		if val == sat.False {
			lit = -lit
		}
		fmt.Printf(" %d", lit)
	}
	fmt.Println(" 0")
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
