// Package absint implements intraprocedural abstract interpretation over the
// control-flow graph of a function: exact-value separation, interval and
// taint analyses, each with a variant tailored to loops.
package absint

import (
	"fmt"
	"io"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"
	"github.com/cs-au-dk/absint/utils"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Analysis runs over a function, writing its report to out.
type Analysis func(fun *ir.Function, cfg utils.Config, out io.Writer) error

var analyses = map[string]Analysis{
	"separation":      Separation,
	"separation-loop": SeparationLoop,
	"interval":        Interval,
	"interval-loop":   IntervalLoop,
	"taint":           Taint,
	"taint-loop":      TaintLoop,
}

// Lookup finds an analysis by its task name.
func Lookup(name string) (Analysis, bool) {
	a, ok := analyses[name]
	return a, ok
}

// Names lists the task names of the analyses.
func Names() []string {
	names := maps.Keys(analyses)
	slices.Sort(names)
	return names
}

// Run analyzes the functions one after another.
func Run(analysis Analysis, funs []*ir.Function, cfg utils.Config, out io.Writer) error {
	for _, fun := range funs {
		fmt.Fprintln(out, "Analyzing function", fun.Name)
		if err := analysis(fun, cfg, out); err != nil {
			return errors.Wrapf(err, "analyzing %s", fun.Name)
		}
	}
	return nil
}

// Separation tracks exact values and reports, after every block, the
// distance between each pair of named variables.
func Separation(fun *ir.Function, cfg utils.Config, out io.Writer) error {
	e := &Engine[L.Constant]{
		Fun:    fun,
		Domain: constantDomain{},
		Config: cfg,
		Observer: separationReporter[L.Constant]{
			fun: fun,
			out: out,
			sep: exactSeparation,
		},
	}
	_, err := e.Explore(Policies[L.Constant]{
		Repeat[L.Constant]{Limit: cfg.FixedPointRepeats},
		PathBound[L.Constant](cfg.MaxPathLength),
	})
	return err
}

// SeparationLoop reports separations over intervals. Slots that grow by a
// constant step when stored to are widened, and a path stops once the state
// it carries stops changing. Branch conditions are not evaluated: both
// successors of a branch are always followed.
func SeparationLoop(fun *ir.Function, cfg utils.Config, out io.Writer) error {
	e := &Engine[L.Interval]{
		Fun:    fun,
		Domain: growthDomain{intervalDomain{growth: true}},
		Config: cfg,
		Observer: separationReporter[L.Interval]{
			fun: fun,
			out: out,
			sep: intervalSeparation,
		},
	}
	_, err := e.Explore(Policies[L.Interval]{
		Repeat[L.Interval]{Limit: cfg.FixedPointRepeats, Out: out},
		PathBound[L.Interval](cfg.MaxPathLength),
	})
	return err
}

// Interval explores every feasible path until the visit ceiling, and joins
// the states at the exits.
func Interval(fun *ir.Function, cfg utils.Config, out io.Writer) error {
	reporter := intervalReporter{fun, out}
	e := &Engine[L.Interval]{
		Fun:      fun,
		Domain:   intervalDomain{},
		Config:   cfg,
		Observer: reporter,
	}
	res, err := e.Explore(nil)
	if err != nil {
		return err
	}
	reporter.Final(res.Final())
	return nil
}

// IntervalLoop computes intervals up to a fixed point, widening and then
// narrowing at loops.
func IntervalLoop(fun *ir.Function, cfg utils.Config, out io.Writer) error {
	reporter := intervalReporter{fun, out}
	e := &Engine[L.Interval]{
		Fun:      fun,
		Domain:   intervalDomain{},
		Config:   cfg,
		Observer: reporter,
		Out:      out,
	}
	sol, err := e.Fixpoint()
	if err != nil {
		return err
	}
	reporter.Final(sol.Final(fun))
	return nil
}

// Taint reports the tainted variables along every path, up to the path
// bound.
func Taint(fun *ir.Function, cfg utils.Config, out io.Writer) error {
	e := &Engine[L.TwoElement]{
		Fun:      fun,
		Domain:   taintDomain{cfg.SourcePrefix},
		Config:   cfg,
		Observer: taintReporter{fun, out},
	}
	_, err := e.Explore(PathBound[L.TwoElement](cfg.MaxPathLength))
	return err
}

// TaintLoop is Taint where a block is not expanded again with an incoming
// taint set it was already expanded with.
func TaintLoop(fun *ir.Function, cfg utils.Config, out io.Writer) error {
	fmt.Fprintln(out, "Start collecting the blocks to traverse over...")
	e := &Engine[L.TwoElement]{
		Fun:      fun,
		Domain:   taintDomain{cfg.SourcePrefix},
		Config:   cfg,
		Observer: taintReporter{fun, out},
	}
	_, err := e.Explore(NewSeenIncoming[L.TwoElement]())
	return err
}
