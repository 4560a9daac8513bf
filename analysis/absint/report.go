package absint

import (
	"fmt"
	"io"
	"strings"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"

	"github.com/fatih/color"
	"golang.org/x/exp/slices"
)

var colorize = struct {
	Header func(...interface{}) string
	Name   func(...interface{}) string
}{
	Header: color.New(color.FgHiMagenta).SprintFunc(),
	Name:   color.New(color.Bold).SprintFunc(),
}

// blockHeader numbers the visits of a function's blocks from 1, in the
// order they are made.
func blockHeader(visit int) string {
	return colorize.Header(fmt.Sprintf("Block %d:", visit))
}

// integerSlots lists the named integer slots bound in s.
func integerSlots[E L.Element[E]](fun *ir.Function, s State[E]) (slots []*ir.Value, values []E) {
	named, elems := s.Named(fun)
	for i, slot := range named {
		if slot.Integer {
			slots = append(slots, slot)
			values = append(values, elems[i])
		}
	}
	return
}

func printIntervals(out io.Writer, fun *ir.Function, s IntervalState) {
	slots, values := integerSlots(fun, s)
	for i, slot := range slots {
		fmt.Fprintf(out, "%s: %s\n", colorize.Name(slot.Name), values[i])
	}
}

type intervalReporter struct {
	fun *ir.Function
	out io.Writer
}

func (r intervalReporter) Block(visit int, _ *ir.Block, in, out IntervalState) {
	fmt.Fprintln(r.out, blockHeader(visit))
	fmt.Fprintln(r.out, colorize.Header("=========== Old Interval Map ==========="))
	printIntervals(r.out, r.fun, in)
	fmt.Fprintln(r.out, colorize.Header("=========== New Interval Map ==========="))
	printIntervals(r.out, r.fun, out)
}

func (intervalReporter) Exit(*ir.Block, IntervalState) {}

func (r intervalReporter) Final(s IntervalState, ok bool) {
	fmt.Fprintln(r.out, colorize.Header("=========== Final Result ==========="))
	if ok {
		printIntervals(r.out, r.fun, s)
	}
}

// separationReporter prints the separation of every pair of named variables
// with a known value.
type separationReporter[E L.Element[E]] struct {
	fun *ir.Function
	out io.Writer
	// Renders the separation of two values, if known.
	sep func(a, b E) (string, bool)
}

func (r separationReporter[E]) Block(visit int, _ *ir.Block, _, out State[E]) {
	fmt.Fprintln(r.out, blockHeader(visit))
	slots, values := integerSlots(r.fun, out)
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			if d, ok := r.sep(values[i], values[j]); ok {
				fmt.Fprintf(r.out, "sep(%s, %s) = %s\n",
					colorize.Name(slots[i].Name), colorize.Name(slots[j].Name), d)
			}
		}
	}
}

func (separationReporter[E]) Exit(*ir.Block, State[E]) {}

func exactSeparation(a, b L.Constant) (string, bool) {
	x, ok1 := a.Value()
	y, ok2 := b.Value()
	if !ok1 || !ok2 {
		return "", false
	}
	return fmt.Sprint(separation(x, y)), true
}

func intervalSeparation(a, b L.Interval) (string, bool) {
	if a.IsBot() || b.IsBot() {
		return "", false
	}
	return a.Distance(b).String(), true
}

// taintReporter prints the named variables tainted after each block and at
// the exits.
type taintReporter struct {
	fun *ir.Function
	out io.Writer
}

func (r taintReporter) names(s TaintState) string {
	slots, values := s.Named(r.fun)
	names := make([]string, 0, len(slots))
	for i, slot := range slots {
		// Shadowed variables share a name.
		if name := colorize.Name(slot.Name); bool(values[i]) && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

func (r taintReporter) Block(visit int, _ *ir.Block, _, out TaintState) {
	fmt.Fprintln(r.out, blockHeader(visit), r.names(out))
}

func (r taintReporter) Exit(_ *ir.Block, out TaintState) {
	fmt.Fprintln(r.out, "Tainted Variables:", r.names(out))
}
