package absint

import (
	"fmt"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"
	"github.com/cs-au-dk/absint/utils/graph"
	"github.com/cs-au-dk/absint/utils/worklist"

	log "github.com/sirupsen/logrus"
)

// Solution of a fixed-point iteration.
type Solution[E L.Element[E]] struct {
	In, Out map[ir.BlockID]State[E]
	// States along the feasible edges.
	Edges  map[[2]ir.BlockID]State[E]
	Visits int
}

// Fixpoint computes a state per block by chaotic iteration: blocks are
// processed in FIFO order, and the incoming state of a block is the join of
// the states along its feasible in-edges. Domains implementing Widener have
// the incoming state of a block widened once it was visited
// Config.WidenAfter times, and are then narrowed by Config.NarrowPasses
// descending passes.
func (e *Engine[E]) Fixpoint() (sol Solution[E], err error) {
	sol = Solution[E]{
		In:    make(map[ir.BlockID]State[E]),
		Out:   make(map[ir.BlockID]State[E]),
		Edges: make(map[[2]ir.BlockID]State[E]),
	}

	initial := e.Domain.Initial(e.Fun)
	widener, canWiden := e.Domain.(Widener[E])
	visits := make(map[ir.BlockID]int)
	queued := make(map[ir.BlockID]bool)

	W := worklist.Empty[ir.BlockID]()
	add := func(b ir.BlockID) {
		if !queued[b] {
			queued[b] = true
			W.Add(b)
		}
	}
	add(e.Fun.Entry().ID)

	for !W.IsEmpty() {
		if e.ceilingReached(sol.Visits) {
			break
		}

		b := W.GetNext()
		queued[b] = false
		blk := e.Fun.Block(b)

		in, reached := e.incoming(blk, initial, sol.Edges)
		if !reached {
			continue
		}

		if prev, seen := sol.In[b]; seen {
			fmt.Fprintln(e.out(), "It is a loop.")
			in = prev.Join(in)
			if canWiden && visits[b] >= e.Config.WidenAfter {
				in = widener.Widen(prev, in)
				log.Debugf("Block %d: widened after %d visits to\n%s", b, visits[b], in.Describe(e.Fun))
			}
			if in.Eq(prev) {
				fmt.Fprintf(e.out(), "Reached a fixed point at block %d.\n", b)
				continue
			}
		}

		visits[b]++
		sol.Visits++
		out, err := e.visit(blk, in, &sol)
		if err != nil {
			return sol, err
		}
		e.observeBlock(sol.Visits, blk, in, out)

		for _, succ := range blk.Succs {
			if _, feasible := sol.Edges[[2]ir.BlockID{b, succ}]; feasible {
				add(succ)
			}
		}
	}

	if !canWiden {
		return sol, nil
	}

	for pass := 1; pass <= e.Config.NarrowPasses; pass++ {
		log.Debugf("Narrowing pass %d", pass)
		for _, blk := range e.Fun.Blocks {
			prev, seen := sol.In[blk.ID]
			if !seen {
				continue
			}
			in, reached := e.incoming(blk, initial, sol.Edges)
			if !reached {
				continue
			}
			if _, err := e.visit(blk, widener.Narrow(prev, in), &sol); err != nil {
				return sol, err
			}
		}
	}
	return sol, nil
}

// incoming joins the states along the feasible in-edges of blk. The entry
// block additionally receives the initial state.
func (e *Engine[E]) incoming(blk *ir.Block, initial State[E], edges map[[2]ir.BlockID]State[E]) (s State[E], reached bool) {
	if blk.ID == e.Fun.Entry().ID {
		s, reached = initial, true
	}
	for _, pred := range blk.Preds {
		if es, feasible := edges[[2]ir.BlockID{pred, blk.ID}]; feasible {
			if reached {
				s = s.Join(es)
			} else {
				s, reached = es, true
			}
		}
	}
	return
}

// visit records in as the incoming state of blk, and updates the states
// along its out-edges.
func (e *Engine[E]) visit(blk *ir.Block, in State[E], sol *Solution[E]) (State[E], error) {
	sol.In[blk.ID] = in
	out, err := e.transferBlock(blk, in)
	if err != nil {
		return out, err
	}
	sol.Out[blk.ID] = out

	for _, succ := range blk.Succs {
		delete(sol.Edges, [2]ir.BlockID{blk.ID, succ})
	}
	for _, succ := range e.successors(blk, out) {
		sol.Edges[[2]ir.BlockID{blk.ID, succ.to}] = succ.state
	}
	return out, nil
}

// Graph is the control-flow graph restricted to the feasible edges.
func (sol Solution[E]) Graph(fun *ir.Function) graph.Graph[ir.BlockID] {
	return graph.Of(func(b ir.BlockID) (succs []ir.BlockID) {
		for _, succ := range fun.Block(b).Succs {
			if _, feasible := sol.Edges[[2]ir.BlockID{b, succ}]; feasible {
				succs = append(succs, succ)
			}
		}
		return
	})
}

// Final joins the states in which the function may end: the outgoing states
// of the exit blocks, and the incoming states of the blocks of loops that are
// never left. ok is false if no block was reached.
func (sol Solution[E]) Final(fun *ir.Function) (s State[E], ok bool) {
	if _, reached := sol.In[fun.Entry().ID]; !reached {
		return s, false
	}

	scc := sol.Graph(fun).SCC([]ir.BlockID{fun.Entry().ID})
	var states []State[E]
	for _, comp := range scc.Terminal() {
		if !scc.IsCyclic(comp) {
			if out, found := sol.Out[scc.Components[comp][0]]; found {
				states = append(states, out)
			}
			continue
		}
		for _, b := range scc.Components[comp] {
			states = append(states, sol.In[b])
		}
	}
	if len(states) == 0 {
		return s, false
	}
	return joinAll(states), true
}
