package absint

import (
	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"
	"github.com/cs-au-dk/absint/utils"
	"github.com/cs-au-dk/absint/utils/worklist"

	"github.com/benbjohnson/immutable"
)

// Path is the metadata carried along an explored path.
type Path[E L.Element[E]] struct {
	// Number of blocks visited on the path.
	Depth int
	// Number of consecutive visits that repeated the previous visit of
	// their block.
	Repeats int
	// State each block was last left with on the path.
	last *immutable.SortedMap[ir.BlockID, State[E]]
}

// Previous is the state the path last left blk with.
func (p Path[E]) Previous(blk ir.BlockID) (s State[E], found bool) {
	if p.last == nil {
		return s, false
	}
	return p.last.Get(blk)
}

func (p *Path[E]) record(blk ir.BlockID, s State[E]) {
	if p.last == nil {
		p.last = utils.NewSortedMap[ir.BlockID, State[E]]()
	}
	p.last = p.last.Set(blk, s)
}

// Result of a path exploration.
type Result[E L.Element[E]] struct {
	// States at the end of the paths reaching an exit block.
	Exits []State[E]
	// States of the paths cut by a policy or by the visit ceiling.
	Cut []State[E]
	// Total number of block visits.
	Visits int
}

// Final joins the exit states, or the cut states if no path exited. ok is
// false if there are neither.
func (r Result[E]) Final() (s State[E], ok bool) {
	switch {
	case len(r.Exits) > 0:
		return joinAll(r.Exits), true
	case len(r.Cut) > 0:
		return joinAll(r.Cut), true
	}
	return s, false
}

type pathItem[E L.Element[E]] struct {
	blk   ir.BlockID
	state State[E]
	path  Path[E]
}

// Explore follows every path of the control-flow graph depth-first, with a
// state of its own per path. The policy decides where a path stops. A nil
// policy explores until the visit ceiling.
func (e *Engine[E]) Explore(policy Policy[E]) (res Result[E], err error) {
	W := worklist.Empty[pathItem[E]]()
	W.Add(pathItem[E]{e.Fun.Entry().ID, e.Domain.Initial(e.Fun), Path[E]{}})

	for !W.IsEmpty() {
		if e.ceilingReached(res.Visits) {
			for !W.IsEmpty() {
				res.Cut = append(res.Cut, W.Pop().state)
			}
			break
		}

		item := W.Pop()
		blk := e.Fun.Block(item.blk)
		if policy != nil && !policy.Enter(blk, item.state, item.path) {
			res.Cut = append(res.Cut, item.state)
			continue
		}

		res.Visits++
		out, err := e.transferBlock(blk, item.state)
		if err != nil {
			return res, err
		}
		e.observeBlock(res.Visits, blk, item.state, out)

		if blk.IsExit() {
			res.Exits = append(res.Exits, out)
			e.observeExit(blk, out)
			continue
		}

		path := item.path
		path.Depth++
		if policy != nil && !policy.Leave(blk, item.state, out, &path) {
			res.Cut = append(res.Cut, out)
			continue
		}
		path.record(blk.ID, out)

		// Push in reverse so that the first successor is explored first.
		succs := e.successors(blk, out)
		for i := len(succs) - 1; i >= 0; i-- {
			W.Add(pathItem[E]{succs[i].to, succs[i].state, path})
		}
	}
	return res, nil
}
