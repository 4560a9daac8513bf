package absint

import (
	"io"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"
	"github.com/cs-au-dk/absint/utils"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Domain instantiates the engine for one lattice.
type Domain[E L.Element[E]] interface {
	// Initial is the state at the entry of the function.
	Initial(fun *ir.Function) State[E]
	// Transfer computes the effect of a non-terminator instruction.
	Transfer(fun *ir.Function, v *ir.Value, s State[E]) (State[E], error)
}

// Refiner is implemented by domains that sharpen the state along the
// directions of a conditional branch. Refine reports false for an
// infeasible direction.
type Refiner[E L.Element[E]] interface {
	Refine(fun *ir.Function, blk *ir.Block, s State[E], branch bool) (State[E], bool)
}

// Widener is implemented by domains whose lattice has infinite chains.
type Widener[E L.Element[E]] interface {
	Widen(prev, next State[E]) State[E]
	Narrow(prev, next State[E]) State[E]
}

// Observer is notified of the progress of the engine.
type Observer[E L.Element[E]] interface {
	// Block is called after every block visit. visit is the number of visits
	// so far, including this one.
	Block(visit int, blk *ir.Block, in, out State[E])
	// Exit is called with the state at the end of a path reaching an exit
	// block.
	Exit(blk *ir.Block, out State[E])
}

// Engine runs a domain over the control-flow graph of a function.
type Engine[E L.Element[E]] struct {
	Fun      *ir.Function
	Domain   Domain[E]
	Config   utils.Config
	Observer Observer[E]
	// Receives the messages of the fixed-point iteration.
	Out io.Writer
}

type edge[E L.Element[E]] struct {
	to    ir.BlockID
	state State[E]
}

func (e *Engine[E]) out() io.Writer {
	if e.Out == nil {
		return io.Discard
	}
	return e.Out
}

func (e *Engine[E]) observeBlock(visit int, blk *ir.Block, in, out State[E]) {
	if e.Observer != nil {
		e.Observer.Block(visit, blk, in, out)
	}
}

func (e *Engine[E]) observeExit(blk *ir.Block, out State[E]) {
	if e.Observer != nil {
		e.Observer.Exit(blk, out)
	}
}

// ceilingReached checks the global visit ceiling.
func (e *Engine[E]) ceilingReached(visits int) bool {
	if ceiling := e.Config.MaxBlockVisits; ceiling > 0 && visits >= ceiling {
		log.Debugf("Stopping after %d block visits", visits)
		return true
	}
	return false
}

// transferBlock runs the transfer function over the instructions of blk,
// terminator excluded.
func (e *Engine[E]) transferBlock(blk *ir.Block, s State[E]) (State[E], error) {
	for _, id := range blk.Instrs {
		v := e.Fun.Value(id)
		if v.Kind.IsTerminator() {
			continue
		}

		var err error
		if s, err = e.Domain.Transfer(e.Fun, v, s); err != nil {
			return s, errors.Wrapf(err, "%s", v)
		}
	}
	return s, nil
}

// successors computes the states flowing along the feasible out-edges of blk.
func (e *Engine[E]) successors(blk *ir.Block, s State[E]) []edge[E] {
	refiner, canRefine := e.Domain.(Refiner[E])
	if !canRefine || e.Fun.Value(blk.Terminator()).Kind != ir.KindIf {
		succs := make([]edge[E], 0, len(blk.Succs))
		for _, succ := range blk.Succs {
			succs = append(succs, edge[E]{succ, s})
		}
		return succs
	}

	var succs []edge[E]
	for i, succ := range blk.Succs {
		branch := i == 0
		if next, feasible := refiner.Refine(e.Fun, blk, s, branch); feasible {
			succs = append(succs, edge[E]{succ, next})
		} else {
			log.Debugf("Block %d: branch %v to block %d is infeasible", blk.ID, branch, succ)
		}
	}
	return succs
}

// joinAll joins a non-empty list of states.
func joinAll[E L.Element[E]](states []State[E]) State[E] {
	res := states[0]
	for _, s := range states[1:] {
		res = res.Join(s)
	}
	return res
}
