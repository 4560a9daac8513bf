package absint

import (
	"go/token"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"

	log "github.com/sirupsen/logrus"
)

func atLeast(n int) L.Interval {
	return L.Elements().Interval(L.FiniteBound(n), L.PlusInfinity{})
}

func atMost(n int) L.Interval {
	return L.Elements().Interval(L.MinusInfinity{}, L.FiniteBound(n))
}

// restrict intersects the range of x - y with the values satisfying x op y,
// or its negation if branch is false.
func restrict(op token.Token, branch bool, diff L.Interval) L.Interval {
	if !branch {
		switch op {
		case token.GTR:
			op = token.LEQ
		case token.GEQ:
			op = token.LSS
		case token.LSS:
			op = token.GEQ
		case token.LEQ:
			op = token.GTR
		case token.EQL:
			op = token.NEQ
		case token.NEQ:
			op = token.EQL
		}
	}

	switch op {
	case token.GTR:
		return diff.Meet(atLeast(1))
	case token.GEQ:
		return diff.Meet(atLeast(0))
	case token.LSS:
		return diff.Meet(atMost(-1))
	case token.LEQ:
		return diff.Meet(atMost(0))
	case token.EQL:
		return diff.Meet(L.Elements().IntervalPoint(0))
	case token.NEQ:
		return diff.Without(0)
	}
	return diff
}

// refinement narrows the values of a state. It becomes infeasible once a
// value is refined to ⊥.
type refinement struct {
	fun      *ir.Function
	s        IntervalState
	feasible bool
}

func (r *refinement) get(id ir.ValueID) L.Interval {
	return intervalDomain{}.eval(r.fun, r.s, id)
}

// narrow intersects the value of id with e. Constants are only checked for
// consistency.
func (r *refinement) narrow(id ir.ValueID, e L.Interval) {
	if v := r.fun.Value(id); v.IsIntConst() {
		if !e.Contains(v.Const) {
			r.feasible = false
		}
		return
	}

	res := r.get(id).Meet(e)
	if res.IsBot() {
		r.feasible = false
	}
	r.s = r.s.Update(id, res)
}

// Refine walks blk backwards from its conditional terminator, narrowing the
// operands of the branch condition and the values they were computed from.
// The walk stops at the first instruction it cannot invert.
func (intervalDomain) Refine(fun *ir.Function, blk *ir.Block, s IntervalState, branch bool) (IntervalState, bool) {
	cond := fun.Value(fun.Value(blk.Terminator()).Operands[0])
	if cond.Kind != ir.KindCompare {
		return s, true
	}
	if outcomes, found := s.Outcome(cond.ID); found && !outcomes.May(branch) {
		return s, false
	}

	r := &refinement{fun: fun, s: s, feasible: true}

walk:
	for i := len(blk.Instrs) - 2; i >= 0 && r.feasible; i-- {
		v := fun.Instr(blk, i)
		switch v.Kind {
		case ir.KindCompare:
			if v.ID != cond.ID {
				continue
			}
			diff := restrict(v.Op, branch, r.get(v.ID))
			if diff.IsBot() {
				return s, false
			}
			r.s = r.s.Update(v.ID, diff)
			x, y := v.Operands[0], v.Operands[1]
			r.narrow(x, diff.Plus(r.get(y)))
			r.narrow(y, r.get(x).Minus(diff))
		case ir.KindLoad:
			if res, found := r.s.Get(v.ID); found {
				r.narrow(v.Operands[0], res)
			}
		case ir.KindBinOp:
			res, found := r.s.Get(v.ID)
			if !found {
				break walk
			}
			x, y := v.Operands[0], v.Operands[1]
			switch v.Op {
			case token.ADD:
				r.narrow(x, res.Minus(r.get(y)))
				r.narrow(y, res.Minus(r.get(x)))
			case token.SUB:
				r.narrow(x, res.Plus(r.get(y)))
				r.narrow(y, r.get(x).Minus(res))
			case token.MUL, token.REM:
				log.Debugf("Block %d: refinement through %s is not supported", blk.ID, v.Op)
				break walk
			default:
				break walk
			}
		case ir.KindConvert:
			if res, found := r.s.Get(v.ID); found {
				r.narrow(v.Operands[0], res)
			}
		default:
			break walk
		}
	}

	return r.s, r.feasible
}
