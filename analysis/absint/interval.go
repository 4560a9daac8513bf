package absint

import (
	"go/token"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"

	"github.com/pkg/errors"
)

var intervals = L.Create().Lattice().Interval()

// IntervalState maps values to the range of integers they may hold.
type IntervalState = State[L.Interval]

// intervalDomain is the interval domain with branch refinement. With growth
// set, storing a computed value that moves both bounds of a slot by the same
// offset widens the slot in the direction of the offset. Constants are
// stored exactly.
type intervalDomain struct {
	growth bool
}

func (intervalDomain) Initial(*ir.Function) IntervalState {
	return NewState[L.Interval]()
}

// growthDomain is the interval domain with the growth rule and without
// refinement, so that both directions of every branch are explored.
type growthDomain struct {
	intervals intervalDomain
}

func (d growthDomain) Initial(fun *ir.Function) IntervalState {
	return d.intervals.Initial(fun)
}

func (d growthDomain) Transfer(fun *ir.Function, v *ir.Value, s IntervalState) (IntervalState, error) {
	return d.intervals.Transfer(fun, v, s)
}

// eval resolves an operand: constants to their point interval, tracked values
// to their range, and anything else to ⊤.
func (intervalDomain) eval(fun *ir.Function, s IntervalState, id ir.ValueID) L.Interval {
	if v := fun.Value(id); v.IsIntConst() {
		return L.Elements().IntervalPoint(v.Const)
	}
	if e, found := s.Get(id); found {
		return e
	}
	return intervals.Top()
}

func (d intervalDomain) Transfer(fun *ir.Function, v *ir.Value, s IntervalState) (IntervalState, error) {
	switch v.Kind {
	case ir.KindAlloc:
		return s.Update(v.ID, intervals.Top()), nil
	case ir.KindLoad:
		return s.Update(v.ID, d.eval(fun, s, v.Operands[0])), nil
	case ir.KindStore:
		slot, val := v.Operands[0], v.Operands[1]
		if !fun.Value(slot).Integer {
			return s.Update(slot, intervals.Top()), nil
		}
		next := d.eval(fun, s, val)
		if d.growth && !fun.Value(val).IsIntConst() {
			if prev, found := s.Get(slot); found {
				next = grow(prev, next)
			}
		}
		return s.Update(slot, next), nil
	case ir.KindBinOp:
		x, y := d.eval(fun, s, v.Operands[0]), d.eval(fun, s, v.Operands[1])
		var res L.Interval
		switch v.Op {
		case token.ADD:
			res = x.Plus(y)
		case token.SUB:
			res = x.Minus(y)
		case token.MUL:
			res = x.Mult(y)
		case token.REM:
			var err error
			if res, err = x.Rem(y); err != nil {
				return s, err
			}
		default:
			return s, errors.Wrapf(ErrUndefinedOperation, "%s", v.Op)
		}
		return s.Update(v.ID, res), nil
	case ir.KindCompare:
		diff := d.eval(fun, s, v.Operands[0]).Minus(d.eval(fun, s, v.Operands[1]))
		outcomes, err := compareOutcomes(v.Op, diff)
		if err != nil {
			return s, err
		}
		return s.Update(v.ID, diff).SetOutcome(v.ID, outcomes), nil
	case ir.KindConvert:
		return s.Update(v.ID, d.eval(fun, s, v.Operands[0])), nil
	}
	return s, nil
}

// grow widens a slot whose finite range moves by a constant offset. A slot
// already widened by a previous step keeps its range while the stored range
// stays within it.
func grow(prev, next L.Interval) L.Interval {
	if prev.IsFinite() && next.IsFinite() {
		a, b := prev.GetFiniteBounds()
		c, d := next.GetFiniteBounds()
		switch delta := c - a; {
		case delta != d-b || delta == 0:
		case delta > 0:
			return L.Elements().Interval(prev.Low(), L.PlusInfinity{})
		default:
			return L.Elements().Interval(L.MinusInfinity{}, prev.High())
		}
		return next
	}

	if !prev.IsBot() && !prev.IsTop() && !prev.IsFinite() && next.Leq(prev) {
		return prev
	}
	return next
}

// compareOutcomes derives the feasible directions of x op y from the range
// of x - y.
func compareOutcomes(op token.Token, diff L.Interval) (L.Outcomes, error) {
	o := L.Elements().Outcomes
	switch op {
	case token.GTR:
		return o(diff.MayGt(0), diff.MayLeq(0)), nil
	case token.GEQ:
		return o(diff.MayGeq(0), diff.MayLt(0)), nil
	case token.LSS:
		return o(diff.MayLt(0), diff.MayGeq(0)), nil
	case token.LEQ:
		return o(diff.MayLeq(0), diff.MayGt(0)), nil
	case token.EQL:
		return o(diff.MayEq(0), diff.MayNeq(0)), nil
	case token.NEQ:
		return o(diff.MayNeq(0), diff.MayEq(0)), nil
	}
	return L.Outcomes{}, errors.Wrapf(ErrUndefinedComparison, "%s", op)
}

func (intervalDomain) Widen(prev, next IntervalState) IntervalState {
	return next.MapValues(func(m L.Map[ir.ValueID, L.Interval]) L.Map[ir.ValueID, L.Interval] {
		return L.WidenMap(prev.Values(), m)
	})
}

func (intervalDomain) Narrow(prev, next IntervalState) IntervalState {
	return next.MapValues(func(m L.Map[ir.ValueID, L.Interval]) L.Map[ir.ValueID, L.Interval] {
		return L.NarrowMap(prev.Values(), m)
	})
}
