package absint

import (
	"go/token"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"

	"github.com/pkg/errors"
)

var constants = L.Create().Lattice().Constant()

// ConstantState maps values to the integer they hold exactly.
type ConstantState = State[L.Constant]

// constantDomain tracks exact integer values. Slots start out as ⊥, the
// value of a variable that has not been assigned.
type constantDomain struct{}

func (constantDomain) Initial(*ir.Function) ConstantState {
	return NewState[L.Constant]()
}

func (constantDomain) eval(fun *ir.Function, s ConstantState, id ir.ValueID) L.Constant {
	if v := fun.Value(id); v.IsIntConst() {
		return L.Elements().Constant(v.Const)
	}
	if e, found := s.Get(id); found {
		return e
	}
	return constants.Top()
}

func (d constantDomain) Transfer(fun *ir.Function, v *ir.Value, s ConstantState) (ConstantState, error) {
	switch v.Kind {
	case ir.KindAlloc:
		return s.Update(v.ID, constants.Bot()), nil
	case ir.KindLoad, ir.KindConvert:
		return s.Update(v.ID, d.eval(fun, s, v.Operands[0])), nil
	case ir.KindStore:
		slot, val := v.Operands[0], v.Operands[1]
		if !fun.Value(slot).Integer {
			return s.Update(slot, constants.Top()), nil
		}
		return s.Update(slot, d.eval(fun, s, val)), nil
	case ir.KindBinOp:
		res, err := fold(v.Op, d.eval(fun, s, v.Operands[0]), d.eval(fun, s, v.Operands[1]))
		if err != nil {
			return s, err
		}
		return s.Update(v.ID, res), nil
	}
	return s, nil
}

// fold evaluates a binary operation over exact values, with the wrap-around
// semantics of machine integers.
func fold(op token.Token, x, y L.Constant) (L.Constant, error) {
	switch op {
	case token.ADD, token.SUB, token.MUL, token.REM:
	default:
		return x, errors.Wrapf(ErrUndefinedOperation, "%s", op)
	}

	switch {
	case x.IsBot() || y.IsBot():
		return x, ErrUninitialized
	case x.IsTop() || y.IsTop():
		return constants.Top(), nil
	}

	a, _ := x.Value()
	b, _ := y.Value()
	k := L.Elements().Constant
	switch op {
	case token.ADD:
		return k(a + b), nil
	case token.SUB:
		return k(a - b), nil
	case token.MUL:
		return k(a * b), nil
	}
	if b == 0 {
		return x, ErrRemainderByZero
	}
	return k(a % b), nil
}

// separation is |a - b|, computed without overflow.
func separation(a, b int) uint64 {
	if a < b {
		a, b = b, a
	}
	return uint64(a) - uint64(b)
}
