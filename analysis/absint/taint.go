package absint

import (
	"strings"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"
)

// TaintState binds the tainted values. Untainted values are absent.
type TaintState = State[L.TwoElement]

// taintDomain propagates taint from the slots of variables named with a
// source prefix.
type taintDomain struct {
	prefix string
}

func (taintDomain) Initial(*ir.Function) TaintState {
	return NewState[L.TwoElement]()
}

func (d taintDomain) isSource(v *ir.Value) bool {
	return v.Kind == ir.KindAlloc && v.IsNamed() && strings.HasPrefix(v.Name, d.prefix)
}

func tainted(s TaintState, id ir.ValueID) bool {
	return bool(s.Values().GetOr(id, false))
}

func (d taintDomain) Transfer(fun *ir.Function, v *ir.Value, s TaintState) (TaintState, error) {
	switch v.Kind {
	case ir.KindAlloc:
		if d.isSource(v) {
			return s.Update(v.ID, true), nil
		}
		return s.Remove(v.ID), nil
	case ir.KindStore:
		slot, val := v.Operands[0], v.Operands[1]
		switch {
		case tainted(s, val):
			return s.Update(slot, true), nil
		case d.isSource(fun.Value(slot)):
			return s, nil
		}
		return s.Remove(slot), nil
	}

	for _, op := range v.Operands {
		if tainted(s, op) {
			return s.Update(v.ID, true), nil
		}
	}
	return s.Remove(v.ID), nil
}
