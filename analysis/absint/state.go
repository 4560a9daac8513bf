package absint

import (
	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"
)

// State is the abstract state of one program point: an abstract value per
// tracked IR value, and the feasible directions of the comparisons evaluated
// so far on the path. States are persistent, so that successors may share
// their predecessor's state.
type State[E L.Element[E]] struct {
	values   L.Map[ir.ValueID, E]
	outcomes L.Map[ir.ValueID, L.Outcomes]
}

func NewState[E L.Element[E]]() State[E] {
	return State[E]{
		values:   L.MakeMap[ir.ValueID, E](),
		outcomes: L.MakeMap[ir.ValueID, L.Outcomes](),
	}
}

// Get retrieves the abstract value of a tracked value.
func (s State[E]) Get(id ir.ValueID) (E, bool) {
	return s.values.Get(id)
}

func (s State[E]) Update(id ir.ValueID, e E) State[E] {
	s.values = s.values.Update(id, e)
	return s
}

// Remove stops tracking a value.
func (s State[E]) Remove(id ir.ValueID) State[E] {
	s.values = s.values.Remove(id)
	return s
}

func (s State[E]) Values() L.Map[ir.ValueID, E] {
	return s.values
}

// Outcome retrieves the feasible directions of a comparison.
func (s State[E]) Outcome(id ir.ValueID) (L.Outcomes, bool) {
	return s.outcomes.Get(id)
}

func (s State[E]) SetOutcome(id ir.ValueID, o L.Outcomes) State[E] {
	s.outcomes = s.outcomes.Update(id, o)
	return s
}

func (s1 State[E]) Eq(s2 State[E]) bool {
	return s1.values.Eq(s2.values) && s1.outcomes.Eq(s2.outcomes)
}

// Join merges two states pointwise.
func (s1 State[E]) Join(s2 State[E]) State[E] {
	return State[E]{
		values:   s1.values.Join(s2.values),
		outcomes: s1.outcomes.Join(s2.outcomes),
	}
}

// MapValues replaces the value map of the state.
func (s State[E]) MapValues(f func(L.Map[ir.ValueID, E]) L.Map[ir.ValueID, E]) State[E] {
	s.values = f(s.values)
	return s
}

func (s State[E]) String() string {
	return s.values.String()
}

// Describe prints the bindings of the named slots of fun.
func (s State[E]) Describe(fun *ir.Function) string {
	return s.values.StringFiltered(func(id ir.ValueID, _ E) bool {
		return fun.Value(id).IsNamed()
	}, func(id ir.ValueID) string {
		return fun.Value(id).Name
	})
}

// Named lists the allocation slots of fun bound in s, in handle order.
func (s State[E]) Named(fun *ir.Function) (slots []*ir.Value, values []E) {
	for _, slot := range fun.NamedSlots() {
		if e, found := s.Get(slot.ID); found {
			slots = append(slots, slot)
			values = append(values, e)
		}
	}
	return
}
