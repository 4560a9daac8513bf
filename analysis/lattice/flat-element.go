package lattice

import "strconv"

type constantKind uint8

const (
	constBot constantKind = iota
	constValue
	constTop
)

// Constant is an element of the flat lattice of integer constants:
//
//	       ⊤
//	... -1 0 1 ...
//	       ⊥
//
// ⊥ stands for a variable that was not assigned yet.
type Constant struct {
	kind  constantKind
	value int
}

func (elementFactory) Constant(n int) Constant {
	return Constant{constValue, n}
}

func (Constant) Lattice() *ConstantLattice {
	return constantLattice
}

func (e Constant) IsBot() bool {
	return e.kind == constBot
}

func (e Constant) IsTop() bool {
	return e.kind == constTop
}

// Value returns the constant, if the element is one.
func (e Constant) Value() (int, bool) {
	return e.value, e.kind == constValue
}

func (e Constant) String() string {
	switch e.kind {
	case constBot:
		return colorize.Element("⊥")
	case constTop:
		return colorize.Element("⊤")
	}
	return colorize.Const(strconv.Itoa(e.value))
}

func (e1 Constant) Eq(e2 Constant) bool {
	return e1 == e2
}

func (e1 Constant) Leq(e2 Constant) bool {
	return e1.kind == constBot || e2.kind == constTop || e1 == e2
}

func (e1 Constant) Join(e2 Constant) Constant {
	switch {
	case e1.Leq(e2):
		return e2
	case e2.Leq(e1):
		return e1
	}
	return constantLattice.Top()
}
