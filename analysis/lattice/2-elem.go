package lattice

// TwoElement is an element of the lattice false ⊑ true.
type TwoElement bool

func (elementFactory) TwoElement(b bool) TwoElement {
	return TwoElement(b)
}

func (TwoElement) Lattice() *TwoElementLattice {
	return twoElemLattice
}

func (e TwoElement) String() string {
	if e {
		return colorize.Element("⊤")
	}
	return colorize.Element("⊥")
}

func (e1 TwoElement) Eq(e2 TwoElement) bool {
	return e1 == e2
}

func (e1 TwoElement) Leq(e2 TwoElement) bool {
	return !bool(e1) || bool(e2)
}

func (e1 TwoElement) Join(e2 TwoElement) TwoElement {
	return e1 || e2
}

// TwoElementLattice is the two-point lattice.
type TwoElementLattice struct{}

var twoElemLattice = &TwoElementLattice{}

func (latticeFactory) TwoElement() *TwoElementLattice {
	return twoElemLattice
}

func (*TwoElementLattice) String() string {
	return colorize.Lattice("2")
}

func (*TwoElementLattice) Top() TwoElement {
	return true
}

func (*TwoElementLattice) Bot() TwoElement {
	return false
}
