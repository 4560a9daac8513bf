package lattice

// ConstantLattice is the flat lattice over integers.
type ConstantLattice struct{}

// constantLattice is a singleton instantiation of the flat constant lattice.
var constantLattice = &ConstantLattice{}

func (latticeFactory) Constant() *ConstantLattice {
	return constantLattice
}

func (*ConstantLattice) String() string {
	return colorize.Lattice("Constant")
}

func (*ConstantLattice) Top() Constant {
	return Constant{kind: constTop}
}

func (*ConstantLattice) Bot() Constant {
	return Constant{kind: constBot}
}
