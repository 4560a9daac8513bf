package lattice

// IntervalLattice is the lattice of integer intervals with infinite bounds.
type IntervalLattice struct{}

// intervalLattice is a singleton instantiation of the interval lattice.
var intervalLattice = &IntervalLattice{}

func (latticeFactory) Interval() *IntervalLattice {
	return intervalLattice
}

func (*IntervalLattice) String() string {
	return colorize.Lattice("Interval")
}

// Top is [-∞, ∞].
func (*IntervalLattice) Top() Interval {
	return Interval{MinusInfinity{}, PlusInfinity{}}
}

// Bot is the empty interval.
func (*IntervalLattice) Bot() Interval {
	return Interval{PlusInfinity{}, MinusInfinity{}}
}
