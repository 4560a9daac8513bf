package lattice

// Outcomes records which directions of a conditional may be taken.
type Outcomes struct {
	onTrue  bool
	onFalse bool
}

func (elementFactory) Outcomes(onTrue, onFalse bool) Outcomes {
	return Outcomes{onTrue, onFalse}
}

func (Outcomes) Lattice() *OutcomesLattice {
	return outcomesLattice
}

// May reports the feasibility of the given direction.
func (e Outcomes) May(branch bool) bool {
	if branch {
		return e.onTrue
	}
	return e.onFalse
}

func (e Outcomes) String() string {
	str := "{"
	if e.onTrue {
		str += colorize.Key("T")
	}
	if e.onFalse {
		if e.onTrue {
			str += ", "
		}
		str += colorize.Key("F")
	}
	return str + "}"
}

func (e1 Outcomes) Eq(e2 Outcomes) bool {
	return e1 == e2
}

func (e1 Outcomes) Leq(e2 Outcomes) bool {
	return (!e1.onTrue || e2.onTrue) && (!e1.onFalse || e2.onFalse)
}

func (e1 Outcomes) Join(e2 Outcomes) Outcomes {
	return Outcomes{e1.onTrue || e2.onTrue, e1.onFalse || e2.onFalse}
}

// OutcomesLattice is the powerset lattice of branch directions.
type OutcomesLattice struct{}

var outcomesLattice = &OutcomesLattice{}

func (latticeFactory) Outcomes() *OutcomesLattice {
	return outcomesLattice
}

func (*OutcomesLattice) String() string {
	return colorize.Lattice("Outcomes")
}

func (*OutcomesLattice) Top() Outcomes {
	return Outcomes{true, true}
}

func (*OutcomesLattice) Bot() Outcomes {
	return Outcomes{}
}
