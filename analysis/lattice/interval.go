package lattice

// Interval is an element of the interval lattice. Bounds are inclusive. The
// empty interval is represented by the inverted bounds [∞, -∞].
type Interval struct {
	low  IntervalBound
	high IntervalBound
}

// Interval creates an interval element from the given bounds. Bounds
// describing an empty range produce ⊥.
func (elementFactory) Interval(low IntervalBound, high IntervalBound) Interval {
	if low.Gt(high) {
		return intervalLattice.Bot()
	}
	return Interval{low, high}
}

// IntervalFinite creates an interval element from the given finite bounds.
func (elementFactory) IntervalFinite(low int, high int) Interval {
	return elFact.Interval(FiniteBound(low), FiniteBound(high))
}

// IntervalPoint creates the singleton interval [n, n].
func (elementFactory) IntervalPoint(n int) Interval {
	return Interval{FiniteBound(n), FiniteBound(n)}
}

// Lattice returns the interval lattice.
func (Interval) Lattice() *IntervalLattice {
	return intervalLattice
}

func (e Interval) String() string {
	if e.IsBot() {
		return colorize.Element("⊥")
	}
	return "[" + e.low.String() + ", " + e.high.String() + "]"
}

// IsBot checks whether the interval is empty.
func (e Interval) IsBot() bool {
	return e.low == nil || e.low.Gt(e.high)
}

// IsTop checks whether the interval is [-∞, ∞].
func (e Interval) IsTop() bool {
	return e.low == MinusInfinity{} && e.high == PlusInfinity{}
}

// IsFinite holds for non-empty intervals with two finite bounds.
func (e Interval) IsFinite() bool {
	return !e.IsBot() && !e.low.IsInfinite() && !e.high.IsInfinite()
}

// IsPoint holds for intervals [n, n].
func (e Interval) IsPoint() bool {
	return e.IsFinite() && e.low.Eq(e.high)
}

func (e Interval) Low() IntervalBound {
	return e.low
}

func (e Interval) High() IntervalBound {
	return e.high
}

// GetFiniteBounds returns the bounds of a finite interval, and panics
// otherwise.
func (e Interval) GetFiniteBounds() (int, int) {
	if !e.IsFinite() {
		panic(errInternal)
	}
	return int(e.low.(FiniteBound)), int(e.high.(FiniteBound))
}

func (e1 Interval) Eq(e2 Interval) bool {
	if e1.IsBot() || e2.IsBot() {
		return e1.IsBot() && e2.IsBot()
	}
	return e1.low.Eq(e2.low) && e1.high.Eq(e2.high)
}

// Leq is interval inclusion. ⊥ is included in every interval.
func (e1 Interval) Leq(e2 Interval) bool {
	switch {
	case e1.IsBot():
		return true
	case e2.IsBot():
		return false
	}
	return e2.low.Leq(e1.low) && e1.high.Leq(e2.high)
}

// Contains checks whether n belongs to the interval.
func (e Interval) Contains(n int) bool {
	return !e.IsBot() && e.low.Leq(FiniteBound(n)) && e.high.Geq(FiniteBound(n))
}

// Join computes the smallest interval containing both operands. ⊤ acts as an
// identity, as the value of a variable that was introduced but not yet
// assigned:
//
//	.------------------------------------------.
//	|   e1   |   e2   |         e1 ⊔ e2        |
//	|========|========|========================|
//	|   ⊥    |  ∀ e2  |           e2           |
//	|--------|--------|------------------------|
//	|   ⊤    |  ≠ ⊥   |           e2           |
//	|--------|--------|------------------------|
//	| [a, b] | [c, d] | [min(a, c), max(b, d)] |
//	 ------------------------------------------
func (e1 Interval) Join(e2 Interval) Interval {
	switch {
	case e1.IsBot():
		return e2
	case e2.IsBot():
		return e1
	case e1.IsTop():
		return e2
	case e2.IsTop():
		return e1
	}
	return Interval{e1.low.Min(e2.low), e1.high.Max(e2.high)}
}

// Meet computes the intersection of two intervals, ⊥ if they are disjoint.
func (e1 Interval) Meet(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}
	return elFact.Interval(e1.low.Max(e2.low), e1.high.Min(e2.high))
}

// Widen extrapolates every finite bound of e1 exceeded by e2 to infinity.
func (e1 Interval) Widen(e2 Interval) Interval {
	switch {
	case e1.IsBot():
		return e2
	case e2.IsBot():
		return e1
	}

	low, high := e1.low, e1.high
	if !low.IsInfinite() && e2.low.Lt(low) {
		low = MinusInfinity{}
	}
	if !high.IsInfinite() && e2.high.Gt(high) {
		high = PlusInfinity{}
	}
	return Interval{low, high}
}

// Narrow replaces the infinite bounds of e1 with the corresponding bounds of
// e2. Finite bounds of e1 are kept.
func (e1 Interval) Narrow(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return e1
	}

	low, high := e1.low, e1.high
	if low.IsInfinite() {
		low = e2.low
	}
	if high.IsInfinite() {
		high = e2.high
	}
	if low.Gt(high) {
		return e1
	}
	return Interval{low, high}
}

// Without removes n from the interval when n is one of its endpoints.
func (e Interval) Without(n int) Interval {
	if e.IsBot() {
		return e
	}
	low, high := e.low, e.high
	if low.Eq(FiniteBound(n)) {
		low = low.Plus(FiniteBound(1))
	}
	if high.Eq(FiniteBound(n)) {
		high = high.Minus(FiniteBound(1))
	}
	return elFact.Interval(low, high)
}

// lowerSum adds two lower bounds. -∞ absorbs ∞.
func lowerSum(a, b IntervalBound) IntervalBound {
	if a == (MinusInfinity{}) || b == (MinusInfinity{}) {
		return MinusInfinity{}
	}
	return a.Plus(b)
}

// upperSum adds two upper bounds. ∞ absorbs -∞.
func upperSum(a, b IntervalBound) IntervalBound {
	if a == (PlusInfinity{}) || b == (PlusInfinity{}) {
		return PlusInfinity{}
	}
	return a.Plus(b)
}

// lowerDiff subtracts upper bound b from lower bound a.
func lowerDiff(a, b IntervalBound) IntervalBound {
	if a == (MinusInfinity{}) || b == (PlusInfinity{}) {
		return MinusInfinity{}
	}
	return a.Minus(b)
}

// upperDiff subtracts lower bound b from upper bound a.
func upperDiff(a, b IntervalBound) IntervalBound {
	if a == (PlusInfinity{}) || b == (MinusInfinity{}) {
		return PlusInfinity{}
	}
	return a.Minus(b)
}

// wrapped holds when res, computed from the finite bounds a and b, does not
// fit in an int. The concrete operation wraps around at that bound, so
// nothing is known about the result.
func wrapped(a, b, res IntervalBound) bool {
	_, finA := a.(FiniteBound)
	_, finB := b.(FiniteBound)
	_, finRes := res.(FiniteBound)
	return finA && finB && !finRes
}

// Plus computes [a, b] + [c, d] = [a + c, b + d]. An overflowing bound
// makes the result ⊤.
func (e1 Interval) Plus(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}
	low, high := lowerSum(e1.low, e2.low), upperSum(e1.high, e2.high)
	if wrapped(e1.low, e2.low, low) || wrapped(e1.high, e2.high, high) {
		return intervalLattice.Top()
	}
	return Interval{low, high}
}

// Minus computes [a, b] - [c, d] = [a - d, b - c]. An overflowing bound
// makes the result ⊤.
func (e1 Interval) Minus(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}
	low, high := lowerDiff(e1.low, e2.high), upperDiff(e1.high, e2.low)
	if wrapped(e1.low, e2.high, low) || wrapped(e1.high, e2.low, high) {
		return intervalLattice.Top()
	}
	return Interval{low, high}
}

// Mult computes the smallest interval containing the products of the bounds.
func (e1 Interval) Mult(e2 Interval) Interval {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot()
	}

	var low, high IntervalBound
	for i, a := range [...]IntervalBound{e1.low, e1.high} {
		for j, b := range [...]IntervalBound{e2.low, e2.high} {
			c := a.Mult(b)
			if wrapped(a, b, c) {
				return intervalLattice.Top()
			}
			if i == 0 && j == 0 {
				low, high = c, c
				continue
			}
			low, high = low.Min(c), high.Max(c)
		}
	}
	return Interval{low, high}
}

// Rem over-approximates the truncated remainder e1 % e2, whose sign is that
// of the dividend. For a divisor bounded in magnitude by m, the result lies
// in [-(m-1), m-1]; it is further bounded by the dividend itself. A divisor
// of exactly [0, 0] is an error.
func (e1 Interval) Rem(e2 Interval) (Interval, error) {
	if e1.IsBot() || e2.IsBot() {
		return intervalLattice.Bot(), nil
	}
	if e2.IsPoint() && e2.low.Eq(FiniteBound(0)) {
		return intervalLattice.Bot(), ErrRemainderByZero
	}

	if e1.IsPoint() && e2.IsPoint() {
		x, _ := e1.GetFiniteBounds()
		y, _ := e2.GetFiniteBounds()
		return elFact.IntervalPoint(x % y), nil
	}

	limit := e2.low.Neg().Max(e2.high).Minus(FiniteBound(1))
	zero := FiniteBound(0)
	switch {
	case e1.low.Geq(zero):
		return Interval{zero, e1.high.Min(limit)}, nil
	case e1.high.Leq(zero):
		return Interval{e1.low.Max(limit.Neg()), zero}, nil
	}
	return Interval{e1.low.Max(limit.Neg()), e1.high.Min(limit)}, nil
}

// MayGt checks whether some value of the interval is greater than n.
func (e Interval) MayGt(n int) bool {
	return !e.IsBot() && e.high.Gt(FiniteBound(n))
}

// MayGeq checks whether some value of the interval is at least n.
func (e Interval) MayGeq(n int) bool {
	return !e.IsBot() && e.high.Geq(FiniteBound(n))
}

// MayLt checks whether some value of the interval is less than n.
func (e Interval) MayLt(n int) bool {
	return !e.IsBot() && e.low.Lt(FiniteBound(n))
}

// MayLeq checks whether some value of the interval is at most n.
func (e Interval) MayLeq(n int) bool {
	return !e.IsBot() && e.low.Leq(FiniteBound(n))
}

// MayEq checks whether n belongs to the interval.
func (e Interval) MayEq(n int) bool {
	return e.Contains(n)
}

// MayNeq checks whether the interval holds a value other than n.
func (e Interval) MayNeq(n int) bool {
	return !e.IsBot() && !(e.IsPoint() && e.low.Eq(FiniteBound(n)))
}

// Distance is the largest |v1 - v2| for v1 in e1 and v2 in e2.
func (e1 Interval) Distance(e2 Interval) IntervalBound {
	if e1.IsBot() || e2.IsBot() {
		panic(errInternal)
	}
	return upperSum(e1.high, e2.low.Neg()).Max(upperSum(e2.high, e1.low.Neg()))
}
