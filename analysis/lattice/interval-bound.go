package lattice

import (
	"math"
	"strconv"
)

// IntervalBound is an interface implemented by all interval lattice bounds i.e.,
// any FiniteBound value, PlusInfinity and MinusInfinity.
//
// Arithmetic on finite bounds saturates: a result that overflows the machine
// integer range becomes the infinity of the same sign.
type IntervalBound interface {
	String() string

	// IsInfinite checks whether the interval bound is infinite.
	IsInfinite() bool

	// BINARY RELATIONS

	// Eq checks for interval bound equality.
	Eq(IntervalBound) bool
	// Leq computes b1 ≤ b2. The semantics is -∞ ≤ c ≤ ∞, where c ∈ ℤ.
	Leq(IntervalBound) bool
	// Geq computes b1 ≥ b2. The semantics is ∞ ≥ c ≥ -∞, where c ∈ ℤ.
	Geq(IntervalBound) bool
	// Lt computes b1 < b2. The semantics is -∞ < c < ∞, where c ∈ ℤ.
	Lt(IntervalBound) bool
	// Gt computes b1 > b2. The semantics is ∞ > c > -∞, where c ∈ ℤ.
	Gt(IntervalBound) bool

	// UNARY OPERATIONS

	// Neg computes -b. The negation of the smallest machine integer is ∞.
	Neg() IntervalBound

	// BINARY OPERATIONS

	// Plus computes b1 + b2. The semantics of plus is:
	//	.-----------------------------.
	// 	|   b1   |   b2   |  b1 ⨣ b2  |
	// 	|========|========|===========|
	// 	|  ∈  ℤ  |  ∈  ℤ  |  b1 + b2  |
	// 	|--------|--------|-----------|
	// 	|  ∈  ℤ  |    ∞   |     ∞     |
	// 	|--------|--------|-----------|
	// 	|  ∈  ℤ  |   -∞   |    -∞     |
	// 	|--------|--------|-----------|
	// 	|   -∞   |   -∞   |    -∞     |
	// 	|--------|--------|-----------|
	// 	|    ∞   |    ∞   |     ∞     |
	// 	|--------|--------|-----------|
	// 	|    ∞   |   -∞   |   panic   |
	// 	 -----------------------------
	Plus(IntervalBound) IntervalBound

	// Minus computes b1 - b2, defined as b1 + (-b2).
	Minus(IntervalBound) IntervalBound

	// Mult computes b1 * b2. The semantics of multiplication is:
	//	.-----------------------------.
	// 	|   b1   |   b2   |  b1 * b2  |
	// 	|========|========|===========|
	// 	|  ∈  ℤ  |  ∈  ℤ  |  b1 * b2  |
	// 	|--------|--------|-----------|
	// 	|  ∈  ℤ+ |    ∞   |     ∞     |
	// 	|--------|--------|-----------|
	// 	|  ∈  ℤ+ |   -∞   |    -∞     |
	// 	|--------|--------|-----------|
	// 	|  ∈  ℤ- |   -∞   |     ∞     |
	// 	|--------|--------|-----------|
	// 	|  ∈  ℤ- |    ∞   |    -∞     |
	// 	|--------|--------|-----------|
	// 	|    0   |  (-)∞  |     0     |
	// 	|--------|--------|-----------|
	// 	|    ∞   |    ∞   |     ∞     |
	// 	|--------|--------|-----------|
	// 	|   -∞   |   -∞   |     ∞     |
	// 	|--------|--------|-----------|
	// 	|    ∞   |   -∞   |    -∞     |
	// 	 -----------------------------
	Mult(IntervalBound) IntervalBound

	// Max computes max(b1, b2). The semantics of maximum is:
	//	.--------------------------------.
	// 	|   b1   |   b2   | max(b1, b2)  |
	// 	|========|========|==============|
	// 	|  ∈  ℤ  |  ∈  ℤ  | max(b1, b2)  |
	// 	|--------|--------|--------------|
	// 	|  ∀ b1  |    ∞   |       ∞      |
	// 	 --------------------------------
	Max(IntervalBound) IntervalBound

	// Min computes min(b1, b2). The semantics of minimum is:
	//	.--------------------------------.
	// 	|   b1   |   b2   | min(b1, b2)  |
	// 	|========|========|==============|
	// 	|  ∈  ℤ  |  ∈  ℤ  | min(b1, b2)  |
	// 	|--------|--------|--------------|
	// 	|  ∀ b1  |   -∞   |      -∞      |
	// 	 --------------------------------
	Min(IntervalBound) IntervalBound
}

type (
	// FiniteBound is used to represent finite limits of an interval value.
	FiniteBound int
	// PlusInfinity represents ∞.
	PlusInfinity struct{}
	// MinusInfinity represents -∞.
	MinusInfinity struct{}
)

// IsInfinite is false for the finite bound.
func (FiniteBound) IsInfinite() bool {
	return false
}

func (b FiniteBound) String() string {
	return colorize.Element(strconv.Itoa(int(b)))
}

func (b1 FiniteBound) Eq(b2 IntervalBound) bool {
	b2f, ok := b2.(FiniteBound)
	return ok && b1 == b2f
}

func (b1 FiniteBound) Leq(b2 IntervalBound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 <= b2
	case PlusInfinity:
		return true
	}
	return false
}

func (b1 FiniteBound) Geq(b2 IntervalBound) bool {
	switch b2 := b2.(type) {
	case FiniteBound:
		return b1 >= b2
	case MinusInfinity:
		return true
	}
	return false
}

func (b1 FiniteBound) Lt(b2 IntervalBound) bool {
	return !b1.Geq(b2)
}

func (b1 FiniteBound) Gt(b2 IntervalBound) bool {
	return !b1.Leq(b2)
}

func (b FiniteBound) Neg() IntervalBound {
	if b == math.MinInt {
		return PlusInfinity{}
	}
	return -b
}

// Plus computes b1 + b2. The semantics of plus is:
//
//	.--------------------.
//	|   b2   |  b1 + b2  |
//	|========|===========|
//	|   ∈ ℤ  |  b1 + b2  |
//	|--------|-----------|
//	|    ∞   |     ∞     |
//	|--------|-----------|
//	|   -∞   |    -∞     |
//	 --------------------
func (b1 FiniteBound) Plus(b2 IntervalBound) IntervalBound {
	switch b2 := b2.(type) {
	case FiniteBound:
		sum := b1 + b2
		switch {
		case b1 > 0 && b2 > 0 && sum < 0:
			return PlusInfinity{}
		case b1 < 0 && b2 < 0 && sum >= 0:
			return MinusInfinity{}
		}
		return sum
	case PlusInfinity:
		return PlusInfinity{}
	case MinusInfinity:
		return MinusInfinity{}
	}
	panic(errInternal)
}

func (b1 FiniteBound) Minus(b2 IntervalBound) IntervalBound {
	if b2, ok := b2.(FiniteBound); ok {
		diff := b1 - b2
		switch {
		case b2 < 0 && diff < b1:
			return PlusInfinity{}
		case b2 > 0 && diff > b1:
			return MinusInfinity{}
		}
		return diff
	}
	return b1.Plus(b2.Neg())
}

// Mult computes b1 * b2. The semantics of multiplication is:
//
//	.-----------------------------.
//	|   b1   |   b2   |  b1 * b2  |
//	|========|========|===========|
//	|  ∈  ℤ  |  ∈  ℤ  |  b1 * b2  |
//	|--------|--------|-----------|
//	|  ∈  ℤ+ |    ∞   |     ∞     |
//	|--------|--------|-----------|
//	|  ∈  ℤ+ |   -∞   |    -∞     |
//	|--------|--------|-----------|
//	|  ∈  ℤ- |   -∞   |     ∞     |
//	|--------|--------|-----------|
//	|  ∈  ℤ- |    ∞   |    -∞     |
//	|--------|--------|-----------|
//	|    0   |  (-)∞  |     0     |
//	 -----------------------------
func (b1 FiniteBound) Mult(b2 IntervalBound) IntervalBound {
	switch b2 := b2.(type) {
	case FiniteBound:
		if b1 == 0 || b2 == 0 {
			return FiniteBound(0)
		}
		prod := b1 * b2
		if prod/b2 != b1 ||
			(b1 == -1 && b2 == math.MinInt) ||
			(b2 == -1 && b1 == math.MinInt) {
			if (b1 > 0) == (b2 > 0) {
				return PlusInfinity{}
			}
			return MinusInfinity{}
		}
		return prod
	case PlusInfinity, MinusInfinity:
		return b2.Mult(b1)
	}
	panic(errInternal)
}

func (b1 FiniteBound) Max(b2 IntervalBound) IntervalBound {
	if b1.Geq(b2) {
		return b1
	}
	return b2
}

func (b1 FiniteBound) Min(b2 IntervalBound) IntervalBound {
	if b1.Leq(b2) {
		return b1
	}
	return b2
}

// IsInfinite is true for ∞.
func (PlusInfinity) IsInfinite() bool {
	return true
}

func (PlusInfinity) String() string {
	return colorize.Element("INFINITY")
}

func (PlusInfinity) Eq(b2 IntervalBound) bool {
	_, ok := b2.(PlusInfinity)
	return ok
}

func (PlusInfinity) Leq(b2 IntervalBound) bool {
	_, ok := b2.(PlusInfinity)
	return ok
}

func (PlusInfinity) Geq(IntervalBound) bool {
	return true
}

func (PlusInfinity) Lt(IntervalBound) bool {
	return false
}

func (PlusInfinity) Gt(b2 IntervalBound) bool {
	_, ok := b2.(PlusInfinity)
	return !ok
}

func (PlusInfinity) Neg() IntervalBound {
	return MinusInfinity{}
}

// Plus computes ∞ + b. It panics for b = -∞.
func (PlusInfinity) Plus(b2 IntervalBound) IntervalBound {
	if _, ok := b2.(MinusInfinity); ok {
		panic("∞ + -∞")
	}
	return PlusInfinity{}
}

func (b1 PlusInfinity) Minus(b2 IntervalBound) IntervalBound {
	return b1.Plus(b2.Neg())
}

// Mult computes ∞ * b.
//
//	.--------------------.
//	|   b2   |  ∞ * b2   |
//	|========|===========|
//	|  ∈  ℤ+ |     ∞     |
//	|--------|-----------|
//	|    0   |     0     |
//	|--------|-----------|
//	|  ∈  ℤ- |    -∞     |
//	|--------|-----------|
//	|    ∞   |     ∞     |
//	|--------|-----------|
//	|   -∞   |    -∞     |
//	 --------------------
func (PlusInfinity) Mult(b2 IntervalBound) IntervalBound {
	switch b2 := b2.(type) {
	case FiniteBound:
		switch {
		case b2 > 0:
			return PlusInfinity{}
		case b2 < 0:
			return MinusInfinity{}
		}
		return FiniteBound(0)
	case PlusInfinity:
		return PlusInfinity{}
	case MinusInfinity:
		return MinusInfinity{}
	}
	panic(errInternal)
}

func (PlusInfinity) Max(IntervalBound) IntervalBound {
	return PlusInfinity{}
}

func (PlusInfinity) Min(b2 IntervalBound) IntervalBound {
	return b2
}

// IsInfinite is true for -∞.
func (MinusInfinity) IsInfinite() bool {
	return true
}

func (MinusInfinity) String() string {
	return colorize.Element("-INFINITY")
}

func (MinusInfinity) Eq(b2 IntervalBound) bool {
	_, ok := b2.(MinusInfinity)
	return ok
}

func (MinusInfinity) Leq(IntervalBound) bool {
	return true
}

func (MinusInfinity) Geq(b2 IntervalBound) bool {
	_, ok := b2.(MinusInfinity)
	return ok
}

func (MinusInfinity) Lt(b2 IntervalBound) bool {
	_, ok := b2.(MinusInfinity)
	return !ok
}

func (MinusInfinity) Gt(IntervalBound) bool {
	return false
}

func (MinusInfinity) Neg() IntervalBound {
	return PlusInfinity{}
}

// Plus computes -∞ + b. It panics for b = ∞.
func (MinusInfinity) Plus(b2 IntervalBound) IntervalBound {
	if _, ok := b2.(PlusInfinity); ok {
		panic("-∞ + ∞")
	}
	return MinusInfinity{}
}

func (b1 MinusInfinity) Minus(b2 IntervalBound) IntervalBound {
	return b1.Plus(b2.Neg())
}

// Mult computes -∞ * b, the negation of ∞ * b.
func (MinusInfinity) Mult(b2 IntervalBound) IntervalBound {
	return PlusInfinity{}.Mult(b2).Neg()
}

func (MinusInfinity) Max(b2 IntervalBound) IntervalBound {
	return b2
}

func (MinusInfinity) Min(IntervalBound) IntervalBound {
	return MinusInfinity{}
}
