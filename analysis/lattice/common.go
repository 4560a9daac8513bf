package lattice

import (
	"errors"

	"github.com/cs-au-dk/absint/utils"
	"github.com/fatih/color"
)

var colorize = struct {
	Lattice func(...interface{}) string
	Element func(...interface{}) string
	Const   func(...interface{}) string
	Key     func(...interface{}) string
}{
	Lattice: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Element: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Const: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiWhite).SprintFunc())(is...)
	},
	Key: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgYellow).SprintFunc())(is...)
	},
}

var (
	// ErrRemainderByZero is returned when the divisor of a remainder is
	// exactly zero.
	ErrRemainderByZero = errors.New("remainder by zero")

	errInternal = errors.New("internal error")
)

// Element is implemented by the members of every lattice in this package.
// E is the concrete element type.
type Element[E any] interface {
	Eq(E) bool
	Leq(E) bool
	Join(E) E
	String() string
}

// Widening is implemented by elements of lattices with infinite ascending
// chains.
type Widening[E any] interface {
	Element[E]
	// Widen extrapolates the receiver by the next iterate.
	Widen(E) E
	// Narrow refines the receiver by the next descending iterate.
	Narrow(E) E
}

// Lattice describes the lattice an element type belongs to.
type Lattice[E Element[E]] interface {
	Top() E
	Bot() E
	String() string
}
