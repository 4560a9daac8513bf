package absint

import (
	L "github.com/cs-au-dk/absint/analysis/lattice"

	"github.com/pkg/errors"
)

var (
	// ErrUndefinedOperation is returned for integer operations other than
	// addition, subtraction, multiplication and remainder.
	ErrUndefinedOperation = errors.New("undefined operation")
	// ErrUndefinedComparison is returned for unknown comparison predicates.
	ErrUndefinedComparison = errors.New("undefined comparison")
	// ErrUninitialized is returned when an exact value is computed from a
	// variable that was never assigned.
	ErrUninitialized = errors.New("can't support uninitialized variables")
	// ErrRemainderByZero is returned for a remainder whose divisor is zero.
	ErrRemainderByZero = L.ErrRemainderByZero
)
