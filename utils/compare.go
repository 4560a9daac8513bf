package utils

import "github.com/benbjohnson/immutable"

// IntComparer orders keys of any integer-backed type. The comparer immutable
// selects by default only recognises the predeclared integer types.
type IntComparer[T ~int] struct{}

func (IntComparer[T]) Compare(a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// NewSortedMap creates an immutable sorted map with integer-backed keys.
func NewSortedMap[K ~int, V any]() *immutable.SortedMap[K, V] {
	return immutable.NewSortedMap[K, V](IntComparer[K]{})
}
