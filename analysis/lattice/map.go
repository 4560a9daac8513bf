package lattice

import (
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/absint/utils"
)

// Map is a persistent map lattice from integer-backed keys to lattice
// elements, iterated in key order. Absent keys are treated as absent, not as
// ⊥, so that joins are taken over the union of the keys.
type Map[K ~int, E Element[E]] struct {
	mp *immutable.SortedMap[K, E]
}

// MakeMap creates an empty map.
func MakeMap[K ~int, E Element[E]]() Map[K, E] {
	return Map[K, E]{utils.NewSortedMap[K, E]()}
}

func (m Map[K, E]) sorted() *immutable.SortedMap[K, E] {
	if m.mp == nil {
		return utils.NewSortedMap[K, E]()
	}
	return m.mp
}

func (m Map[K, E]) Size() int {
	if m.mp == nil {
		return 0
	}
	return m.mp.Len()
}

func (m Map[K, E]) Get(key K) (E, bool) {
	if m.mp == nil {
		var zero E
		return zero, false
	}
	return m.mp.Get(key)
}

// GetOr returns the binding of key, or def if there is none.
func (m Map[K, E]) GetOr(key K, def E) E {
	if e, found := m.Get(key); found {
		return e
	}
	return def
}

// Update binds key to e.
func (m Map[K, E]) Update(key K, e E) Map[K, E] {
	return Map[K, E]{m.sorted().Set(key, e)}
}

// Remove unbinds key.
func (m Map[K, E]) Remove(key K) Map[K, E] {
	if m.mp == nil {
		return m
	}
	return Map[K, E]{m.mp.Delete(key)}
}

// ForEach calls do for all bindings in ascending key order.
func (m Map[K, E]) ForEach(do func(K, E)) {
	if m.mp == nil {
		return
	}
	for itr := m.mp.Iterator(); !itr.Done(); {
		k, v, _ := itr.Next()
		do(k, v)
	}
}

// ForAll checks whether pred holds for all bindings.
func (m Map[K, E]) ForAll(pred func(K, E) bool) bool {
	if m.mp == nil {
		return true
	}
	for itr := m.mp.Iterator(); !itr.Done(); {
		if k, v, _ := itr.Next(); !pred(k, v) {
			return false
		}
	}
	return true
}

// Keys lists the keys in ascending order.
func (m Map[K, E]) Keys() []K {
	keys := make([]K, 0, m.Size())
	m.ForEach(func(k K, _ E) {
		keys = append(keys, k)
	})
	return keys
}

func (m1 Map[K, E]) Eq(m2 Map[K, E]) bool {
	if m1.mp == m2.mp {
		return true
	}
	if m1.Size() != m2.Size() {
		return false
	}
	return m1.ForAll(func(k K, e1 E) bool {
		e2, found := m2.Get(k)
		return found && e1.Eq(e2)
	})
}

// Leq holds if every binding of m1 is bound to a larger element in m2.
func (m1 Map[K, E]) Leq(m2 Map[K, E]) bool {
	return m1.ForAll(func(k K, e1 E) bool {
		e2, found := m2.Get(k)
		return found && e1.Leq(e2)
	})
}

// Join computes the pointwise join over the union of the keys.
func (m1 Map[K, E]) Join(m2 Map[K, E]) Map[K, E] {
	return m1.Merge(m2, func(e1, e2 E) E {
		return e1.Join(e2)
	})
}

// Merge combines the bindings present in both maps with f. Bindings of m2
// missing from m1 are added unchanged.
func (m1 Map[K, E]) Merge(m2 Map[K, E], f func(e1, e2 E) E) Map[K, E] {
	switch {
	case m2.Size() == 0:
		return m1
	case m1.Size() == 0:
		return m2
	}

	res := m1.mp
	m2.ForEach(func(k K, e2 E) {
		if e1, found := res.Get(k); found {
			if e := f(e1, e2); !e.Eq(e1) {
				res = res.Set(k, e)
			}
		} else {
			res = res.Set(k, e2)
		}
	})
	return Map[K, E]{res}
}

// String prints every binding on its own line, in key order.
func (m Map[K, E]) String() string {
	return m.StringFiltered(func(K, E) bool { return true }, func(k K) string {
		return colorize.Key(k)
	})
}

// StringFiltered prints the bindings for which pred holds, naming keys with
// name.
func (m Map[K, E]) StringFiltered(pred func(K, E) bool, name func(K) string) string {
	var lines []string
	m.ForEach(func(k K, e E) {
		if pred(k, e) {
			lines = append(lines, name(k)+": "+e.String())
		}
	})
	return strings.Join(lines, "\n")
}

// WidenMap widens the bindings shared by both maps.
func WidenMap[K ~int, E Widening[E]](m1, m2 Map[K, E]) Map[K, E] {
	return m1.Merge(m2, func(e1, e2 E) E {
		return e1.Widen(e2)
	})
}

// NarrowMap narrows the bindings shared by both maps.
func NarrowMap[K ~int, E Widening[E]](m1, m2 Map[K, E]) Map[K, E] {
	return m1.Merge(m2, func(e1, e2 E) E {
		return e1.Narrow(e2)
	})
}
