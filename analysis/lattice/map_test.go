package lattice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type key int

func TestMapJoin(t *testing.T) {
	fin := Elements().IntervalFinite

	m1 := MakeMap[key, Interval]().Update(1, fin(0, 0)).Update(2, fin(5, 5))
	m2 := MakeMap[key, Interval]().Update(2, fin(7, 9)).Update(3, fin(1, 1))

	res := m1.Join(m2)
	require.Equal(t, []key{1, 2, 3}, res.Keys())
	require.True(t, res.GetOr(1, Create().Lattice().Interval().Bot()).Eq(fin(0, 0)))
	require.True(t, res.GetOr(2, Create().Lattice().Interval().Bot()).Eq(fin(5, 9)))
	require.True(t, res.GetOr(3, Create().Lattice().Interval().Bot()).Eq(fin(1, 1)))

	require.True(t, m1.Leq(res))
	require.True(t, m2.Leq(res))
	require.True(t, res.Eq(m2.Join(m1)), "join is not commutative")

	// The operands are persistent.
	e, _ := m1.Get(2)
	require.True(t, e.Eq(fin(5, 5)))
	require.Equal(t, 2, m1.Size())
}

func TestMapEq(t *testing.T) {
	fin := Elements().IntervalFinite

	m := MakeMap[key, Interval]().Update(1, fin(0, 3))
	require.True(t, m.Eq(m))
	require.True(t, m.Eq(MakeMap[key, Interval]().Update(1, fin(0, 3))))
	require.False(t, m.Eq(m.Update(1, fin(0, 4))))
	require.False(t, m.Eq(m.Update(2, fin(0, 3))))
	require.True(t, m.Join(m).Eq(m))

	var zero Map[key, Interval]
	require.True(t, zero.Eq(MakeMap[key, Interval]()))
	require.Equal(t, 0, zero.Size())
	require.True(t, zero.Join(m).Eq(m))
}

func TestMapRemove(t *testing.T) {
	m := MakeMap[key, TwoElement]().Update(1, true).Update(4, true)
	m2 := m.Remove(1)

	require.Equal(t, []key{4}, m2.Keys())
	require.Equal(t, []key{1, 4}, m.Keys())

	var zero Map[key, TwoElement]
	require.Equal(t, 0, zero.Remove(1).Size())
}

func TestMapWidenNarrow(t *testing.T) {
	int := Elements().Interval
	fin := Elements().IntervalFinite

	type b = FiniteBound
	type P = PlusInfinity

	prev := MakeMap[key, Interval]().Update(1, fin(0, 0)).Update(2, fin(3, 3))
	next := MakeMap[key, Interval]().Update(1, fin(0, 1)).Update(2, fin(3, 3))

	widened := WidenMap(prev, next)
	e, _ := widened.Get(1)
	require.True(t, e.Eq(int(b(0), P{})), "got %s", e)
	e, _ = widened.Get(2)
	require.True(t, e.Eq(fin(3, 3)), "got %s", e)

	narrowed := NarrowMap(widened, MakeMap[key, Interval]().Update(1, fin(0, 10)))
	e, _ = narrowed.Get(1)
	require.True(t, e.Eq(fin(0, 10)), "got %s", e)
	e, _ = narrowed.Get(2)
	require.True(t, e.Eq(fin(3, 3)), "got %s", e)
}

func TestMapString(t *testing.T) {
	fin := Elements().IntervalFinite

	m := MakeMap[key, Interval]().Update(2, fin(1, 2)).Update(1, fin(0, 0))
	require.Equal(t, "1: [0, 0]\n2: [1, 2]", m.String())

	names := map[key]string{1: "x"}
	str := m.StringFiltered(func(k key, _ Interval) bool {
		_, ok := names[k]
		return ok
	}, func(k key) string { return names[k] })
	require.Equal(t, "x: [0, 0]", str)
}
