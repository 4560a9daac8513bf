package absint

import (
	"bytes"
	"fmt"
	"go/token"
	"testing"

	"github.com/cs-au-dk/absint/analysis/ir"
	L "github.com/cs-au-dk/absint/analysis/lattice"
	tu "github.com/cs-au-dk/absint/testutil"

	"github.com/stretchr/testify/require"
)

var (
	fin = func(a, b int) L.Interval { return L.Elements().Interval(L.FiniteBound(a), L.FiniteBound(b)) }
	pt  = L.Elements().IntervalPoint
)

func TestGrow(t *testing.T) {
	tests := []struct {
		name             string
		prev, next, want L.Interval
	}{
		{"upwards", fin(0, 0), fin(1, 1), atLeast(0)},
		{"downwards", fin(3, 5), fin(1, 3), atMost(5)},
		{"unequal steps", fin(0, 2), fin(1, 5), fin(1, 5)},
		{"no step", fin(4, 4), fin(4, 4), fin(4, 4)},
		{"grown slot keeps range", atLeast(0), fin(3, 7), atLeast(0)},
		{"grown slot escapes", atLeast(0), fin(-1, 7), fin(-1, 7)},
		{"unbounded slot", intervals.Top(), fin(1, 1), fin(1, 1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := grow(test.prev, test.next)
			require.True(t, got.Eq(test.want), "grow(%s, %s) = %s, want %s",
				test.prev, test.next, got, test.want)
		})
	}
}

func TestRestrict(t *testing.T) {
	diff := fin(-3, 3)
	tests := []struct {
		op     token.Token
		branch bool
		want   L.Interval
	}{
		{token.GTR, true, fin(1, 3)},
		{token.GTR, false, fin(-3, 0)},
		{token.GEQ, true, fin(0, 3)},
		{token.LSS, true, fin(-3, -1)},
		{token.LSS, false, fin(0, 3)},
		{token.LEQ, false, fin(1, 3)},
		{token.EQL, true, pt(0)},
		{token.NEQ, false, pt(0)},
		{token.NEQ, true, diff},
	}

	for _, test := range tests {
		got := restrict(test.op, test.branch, diff)
		require.True(t, got.Eq(test.want), "%s/%v: got %s, want %s", test.op, test.branch, got, test.want)
	}

	require.True(t, restrict(token.EQL, true, fin(1, 2)).IsBot())
}

func TestCompareOutcomes(t *testing.T) {
	tests := []struct {
		op   token.Token
		diff L.Interval
		want string
	}{
		{token.GTR, fin(1, 5), "{T}"},
		{token.GTR, fin(0, 5), "{T, F}"},
		{token.LSS, fin(0, 0), "{F}"},
		{token.EQL, pt(0), "{T}"},
		{token.NEQ, pt(0), "{F}"},
		{token.LEQ, atLeast(-1), "{T, F}"},
	}

	for _, test := range tests {
		got, err := compareOutcomes(test.op, test.diff)
		require.NoError(t, err)
		require.Equal(t, test.want, got.String(), "%s over %s", test.op, test.diff)
	}

	_, err := compareOutcomes(token.ADD, pt(0))
	require.ErrorIs(t, err, ErrUndefinedComparison)
}

func TestFold(t *testing.T) {
	k := L.Elements().Constant
	got, err := fold(token.SUB, k(3), k(10))
	require.NoError(t, err)
	require.True(t, got.Eq(k(-7)))

	got, err = fold(token.MUL, k(2), constants.Top())
	require.NoError(t, err)
	require.True(t, got.IsTop())

	_, err = fold(token.ADD, constants.Bot(), k(1))
	require.ErrorIs(t, err, ErrUninitialized)
	_, err = fold(token.QUO, constants.Bot(), k(1))
	require.ErrorIs(t, err, ErrUndefinedOperation)
	_, err = fold(token.REM, k(1), k(0))
	require.ErrorIs(t, err, ErrRemainderByZero)
}

func TestSeparation(t *testing.T) {
	require.Equal(t, uint64(3), separation(5, 8))
	require.Equal(t, uint64(3), separation(8, 5))
	require.Equal(t, ^uint64(0), separation(int(^uint(0)>>1), -int(^uint(0)>>1)-1))
}

func slotNamed(t *testing.T, fun *ir.Function, name string) ir.ValueID {
	t.Helper()
	for _, slot := range fun.NamedSlots() {
		if slot.Name == name {
			return slot.ID
		}
	}
	t.Fatalf("No slot named %s", name)
	return 0
}

// entryState runs the interval domain over the entry block of fun.
func entryState(t *testing.T, fun *ir.Function) IntervalState {
	t.Helper()
	e := &Engine[L.Interval]{Fun: fun, Domain: intervalDomain{}}
	s, err := e.transferBlock(fun.Entry(), NewState[L.Interval]())
	require.NoError(t, err)
	return s
}

func TestRefineThroughArithmetic(t *testing.T) {
	fun := tu.FunctionFromSource(t, `package main

func main() {
	var x int
	if x+2 <= 5 {
		println(x)
	}
}`, "main")

	s := entryState(t, fun)
	x := slotNamed(t, fun, "x")

	then, feasible := intervalDomain{}.Refine(fun, fun.Entry(), s, true)
	require.True(t, feasible)
	got, _ := then.Get(x)
	require.True(t, got.Eq(atMost(3)), "x on the true branch: %s", got)

	els, feasible := intervalDomain{}.Refine(fun, fun.Entry(), s, false)
	require.True(t, feasible)
	got, _ = els.Get(x)
	require.True(t, got.Eq(atLeast(4)), "x on the false branch: %s", got)
}

func TestRefineInfeasible(t *testing.T) {
	fun := tu.FunctionFromSource(t, `package main

func main() {
	x := 5
	if x > 10 {
		println(x)
	}
}`, "main")

	s := entryState(t, fun)
	_, feasible := intervalDomain{}.Refine(fun, fun.Entry(), s, true)
	require.False(t, feasible)

	els, feasible := intervalDomain{}.Refine(fun, fun.Entry(), s, false)
	require.True(t, feasible)
	got, _ := els.Get(slotNamed(t, fun, "x"))
	require.True(t, got.Eq(pt(5)))
}

func TestRefineStopsAtMultiplication(t *testing.T) {
	fun := tu.FunctionFromSource(t, `package main

func main() {
	var x int
	if x*2 > 4 {
		println(x)
	}
}`, "main")

	s := entryState(t, fun)
	then, feasible := intervalDomain{}.Refine(fun, fun.Entry(), s, true)
	require.True(t, feasible)
	got, _ := then.Get(slotNamed(t, fun, "x"))
	require.True(t, got.IsTop(), "x should not be refined: %s", got)
}

func TestTaintTransfer(t *testing.T) {
	fun := tu.FunctionFromSource(t, `package main

func main() {
	sourceA := 1
	b := sourceA + 1
	c := 2
	b = c
	println(b, c)
}`, "main")

	e := &Engine[L.TwoElement]{Fun: fun, Domain: taintDomain{"source"}}
	s, err := e.transferBlock(fun.Entry(), NewState[L.TwoElement]())
	require.NoError(t, err)

	require.True(t, tainted(s, slotNamed(t, fun, "sourceA")))
	require.False(t, tainted(s, slotNamed(t, fun, "b")), "overwritten with an untainted value")
	require.False(t, tainted(s, slotNamed(t, fun, "c")))
}

func TestStateEq(t *testing.T) {
	s := NewState[L.Interval]().Update(1, pt(3)).SetOutcome(2, L.Elements().Outcomes(true, false))
	require.True(t, s.Eq(s))
	require.True(t, s.Eq(s.Join(s)))
	require.False(t, s.Eq(s.Update(1, pt(4))))
	require.False(t, s.Eq(s.SetOutcome(2, L.Elements().Outcomes(true, true))))
	require.False(t, s.Eq(s.Remove(1)))
}

func TestStateString(t *testing.T) {
	fun := tu.FunctionFromSource(t, `package main

func main() {
	x := 5
	println(x)
}`, "main")

	s := entryState(t, fun)
	require.Equal(t, "x: [5, 5]", s.Describe(fun))

	x := slotNamed(t, fun, "x")
	require.Contains(t, s.String(), fmt.Sprintf("%d: [5, 5]", x))
}

func TestRepeatPolicy(t *testing.T) {
	var out bytes.Buffer
	policy := Repeat[L.Interval]{Limit: 2, Out: &out}
	blk := &ir.Block{ID: 1}
	a := NewState[L.Interval]().Update(0, pt(1))
	b := a.Update(0, pt(2))
	c := a.Update(0, pt(3))

	var p Path[L.Interval]
	leave := func(s State[L.Interval]) bool {
		ok := policy.Leave(blk, s, s, &p)
		p.record(blk.ID, s)
		return ok
	}

	require.True(t, leave(a))
	require.True(t, leave(a))
	require.Equal(t, 1, p.Repeats)
	require.True(t, leave(b))
	require.Equal(t, 0, p.Repeats)
	require.True(t, leave(c), "a change with no repeats is not reported")
	require.True(t, leave(c))
	require.False(t, leave(c))

	require.Equal(t, ""+
		"<-------- Reached the fixed point 1 time(s) -------->\n"+
		"<---------- Reset the counter of reaching the same fixed point ---------->\n"+
		"<-------- Reached the fixed point 1 time(s) -------->\n"+
		"<-------- Reached the fixed point 2 time(s) -------->\n",
		out.String())
}

func TestPathBound(t *testing.T) {
	bound := PathBound[L.Interval](3)
	blk := &ir.Block{ID: 0}
	s := NewState[L.Interval]()

	require.True(t, bound.Enter(blk, s, Path[L.Interval]{Depth: 2}))
	require.False(t, bound.Enter(blk, s, Path[L.Interval]{Depth: 3}))
	require.True(t, PathBound[L.Interval](0).Enter(blk, s, Path[L.Interval]{Depth: 1 << 20}))
}

func TestSeenIncoming(t *testing.T) {
	policy := NewSeenIncoming[L.TwoElement]()
	b0, b1 := &ir.Block{ID: 0}, &ir.Block{ID: 1}
	clean := NewState[L.TwoElement]()
	dirty := clean.Update(3, true)

	require.True(t, policy.Enter(b0, clean, Path[L.TwoElement]{}))
	require.False(t, policy.Enter(b0, clean, Path[L.TwoElement]{}))
	require.True(t, policy.Enter(b0, dirty, Path[L.TwoElement]{}))
	require.True(t, policy.Enter(b1, clean, Path[L.TwoElement]{}))
}
