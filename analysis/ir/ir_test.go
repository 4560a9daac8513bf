package ir_test

import (
	"go/token"
	"strings"
	"testing"

	"github.com/cs-au-dk/absint/analysis/ir"
	"github.com/cs-au-dk/absint/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const branchSource = `package main

func main() {
	x := 5
	var y int
	if x > 3 {
		y = x + 1
	} else {
		y = x - 1
	}
	_ = y
	s := "a"
	_ = s
}
`

func kinds(fun *ir.Function, blk *ir.Block) (ks []ir.Kind) {
	for _, id := range blk.Instrs {
		ks = append(ks, fun.Value(id).Kind)
	}
	return
}

func TestNamedSlots(t *testing.T) {
	fun := testutil.FunctionFromSource(t, branchSource, "main")

	var names []string
	for _, slot := range fun.NamedSlots() {
		require.Equal(t, ir.KindAlloc, slot.Kind)
		names = append(names, slot.Name)
	}
	if diff := cmp.Diff([]string{"x", "y", "s"}, names); diff != "" {
		t.Errorf("named slots mismatch (-want +got):\n%s", diff)
	}

	for _, slot := range fun.NamedSlots() {
		require.Equal(t, slot.Name != "s", slot.Integer, "integer type of %s", slot.Name)
	}
}

func TestEntryBlock(t *testing.T) {
	fun := testutil.FunctionFromSource(t, branchSource, "main")
	entry := fun.Entry()

	require.Equal(t, ir.BlockID(0), entry.ID)
	require.Len(t, entry.Succs, 2)

	term := fun.Value(entry.Terminator())
	require.Equal(t, ir.KindIf, term.Kind)

	cond := fun.Value(term.Operands[0])
	require.Equal(t, ir.KindCompare, cond.Kind)
	require.Equal(t, token.GTR, cond.Op)

	lhs, rhs := fun.Value(cond.Operands[0]), fun.Value(cond.Operands[1])
	require.Equal(t, ir.KindLoad, lhs.Kind)
	require.True(t, rhs.IsIntConst())
	require.Equal(t, 3, rhs.Const)

	require.Equal(t, ir.KindAlloc, kinds(fun, entry)[0])
}

func TestStoreOperands(t *testing.T) {
	fun := testutil.FunctionFromSource(t, branchSource, "main")
	x := fun.NamedSlots()[0]

	var stores []*ir.Value
	for _, v := range fun.Values {
		if v.Kind == ir.KindStore && v.Operands[0] == x.ID {
			stores = append(stores, v)
		}
	}

	require.Len(t, stores, 1)
	val := fun.Value(stores[0].Operands[1])
	require.True(t, val.IsIntConst())
	require.Equal(t, 5, val.Const)
}

func TestBranchTargets(t *testing.T) {
	fun := testutil.FunctionFromSource(t, branchSource, "main")
	entry := fun.Entry()

	for _, succ := range entry.Succs {
		blk := fun.Block(succ)
		require.Contains(t, blk.Preds, entry.ID)

		var ops []token.Token
		for _, id := range blk.Instrs {
			if v := fun.Value(id); v.Kind == ir.KindBinOp {
				ops = append(ops, v.Op)
			}
		}
		require.Len(t, ops, 1)
	}

	then := fun.Block(entry.Succs[0])
	for _, id := range then.Instrs {
		if v := fun.Value(id); v.Kind == ir.KindBinOp {
			require.Equal(t, token.ADD, v.Op, "the true successor comes first")
		}
	}
}

func TestExitBlocks(t *testing.T) {
	fun := testutil.FunctionFromSource(t, branchSource, "main")

	exits := 0
	for _, blk := range fun.Blocks {
		term := fun.Value(blk.Terminator())
		require.True(t, term.Kind.IsTerminator())
		if blk.IsExit() {
			exits++
			require.Equal(t, ir.KindReturn, term.Kind)
		}
	}
	require.Equal(t, 1, exits)
}

func TestCallsAreOpaque(t *testing.T) {
	fun := testutil.FunctionFromSource(t, `package main

func f() int { return 4 }

func main() {
	x := f()
	x = x % 3
	_ = x
}
`, "main")

	var other, rem int
	for _, v := range fun.Values {
		switch {
		case v.Kind == ir.KindOther && v.Block != ir.NoBlock:
			other++
		case v.Kind == ir.KindBinOp && v.Op == token.REM:
			rem++
		}
	}
	require.Equal(t, 1, other, "the call is the only opaque instruction")
	require.Equal(t, 1, rem)
}

func TestFunctionString(t *testing.T) {
	fun := testutil.FunctionFromSource(t, branchSource, "main")
	require.Contains(t, fun.String(), "func main:")
	require.Contains(t, fun.String(), "if ")
}

func TestDeferStackIsHidden(t *testing.T) {
	for _, src := range []string{branchSource, `package main

func main() {
	x := 1
	defer println(x)
	x = 2
}
`} {
		fun := testutil.FunctionFromSource(t, src, "main")

		for _, v := range fun.Values {
			if v.Block == ir.NoBlock || v.Kind == ir.KindOther {
				continue
			}
			require.False(t, strings.Contains(v.String(), "defer"), "unexpected %s", v)
		}
		for _, slot := range fun.NamedSlots() {
			require.NotContains(t, slot.Name, "defer")
		}
		require.Equal(t, ir.KindAlloc, kinds(fun, fun.Entry())[0])
	}
}
