package absint

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/cs-au-dk/absint/analysis/ir"
	tu "github.com/cs-au-dk/absint/testutil"
	"github.com/cs-au-dk/absint/utils"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	goleak.VerifyTestMain(m)
}

func loadExample(t *testing.T, example string, cfg utils.Config) []*ir.Function {
	t.Helper()
	pkgs := tu.LoadExampleAsPackages(t, "../..", "absint/"+example)
	return tu.EntryFunctions(t, pkgs, cfg.EntryPrefix)
}

func run(t *testing.T, task, example string) (string, error) {
	t.Helper()
	cfg := utils.DefaultConfig()
	analysis, ok := Lookup(task)
	require.True(t, ok, "unknown task %s", task)

	var out bytes.Buffer
	err := Run(analysis, loadExample(t, example, cfg), cfg, &out)
	return out.String(), err
}

func TestGolden(t *testing.T) {
	tests := []struct {
		task     string
		examples []string
	}{
		{"separation", []string{"straight-line"}},
		{"separation-loop", []string{"straight-line", "infeasible-branch"}},
		{"interval", []string{"straight-line", "unconstrained", "branch", "loop-counter"}},
		{"interval-loop", []string{"straight-line", "unconstrained", "branch", "loop-counter", "self-loop"}},
		{"taint", []string{"straight-line", "taint"}},
		{"taint-loop", []string{"taint"}},
	}

	g := goldie.New(t)
	for _, test := range tests {
		for _, example := range test.examples {
			name := fmt.Sprintf("%s-%s", test.task, example)
			t.Run(name, func(t *testing.T) {
				out, err := run(t, test.task, example)
				require.NoError(t, err)
				require.NotContains(t, out, "defer", "the defer stack is not a variable")
				g.Assert(t, name, []byte(out))
			})
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		task, example string
		want          error
	}{
		{"separation", "unconstrained", ErrUninitialized},
		{"separation", "rem-zero", ErrRemainderByZero},
		{"separation", "division", ErrUndefinedOperation},
		{"separation-loop", "division", ErrUndefinedOperation},
		{"interval", "rem-zero", ErrRemainderByZero},
		{"interval", "division", ErrUndefinedOperation},
		{"interval-loop", "rem-zero", ErrRemainderByZero},
	}

	for _, test := range tests {
		t.Run(test.task+"-"+test.example, func(t *testing.T) {
			out, err := run(t, test.task, test.example)
			require.ErrorIs(t, err, test.want)
			require.Contains(t, err.Error(), "analyzing main")
			require.Equal(t, "Analyzing function main\n", out,
				"nothing is reported for an entry block that fails")
		})
	}
}

func finalSection(t *testing.T, out string) string {
	t.Helper()
	const header = "=========== Final Result ===========\n"
	i := strings.LastIndex(out, header)
	require.NotEqual(t, -1, i, "no final result in:\n%s", out)
	return out[i+len(header):]
}

func TestIntervalLoopNarrowsLoopExit(t *testing.T) {
	out, err := run(t, "interval-loop", "loop-counter")
	require.NoError(t, err)
	require.Contains(t, out, "It is a loop.")
	require.Contains(t, out, "Reached a fixed point at block")
	require.Equal(t, "i: [10, 10]\n", finalSection(t, out))
}

// The inner loop keeps i unbounded above through its back edge, so
// narrowing cannot recover the bound of the outer loop.
func TestIntervalLoopNestedTerminates(t *testing.T) {
	out, err := run(t, "interval-loop", "nested-loop")
	require.NoError(t, err)
	require.Equal(t, ""+
		"i: [100, INFINITY]\n"+
		"n: [0, INFINITY]\n"+
		"j: [0, INFINITY]\n",
		finalSection(t, out))
}

func TestIntervalWrapsAround(t *testing.T) {
	for _, task := range []string{"interval", "interval-loop"} {
		out, err := run(t, task, "overflow")
		require.NoError(t, err)
		require.Equal(t, ""+
			"x: [9223372036854775807, 9223372036854775807]\n"+
			"y: [-INFINITY, INFINITY]\n",
			finalSection(t, out), task)
	}
}

func TestSeparationLoopFollowsInfeasibleBranches(t *testing.T) {
	out, err := run(t, "separation-loop", "infeasible-branch")
	require.NoError(t, err)
	require.Contains(t, out, "sep(x, y) = 95\n", "the body of x > 10 is visited")

	out, err = run(t, "interval", "infeasible-branch")
	require.NoError(t, err)
	require.NotContains(t, out, "y: [100, 100]", "the interval analysis prunes it")
}

func TestSeparationLoopStopsRepeatingPaths(t *testing.T) {
	out, err := run(t, "separation-loop", "gap-loop")
	require.NoError(t, err)
	require.Contains(t, out, "sep(x, y) = 10\n")
	require.Contains(t, out, "sep(x, y) = INFINITY\n")
	require.Contains(t, out, "<-------- Reached the fixed point 1 time(s) -------->")
	require.Contains(t, out, "<-------- Reached the fixed point 4 time(s) -------->")
	require.NotContains(t, out, "<-------- Reached the fixed point 5 time(s) -------->")
}

func TestRunAnalyzesEntriesInDeclarationOrder(t *testing.T) {
	out, err := run(t, "taint", "two-mains")
	require.NoError(t, err)

	var analyzed []string
	for _, line := range strings.Split(out, "\n") {
		if name, found := strings.CutPrefix(line, "Analyzing function "); found {
			analyzed = append(analyzed, name)
		}
	}
	require.Equal(t, []string{"mainB", "main", "mainA"}, analyzed)
}

func TestNames(t *testing.T) {
	require.Equal(t, []string{
		"interval", "interval-loop",
		"separation", "separation-loop",
		"taint", "taint-loop",
	}, Names())

	_, ok := Lookup("cfg-to-dot")
	require.False(t, ok)
}
