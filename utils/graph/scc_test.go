package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func sortedComponent(scc SCCDecomposition[int], node int) []int {
	comp := slices.Clone(scc.Components[scc.ComponentOf(node)])
	slices.Sort(comp)
	return comp
}

func TestSCCComponents(t *testing.T) {
	scc := _sampleGraph.SCC([]int{0})

	tests := []struct {
		node int
		comp []int
	}{
		{0, []int{0, 1, 4}},
		{2, []int{2, 3, 7}},
		{5, []int{5, 6}},
		{8, []int{8}},
		{12, []int{12}},
	}

	for _, test := range tests {
		require.Equal(t, test.comp, sortedComponent(scc, test.node), "component of %d", test.node)
	}

	require.Equal(t, -1, scc.ComponentOf(14), "14 is unreachable from 0")
}

func TestSCCToGraph(t *testing.T) {
	scc := _sampleGraph.SCC([]int{0})
	dag := scc.ToGraph()

	for i := range scc.Components {
		for _, j := range dag.Edges(i) {
			require.Less(t, j, i, "component edges point to earlier components")
		}
	}
}

func TestSCCTerminal(t *testing.T) {
	scc := _sampleGraph.SCC([]int{0})

	var terminal [][]int
	for _, comp := range scc.Terminal() {
		terminal = append(terminal, sortedComponent(scc, scc.Components[comp][0]))
	}

	require.ElementsMatch(t, [][]int{{5, 6}, {8}, {12}, {13}}, terminal)
}

func TestSCCIsCyclic(t *testing.T) {
	scc := _sampleGraph.SCC([]int{0, 14})

	require.True(t, scc.IsCyclic(scc.ComponentOf(5)))
	require.True(t, scc.IsCyclic(scc.ComponentOf(14)))
	require.False(t, scc.IsCyclic(scc.ComponentOf(8)))
}
