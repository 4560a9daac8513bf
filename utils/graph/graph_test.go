package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

var edges = map[int][]int{
	0:  {1, 8},
	1:  {4, 5, 2},
	2:  {6, 3, 9},
	3:  {2, 7},
	4:  {0, 5},
	5:  {6},
	6:  {5},
	7:  {3, 6},
	8:  {},
	9:  {10, 11},
	10: {12, 13},
	11: {12, 13},
	12: {},
	13: {},
	14: {14},
}
var _sampleGraph = Of(func(i int) []int {
	return edges[i]
})

func TestReachable(t *testing.T) {
	reached := _sampleGraph.Reachable(9)
	slices.Sort(reached)
	if diff := cmp.Diff([]int{9, 10, 11, 12, 13}, reached); diff != "" {
		t.Errorf("Reachable(9) mismatch (-want +got):\n%s", diff)
	}
}

func TestBFSStopsEarly(t *testing.T) {
	visited := 0
	stopped := _sampleGraph.BFS(0, func(node int) bool {
		visited++
		return node == 1
	})
	require.True(t, stopped)
	require.Equal(t, 2, visited)
}

func TestHasEdge(t *testing.T) {
	require.True(t, _sampleGraph.HasEdge(14, 14))
	require.True(t, _sampleGraph.HasEdge(3, 7))
	require.False(t, _sampleGraph.HasEdge(7, 2))
}
