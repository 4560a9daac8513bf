package main

import (
	"bytes"
	"testing"

	tu "github.com/cs-au-dk/absint/testutil"

	"github.com/stretchr/testify/require"
)

func TestCfgToDot(t *testing.T) {
	pkgs := tu.LoadExampleAsPackages(t, ".", "absint/loop-counter")
	fun := tu.EntryFunctions(t, pkgs, "main")[0]

	dg := cfgToDot(fun)
	require.Equal(t, len(fun.Blocks), dg.NodeCount())
	require.Len(t, dg.Edges, 4)

	require.Len(t, dg.Clusters, 1, "the loop should be clustered")
	var inLoop []string
	for _, node := range dg.Clusters[0].Nodes {
		inLoop = append(inLoop, node.ID)
	}
	require.ElementsMatch(t, []string{"1", "3"}, inLoop)

	var outside []string
	for _, node := range dg.Nodes {
		outside = append(outside, node.ID)
	}
	require.Equal(t, []string{"0", "2"}, outside, "blocks are drawn breadth-first from the entry")

	labels := map[string]int{}
	for _, edge := range dg.Edges {
		labels[edge.Attrs["label"]]++
	}
	require.Equal(t, map[string]int{"": 2, "T": 1, "F": 1}, labels)

	var buf bytes.Buffer
	require.NoError(t, dg.WriteDot(&buf))
	require.Contains(t, buf.String(), `label="main";`)
}
