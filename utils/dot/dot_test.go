package dot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteDot(t *testing.T) {
	a := &DotNode{ID: "0", Attrs: DotAttrs{"label": "entry"}}
	b := &DotNode{ID: "1", Attrs: DotAttrs{"label": "exit"}}
	cl := NewDotCluster("loop")
	cl.Nodes = append(cl.Nodes, b)

	g := &DotGraph{
		Title:    "main",
		Nodes:    []*DotNode{a},
		Clusters: []*DotCluster{cl},
		Edges: []*DotEdge{{
			From:  a,
			To:    b,
			Attrs: DotAttrs{"label": "T", "color": "green"},
		}},
		Options: map[string]string{"minlen": "2", "nodesep": "0.35"},
	}

	var buf bytes.Buffer
	require.NoError(t, g.WriteDot(&buf))

	out := buf.String()
	require.Contains(t, out, `label="main";`)
	require.Contains(t, out, `subgraph "cluster_loop" {`)
	require.Contains(t, out, `"0" -> "1" [ color="green"; label="T"; ]`)
	require.Contains(t, out, `"0" [ label="entry"; ]`)
	require.Equal(t, 2, g.NodeCount())
}

func TestAttrsAreSorted(t *testing.T) {
	attrs := DotAttrs{"b": "2", "a": "1", "c": "3"}
	require.Equal(t, `a="1"; b="2"; c="3";`, attrs.String())
}
