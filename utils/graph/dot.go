package graph

import (
	"fmt"

	"github.com/cs-au-dk/absint/utils"
	"github.com/cs-au-dk/absint/utils/dot"
)

var opts = utils.Opts()

type VisualizationConfig[T comparable] struct {
	// Provides the ID and attributes for dot nodes.
	// If not provided, the ID is the stringified node.
	NodeAttrs func(node T) (string, dot.DotAttrs)
	// Provides the attributes of the i'th outgoing edge of a node.
	EdgeAttrs func(from T, i int, to T) dot.DotAttrs
	// If provided, will create clusters for nodes with the same key.
	// The returned key must be safe to use in a Go map. Nodes for which
	// ok is false are placed outside any cluster.
	ClusterKey func(node T) (key any, ok bool)
	// Provides the ID and attributes for dot clusters.
	ClusterAttrs func(key any) (string, dot.DotAttrs)
}

func (G Graph[T]) ToDotGraph(nodes []T, cfg *VisualizationConfig[T]) *dot.DotGraph {
	if cfg == nil {
		cfg = &VisualizationConfig[T]{}
	}

	graphOpts := map[string]string{
		"minlen":  fmt.Sprint(opts.Minlen()),
		"nodesep": fmt.Sprint(opts.Nodesep()),
		"rankdir": "TB",
	}

	dg := &dot.DotGraph{
		Options: graphOpts,
	}

	keyToCluster := map[any]*dot.DotCluster{}
	getCluster := func(key any) *dot.DotCluster {
		if cluster, found := keyToCluster[key]; found {
			return cluster
		}

		var id string
		var attrs dot.DotAttrs
		if cfg.ClusterAttrs != nil {
			id, attrs = cfg.ClusterAttrs(key)
		} else {
			id = fmt.Sprint(key)
		}

		cluster := dot.NewDotCluster(id)
		if attrs != nil {
			cluster.Attrs = attrs
		}
		dg.Clusters = append(dg.Clusters, cluster)

		keyToCluster[key] = cluster
		return cluster
	}

	// Add nodes to graph
	nodeToDotNode := make(map[T]*dot.DotNode, len(nodes))
	for _, node := range nodes {
		dNode := &dot.DotNode{}

		if cfg.NodeAttrs != nil {
			dNode.ID, dNode.Attrs = cfg.NodeAttrs(node)
		} else {
			dNode.ID = fmt.Sprint(node)
		}

		nodeToDotNode[node] = dNode

		if cfg.ClusterKey != nil {
			if key, ok := cfg.ClusterKey(node); ok {
				cl := getCluster(key)
				cl.Nodes = append(cl.Nodes, dNode)
				continue
			}
		}
		dg.Nodes = append(dg.Nodes, dNode)
	}

	// Add edges to graph
	for _, node := range nodes {
		a := nodeToDotNode[node]

		for i, edge := range G.Edges(node) {
			if b, found := nodeToDotNode[edge]; found {
				dEdge := &dot.DotEdge{From: a, To: b}
				if cfg.EdgeAttrs != nil {
					dEdge.Attrs = cfg.EdgeAttrs(node, i, edge)
				}
				dg.Edges = append(dg.Edges, dEdge)
			}
		}
	}

	return dg
}
