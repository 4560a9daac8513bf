package graph

// A DAG decomposition of a graph based on strongly connected components.
// The nodes in component i are guaranteed to only have edges to nodes in
// components with index j <= i.
type SCCDecomposition[T comparable] struct {
	Components [][]T
	comp       map[T]SCC
	Original   Graph[T]
}

// An alias for component type (in case representation changes)
type SCC = int

// Returns the index of the component the node is a part of, or -1 if the
// node was not reached by the decomposition.
func (scc SCCDecomposition[T]) ComponentOf(node T) SCC {
	if comp, hasComp := scc.comp[node]; hasComp {
		return comp
	}
	return -1
}

// Compute the strongly connected components of the subgraph reachable from the
// provided start nodes.
func (G Graph[T]) SCC(startNodes []T) SCCDecomposition[T] {
	// Source:
	// https://github.com/kth-competitive-programming/kactl/blob/main/content/graph/SCC.h

	val, comp := make(map[T]int), make(map[T]SCC)
	time := 0
	var z, cont []T
	var components [][]T

	var rec func(T)
	rec = func(node T) {
		time++
		low := time
		val[node] = low
		stackH := len(z)
		z = append(z, node)

		for _, e := range G.Edges(node) {
			if _, hasComp := comp[e]; !hasComp {
				if _, visited := val[e]; !visited {
					rec(e)
				}

				if eLow := val[e]; eLow < low {
					low = eLow
				}
			}
		}

		if low == val[node] {
			for len(z) > stackH {
				x := z[len(z)-1]
				z = z[:len(z)-1]
				comp[x] = len(components)
				cont = append(cont, x)
			}

			components = append(components, cont)
			cont = nil
		}

		val[node] = low
	}

	for _, node := range startNodes {
		if _, hasComp := comp[node]; !hasComp {
			rec(node)
		}
	}

	return SCCDecomposition[T]{
		Components: components,
		comp:       comp,
		Original:   G,
	}
}

// Returns a graph based on the SCC decomposition.
// Nodes are component indices (int).
func (scc SCCDecomposition[T]) ToGraph() Graph[SCC] {
	return Of(func(compIdx SCC) (ret []SCC) {
		seen := map[int]bool{}
		for _, node := range scc.Components[compIdx] {
			for _, edge := range scc.Original.Edges(node) {
				ncomp := scc.ComponentOf(edge)
				if compIdx != ncomp && !seen[ncomp] {
					seen[ncomp] = true
					ret = append(ret, ncomp)
				}
			}
		}
		return
	})
}

// IsCyclic holds when the component contains a cycle of the original graph:
// it has more than one node, or its only node has a self-edge.
func (scc SCCDecomposition[T]) IsCyclic(comp SCC) bool {
	nodes := scc.Components[comp]
	return len(nodes) > 1 || scc.Original.HasEdge(nodes[0], nodes[0])
}

// Terminal lists, in ascending order, the components without edges to other
// components.
func (scc SCCDecomposition[T]) Terminal() (ret []SCC) {
	dag := scc.ToGraph()
	for i := range scc.Components {
		if len(dag.Edges(i)) == 0 {
			ret = append(ret, i)
		}
	}
	return
}
