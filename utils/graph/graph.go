package graph

/*
	This package exposes utilities for working with graph structures.

	Control-flow graphs, their strongly connected components and the
	component DAG all share this representation. The caller only provides a
	function describing the edge relation; edges are computed once per node.
*/

type edgesOf[T comparable] func(node T) []T

type Graph[T comparable] struct {
	edgesOf     edgesOf[T]
	cachedEdges map[T][]T
}

func (G Graph[T]) Edges(node T) []T {
	if cached, found := G.cachedEdges[node]; found {
		return cached
	}

	es := G.edgesOf(node)
	G.cachedEdges[node] = es
	return es
}

// HasEdge checks whether there is an edge from a to b.
func (G Graph[T]) HasEdge(a, b T) bool {
	for _, e := range G.Edges(a) {
		if e == b {
			return true
		}
	}
	return false
}

func Of[T comparable](edgesOf edgesOf[T]) Graph[T] {
	return Graph[T]{
		edgesOf,
		make(map[T][]T),
	}
}
