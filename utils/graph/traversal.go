package graph

import W "github.com/cs-au-dk/absint/utils/worklist"

type traversalFunc[T any] func(node T) (stop bool)

// Performs a breadth-first search from the provided start nodes, calling the
// provided function (f) for every reachable node, stopping early if f returns
// true.
// Returns whether the search stopped early (as a result of f returning true).
func (G Graph[T]) BFSV(f traversalFunc[T], starts ...T) bool {
	visited := make(map[T]bool, len(starts))
	for _, start := range starts {
		visited[start] = true
	}

	done := false
	W.StartV(starts, func(node T, add func(T)) {
		if done || f(node) {
			done = true
			return
		}

		for _, next := range G.Edges(node) {
			if !visited[next] {
				visited[next] = true
				add(next)
			}
		}
	})

	return done
}

// Performs a breadth-first search from the provided start node, calling the
// provided function (f) for every reachable node, stopping early if f returns
// true.
// Returns whether the search stopped early (as a result of f returning true).
func (G Graph[T]) BFS(start T, f traversalFunc[T]) bool {
	return G.BFSV(f, start)
}

// Reachable lists the nodes reachable from start in breadth-first order.
func (G Graph[T]) Reachable(start T) (nodes []T) {
	G.BFS(start, func(node T) bool {
		nodes = append(nodes, node)
		return false
	})
	return
}
