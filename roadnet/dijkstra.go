package roadnet

import (
	"container/heap"
	"math"
)

// Dijkstra computes the shortest path from s to e using a min-heap priority
// queue keyed by accumulated cost, relaxing neighbors in the usual way.
// Returns an empty Path if e is unreachable from s.
func (n *RoadNetwork) Dijkstra(s, e VertexID) Path {
	dist, cameFrom := n.singleSourceDijkstra(s, e, true)
	if _, ok := dist[e]; !ok && s != e {
		return Path{}
	}
	return n.reconstructPath(s, e, cameFrom)
}

// SingleSourceDijkstra runs Dijkstra from s to exhaustion (no early target
// stop) and returns the full distance map, used by the spatio-temporal
// index's offline distance-matrix build, and the cameFrom predecessor map,
// from which ConstructPath rebuilds individual paths.
func (n *RoadNetwork) SingleSourceDijkstra(s VertexID) (dist map[VertexID]float64, cameFrom map[VertexID]VertexID) {
	return n.singleSourceDijkstra(s, -1, false)
}

// ConstructPath reassembles a Path from s to v using a cameFrom map
// previously produced by SingleSourceDijkstra.
func (n *RoadNetwork) ConstructPath(s, v VertexID, cameFrom map[VertexID]VertexID) Path {
	return n.reconstructPath(s, v, cameFrom)
}

// singleSourceDijkstra is the shared engine: if stopEarly is true, the loop
// exits as soon as target is finalized.
func (n *RoadNetwork) singleSourceDijkstra(s, target VertexID, stopEarly bool) (map[VertexID]float64, map[VertexID]VertexID) {
	dist := map[VertexID]float64{s: 0}
	cameFrom := make(map[VertexID]VertexID)
	finalized := make(map[VertexID]bool)

	pq := make(vertexPQ, 0, n.NumVertices())
	heap.Init(&pq)
	heap.Push(&pq, &pqItem{vertex: s, priority: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*pqItem)
		u := item.vertex
		if finalized[u] {
			continue
		}
		finalized[u] = true

		if stopEarly && u == target {
			break
		}

		for _, v := range n.Neighbors(u) {
			w := n.EdgeWeight(u, v)
			if math.IsInf(w, 1) {
				continue
			}
			newDist := dist[u] + w
			if cur, ok := dist[v]; !ok || newDist < cur {
				dist[v] = newDist
				cameFrom[v] = u
				heap.Push(&pq, &pqItem{vertex: v, priority: newDist})
			}
		}
	}

	return dist, cameFrom
}
