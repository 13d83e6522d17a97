package roadnet

import (
	"container/heap"
	"math"
)

// AStar computes the shortest path from s to e using cost-so-far plus a
// straight-line-distance heuristic to the goal. This is the production
// search used by taxis to compute routes; it is optimal because
// StraightDistance never overestimates the remaining road distance.
// Returns an empty Path if e is unreachable from s.
func (n *RoadNetwork) AStar(s, e VertexID) Path {
	gScore := map[VertexID]float64{s: 0}
	cameFrom := make(map[VertexID]VertexID)
	finalized := make(map[VertexID]bool)

	pq := make(vertexPQ, 0, n.NumVertices())
	heap.Init(&pq)
	heap.Push(&pq, &pqItem{vertex: s, priority: n.StraightDistance(s, e)})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*pqItem)
		u := item.vertex
		if finalized[u] {
			continue
		}
		finalized[u] = true

		if u == e {
			break
		}

		for _, v := range n.Neighbors(u) {
			w := n.EdgeWeight(u, v)
			if math.IsInf(w, 1) {
				continue
			}
			newG := gScore[u] + w
			if cur, ok := gScore[v]; !ok || newG < cur {
				gScore[v] = newG
				cameFrom[v] = u
				heap.Push(&pq, &pqItem{vertex: v, priority: newG + n.StraightDistance(v, e)})
			}
		}
	}

	return n.reconstructPath(s, e, cameFrom)
}
