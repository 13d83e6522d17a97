package roadnet

import "container/heap"

// GreedyBestFirst searches from s to e using only the straight-line-distance
// heuristic to the goal, ignoring accumulated cost. It is fast but not
// guaranteed optimal; kept for comparison against AStar and Dijkstra.
// Returns an empty Path if e is unreachable from s.
func (n *RoadNetwork) GreedyBestFirst(s, e VertexID) Path {
	cameFrom := make(map[VertexID]VertexID)
	visited := map[VertexID]bool{s: true}

	pq := make(vertexPQ, 0, n.NumVertices())
	heap.Init(&pq)
	heap.Push(&pq, &pqItem{vertex: s, priority: n.StraightDistance(s, e)})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*pqItem)
		u := item.vertex

		if u == e {
			break
		}

		for _, v := range n.Neighbors(u) {
			if visited[v] {
				continue
			}
			visited[v] = true
			cameFrom[v] = u
			heap.Push(&pq, &pqItem{vertex: v, priority: n.StraightDistance(v, e)})
		}
	}

	return n.reconstructPath(s, e, cameFrom)
}
