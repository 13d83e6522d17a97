package roadnet

// pqItem is a vertex ordered by priority (accumulated cost for Dijkstra,
// cost-so-far+heuristic for A*, heuristic alone for greedy best-first).
type pqItem struct {
	vertex   VertexID
	priority float64
}

// vertexPQ is a min-heap of *pqItem ordered by priority ascending. Dijkstra
// and A* use the lazy decrease-key idiom: push a fresh entry with an
// improved priority rather than mutate an existing one, and skip stale pops
// via a "finalized" set. Greedy best-first pushes each vertex at most once.
type vertexPQ []*pqItem

func (pq vertexPQ) Len() int            { return len(pq) }
func (pq vertexPQ) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq vertexPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *vertexPQ) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }
func (pq *vertexPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// reconstructPath reverse-walks cameFrom from e back to s and reassembles a
// Path in forward order, summing edge weights as it goes. Returns a
// zero-value Path if e was never reached (i.e. not present in cameFrom and
// e != s).
func (n *RoadNetwork) reconstructPath(s, e VertexID, cameFrom map[VertexID]VertexID) Path {
	if e != s {
		if _, ok := cameFrom[e]; !ok {
			return Path{}
		}
	}

	var vertices []VertexID
	cur := e
	for {
		vertices = append([]VertexID{cur}, vertices...)
		if cur == s {
			break
		}
		prev, ok := cameFrom[cur]
		if !ok {
			return Path{}
		}
		cur = prev
	}

	edges := make([]EdgeID, 0, len(vertices)-1)
	var total float64
	for i := 0; i+1 < len(vertices); i++ {
		u, v := vertices[i], vertices[i+1]
		eid, ok := n.EdgeIDOf(u, v)
		if !ok {
			return Path{}
		}
		edges = append(edges, eid)
		total += n.edges[eid].Weight
	}

	return Path{Vertices: vertices, Edges: edges, Distance: total}
}
