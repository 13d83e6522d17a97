package roadnet

import "math"

// maxFloydWarshallVertices bounds FloydWarshall to small graphs; it is never
// on the simulator's per-timestep hot path (see spec.md §4.2/§9) and exists
// for offline all-pairs use on small synthetic networks; no other package
// calls it.
const maxFloydWarshallVertices = 5000

// FloydWarshall computes all-pairs shortest distances. It is guarded to
// |V| <= 5000 and returns ErrGraphTooLarge above that, since its O(V^3) cost
// is unsuitable for anything larger.
func (n *RoadNetwork) FloydWarshall() (map[VertexID]map[VertexID]float64, error) {
	ids := n.VertexIDs()
	if len(ids) > maxFloydWarshallVertices {
		return nil, ErrGraphTooLarge
	}

	dist := make(map[VertexID]map[VertexID]float64, len(ids))
	for _, u := range ids {
		row := make(map[VertexID]float64, len(ids))
		for _, v := range ids {
			if u == v {
				row[v] = 0
			} else {
				row[v] = math.Inf(1)
			}
		}
		dist[u] = row
	}
	for _, u := range ids {
		for _, v := range n.Neighbors(u) {
			w := n.EdgeWeight(u, v)
			if w < dist[u][v] {
				dist[u][v] = w
			}
		}
	}

	for _, k := range ids {
		for _, i := range ids {
			if math.IsInf(dist[i][k], 1) {
				continue
			}
			for _, j := range ids {
				alt := dist[i][k] + dist[k][j]
				if alt < dist[i][j] {
					dist[i][j] = alt
				}
			}
		}
	}

	return dist, nil
}
