package roadnet

import "github.com/taxidispatch/simulator/geo"

// VertexID uniquely identifies a vertex within a RoadNetwork.
type VertexID int

// EdgeID uniquely identifies an edge within a RoadNetwork.
type EdgeID int

// Vertex is a point in the road network with a directed adjacency map of
// neighbor vertex id to the outgoing edge id that reaches it.
type Vertex struct {
	ID  VertexID
	Loc geo.Location

	adj map[VertexID]EdgeID
}

// Edge is a directed road segment between two vertices, weighted by its
// length in meters.
type Edge struct {
	ID     EdgeID
	From   VertexID
	To     VertexID
	Weight float64
}

// Path is the result of a shortest-path search: an ordered vertex list, an
// ordered edge list one shorter, and the total distance. An unreachable
// search returns a zero-value Path (both slices nil, Distance 0).
type Path struct {
	Vertices []VertexID
	Edges    []EdgeID
	Distance float64
}

// Empty reports whether p carries no route, the convention used throughout
// the simulator to mean "unreachable" or "no route needed."
func (p Path) Empty() bool {
	return len(p.Vertices) == 0
}
