package roadnet

import (
	"math"

	"github.com/taxidispatch/simulator/geo"
)

// RoadNetwork is a directed weighted graph of Vertex and Edge, indexed by
// integer id. It owns no external state; grid cells and taxis reference its
// vertex/edge ids without holding pointers into it.
type RoadNetwork struct {
	vertices map[VertexID]*Vertex
	edges    map[EdgeID]*Edge
}

// NewRoadNetwork returns an empty RoadNetwork ready for AddVertex/AddEdge.
func NewRoadNetwork() *RoadNetwork {
	return &RoadNetwork{
		vertices: make(map[VertexID]*Vertex),
		edges:    make(map[EdgeID]*Edge),
	}
}

// AddVertex inserts or overwrites the vertex with the given id and location.
// An existing adjacency map, if any, is preserved across the overwrite.
func (n *RoadNetwork) AddVertex(id VertexID, loc geo.Location) *Vertex {
	if v, ok := n.vertices[id]; ok {
		v.Loc = loc
		return v
	}
	v := &Vertex{ID: id, Loc: loc, adj: make(map[VertexID]EdgeID)}
	n.vertices[id] = v
	return v
}

// AddEdge inserts a directed edge of the given weight. Per spec.md §9's
// construction-order contract, endpoints missing from the network are
// auto-created with a zero-value Location; callers must load vertex records
// before edges in practice, or accept that the auto-created endpoint has no
// real position until a later AddVertex call overwrites it.
func (n *RoadNetwork) AddEdge(id EdgeID, from, to VertexID, weight float64) *Edge {
	fv, ok := n.vertices[from]
	if !ok {
		fv = n.AddVertex(from, geo.Location{})
	}
	if _, ok := n.vertices[to]; !ok {
		n.AddVertex(to, geo.Location{})
	}

	e := &Edge{ID: id, From: from, To: to, Weight: weight}
	n.edges[id] = e
	fv.adj[to] = id

	return e
}

// GetVertex returns the vertex with the given id, or ErrVertexNotFound.
func (n *RoadNetwork) GetVertex(id VertexID) (*Vertex, error) {
	v, ok := n.vertices[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	return v, nil
}

// GetEdge returns the edge with the given id, or ErrEdgeNotFound.
func (n *RoadNetwork) GetEdge(id EdgeID) (*Edge, error) {
	e, ok := n.edges[id]
	if !ok {
		return nil, ErrEdgeNotFound
	}
	return e, nil
}

// Neighbors returns the ids of v's direct successors. Returns nil if v is
// unknown.
func (n *RoadNetwork) Neighbors(v VertexID) []VertexID {
	vert, ok := n.vertices[v]
	if !ok {
		return nil
	}
	out := make([]VertexID, 0, len(vert.adj))
	for nb := range vert.adj {
		out = append(out, nb)
	}
	return out
}

// EdgeIDOf returns the id of the directed edge u→v and whether it exists.
func (n *RoadNetwork) EdgeIDOf(u, v VertexID) (EdgeID, bool) {
	vert, ok := n.vertices[u]
	if !ok {
		return 0, false
	}
	id, ok := vert.adj[v]
	return id, ok
}

// EdgeWeight returns the weight of edge u→v, or +Inf if no such edge exists.
func (n *RoadNetwork) EdgeWeight(u, v VertexID) float64 {
	id, ok := n.EdgeIDOf(u, v)
	if !ok {
		return math.Inf(1)
	}
	return n.edges[id].Weight
}

// StraightDistance returns the great-circle distance between u's and v's
// locations, used as the A*/greedy heuristic.
func (n *RoadNetwork) StraightDistance(u, v VertexID) float64 {
	uv, ok1 := n.vertices[u]
	vv, ok2 := n.vertices[v]
	if !ok1 || !ok2 {
		return math.Inf(1)
	}
	return geo.GreatCircleDistance(uv.Loc, vv.Loc)
}

// NumVertices returns the number of vertices in the network.
func (n *RoadNetwork) NumVertices() int { return len(n.vertices) }

// NumEdges returns the number of edges in the network.
func (n *RoadNetwork) NumEdges() int { return len(n.edges) }

// VertexIDs returns all vertex ids in the network, in unspecified order.
func (n *RoadNetwork) VertexIDs() []VertexID {
	out := make([]VertexID, 0, len(n.vertices))
	for id := range n.vertices {
		out = append(out, id)
	}
	return out
}
