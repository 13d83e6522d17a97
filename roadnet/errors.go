package roadnet

import "errors"

var (
	// ErrVertexNotFound indicates a lookup for a vertex id not present in the network.
	ErrVertexNotFound = errors.New("roadnet: vertex not found")

	// ErrEdgeNotFound indicates a lookup for an edge id not present in the network.
	ErrEdgeNotFound = errors.New("roadnet: edge not found")

	// ErrGraphTooLarge is returned by FloydWarshall when |V| exceeds the
	// offline-only size guard.
	ErrGraphTooLarge = errors.New("roadnet: graph too large for Floyd-Warshall (|V| > 5000)")
)
