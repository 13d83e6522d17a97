// Package roadnet implements the directed, weighted road-network graph used
// by the taxi-dispatch simulator: vertices and edges keyed by integer id,
// adjacency lookups, and the shortest-path searches that route taxis and
// feed the spatio-temporal index's offline distance-matrix build.
//
// All searches reconstruct a Path by reverse-walking a cameFrom map from the
// destination back to the source. When the destination is unreachable, the
// returned Path has empty Vertices/Edges slices and zero Distance — callers
// check path.Empty() rather than expect an error (a path from a vertex to
// itself has one vertex and no edges, and is not empty), matching the
// simulator's "a taxi with no route simply stalls" error policy.
//
// A* (cost-so-far plus straight-line heuristic) is the production search
// used to route taxis. BFS is reachability-only. Dijkstra and greedy
// best-first exist for comparison and for smaller offline tasks.
// Floyd-Warshall is offline-only, guarded to small graphs, and never
// appears on the per-timestep hot path.
package roadnet
