// Package geoindex implements the spatio-temporal index: a geohash-keyed
// grid over the road network, augmented with precomputed inter-cell
// spatial/temporal distances and a dynamic per-cell map of taxis predicted
// to arrive there in the future.
//
// Construction runs in five ordered phases (LoadRoadNetwork,
// DetermineAnchors, ComputeDistanceMatrix, ConstructStaticLists,
// InitDynamicInfo); ComputeDistanceMatrix is the only phase safe to
// parallelize, since each source cell writes a disjoint matrix row. The
// distance matrix itself may be persisted with SaveMatrix/LoadMatrix via
// encoding/gob and reused as a build cache across runs, since it depends
// only on the road network, not on any taxi or query state.
//
// The dispatcher's candidate search (package dispatch) walks a cell's
// TemporalList and consults GridCell.TaxiList; this package is the sole
// owner of that list's correctness.
package geoindex
