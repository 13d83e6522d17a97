package geoindex

import (
	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/roadnet"
)

// TaxiID identifies a taxi within the spatio-temporal index's dynamic
// per-cell arrival lists. The taxicab package aliases this type so both
// packages share the exact same identifier space without an import cycle.
type TaxiID int

// NeighborEntry pairs another cell's geohash with a precomputed distance to
// it. Distance is meters in a SpatialList, seconds in a TemporalList.
type NeighborEntry struct {
	Geohash  string
	Distance float64
}

// MatrixCell is the precomputed spatial/temporal distance between two grid
// anchors.
type MatrixCell struct {
	D float64 // great-circle meters
	T float64 // seconds, via anchor-to-anchor road distance / AverageSpeed
}

// GridCell is one geohash cell: its decoded center, the anchor vertex
// (closest to center), the set of vertex ids it contains, its static sorted
// neighbor lists, and the dynamic map of taxis predicted to enter it.
//
// TaxiList maps taxi id to the absolute simulator time at which that taxi
// is predicted to enter this cell — its own current cell counts as an
// entry with eta equal to the time it last crossed into it, and any number
// of future cells along its current route may also be predicted.
type GridCell struct {
	Geohash  string
	Center   geo.Location
	Anchor   roadnet.VertexID
	Vertices map[roadnet.VertexID]struct{}

	SpatialList  []NeighborEntry
	TemporalList []NeighborEntry

	TaxiList map[TaxiID]int64
}

// SpatioTemporalDatabase is the complete index: the geohash-keyed cell map
// and the full geohash-by-geohash distance matrix it was built from.
type SpatioTemporalDatabase struct {
	Cells  map[string]*GridCell
	Matrix map[string]map[string]MatrixCell

	net         *roadnet.RoadNetwork
	avgSpeedMPS float64
}
