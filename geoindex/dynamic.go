package geoindex

import (
	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/roadnet"
)

// UpdateTaxiList walks route's edges in order, accumulating distance; each
// time the end-vertex's geohash differs from the previous geohash, it
// records cell[new_geohash].TaxiList[taxiID] = timestamp +
// accumulated_distance/avgSpeedMPS. This is the index's prediction of the
// taxi's future cell-entry times, consulted by the dispatcher's candidate
// search; it does not touch the taxi's *current* cell membership, which is
// maintained separately by SetTaxiCell as the taxi actually moves.
func (db *SpatioTemporalDatabase) UpdateTaxiList(timestamp int64, taxiID TaxiID, route roadnet.Path, net *roadnet.RoadNetwork) {
	if route.Empty() {
		return
	}

	startVertex, err := net.GetVertex(route.Vertices[0])
	if err != nil {
		return
	}
	prevHash := startVertex.Loc.Geohash

	var accumulated float64
	for i, eid := range route.Edges {
		edge, err := net.GetEdge(eid)
		if err != nil {
			return
		}
		accumulated += edge.Weight

		endVertex, err := net.GetVertex(route.Vertices[i+1])
		if err != nil {
			return
		}
		hash := endVertex.Loc.Geohash
		if hash != prevHash {
			if cell, ok := db.Cells[hash]; ok {
				eta := timestamp + int64(accumulated/db.avgSpeedMPS)
				cell.TaxiList[taxiID] = eta
			}
			prevHash = hash
		}
	}
}

// SetTaxiCell removes taxiID from oldHash's TaxiList (if present) and
// records it in newHash's TaxiList with the given timestamp. Called by the
// taxi motion model whenever a taxi's position crosses a cell boundary,
// whether by reaching a schedule-node vertex or by straight-line advance
// during an edge traversal.
func (db *SpatioTemporalDatabase) SetTaxiCell(taxiID TaxiID, oldHash, newHash string, timestamp int64) {
	if oldHash != "" {
		if cell, ok := db.Cells[oldHash]; ok {
			delete(cell.TaxiList, taxiID)
		}
	}
	if cell, ok := db.Cells[newHash]; ok {
		cell.TaxiList[taxiID] = timestamp
	}
}

// MapMatch picks the vertex within endpoint's own geohash cell closest
// (great-circle) to endpoint. Returns ok=false (ErrEmptyCell behavior, per
// spec.md §7) if the cell has no vertices or does not exist.
func (db *SpatioTemporalDatabase) MapMatch(endpoint geo.Location, net *roadnet.RoadNetwork) (roadnet.VertexID, bool) {
	hash := endpoint.Geohash
	if hash == "" {
		hash = geo.Encode(endpoint.Lat, endpoint.Lon, defaultPrecision)
	}
	cell, ok := db.Cells[hash]
	if !ok || len(cell.Vertices) == 0 {
		return 0, false
	}

	var best roadnet.VertexID
	bestDist := -1.0
	first := true
	for vid := range cell.Vertices {
		v, err := net.GetVertex(vid)
		if err != nil {
			continue
		}
		d := geo.GreatCircleDistance(endpoint, v.Loc)
		if first || d < bestDist {
			best = vid
			bestDist = d
			first = false
		}
	}
	if first {
		return 0, false
	}

	return best, true
}
